package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/patrimoine"
	"github.com/etnz/patrimoine/renderer"
	"github.com/google/subcommands"
)

type whatifCmd struct {
	date    string
	asset   string
	amount  float64
	months  int
	trend   float64
	price   float64
	monthly bool
}

func (*whatifCmd) Name() string     { return "whatif" }
func (*whatifCmd) Synopsis() string { return "simulate a hypothetical investment in an asset" }
func (*whatifCmd) Usage() string {
	return `pat whatif -a <asset> -amount <cash> [-monthly -months <n> [-trend <frac>]] [-p <price>]

  Computes the position an additional investment would leave behind without
  touching the ledger: new quantity, new average cost, and projected
  portfolio weight. With -monthly, the amount is invested every month while
  the price drifts along the assumed annual trend, and the running average
  cost is traced month by month.

Usage Examples:
$ pat whatif -a "MSCI World" -amount 2000
$ pat whatif -a "MSCI World" -amount 200 -monthly -months 12 -trend 0.05
`
}

func (c *whatifCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Evaluation date (defaults to today).")
	f.StringVar(&c.asset, "a", "", "Asset name.")
	f.Float64Var(&c.amount, "amount", 0, "Cash to invest. With -monthly, per month.")
	f.BoolVar(&c.monthly, "monthly", false, "Invest monthly instead of in one lump sum.")
	f.IntVar(&c.months, "months", 12, "Number of monthly investments.")
	f.Float64Var(&c.trend, "trend", 0, "Assumed annual price trend as a fraction.")
	f.Float64Var(&c.price, "p", 0, "Market price override. Defaults to the quote, then average cost.")
}

func (c *whatifCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.amount <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -a and a positive -amount are required.")
		return subcommands.ExitUsageError
	}
	on, err := patrimoine.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	quotes, err := DecodeQuotes()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	s := ledger.NewSummary(on, quotes, nil)
	pos := ledger.Positions(on, quotes)[c.asset]

	p := patrimoine.WhatIfParams{
		Mode:                 patrimoine.LumpSum,
		CurrentQuantity:      pos.Quantity.AsFloat(),
		CurrentCostBasis:     pos.CostBasis.AsFloat(),
		Amount:               c.amount,
		PortfolioMarketValue: s.MarketValue.AsFloat(),
	}
	if c.monthly {
		p.Mode = patrimoine.Recurring
		p.DurationMonths = c.months
		p.AnnualPriceTrend = c.trend
	}

	if c.price > 0 {
		p.MarketPrice = c.price
	} else if quote, ok := quotes.Lookup(c.asset, pos.Ticker); ok {
		p.MarketPrice = quote.AsFloat()
	} else if avg, ok := pos.AverageCost(); ok {
		p.MarketPrice = avg.AsFloat()
	}
	if p.MarketPrice <= 0 {
		fmt.Fprintf(os.Stderr, "Error: no price known for %q, pass one with -p.\n", c.asset)
		return subcommands.ExitFailure
	}

	result := patrimoine.SimulateWhatIf(p)
	printMarkdown(renderer.WhatIfMarkdown(c.asset, p, result))
	return subcommands.ExitSuccess
}
