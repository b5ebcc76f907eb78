package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/patrimoine"
	"github.com/google/subcommands"
)

type planCmd struct {
	date      string
	asset     string
	ticker    string
	account   string
	months    int
	perMonth  int
	total     float64
	reference float64
	memo      string
}

func (*planCmd) Name() string     { return "plan" }
func (*planCmd) Synopsis() string { return "record a recurring investment plan" }
func (*planCmd) Usage() string {
	return `pat plan -a <asset> -months <n> -total <cash> [-per-month <n>] [-ref <price>] [-d <date>]

  Records a commitment to invest a fixed total amount through periodic
  purchases over a fixed number of months. The position estimates the
  executed part of the plan from elapsed time; no per-installment entry is
  needed.

Usage Example:
$ pat plan -a "MSCI World" -months 12 -total 1200 -ref 85.30
`
}

func (c *planCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Start date of the plan (defaults to today).")
	f.StringVar(&c.asset, "a", "", "Asset name.")
	f.StringVar(&c.ticker, "t", "", "Optional ticker symbol.")
	f.StringVar(&c.account, "acc", "", "Optional account holding the asset.")
	f.IntVar(&c.months, "months", 0, "Plan duration in months.")
	f.IntVar(&c.perMonth, "per-month", 1, "Executions per month.")
	f.Float64Var(&c.total, "total", 0, "Total cash committed over the plan's life.")
	f.Float64Var(&c.reference, "ref", 0, "Assumed execution price. Falls back to quotes, then average cost.")
	f.StringVar(&c.memo, "m", "", "Optional memo.")
}

func (c *planCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := patrimoine.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	plan := patrimoine.NewRecurringPlan(day, c.memo, c.asset, c.months, c.perMonth,
		patrimoine.M(c.total, *defaultCurrency), patrimoine.M(c.reference, *defaultCurrency))
	plan.Ticker = c.ticker
	plan.Account = c.account
	return EncodeTransaction(plan)
}
