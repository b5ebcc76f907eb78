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

type dividendsCmd struct {
	date string
}

func (*dividendsCmd) Name() string     { return "dividends" }
func (*dividendsCmd) Synopsis() string { return "display projected dividend income per asset" }
func (*dividendsCmd) Usage() string {
	return `pat dividends [-d <date>]

  Projects the annual dividend income of every held asset from its trailing
  twelve months of payments, or estimates it from a manual override rate or
  a flat yield when no history exists. Also shows the cash received per
  calendar year.
`
}

func (c *dividendsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Report date (defaults to today).")
}

func (c *dividendsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	overrides, err := DecodeOverrides()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var projections []patrimoine.IncomeProjection
	for _, pos := range patrimoine.SortedPositions(ledger.Positions(on, quotes)) {
		if pos.Quantity.AsFloat() <= 0.001 {
			continue
		}
		projections = append(projections, ledger.ProjectAnnualIncome(pos.Asset, on, quotes, overrides))
	}

	printMarkdown(renderer.DividendsMarkdown(on, projections, ledger.DividendsByYear(on)))
	return subcommands.ExitSuccess
}
