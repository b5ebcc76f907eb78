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

type positionsCmd struct {
	date string
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "display the per-asset position table" }
func (*positionsCmd) Usage() string {
	return `pat positions [-d <date>]

  Displays every open position with its quantity, average cost, last price,
  market value, gain and portfolio weight. Positions fed by an active
  recurring plan are flagged.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Report date (defaults to today).")
}

func (c *positionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	reports := ledger.PositionsReport(on, quotes)
	printMarkdown(renderer.PositionsMarkdown(on, reports))
	return subcommands.ExitSuccess
}
