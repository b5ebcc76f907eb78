package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/patrimoine"
	"github.com/google/subcommands"
)

type dividendCmd struct {
	date   string
	asset  string
	amount float64
	memo   string
}

func (*dividendCmd) Name() string     { return "dividend" }
func (*dividendCmd) Synopsis() string { return "record a cash dividend received" }
func (*dividendCmd) Usage() string {
	return `pat dividend -a <asset> -amount <cash> [-d <date>] [-m <memo>]

  Records the total dividend cash received for an asset. The amount is the
  full payment, not a per-share rate; the projection recovers the per-share
  rate from the quantity held on the payment date.

Usage Example:
$ pat dividend -a "TotalEnergies" -amount 42.50
`
}

func (c *dividendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Date of the payment (defaults to today).")
	f.StringVar(&c.asset, "a", "", "Asset name.")
	f.Float64Var(&c.amount, "amount", 0, "Total cash received.")
	f.StringVar(&c.memo, "m", "", "Optional memo.")
}

func (c *dividendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := patrimoine.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	div := patrimoine.NewDividend(day, c.memo, c.asset, patrimoine.M(c.amount, *defaultCurrency))
	return EncodeTransaction(div)
}
