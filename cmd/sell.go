package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/patrimoine"
	"github.com/google/subcommands"
)

type sellCmd struct {
	date     string
	asset    string
	quantity float64
	price    float64
	memo     string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record the sale of an asset" }
func (*sellCmd) Usage() string {
	return `pat sell -a <asset> -p <price> [-q <quantity>] [-d <date>] [-m <memo>]

  Records a sale in the ledger. Omitting the quantity (or passing 0) sells
  the whole position held on the sale date. Selling more than held is
  rejected.

Usage Example:
$ pat sell -a "MSCI World" -q 5 -p 90.10
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Date of the sale (defaults to today).")
	f.StringVar(&c.asset, "a", "", "Asset name.")
	f.Float64Var(&c.quantity, "q", 0, "Quantity sold. 0 sells the whole position.")
	f.Float64Var(&c.price, "p", 0, "Unit price obtained.")
	f.StringVar(&c.memo, "m", "", "Optional memo.")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := patrimoine.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	sell := patrimoine.NewSell(day, c.memo, c.asset, patrimoine.Q(c.quantity), patrimoine.M(c.price, *defaultCurrency))
	return EncodeTransaction(sell)
}
