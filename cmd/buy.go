package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/patrimoine"
	"github.com/google/subcommands"
)

type buyCmd struct {
	date     string
	asset    string
	ticker   string
	account  string
	sector   string
	quantity float64
	price    float64
	memo     string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record the purchase of an asset" }
func (*buyCmd) Usage() string {
	return `pat buy -a <asset> -q <quantity> -p <price> [-d <date>] [-t <ticker>] [-acc <account>] [-m <memo>]

  Records a purchase in the ledger. The quantity and unit price must both be
  positive.

Usage Example:
$ pat buy -a "MSCI World" -t IWDA -q 10 -p 85.30
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Date of the purchase (defaults to today).")
	f.StringVar(&c.asset, "a", "", "Asset name.")
	f.StringVar(&c.ticker, "t", "", "Optional ticker symbol.")
	f.StringVar(&c.account, "acc", "", "Optional account holding the asset.")
	f.StringVar(&c.sector, "sec", "", "Optional sector classification.")
	f.Float64Var(&c.quantity, "q", 0, "Quantity bought.")
	f.Float64Var(&c.price, "p", 0, "Unit price paid.")
	f.StringVar(&c.memo, "m", "", "Optional memo.")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := patrimoine.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	buy := patrimoine.NewBuy(day, c.memo, c.asset, patrimoine.Q(c.quantity), patrimoine.M(c.price, *defaultCurrency))
	buy.Ticker = c.ticker
	buy.Account = c.account
	buy.Sector = c.sector
	return EncodeTransaction(buy)
}
