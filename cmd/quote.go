package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/patrimoine"
	"github.com/google/subcommands"
)

type quoteCmd struct {
	asset    string
	ticker   string
	price    float64
	dividend float64
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "record a manual last price for an asset" }
func (*quoteCmd) Usage() string {
	return `pat quote [-a <asset>] [-t <ticker>] -p <price> [-div <annual per-share>]

  Records the last known price of an asset, keyed by name and/or ticker.
  Optionally records a manual annual per-share dividend rate used by the
  income projection when no dividend history exists.

Usage Example:
$ pat quote -a "MSCI World" -t IWDA -p 85.30
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "a", "", "Asset name to quote.")
	f.StringVar(&c.ticker, "t", "", "Ticker to quote.")
	f.Float64Var(&c.price, "p", 0, "Last price.")
	f.Float64Var(&c.dividend, "div", 0, "Optional annual per-share dividend override.")
}

func (c *quoteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" && c.ticker == "" {
		fmt.Fprintln(os.Stderr, "Error: at least one of -a or -t is required.")
		return subcommands.ExitUsageError
	}
	if c.price <= 0 {
		fmt.Fprintln(os.Stderr, "Error: price must be positive.")
		return subcommands.ExitUsageError
	}

	book, err := DecodeQuotes()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	price := patrimoine.M(c.price, *defaultCurrency)
	if c.asset != "" {
		book.SetByName(c.asset, price)
	}
	if c.ticker != "" {
		book.SetByTicker(c.ticker, price)
	}
	if err := EncodeQuotes(book); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.dividend > 0 && c.asset != "" {
		overrides, err := DecodeOverrides()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		overrides[c.asset] = patrimoine.M(c.dividend, *defaultCurrency)
		if err := EncodeOverrides(overrides); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	fmt.Printf("Quoted %s at %s\n", firstNonEmpty(c.asset, c.ticker), price)
	return subcommands.ExitSuccess
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
