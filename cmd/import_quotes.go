package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/patrimoine"
	"github.com/google/subcommands"
)

type importQuotesCmd struct {
	file      string
	asset     string
	ticker    string
	pricePath string
}

func (*importQuotesCmd) Name() string { return "import-quotes" }
func (*importQuotesCmd) Synopsis() string {
	return "import a price from a broker JSON export"
}
func (*importQuotesCmd) Usage() string {
	return `pat import-quotes -f <export.json> -a <asset> -path <jsonpath>

  Extracts a price from a JSON file exported by a broker or market website
  using a jsonpath expression, and records it as a manual quote.

Usage Example:
$ pat import-quotes -f export.json -a "MSCI World" -path "$.quotes[0].last"
`
}

func (c *importQuotesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "JSON file to read.")
	f.StringVar(&c.asset, "a", "", "Asset name to quote.")
	f.StringVar(&c.ticker, "t", "", "Ticker to quote.")
	f.StringVar(&c.pricePath, "path", "", "jsonpath expression selecting the price.")
}

func (c *importQuotesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" || c.pricePath == "" || (c.asset == "" && c.ticker == "") {
		fmt.Fprintln(os.Stderr, "Error: -f, -path and one of -a/-t are required.")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}

	jval, err := jsonpath.Get(c.pricePath, jobj)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating %q: %v\n", c.pricePath, err)
		return subcommands.ExitFailure
	}
	// jsonpath may return a list of one answer or a single answer, keep the first.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	price, ok := jval.(float64)
	if !ok || price <= 0 {
		fmt.Fprintf(os.Stderr, "Error: %q selected %v, not a positive number\n", c.pricePath, jval)
		return subcommands.ExitFailure
	}

	book, err := DecodeQuotes()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	m := patrimoine.M(price, *defaultCurrency)
	if c.asset != "" {
		book.SetByName(c.asset, m)
	}
	if c.ticker != "" {
		book.SetByTicker(c.ticker, m)
	}
	if err := EncodeQuotes(book); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %s at %s\n", firstNonEmpty(c.asset, c.ticker), m)
	return subcommands.ExitSuccess
}
