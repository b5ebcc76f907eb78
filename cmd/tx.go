package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/patrimoine"
	"github.com/etnz/patrimoine/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	period string
	start  string
	date   string
	asset  string
	head   int
	tail   int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions in the ledger" }
func (*txCmd) Usage() string {
	return `pat tx [-p <period> | -s <start_date>] [-d <end_date>] [-a <asset>] [-head <n>] [-tail <n>]

  Lists transactions from the ledger, with options for filtering and
  limiting the output.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "", "Predefined period (day, week, month, quarter, year).")
	f.StringVar(&c.start, "s", "", "The start date for a custom range. Overrides -p.")
	f.StringVar(&c.date, "d", "", "The end date for the range.")
	f.StringVar(&c.asset, "a", "", "Only transactions on this asset.")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var periodRange patrimoine.Range
	useFullRange := c.start == "" && c.date == "" && c.period == ""
	if !useFullRange {
		endStr := c.date
		if endStr == "" {
			endStr = "0d"
		}
		end, err := patrimoine.ParseDate(endStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return subcommands.ExitFailure
		}
		if c.start != "" {
			start, err := patrimoine.ParseDate(c.start)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
				return subcommands.ExitFailure
			}
			periodRange = patrimoine.NewRange(start, end)
		} else {
			period, err := patrimoine.ParsePeriod(c.period)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
				return subcommands.ExitFailure
			}
			periodRange = period.Range(end)
		}
	}

	filters := []patrimoine.TxFilter{patrimoine.AcceptAll}
	if c.asset != "" {
		filters = append(filters, patrimoine.ByAsset(c.asset))
	}

	var transactions []patrimoine.Transaction
	for _, tx := range ledger.Transactions(filters...) {
		if useFullRange || periodRange.Contains(tx.When()) {
			transactions = append(transactions, tx)
		}
	}

	if c.head > 0 && len(transactions) > c.head {
		transactions = transactions[:c.head]
	}
	if c.tail > 0 && len(transactions) > c.tail {
		transactions = transactions[len(transactions)-c.tail:]
	}

	var b strings.Builder
	for _, tx := range transactions {
		fmt.Fprintf(&b, "- %s %s\n", tx.When(), renderer.Transaction(tx))
	}
	printMarkdown(b.String())

	return subcommands.ExitSuccess
}
