package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/patrimoine"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `pat fmt

  Validates and formats the ledger file. This command reads all transactions,
  validates them, applies available quick-fixes (like assigning missing ids),
  sorts them by date, and writes them back in a canonical JSONL format.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	// revalidate everything into a fresh ledger so quick fixes apply.
	formatted := patrimoine.NewLedger()
	for _, tx := range ledger.Transactions() {
		validated, err := patrimoine.Validate(formatted, tx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid transaction on %s: %v\n", tx.When(), err)
			return subcommands.ExitFailure
		}
		if err := formatted.Append(validated); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	f2, err := os.Create(*ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f2.Close()
	if err := patrimoine.EncodeLedger(f2, formatted); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "Formatted %d transactions in %s\n", formatted.Len(), *ledgerFile)
	return subcommands.ExitSuccess
}
