// Package cmd implements the CLI application to track a personal portfolio.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/patrimoine"
	"github.com/google/subcommands"
)

// Commands lists every subcommand of the application. A main package
// registers them all and executes the user-selected one.
var Commands = []subcommands.Command{
	&buyCmd{},
	&sellCmd{},
	&dividendCmd{},
	&planCmd{},
	&quoteCmd{},
	&importQuotesCmd{},
	&txCmd{},
	&fmtCmd{},
	&summaryCmd{},
	&positionsCmd{},
	&dividendsCmd{},
	&simulateCmd{},
	&drawdownCmd{},
	&whatifCmd{},
	&topicCmd{},
	&assistCmd{},
}

// Environment variables mirroring the global flags, passed to extensions.
const (
	EnvLedgerFile      = "PAT_LEDGER_FILE"
	EnvQuotesFile      = "PAT_QUOTES_FILE"
	EnvDefaultCurrency = "PAT_DEFAULT_CURRENCY"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "transactions.jsonl", "Path to the ledger file containing transactions (JSONL format)")
var quotesFile = flag.String("quotes-file", "quotes.jsonl", "Path to the manual quotes file (JSONL format)")
var overridesFile = flag.String("overrides-file", "dividends.jsonl", "Path to the manual dividend override file (JSONL format)")
var defaultCurrency = flag.String("currency", patrimoine.DefaultCurrency, "Display currency code for new amounts")
var Verbose = flag.Bool("v", false, "Verbose logging")

// DecodeLedger loads the ledger from the app ledger file. A missing file is
// an empty ledger, not an error.
func DecodeLedger() (*patrimoine.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		if *Verbose {
			log.Printf("ledger file %q does not exist, starting empty", *ledgerFile)
		}
		return patrimoine.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return patrimoine.DecodeLedger(f)
}

// DecodeQuotes loads the manual quotes from the app quotes file. A missing
// file is an empty book.
func DecodeQuotes() (*patrimoine.QuoteBook, error) {
	f, err := os.Open(*quotesFile)
	if errors.Is(err, fs.ErrNotExist) {
		return patrimoine.NewQuoteBook(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open quotes file %q: %w", *quotesFile, err)
	}
	defer f.Close()
	return patrimoine.DecodeQuotes(f)
}

// EncodeQuotes persists the manual quotes back to the app quotes file.
func EncodeQuotes(book *patrimoine.QuoteBook) error {
	f, err := os.Create(*quotesFile)
	if err != nil {
		return fmt.Errorf("cannot write quotes file %q: %w", *quotesFile, err)
	}
	defer f.Close()
	return patrimoine.EncodeQuotes(f, book)
}

// DecodeOverrides loads the manual dividend override table. A missing file
// is an empty table.
func DecodeOverrides() (map[string]patrimoine.Money, error) {
	f, err := os.Open(*overridesFile)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]patrimoine.Money{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open overrides file %q: %w", *overridesFile, err)
	}
	defer f.Close()
	return patrimoine.DecodeOverrides(f)
}

// EncodeOverrides persists the dividend override table.
func EncodeOverrides(overrides map[string]patrimoine.Money) error {
	f, err := os.Create(*overridesFile)
	if err != nil {
		return fmt.Errorf("cannot write overrides file %q: %w", *overridesFile, err)
	}
	defer f.Close()
	return patrimoine.EncodeOverrides(f, overrides)
}

// EncodeTransaction validates a transaction against the current ledger and
// appends it to the app ledger file.
func EncodeTransaction(tx patrimoine.Transaction) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	validated, err := patrimoine.Validate(ledger, tx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid transaction: %v\n", err)
		return subcommands.ExitFailure
	}

	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := patrimoine.EncodeTransaction(f, validated); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended transaction to %s\n", *ledgerFile)
	return subcommands.ExitSuccess
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when rendering fails (non-tty, unsupported term).
func printMarkdown(markdown string) {
	out, err := glamour.Render(markdown, "auto")
	if err != nil {
		fmt.Print(markdown)
		return
	}
	fmt.Print(out)
}
