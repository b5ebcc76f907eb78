package cmd

import (
	"flag"
	"path/filepath"
	"testing"

	"github.com/etnz/patrimoine"
	"github.com/google/subcommands"
)

func TestCommands_UniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Commands {
		name := c.Name()
		if name == "" {
			t.Errorf("command %T has no name", c)
		}
		if seen[name] {
			t.Errorf("command name %q is registered twice", name)
		}
		seen[name] = true
		if c.Synopsis() == "" {
			t.Errorf("command %q has no synopsis", name)
		}
	}
}

func TestEncodeTransaction_AppendsToLedgerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.jsonl")
	if err := flag.Set("ledger-file", path); err != nil {
		t.Fatal(err)
	}

	buy := patrimoine.NewBuy(patrimoine.MustParse("2025-01-10"), "", "AAPL", patrimoine.Q(10), patrimoine.M(150, "EUR"))
	if status := EncodeTransaction(buy); status != subcommands.ExitSuccess {
		t.Fatalf("EncodeTransaction() = %v, want success", status)
	}

	// a second append must validate against the first one.
	sell := patrimoine.NewSell(patrimoine.MustParse("2025-02-01"), "", "AAPL", patrimoine.Q(4), patrimoine.M(160, "EUR"))
	if status := EncodeTransaction(sell); status != subcommands.ExitSuccess {
		t.Fatalf("EncodeTransaction(sell) = %v, want success", status)
	}

	oversell := patrimoine.NewSell(patrimoine.MustParse("2025-03-01"), "", "AAPL", patrimoine.Q(100), patrimoine.M(160, "EUR"))
	if status := EncodeTransaction(oversell); status != subcommands.ExitFailure {
		t.Fatal("an over-sell must be rejected at entry")
	}

	ledger, err := DecodeLedger()
	if err != nil {
		t.Fatal(err)
	}
	if ledger.Len() != 2 {
		t.Fatalf("ledger holds %d transactions, want 2", ledger.Len())
	}
	pos := ledger.Positions(patrimoine.MustParse("2025-03-01"), nil)["AAPL"]
	if !pos.Quantity.Equal(patrimoine.Q(6)) {
		t.Errorf("quantity = %s, want 6", pos.Quantity)
	}
}

func TestDecodeLedger_MissingFileIsEmpty(t *testing.T) {
	if err := flag.Set("ledger-file", filepath.Join(t.TempDir(), "absent.jsonl")); err != nil {
		t.Fatal(err)
	}
	ledger, err := DecodeLedger()
	if err != nil {
		t.Fatal(err)
	}
	if ledger.Len() != 0 {
		t.Errorf("missing file should decode as an empty ledger, got %d transactions", ledger.Len())
	}
}
