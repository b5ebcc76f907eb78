package patrimoine

import (
	"bytes"
	"strings"
	"testing"
)

func TestDecodeLedger(t *testing.T) {
	input := strings.Join([]string{
		`{"command":"buy","date":"2025-01-10","asset":"AAPL","ticker":"AAPL.PA","quantity":10,"price":150,"currency":"EUR"}`,
		``,
		`{"command":"recurring-plan","date":"2025-01-15","asset":"MSCI World","months":12,"perMonth":1,"total":1200,"reference":10,"currency":"EUR"}`,
		`{"command":"dividend","date":"2025-03-01","asset":"AAPL","amount":42.5,"currency":"EUR"}`,
		`{"command":"sell","date":"2025-02-01","asset":"AAPL","quantity":4,"price":160,"currency":"EUR"}`,
	}, "\n")

	ledger, err := DecodeLedger(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if ledger.Len() != 4 {
		t.Fatalf("decoded %d transactions, want 4", ledger.Len())
	}

	// decoding sorts by date.
	var kinds []CommandType
	for _, tx := range ledger.Transactions() {
		kinds = append(kinds, tx.What())
	}
	want := []CommandType{CmdBuy, CmdRecurringPlan, CmdSell, CmdDividend}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("transaction %d is %q, want %q", i, kinds[i], want[i])
		}
	}

	pos := ledger.Positions(MustParse("2025-02-02"), nil)["AAPL"]
	approx(t, "decoded position", pos.Quantity.AsFloat(), 6, 1e-9)

	div := func() Dividend {
		for _, tx := range ledger.Transactions(ByType(CmdDividend)) {
			return tx.(Dividend)
		}
		t.Fatal("no dividend decoded")
		return Dividend{}
	}()
	if !div.Amount.Equal(M(42.5, "EUR")) {
		t.Errorf("dividend amount = %s, want 42.50 EUR", div.Amount)
	}
}

func TestDecodeLedger_LoadsOversoldHistory(t *testing.T) {
	// persisted history is trusted: an over-sell loads and the aggregator
	// clamps it instead of the decoder rejecting the file.
	input := strings.Join([]string{
		`{"command":"buy","date":"2025-01-10","asset":"AAPL","quantity":10,"price":100,"currency":"EUR"}`,
		`{"command":"sell","date":"2025-02-01","asset":"AAPL","quantity":15,"price":120,"currency":"EUR"}`,
	}, "\n")

	ledger, err := DecodeLedger(strings.NewReader(input))
	if err != nil {
		t.Fatalf("an oversold history must still load: %v", err)
	}
	pos := ledger.Positions(MustParse("2025-03-01"), nil)["AAPL"]
	if !pos.Oversold {
		t.Error("decoded over-sell should be clamped and flagged")
	}
}

func TestDecodeLedger_UnknownCommand(t *testing.T) {
	_, err := DecodeLedger(strings.NewReader(`{"command":"split","date":"2025-01-01","asset":"AAPL"}`))
	if err == nil || !strings.Contains(err.Error(), "unknown transaction command") {
		t.Errorf("err = %v, want unknown command", err)
	}
}

func TestEncodeLedger_RoundTrip(t *testing.T) {
	ledger := NewLedger()
	err := ledger.Append(
		NewBuy(MustParse("2025-01-10"), "first line", "AAPL", Q(10), M(150.5, "EUR")),
		NewRecurringPlan(MustParse("2025-01-15"), "", "MSCI World", 12, 1, M(1200, "EUR"), M(10, "EUR")),
		NewDividend(MustParse("2025-03-01"), "", "AAPL", M(42, "EUR")),
	)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, ledger); err != nil {
		t.Fatal(err)
	}

	decoded, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Len() != ledger.Len() {
		t.Fatalf("round trip lost transactions: %d != %d", decoded.Len(), ledger.Len())
	}
	for i, tx := range ledger.Transactions() {
		if !tx.Equal(decoded.transactions[i]) {
			t.Errorf("transaction %d changed across the round trip:\n got %+v\nwant %+v", i, decoded.transactions[i], tx)
		}
	}
}

func TestEncodeTransaction_KeyOrder(t *testing.T) {
	var buf bytes.Buffer
	buy := NewBuy(MustParse("2025-01-10"), "", "AAPL", Q(10), M(150, "EUR"))
	if err := EncodeTransaction(&buf, buy); err != nil {
		t.Fatal(err)
	}
	line := buf.String()
	// canonical output starts with the command discriminator.
	if !strings.HasPrefix(line, `{"command":"buy"`) {
		t.Errorf("line does not start with the command key: %s", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Error("JSONL line must end with a newline")
	}
}

func TestQuotes_RoundTrip(t *testing.T) {
	book := NewQuoteBook()
	book.SetByName("MSCI World", M(85.3, "EUR"))
	book.SetByTicker("AAPL.PA", M(210, "EUR"))

	var buf bytes.Buffer
	if err := EncodeQuotes(&buf, book); err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeQuotes(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if p, ok := decoded.Lookup("MSCI World", ""); !ok || !p.Equal(M(85.3, "EUR")) {
		t.Errorf("name lookup = %s (%v)", p, ok)
	}
	if p, ok := decoded.Lookup("unknown", "AAPL.PA"); !ok || !p.Equal(M(210, "EUR")) {
		t.Errorf("ticker lookup = %s (%v)", p, ok)
	}
}
