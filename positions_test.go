package patrimoine

import (
	"reflect"
	"testing"
)

func TestPositions_BuyConservation(t *testing.T) {
	ledger := &Ledger{
		transactions: []Transaction{
			NewBuy(MustParse("2025-01-10"), "", "AAPL", Q(100), M(150, "EUR")),
			NewBuy(MustParse("2025-02-10"), "", "AAPL", Q(10), M(155, "EUR")),
			NewBuy(MustParse("2025-03-10"), "", "AAPL", Q(5), M(140, "EUR")),
		},
	}

	pos := ledger.Positions(MustParse("2025-04-01"), nil)["AAPL"]
	if !pos.Quantity.Equal(Q(115)) {
		t.Errorf("quantity = %s, want 115", pos.Quantity)
	}
	// exact conservation, not approximate: 100*150 + 10*155 + 5*140.
	want := M(100*150+10*155+5*140, "EUR")
	if !pos.CostBasis.Equal(want) {
		t.Errorf("cost basis = %s, want %s", pos.CostBasis, want)
	}
}

func TestPositions_SellKeepsAverageCost(t *testing.T) {
	ledger := &Ledger{
		transactions: []Transaction{
			NewBuy(MustParse("2025-01-10"), "", "AAPL", Q(100), M(150, "EUR")),
			NewBuy(MustParse("2025-01-20"), "", "AAPL", Q(50), M(180, "EUR")),
		},
	}

	before := ledger.Positions(MustParse("2025-01-30"), nil)["AAPL"]
	avgBefore, ok := before.AverageCost()
	if !ok {
		t.Fatal("average cost should be defined before the sale")
	}

	ledger.transactions = append(ledger.transactions,
		NewSell(MustParse("2025-02-01"), "", "AAPL", Q(60), M(200, "EUR")))

	after := ledger.Positions(MustParse("2025-02-02"), nil)["AAPL"]
	avgAfter, ok := after.AverageCost()
	if !ok {
		t.Fatal("average cost should be defined after a partial sale")
	}

	// a partial sale removes basis at the average cost, never moves it.
	approx(t, "average cost after sale", avgAfter.AsFloat(), avgBefore.AsFloat(), 1e-9)
	if !after.Quantity.Equal(Q(90)) {
		t.Errorf("quantity = %s, want 90", after.Quantity)
	}
}

func TestPositions_OversellClampsToZero(t *testing.T) {
	ledger := &Ledger{
		transactions: []Transaction{
			NewBuy(MustParse("2025-01-10"), "", "AAPL", Q(10), M(100, "EUR")),
			NewSell(MustParse("2025-02-01"), "", "AAPL", Q(15), M(120, "EUR")),
		},
	}

	pos := ledger.Positions(MustParse("2025-03-01"), nil)["AAPL"]
	if !pos.Quantity.IsZero() {
		t.Errorf("quantity = %s, want 0 after over-sell clamp", pos.Quantity)
	}
	if !pos.CostBasis.IsZero() {
		t.Errorf("cost basis = %s, want 0 after over-sell clamp", pos.CostBasis)
	}
	if !pos.Oversold {
		t.Error("position should be flagged Oversold")
	}
}

func TestPositions_RecurringPlanBoundary(t *testing.T) {
	ledger := &Ledger{
		transactions: []Transaction{
			NewRecurringPlan(MustParse("2025-01-15"), "", "MSCI World", 12, 1, M(1200, "EUR"), M(10, "EUR")),
		},
	}

	testCases := []struct {
		name         string
		asOf         string
		wantQuantity float64
		wantInvested float64
		wantActive   bool
	}{
		{"before start", "2025-01-01", 0, 0, false},
		{"on start day", "2025-01-15", 0, 0, true},
		{"six completed months", "2025-07-15", 60, 600, true},
		{"six months minus a day", "2025-07-14", 50, 500, true},
		{"plan completed", "2026-01-15", 120, 1200, false},
		{"long after completion", "2027-06-01", 120, 1200, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pos := ledger.Positions(MustParse(tc.asOf), nil)["MSCI World"]
			approx(t, "quantity", pos.Quantity.AsFloat(), tc.wantQuantity, 1e-9)
			approx(t, "invested", pos.CostBasis.AsFloat(), tc.wantInvested, 1e-9)
			if pos.ActivePlan != tc.wantActive {
				t.Errorf("ActivePlan = %v, want %v", pos.ActivePlan, tc.wantActive)
			}
		})
	}
}

func TestPositions_MalformedPlanSkipped(t *testing.T) {
	ledger := &Ledger{
		transactions: []Transaction{
			RecurringPlan{
				assetCmd:           assetCmd{baseCmd: baseCmd{Command: CmdRecurringPlan, Date: MustParse("2025-01-01")}, Asset: "Broken"},
				DurationMonths:     0,
				ExecutionsPerMonth: 0,
				TotalAmount:        M(1200, "EUR"),
			},
		},
	}

	pos := ledger.Positions(MustParse("2025-06-01"), nil)["Broken"]
	if !pos.Quantity.IsZero() || !pos.CostBasis.IsZero() {
		t.Errorf("malformed plan should contribute nothing, got quantity=%s basis=%s", pos.Quantity, pos.CostBasis)
	}
}

func TestPositions_PlanPriceFallback(t *testing.T) {
	plan := NewRecurringPlan(MustParse("2025-01-15"), "", "MSCI World", 12, 1, M(1200, "EUR"), Money{})
	plan.Ticker = "IWDA"

	// no reference price and no quote: falls back to 100.
	ledger := &Ledger{transactions: []Transaction{plan}}
	pos := ledger.Positions(MustParse("2025-07-15"), nil)["MSCI World"]
	approx(t, "quantity without quote", pos.Quantity.AsFloat(), 600.0/100, 1e-9)

	// a quote by ticker takes over.
	quotes := NewQuoteBook()
	quotes.SetByTicker("IWDA", M(50, "EUR"))
	pos = ledger.Positions(MustParse("2025-07-15"), quotes)["MSCI World"]
	approx(t, "quantity with ticker quote", pos.Quantity.AsFloat(), 600.0/50, 1e-9)

	// an existing average cost beats the 100 default.
	ledger.transactions = append(ledger.transactions,
		NewBuy(MustParse("2025-01-02"), "", "MSCI World", Q(10), M(20, "EUR")))
	ledger.stableSort()
	pos = ledger.Positions(MustParse("2025-07-15"), nil)["MSCI World"]
	approx(t, "quantity with average cost", pos.Quantity.AsFloat(), 10+600.0/20, 1e-9)
}

func TestPositions_Idempotent(t *testing.T) {
	ledger := &Ledger{
		transactions: []Transaction{
			NewBuy(MustParse("2025-01-10"), "", "AAPL", Q(100), M(150, "EUR")),
			NewSell(MustParse("2025-02-01"), "", "AAPL", Q(25), M(160, "EUR")),
			NewRecurringPlan(MustParse("2025-01-15"), "", "MSCI World", 12, 2, M(2400, "EUR"), M(10, "EUR")),
			NewDividend(MustParse("2025-03-01"), "", "AAPL", M(42, "EUR")),
		},
	}
	on := MustParse("2025-06-01")

	first := ledger.Positions(on, nil)
	second := ledger.Positions(on, nil)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("aggregation is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestPositions_LastWriterWinsOnAccount(t *testing.T) {
	ledger := &Ledger{
		transactions: []Transaction{
			Buy{assetCmd: assetCmd{baseCmd: baseCmd{Command: CmdBuy, Date: MustParse("2025-01-10")}, Asset: "AAPL", Account: "PEA"}, Quantity: Q(10), Price: M(100, "EUR")},
			Buy{assetCmd: assetCmd{baseCmd: baseCmd{Command: CmdBuy, Date: MustParse("2025-02-10")}, Asset: "AAPL", Account: "CTO", Sector: "Tech"}, Quantity: Q(5), Price: M(100, "EUR")},
		},
	}

	pos := ledger.Positions(MustParse("2025-03-01"), nil)["AAPL"]
	if pos.Account != "CTO" {
		t.Errorf("account = %q, want last writer %q", pos.Account, "CTO")
	}
	if pos.Sector != "Tech" {
		t.Errorf("sector = %q, want %q", pos.Sector, "Tech")
	}
}
