package patrimoine

import "testing"

func TestNewSummary_CAGR(t *testing.T) {
	// 1000 invested doubling over five years compounds at about 14.87% a year.
	ledger := &Ledger{
		transactions: []Transaction{
			NewBuy(MustParse("2020-01-01"), "", "ETF", Q(10), M(100, "EUR")),
		},
	}
	quotes := NewQuoteBook()
	quotes.SetByName("ETF", M(200, "EUR"))

	s := ledger.NewSummary(MustParse("2025-01-01"), quotes, nil)
	approx(t, "invested", s.InvestedCapital.AsFloat(), 1000, 1e-9)
	approx(t, "market value", s.MarketValue.AsFloat(), 2000, 1e-9)
	approx(t, "absolute return", s.AbsoluteReturn.AsFloat(), 1000, 1e-9)
	approx(t, "percent return", float64(s.PercentReturn), 100, 1e-9)
	approx(t, "cagr", float64(s.CAGR), 14.87, 0.01)
}

func TestNewSummary_ShortHistoryFallsBackToReturn(t *testing.T) {
	ledger := &Ledger{
		transactions: []Transaction{
			NewBuy(MustParse("2025-01-01"), "", "ETF", Q(10), M(100, "EUR")),
		},
	}
	quotes := NewQuoteBook()
	quotes.SetByName("ETF", M(110, "EUR"))

	// two weeks of history is too little to annualize.
	s := ledger.NewSummary(MustParse("2025-01-15"), quotes, nil)
	if !s.CAGR.Equal(s.PercentReturn) {
		t.Errorf("cagr = %s, want fallback to percent return %s", s.CAGR, s.PercentReturn)
	}
}

func TestNewSummary_EmptyPortfolio(t *testing.T) {
	s := NewLedger().NewSummary(MustParse("2025-01-01"), nil, nil)
	if s.Positions != 0 || !s.InvestedCapital.IsZero() || s.PercentReturn != 0 || s.CAGR != 0 {
		t.Errorf("empty portfolio should produce zeroed indicators, got %+v", s)
	}
}

func TestNewSummary_ThresholdExcludesDust(t *testing.T) {
	ledger := &Ledger{
		transactions: []Transaction{
			NewBuy(MustParse("2024-01-01"), "", "ETF", Q(10), M(100, "EUR")),
			NewBuy(MustParse("2024-01-01"), "", "Dust", Q(0.0005), M(100, "EUR")),
		},
	}
	s := ledger.NewSummary(MustParse("2025-01-01"), nil, nil)
	if s.Positions != 1 {
		t.Errorf("positions = %d, want 1 (dust excluded)", s.Positions)
	}
}

func TestResolvePositionPrice(t *testing.T) {
	quotes := NewQuoteBook()
	quotes.SetByName("Named", M(42, "EUR"))
	quotes.SetByTicker("TICK", M(24, "EUR"))

	testCases := []struct {
		name string
		pos  Position
		want float64
	}{
		{
			name: "quote by name wins",
			pos:  Position{Asset: "Named", Ticker: "TICK", Quantity: Q(10), CostBasis: M(100, "EUR")},
			want: 42,
		},
		{
			name: "ticker fallback",
			pos:  Position{Asset: "Unknown", Ticker: "TICK", Quantity: Q(10), CostBasis: M(100, "EUR")},
			want: 24,
		},
		{
			name: "average cost when unquoted",
			pos:  Position{Asset: "Unknown", Quantity: Q(10), CostBasis: M(100, "EUR")},
			want: 10,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := resolvePositionPrice(tc.pos, quotes)
			approx(t, "price", got.AsFloat(), tc.want, 1e-9)
		})
	}
}

func TestSuggestedAnnualYield(t *testing.T) {
	testCases := []struct {
		name string
		cagr Percent
		want float64
	}{
		{"no history defaults to 5%", 0, 0.05},
		{"negative clamps to zero", -8, 0},
		{"runaway clamps to 12%", 35, 0.12},
		{"moderate passes through", 7, 0.07},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := Summary{CAGR: tc.cagr}
			approx(t, "yield", s.SuggestedAnnualYield(), tc.want, 1e-9)
		})
	}
}

func TestPositionsReport_Weights(t *testing.T) {
	ledger := &Ledger{
		transactions: []Transaction{
			NewBuy(MustParse("2024-01-01"), "", "A", Q(10), M(100, "EUR")),
			NewBuy(MustParse("2024-01-01"), "", "B", Q(30), M(100, "EUR")),
		},
	}
	reports := ledger.PositionsReport(MustParse("2025-01-01"), nil)
	if len(reports) != 2 {
		t.Fatalf("got %d report lines, want 2", len(reports))
	}
	approx(t, "weight A", float64(reports[0].Weight), 25, 1e-9)
	approx(t, "weight B", float64(reports[1].Weight), 75, 1e-9)

	var sum float64
	for _, r := range reports {
		sum += float64(r.Weight)
	}
	approx(t, "weights sum", sum, 100, 1e-9)
}
