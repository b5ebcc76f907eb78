package patrimoine

import "testing"

func TestQuantityAt(t *testing.T) {
	ledger := &Ledger{
		transactions: []Transaction{
			NewBuy(MustParse("2025-01-10"), "", "AAPL", Q(100), M(150, "EUR")),
			NewSell(MustParse("2025-02-01"), "", "AAPL", Q(25), M(160, "EUR")),
			NewBuy(MustParse("2025-02-10"), "", "AAPL", Q(10), M(155, "EUR")),
		},
	}

	testCases := []struct {
		name string
		on   string
		want float64
	}{
		{"before first buy", "2025-01-09", 0},
		{"on first buy day", "2025-01-10", 100},
		{"between buy and sell", "2025-01-20", 100},
		{"on sell day", "2025-02-01", 75},
		{"after second buy", "2025-03-01", 85},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ledger.QuantityAt("AAPL", MustParse(tc.on), nil)
			approx(t, "quantity", got.AsFloat(), tc.want, 1e-9)
		})
	}
}

func TestQuantityAt_PlanInstallments(t *testing.T) {
	ledger := &Ledger{
		transactions: []Transaction{
			NewRecurringPlan(MustParse("2025-01-15"), "", "MSCI World", 12, 1, M(1200, "EUR"), M(10, "EUR")),
		},
	}

	// each completed month adds 100/10 = 10 shares.
	got := ledger.QuantityAt("MSCI World", MustParse("2025-04-15"), nil)
	approx(t, "quantity after 3 installments", got.AsFloat(), 30, 1e-9)
}

func TestProjectAnnualIncome_FromHistory(t *testing.T) {
	ledger := &Ledger{
		transactions: []Transaction{
			NewBuy(MustParse("2024-01-10"), "", "TotalEnergies", Q(100), M(60, "EUR")),
			// 2 EUR/share paid while holding 100 shares.
			NewDividend(MustParse("2024-11-05"), "", "TotalEnergies", M(200, "EUR")),
			// position doubled before the next payment of 1 EUR/share.
			NewBuy(MustParse("2025-01-20"), "", "TotalEnergies", Q(100), M(62, "EUR")),
			NewDividend(MustParse("2025-02-05"), "", "TotalEnergies", M(200, "EUR")),
		},
	}

	proj := ledger.ProjectAnnualIncome("TotalEnergies", MustParse("2025-06-01"), nil, nil)
	if proj.Estimated {
		t.Fatal("projection should come from history, not an estimate")
	}
	// per-share rate = 200/100 + 200/200 = 3; current quantity 200.
	approx(t, "projected annual", proj.ProjectedAnnual.AsFloat(), 600, 1e-9)
	approx(t, "trailing 12m", proj.Trailing12m.AsFloat(), 400, 1e-9)
	// basis = 100*60 + 100*62 = 12200; yield on cost = 600/12200.
	approx(t, "yield on cost", float64(proj.YieldOnCost), 600.0/12200*100, 1e-6)
}

func TestProjectAnnualIncome_IgnoresStaleDividends(t *testing.T) {
	ledger := &Ledger{
		transactions: []Transaction{
			NewBuy(MustParse("2022-01-10"), "", "ETF", Q(100), M(60, "EUR")),
			NewDividend(MustParse("2022-11-05"), "", "ETF", M(200, "EUR")),
		},
	}

	// the only dividend is years old: the projection degrades to an estimate.
	proj := ledger.ProjectAnnualIncome("ETF", MustParse("2025-06-01"), nil, nil)
	if !proj.Estimated {
		t.Error("stale dividend history should force an estimate")
	}
	if !proj.Trailing12m.IsZero() {
		t.Errorf("trailing 12m = %s, want 0", proj.Trailing12m)
	}
}

func TestProjectAnnualIncome_Estimates(t *testing.T) {
	ledger := &Ledger{
		transactions: []Transaction{
			NewBuy(MustParse("2024-01-10"), "", "ETF", Q(100), M(50, "EUR")),
		},
	}
	quotes := NewQuoteBook()
	quotes.SetByName("ETF", M(80, "EUR"))

	t.Run("flat yield on market value", func(t *testing.T) {
		proj := ledger.ProjectAnnualIncome("ETF", MustParse("2025-01-01"), quotes, nil)
		if !proj.Estimated {
			t.Fatal("projection should be an estimate")
		}
		approx(t, "projected annual", proj.ProjectedAnnual.AsFloat(), 80*100*0.03, 1e-9)
	})

	t.Run("override rate wins", func(t *testing.T) {
		overrides := map[string]Money{"ETF": M(1.5, "EUR")}
		proj := ledger.ProjectAnnualIncome("ETF", MustParse("2025-01-01"), quotes, overrides)
		if !proj.Estimated {
			t.Fatal("projection should be an estimate")
		}
		approx(t, "projected annual", proj.ProjectedAnnual.AsFloat(), 150, 1e-9)
	})
}

func TestDividendsByYear(t *testing.T) {
	ledger := &Ledger{
		transactions: []Transaction{
			NewDividend(MustParse("2023-05-01"), "", "A", M(100, "EUR")),
			NewDividend(MustParse("2023-11-01"), "", "B", M(50, "EUR")),
			NewDividend(MustParse("2024-05-01"), "", "A", M(120, "EUR")),
		},
	}

	years := ledger.DividendsByYear(MustParse("2025-01-01"))
	approx(t, "2023", years[2023].AsFloat(), 150, 1e-9)
	approx(t, "2024", years[2024].AsFloat(), 120, 1e-9)
	if _, ok := years[2025]; ok {
		t.Error("no dividends were paid in 2025")
	}
}
