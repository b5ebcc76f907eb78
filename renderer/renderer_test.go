package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/patrimoine"
)

func TestSummaryMarkdown(t *testing.T) {
	s := patrimoine.Summary{
		On:              patrimoine.MustParse("2025-06-01"),
		InvestedCapital: patrimoine.M(10000, "EUR"),
		MarketValue:     patrimoine.M(12000, "EUR"),
		AbsoluteReturn:  patrimoine.M(2000, "EUR"),
		PercentReturn:   20,
		CAGR:            9.5,
		Positions:       3,
	}
	out := SummaryMarkdown(s)

	for _, want := range []string{"Portfolio Summary on 2025-06-01", "Invested Capital", "CAGR", "+9.50%"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary markdown misses %q:\n%s", want, out)
		}
	}
}

func TestPositionsMarkdown_Empty(t *testing.T) {
	out := PositionsMarkdown(patrimoine.MustParse("2025-06-01"), nil)
	if !strings.Contains(out, "No open positions") {
		t.Errorf("empty positions should say so:\n%s", out)
	}
}

func TestPositionsMarkdown_FlagsPlan(t *testing.T) {
	reports := []patrimoine.AssetReport{
		{
			Position: patrimoine.Position{
				Asset:      "MSCI World",
				Account:    "PEA",
				Quantity:   patrimoine.Q(60),
				ActivePlan: true,
			},
			MarketValue: patrimoine.M(600, "EUR"),
			Weight:      100,
		},
	}
	out := PositionsMarkdown(patrimoine.MustParse("2025-06-01"), reports)
	if !strings.Contains(out, "MSCI World (plan)") {
		t.Errorf("active plan should be flagged:\n%s", out)
	}
}

func TestTransaction(t *testing.T) {
	testCases := []struct {
		tx   patrimoine.Transaction
		want string
	}{
		{
			tx:   patrimoine.NewBuy(patrimoine.MustParse("2025-01-10"), "", "AAPL", patrimoine.Q(10), patrimoine.M(150, "EUR")),
			want: "Bought 10 of AAPL",
		},
		{
			tx:   patrimoine.NewDividend(patrimoine.MustParse("2025-01-10"), "", "AAPL", patrimoine.M(42, "EUR")),
			want: "Dividend of",
		},
		{
			tx:   patrimoine.NewRecurringPlan(patrimoine.MustParse("2025-01-10"), "", "MSCI World", 12, 1, patrimoine.M(1200, "EUR"), patrimoine.Money{}),
			want: "over 12 months",
		},
	}
	for _, tc := range testCases {
		got := Transaction(tc.tx)
		if !strings.Contains(got, tc.want) {
			t.Errorf("Transaction() = %q, want it to contain %q", got, tc.want)
		}
	}
}

func TestWealthMarkdown(t *testing.T) {
	p := patrimoine.WealthParams{
		InitialCapital:      10000,
		MonthlyContribution: 500,
		AnnualYield:         0.06,
		HorizonYears:        10,
		AnnualInflation:     0.02,
		WithdrawalRate:      0.04,
	}
	r := patrimoine.SimulateWealth(p)
	breakdown := patrimoine.SimulateCompoundBreakdown(p)

	out := WealthMarkdown(p, r, breakdown)
	for _, want := range []string{"Wealth Projection over 10 years", "Final wealth", "Passive income"} {
		if !strings.Contains(out, want) {
			t.Errorf("wealth markdown misses %q:\n%s", want, out)
		}
	}
}

func TestDrawdownMarkdown_Depletion(t *testing.T) {
	p := patrimoine.WealthParams{AnnualInflation: 0.02, WithdrawalRate: 0.08}
	r := patrimoine.SimulateDrawdown(100000, p)

	out := DrawdownMarkdown(p, 100000, r)
	if !strings.Contains(out, "depleted in year") {
		t.Errorf("drawdown markdown should report depletion:\n%s", out)
	}
}
