package patrimoine

import (
	"math"
	"testing"
)

func TestSimulateWhatIf_LumpSum(t *testing.T) {
	p := WhatIfParams{
		Mode:                 LumpSum,
		CurrentQuantity:      10,
		CurrentCostBasis:     1000, // average cost 100
		MarketPrice:          200,
		Amount:               2000,
		PortfolioMarketValue: 10000,
	}
	r := SimulateWhatIf(p)

	approx(t, "new quantity", r.NewQuantity, 20, 1e-9)
	approx(t, "new basis", r.NewCostBasis, 3000, 1e-9)
	approx(t, "new average cost", r.NewAverageCost, 150, 1e-9)
	approx(t, "cash added", r.CashAdded, 2000, 1e-9)
	// 20 shares at 200 over a 12000 portfolio.
	approx(t, "portfolio weight", r.PortfolioWeight, 20*200.0/12000*100, 1e-9)
	if r.Trajectory != nil {
		t.Error("lump sum should not produce a trajectory")
	}
}

func TestSimulateWhatIf_LumpSumZeroPrice(t *testing.T) {
	r := SimulateWhatIf(WhatIfParams{Mode: LumpSum, Amount: 1000})
	if r.NewQuantity != 0 || r.CashAdded != 0 {
		t.Errorf("a zero market price must buy nothing, got %+v", r)
	}
}

func TestSimulateWhatIf_Recurring(t *testing.T) {
	p := WhatIfParams{
		Mode:             Recurring,
		MarketPrice:      100,
		Amount:           100,
		DurationMonths:   12,
		AnnualPriceTrend: 0.12, // +1% a month
	}
	r := SimulateWhatIf(p)

	if len(r.Trajectory) != 12 {
		t.Fatalf("trajectory has %d points, want 12", len(r.Trajectory))
	}
	approx(t, "cash added", r.CashAdded, 1200, 1e-9)

	// the simulated price drifts up 1% a month.
	approx(t, "first month price", r.Trajectory[0].Price, 101, 1e-9)
	approx(t, "last month price", r.Trajectory[11].Price, 100*math.Pow(1.01, 12), 1e-6)

	// rising prices keep the running average cost below the simulated price
	// (the first month they coincide, there is only one purchase).
	for _, pt := range r.Trajectory[1:] {
		if pt.AverageCost >= pt.Price {
			t.Errorf("month %d average cost %f should stay below price %f", pt.Month, pt.AverageCost, pt.Price)
		}
	}

	last := r.Trajectory[11]
	approx(t, "final quantity", r.NewQuantity, last.Quantity, 1e-9)
	approx(t, "final average cost", r.NewAverageCost, last.AverageCost, 1e-9)
}

func TestSimulateWhatIf_RecurringFlatTrendIsLumpEquivalent(t *testing.T) {
	// with a flat price every monthly buy lands at the market price.
	r := SimulateWhatIf(WhatIfParams{
		Mode:           Recurring,
		MarketPrice:    50,
		Amount:         100,
		DurationMonths: 6,
	})
	approx(t, "quantity", r.NewQuantity, 12, 1e-9)
	approx(t, "average cost", r.NewAverageCost, 50, 1e-9)
}
