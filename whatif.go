package patrimoine

// WhatIfMode selects the hypothetical investment shape.
type WhatIfMode int

const (
	// LumpSum invests the whole amount at the current market price.
	LumpSum WhatIfMode = iota
	// Recurring spreads the amount into equal monthly purchases along an
	// assumed linear price trend.
	Recurring
)

// WhatIfParams describes a hypothetical additional investment in one asset.
type WhatIfParams struct {
	Mode WhatIfMode

	CurrentQuantity  float64
	CurrentCostBasis float64
	MarketPrice      float64

	Amount float64 // Amount is the cash to invest; in Recurring mode, per month.

	DurationMonths   int     // Recurring mode only.
	AnnualPriceTrend float64 // AnnualPriceTrend is a fraction, 0.10 for +10% a year.

	PortfolioMarketValue float64 // PortfolioMarketValue sizes the projected weight.
}

// WhatIfPoint is one simulated month of a recurring scenario.
type WhatIfPoint struct {
	Month       int
	Price       float64
	AverageCost float64
	Quantity    float64
}

// WhatIfResult is the outcome of a hypothetical investment.
type WhatIfResult struct {
	NewQuantity     float64
	NewCostBasis    float64
	NewAverageCost  float64
	CashAdded       float64
	PortfolioWeight float64       // PortfolioWeight is the asset's projected share of the grown portfolio, as a %.
	Trajectory      []WhatIfPoint // Trajectory is only filled in Recurring mode.
}

// SimulateWhatIf computes the position an additional investment would leave
// behind, without touching the ledger. A lump sum buys at the market price in
// one shot; a recurring scenario buys month by month while the simulated
// price drifts along the assumed trend, recording the running average cost at
// every step.
func SimulateWhatIf(p WhatIfParams) WhatIfResult {
	r := WhatIfResult{
		NewQuantity:  p.CurrentQuantity,
		NewCostBasis: p.CurrentCostBasis,
	}

	switch p.Mode {
	case LumpSum:
		if p.MarketPrice > 0 {
			r.NewQuantity += p.Amount / p.MarketPrice
			r.NewCostBasis += p.Amount
			r.CashAdded = p.Amount
		}
	case Recurring:
		price := p.MarketPrice
		for month := 1; month <= p.DurationMonths; month++ {
			price *= 1 + p.AnnualPriceTrend/12
			if price <= 0 {
				break
			}
			r.NewQuantity += p.Amount / price
			r.NewCostBasis += p.Amount
			r.CashAdded += p.Amount
			point := WhatIfPoint{Month: month, Price: price, Quantity: r.NewQuantity}
			if r.NewQuantity > 0 {
				point.AverageCost = r.NewCostBasis / r.NewQuantity
			}
			r.Trajectory = append(r.Trajectory, point)
		}
	}

	if r.NewQuantity > 0 {
		r.NewAverageCost = r.NewCostBasis / r.NewQuantity
	}
	if total := p.PortfolioMarketValue + r.CashAdded; total > 0 {
		r.PortfolioWeight = r.NewQuantity * p.MarketPrice / total * 100
	}
	return r
}
