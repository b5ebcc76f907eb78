package patrimoine

import "math"

// Summary holds the portfolio-level performance indicators as of a date.
type Summary struct {
	On Date

	InvestedCapital Money
	MarketValue     Money
	AbsoluteReturn  Money
	PercentReturn   Percent
	CAGR            Percent // CAGR is annualized; it falls back to PercentReturn under 0.1 years of history.

	AnnualDividends Money // AnnualDividends is the summed projected income over all held assets.
	Positions       int   // Positions counts the assets above the reporting threshold.
}

// resolvePositionPrice returns the unit price used to value a position: a
// quote by name or ticker, else the average cost (assume flat without a
// quote), else zero money.
func resolvePositionPrice(pos Position, quotes *QuoteBook) Money {
	if price, ok := quotes.Lookup(pos.Asset, pos.Ticker); ok {
		return price
	}
	if avg, ok := pos.AverageCost(); ok {
		return avg
	}
	return Money{cur: pos.CostBasis.cur}
}

// NewSummary computes the portfolio indicators as of a date. Positions at or
// below the reporting threshold are excluded.
func (l *Ledger) NewSummary(on Date, quotes *QuoteBook, overrides map[string]Money) Summary {
	s := Summary{On: on}

	for _, pos := range l.Positions(on, quotes) {
		if pos.Quantity.AsFloat() <= positionEpsilon {
			continue
		}
		s.Positions++
		s.InvestedCapital = s.InvestedCapital.Add(pos.CostBasis)
		s.MarketValue = s.MarketValue.Add(pos.MarketValue(resolvePositionPrice(pos, quotes)))
		s.AnnualDividends = s.AnnualDividends.Add(l.ProjectAnnualIncome(pos.Asset, on, quotes, overrides).ProjectedAnnual)
	}

	s.AbsoluteReturn = s.MarketValue.Sub(s.InvestedCapital)
	if s.InvestedCapital.IsPositive() {
		s.PercentReturn = Percent(s.AbsoluteReturn.AsFloat() / s.InvestedCapital.AsFloat() * 100)
	}
	s.CAGR = l.cagr(on, s)
	return s
}

// cagr annualizes the portfolio return from the first transaction date. With
// less than 0.1 years of history the simple percent return is reported
// instead, annualization would be meaningless noise.
func (l *Ledger) cagr(on Date, s Summary) Percent {
	first := l.InceptionDate()
	if first.IsZero() || !s.InvestedCapital.IsPositive() || !s.MarketValue.IsPositive() {
		return 0
	}
	years := on.Years(first)
	if years <= 0.1 {
		return s.PercentReturn
	}
	ratio := s.MarketValue.AsFloat() / s.InvestedCapital.AsFloat()
	return Percent((math.Pow(ratio, 1/years) - 1) * 100)
}

// SuggestedAnnualYield converts the portfolio CAGR into a conservative yield
// assumption for multi-decade projections: clamped into [0, 12%] and
// defaulting to 5% when no meaningful history exists. It is deliberately
// tamer than the reported CAGR.
func (s Summary) SuggestedAnnualYield() float64 {
	if s.CAGR == 0 {
		return 0.05
	}
	y := float64(s.CAGR) / 100
	switch {
	case y < 0:
		return 0
	case y > 0.12:
		return 0.12
	}
	return y
}

// AssetReport is the per-asset line of a positions report.
type AssetReport struct {
	Position
	Price       Money
	MarketValue Money
	AverageCost Money
	Gain        Money
	Return      Percent
	Weight      Percent
}

// PositionsReport values every held position and computes its share of the
// portfolio. Lines are sorted by asset name.
func (l *Ledger) PositionsReport(on Date, quotes *QuoteBook) []AssetReport {
	var reports []AssetReport
	var total Money

	for _, pos := range SortedPositions(l.Positions(on, quotes)) {
		if pos.Quantity.AsFloat() <= positionEpsilon {
			continue
		}
		r := AssetReport{Position: pos}
		r.Price = resolvePositionPrice(pos, quotes)
		r.MarketValue = pos.MarketValue(r.Price)
		r.AverageCost, _ = pos.AverageCost()
		r.Gain = r.MarketValue.Sub(pos.CostBasis)
		if pos.CostBasis.IsPositive() {
			r.Return = Percent(r.Gain.AsFloat() / pos.CostBasis.AsFloat() * 100)
		}
		total = total.Add(r.MarketValue)
		reports = append(reports, r)
	}
	for i := range reports {
		if total.IsPositive() {
			reports[i].Weight = Percent(reports[i].MarketValue.AsFloat() / total.AsFloat() * 100)
		}
	}
	return reports
}

// AverageMonthlyContribution estimates the historical net monthly cash flow
// into the portfolio: buys plus executed plan installments, minus sells,
// divided by the months since inception. It seeds the simulation defaults.
func (l *Ledger) AverageMonthlyContribution(on Date, quotes *QuoteBook) Money {
	first := l.InceptionDate()
	if first.IsZero() {
		return Money{}
	}
	months := CompletedMonths(first, on)
	if months < 1 {
		months = 1
	}

	var net Money
	for _, tx := range l.Transactions(NotAfter(on)) {
		switch t := tx.(type) {
		case Buy:
			net = net.Add(t.Amount())
		case Sell:
			net = net.Sub(t.Amount())
		case RecurringPlan:
			net = net.Add(t.investedThrough(t.effectiveMonths(on)))
		}
	}
	return net.Div(Q(months))
}
