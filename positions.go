package patrimoine

import (
	"maps"
	"slices"
)

// positionEpsilon is the quantity threshold below which a position is
// treated as empty: its average cost is undefined and it is excluded from
// portfolio reports.
const positionEpsilon = 0.001

// Position is the per-asset state folded from the transaction list. It is a
// pure projection: recomputed from scratch on every query, never persisted.
type Position struct {
	Asset   string
	Ticker  string
	Account string
	Sector  string

	Quantity  Quantity // Quantity held, including estimated plan purchases.
	CostBasis Money    // CostBasis is the total cash attributed to the held quantity, not a unit price.

	ActivePlan bool // ActivePlan is set when a recurring plan still has unexecuted installments.
	Oversold   bool // Oversold is set when a sale exceeded the held quantity and was clamped.
}

// AverageCost returns the weighted average purchase price. It reports false
// when the held quantity is too small for the ratio to be defined.
func (p Position) AverageCost() (Money, bool) {
	if p.Quantity.AsFloat() <= positionEpsilon {
		return Money{cur: p.CostBasis.cur}, false
	}
	return p.CostBasis.Div(p.Quantity), true
}

// MarketValue returns the position value at the given unit price.
func (p Position) MarketValue(price Money) Money { return price.Mul(p.Quantity) }

// Positions folds the ledger into per-asset positions as of a date. Buys add
// quantity and basis; sells remove quantity and basis at the average cost so
// that partial sells never move the average cost; dividends are ignored;
// recurring plans contribute their amortized invested amount and an estimated
// quantity at a reference price. Quotes may be nil, plan price resolution
// then falls back to average cost.
//
// A sale larger than the held quantity empties the position and marks it
// Oversold instead of driving the quantity negative.
func (l *Ledger) Positions(on Date, quotes *QuoteBook) map[string]Position {
	positions := make(map[string]Position)

	get := func(a assetCmd) Position {
		pos, ok := positions[a.Asset]
		if !ok {
			pos = Position{Asset: a.Asset}
		}
		// last writer wins on descriptive fields.
		if a.Ticker != "" {
			pos.Ticker = a.Ticker
		}
		if a.Account != "" {
			pos.Account = a.Account
		}
		if a.Sector != "" {
			pos.Sector = a.Sector
		}
		return pos
	}

	var plans []RecurringPlan
	for _, tx := range l.Transactions(NotAfter(on)) {
		switch t := tx.(type) {
		case Buy:
			pos := get(t.assetCmd)
			pos.Quantity = pos.Quantity.Add(t.Quantity)
			pos.CostBasis = pos.CostBasis.Add(t.Amount())
			positions[t.Asset] = pos
		case Sell:
			pos := get(t.assetCmd)
			switch {
			case pos.Quantity.LessThan(t.Quantity):
				pos.Quantity = Q(0)
				pos.CostBasis = Money{cur: pos.CostBasis.cur}
				pos.Oversold = true
			case t.Quantity.IsPositive():
				pru := pos.CostBasis.Div(pos.Quantity)
				pos.Quantity = pos.Quantity.Sub(t.Quantity)
				pos.CostBasis = pos.CostBasis.Sub(pru.Mul(t.Quantity))
			}
			positions[t.Asset] = pos
		case Dividend:
			// dividends never move the position, but still record the
			// descriptive fields.
			positions[t.Asset] = get(t.assetCmd)
		case RecurringPlan:
			positions[t.Asset] = get(t.assetCmd)
			// amortization needs the final buy/sell basis, applied after the fold.
			plans = append(plans, t)
		}
	}

	for _, plan := range plans {
		if plan.DurationMonths*plan.ExecutionsPerMonth <= 0 {
			continue // malformed plan, skip rather than divide by zero.
		}
		pos := positions[plan.Asset]
		if plan.Active(on) {
			pos.ActivePlan = true
		}
		months := plan.effectiveMonths(on)
		if months > 0 {
			invested := plan.investedThrough(months)
			price := plan.resolvePrice(pos, quotes)
			pos.Quantity = pos.Quantity.Add(invested.DivPrice(price))
			pos.CostBasis = pos.CostBasis.Add(invested)
		}
		positions[plan.Asset] = pos
	}

	return positions
}

// resolvePrice picks the assumed execution price for a plan installment: the
// plan's reference price, else a quote, else the position's average cost,
// else 100 as a last resort to keep the quantity estimate defined.
func (t RecurringPlan) resolvePrice(pos Position, quotes *QuoteBook) Money {
	if t.ReferencePrice.IsPositive() {
		return t.ReferencePrice
	}
	if price, ok := quotes.Lookup(t.Asset, t.Ticker); ok && price.IsPositive() {
		return price
	}
	if avg, ok := pos.AverageCost(); ok && avg.IsPositive() {
		return avg
	}
	return M(100, t.TotalAmount.cur)
}

// SortedPositions returns the positions as a slice sorted by asset name.
func SortedPositions(positions map[string]Position) []Position {
	keys := slices.Sorted(maps.Keys(positions))
	out := make([]Position, 0, len(keys))
	for _, k := range keys {
		out = append(out, positions[k])
	}
	return out
}
