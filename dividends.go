package patrimoine

import "sort"

// quantityHistory is the point-in-time quantity curve of one asset: a sorted
// list of dates where the held quantity changed, with the quantity held from
// that date on. Plan installments appear as one step per executed month.
type quantityHistory struct {
	dates      []Date
	quantities []Quantity
}

// newQuantityHistory replays every quantity-changing transaction for an asset
// up to the horizon date, in chronological order. An over-sell empties the
// running quantity, matching the position aggregator.
func (l *Ledger) newQuantityHistory(asset string, until Date, quotes *QuoteBook) *quantityHistory {
	type step struct {
		on    Date
		delta Quantity
	}
	var steps []step

	positions := l.Positions(until, quotes)
	var running Quantity
	for _, tx := range l.Transactions(ByAsset(asset), NotAfter(until)) {
		switch t := tx.(type) {
		case Buy:
			steps = append(steps, step{t.Date, t.Quantity})
			running = running.Add(t.Quantity)
		case Sell:
			qty := t.Quantity
			if running.LessThan(qty) {
				qty = running
			}
			steps = append(steps, step{t.Date, Q(0).Sub(qty)})
			running = running.Sub(qty)
		case RecurringPlan:
			if t.DurationMonths*t.ExecutionsPerMonth <= 0 {
				continue
			}
			months := t.effectiveMonths(until)
			if months == 0 {
				continue
			}
			price := t.resolvePrice(positions[asset], quotes)
			perMonth := t.investedThrough(1).DivPrice(price)
			for i := 1; i <= months; i++ {
				steps = append(steps, step{t.Date.AddMonth(i), perMonth})
				running = running.Add(perMonth)
			}
		}
	}

	sort.SliceStable(steps, func(i, j int) bool { return steps[i].on.Before(steps[j].on) })

	h := &quantityHistory{}
	var sum Quantity
	for _, s := range steps {
		sum = sum.Add(s.delta)
		h.dates = append(h.dates, s.on)
		h.quantities = append(h.quantities, sum)
	}
	return h
}

// At returns the quantity held on the given date, including changes dated
// that same day.
func (h *quantityHistory) At(on Date) Quantity {
	// index of the first step strictly after the date.
	i := sort.Search(len(h.dates), func(i int) bool { return h.dates[i].After(on) })
	if i == 0 {
		return Q(0)
	}
	return h.quantities[i-1]
}

// QuantityAt returns the quantity of an asset held on a date, replaying the
// full quantity history including estimated plan installments.
func (l *Ledger) QuantityAt(asset string, on Date, quotes *QuoteBook) Quantity {
	return l.newQuantityHistory(asset, on, quotes).At(on)
}

// defaultDividendYield is the flat estimate applied when an asset has no
// dividend history and no override rate.
const defaultDividendYield = 0.03

// IncomeProjection is the projected annual dividend income of one asset.
type IncomeProjection struct {
	Asset           string
	ProjectedAnnual Money
	Trailing12m     Money   // Trailing12m is the dividend cash actually received over the past year.
	YieldOnCost     Percent // YieldOnCost relates the projection to the cost basis, not the market value.
	Estimated       bool    // Estimated is set when the projection comes from an override or flat yield, not history.
}

// ProjectAnnualIncome projects the annual dividend income of an asset as of a
// date. With trailing-year dividend history, each payment is converted to a
// per-share rate using the quantity held on its payment date, and the summed
// rate is applied to the current quantity. Without history the projection is
// an estimate: a per-share override rate when provided, else a flat yield on
// market value. Payments with no recoverable point-in-time quantity are
// skipped.
func (l *Ledger) ProjectAnnualIncome(asset string, on Date, quotes *QuoteBook, overrides map[string]Money) IncomeProjection {
	proj := IncomeProjection{Asset: asset}

	positions := l.Positions(on, quotes)
	pos := positions[asset]

	from := on.Add(-365)
	history := l.newQuantityHistory(asset, on, quotes)

	var perShare Money
	var received Money
	var found bool
	for _, tx := range l.Transactions(ByAsset(asset), ByType(CmdDividend), NotAfter(on)) {
		div := tx.(Dividend)
		if div.Date.Before(from) {
			continue
		}
		received = received.Add(div.Amount)
		heldThen := history.At(div.Date)
		if heldThen.AsFloat() <= positionEpsilon {
			continue
		}
		perShare = perShare.Add(div.Amount.Div(heldThen))
		found = true
	}
	proj.Trailing12m = received

	switch {
	case found:
		proj.ProjectedAnnual = perShare.Mul(pos.Quantity)
	default:
		proj.Estimated = true
		if rate, ok := overrides[asset]; ok {
			proj.ProjectedAnnual = rate.Mul(pos.Quantity)
		} else {
			price := resolvePositionPrice(pos, quotes)
			proj.ProjectedAnnual = price.Mul(pos.Quantity).Mul(Q(defaultDividendYield))
		}
	}

	if avg, ok := pos.AverageCost(); ok && avg.IsPositive() {
		basis := avg.Mul(pos.Quantity)
		proj.YieldOnCost = Percent(proj.ProjectedAnnual.AsFloat() / basis.AsFloat() * 100)
	}
	return proj
}

// DividendsByYear aggregates the dividend cash received per calendar year,
// across all assets, for historical display.
func (l *Ledger) DividendsByYear(on Date) map[int]Money {
	years := make(map[int]Money)
	for _, tx := range l.Transactions(ByType(CmdDividend), NotAfter(on)) {
		div := tx.(Dividend)
		years[div.Date.Year()] = years[div.Date.Year()].Add(div.Amount)
	}
	return years
}
