package patrimoine

import "math"

// WealthParams parameterizes the long-horizon wealth projections. All three
// simulators are pure functions of these numbers, no portfolio state leaks in.
type WealthParams struct {
	InitialCapital      float64
	MonthlyContribution float64
	AnnualYield         float64 // AnnualYield is a fraction, 0.05 for 5%.
	HorizonYears        int
	AnnualInflation     float64
	WithdrawalRate      float64 // WithdrawalRate is the annual fraction withdrawn in retirement.
}

// DefaultWealthParams seeds simulation parameters from the live portfolio:
// market value as starting capital, the historical net monthly cash flow as
// contribution, and the clamped portfolio growth as yield.
func (l *Ledger) DefaultWealthParams(on Date, quotes *QuoteBook) WealthParams {
	s := l.NewSummary(on, quotes, nil)
	contribution := l.AverageMonthlyContribution(on, quotes).AsFloat()
	if contribution < 0 {
		contribution = 0
	}
	return WealthParams{
		InitialCapital:      s.MarketValue.AsFloat(),
		MonthlyContribution: contribution,
		AnnualYield:         s.SuggestedAnnualYield(),
		HorizonYears:        25,
		AnnualInflation:     0.02,
		WithdrawalRate:      0.04,
	}
}

// WealthPoint is one recorded year of an accumulation projection.
type WealthPoint struct {
	Year    int
	Nominal float64
	Real    float64 // Real is the nominal balance deflated to today's purchasing power.
}

// WealthResult is the output of an accumulation simulation.
type WealthResult struct {
	Series        []WealthPoint
	FinalNominal  float64
	FinalReal     float64
	MonthlyIncome float64 // MonthlyIncome is the passive income at the withdrawal rate, nominal.
}

// SimulateWealth projects the portfolio balance with monthly compounding and
// contributions over the horizon, recording one point per year in both
// nominal and inflation-adjusted terms.
func SimulateWealth(p WealthParams) WealthResult {
	var r WealthResult
	balance := p.InitialCapital
	for year := 0; year <= p.HorizonYears; year++ {
		if year > 0 {
			for m := 0; m < 12; m++ {
				balance = (balance + p.MonthlyContribution) * (1 + p.AnnualYield/12)
			}
		}
		r.Series = append(r.Series, WealthPoint{
			Year:    year,
			Nominal: balance,
			Real:    balance / math.Pow(1+p.AnnualInflation, float64(year)),
		})
	}
	last := r.Series[len(r.Series)-1]
	r.FinalNominal = last.Nominal
	r.FinalReal = last.Real
	r.MonthlyIncome = r.FinalNominal * p.WithdrawalRate / 12
	return r
}

// BreakdownPoint decomposes one recorded year into its stacked components.
// Initial + Contributed + Interest add back up to the nominal balance.
type BreakdownPoint struct {
	Year        int
	Initial     float64
	Contributed float64 // Contributed is the plain sum of contributions, no growth.
	Interest    float64 // Interest is the residual growth, floored at zero.
}

// SimulateCompoundBreakdown runs the accumulation loop and splits each
// recorded year's balance into initial capital, summed contributions, and
// compound interest.
func SimulateCompoundBreakdown(p WealthParams) []BreakdownPoint {
	var series []BreakdownPoint
	balance := p.InitialCapital
	contributed := 0.0
	for year := 0; year <= p.HorizonYears; year++ {
		if year > 0 {
			for m := 0; m < 12; m++ {
				balance = (balance + p.MonthlyContribution) * (1 + p.AnnualYield/12)
				contributed += p.MonthlyContribution
			}
		}
		interest := balance - p.InitialCapital - contributed
		if interest < 0 {
			interest = 0
		}
		series = append(series, BreakdownPoint{
			Year:        year,
			Initial:     p.InitialCapital,
			Contributed: contributed,
			Interest:    interest,
		})
	}
	return series
}

// Drawdown constants: retirement capital is assumed to keep earning 5%
// nominal, and the projection stops after 40 years.
const (
	retirementNominalYield = 0.05
	drawdownHorizonYears   = 40
)

// DrawdownPoint is one recorded retirement year.
type DrawdownPoint struct {
	Year    int
	Balance float64 // Balance is in real terms, floored at zero for display.
}

// DrawdownResult is the output of a decumulation simulation.
type DrawdownResult struct {
	Series           []DrawdownPoint
	AnnualWithdrawal float64
	DepletionYear    int  // DepletionYear is the first year the capital runs out.
	Perpetual        bool // Perpetual is set when the capital survives the whole horizon.
}

// SimulateDrawdown models retirement withdrawals from a real capital figure.
// The withdrawal is fixed at the rate applied to the starting capital; the
// capital earns the real equivalent of a 5% nominal yield. Each year the
// balance is recorded before the withdrawal is applied.
func SimulateDrawdown(finalRealWealth float64, p WealthParams) DrawdownResult {
	realYield := (1+retirementNominalYield)/(1+p.AnnualInflation) - 1
	r := DrawdownResult{
		AnnualWithdrawal: finalRealWealth * p.WithdrawalRate,
		Perpetual:        true,
	}
	capital := finalRealWealth
	for year := 0; year <= drawdownHorizonYears; year++ {
		display := capital
		if display < 0 {
			display = 0
		}
		r.Series = append(r.Series, DrawdownPoint{Year: year, Balance: display})
		if r.Perpetual && capital <= 0 {
			r.DepletionYear = year
			r.Perpetual = false
		}
		capital = (capital - r.AnnualWithdrawal) * (1 + realYield)
	}
	return r
}
