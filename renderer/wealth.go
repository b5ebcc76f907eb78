package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/patrimoine"
	md "github.com/nao1215/markdown"
)

// sampled keeps long projections readable: only milestone years appear in
// the table.
func sampled(n, horizon int) bool {
	return n == 0 || n == horizon || n%5 == 0
}

func WealthMarkdown(p patrimoine.WealthParams, r patrimoine.WealthResult, breakdown []patrimoine.BreakdownPoint) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Wealth Projection over %d years", p.HorizonYears))
	doc.PlainText(fmt.Sprintf(
		"Starting from %.2f with %.2f monthly at %.1f%% annual yield, %.1f%% inflation.",
		p.InitialCapital, p.MonthlyContribution, p.AnnualYield*100, p.AnnualInflation*100))

	table := md.TableSet{Header: []string{"Year", "Nominal", "Real", "Contributed", "Interest"}}
	byYear := make(map[int]patrimoine.BreakdownPoint, len(breakdown))
	for _, b := range breakdown {
		byYear[b.Year] = b
	}
	for _, pt := range r.Series {
		if !sampled(pt.Year, p.HorizonYears) {
			continue
		}
		b := byYear[pt.Year]
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", pt.Year),
			fmt.Sprintf("%.2f", pt.Nominal),
			fmt.Sprintf("%.2f", pt.Real),
			fmt.Sprintf("%.2f", b.Contributed),
			fmt.Sprintf("%.2f", b.Interest),
		})
	}
	doc.Table(table)

	doc.H2("Outcome")
	doc.BulletList(
		fmt.Sprintf("Final wealth: %.2f nominal, %.2f in today's money", r.FinalNominal, r.FinalReal),
		fmt.Sprintf("Passive income at %.1f%% withdrawal: %.2f per month", p.WithdrawalRate*100, r.MonthlyIncome),
	)

	return doc.String()
}

func DrawdownMarkdown(p patrimoine.WealthParams, start float64, r patrimoine.DrawdownResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Retirement Drawdown")
	doc.PlainText(fmt.Sprintf(
		"Withdrawing %.2f per year (%.1f%% of %.2f), inflation %.1f%%.",
		r.AnnualWithdrawal, p.WithdrawalRate*100, start, p.AnnualInflation*100))

	table := md.TableSet{Header: []string{"Year", "Balance (real)"}}
	for _, pt := range r.Series {
		if !sampled(pt.Year, len(r.Series)-1) {
			continue
		}
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", pt.Year),
			fmt.Sprintf("%.2f", pt.Balance),
		})
	}
	doc.Table(table)

	if r.Perpetual {
		doc.PlainText("The capital survives the whole projection horizon.")
	} else {
		doc.PlainText(fmt.Sprintf("The capital is depleted in year %d.", r.DepletionYear))
	}

	return doc.String()
}
