package renderer

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"github.com/etnz/patrimoine"
	md "github.com/nao1215/markdown"
)

func DividendsMarkdown(on patrimoine.Date, projections []patrimoine.IncomeProjection, byYear map[int]patrimoine.Money) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Dividend Income on %s", on))

	var total patrimoine.Money
	table := md.TableSet{
		Header: []string{"Asset", "Trailing 12m", "Projected Annual", "Yield on Cost", "Source"},
	}
	for _, p := range projections {
		source := "history"
		if p.Estimated {
			source = "estimate"
		}
		table.Rows = append(table.Rows, []string{
			p.Asset,
			p.Trailing12m.String(),
			p.ProjectedAnnual.String(),
			p.YieldOnCost.String(),
			source,
		})
		total = total.Add(p.ProjectedAnnual)
	}
	doc.Table(table)
	doc.PlainText(fmt.Sprintf("Total projected annual income: %s", total))

	if len(byYear) > 0 {
		doc.H2("Received by Year")
		history := md.TableSet{Header: []string{"Year", "Dividends"}}
		for _, year := range slices.Sorted(maps.Keys(byYear)) {
			history.Rows = append(history.Rows, []string{fmt.Sprintf("%d", year), byYear[year].String()})
		}
		doc.Table(history)
	}

	return doc.String()
}
