package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/patrimoine"
	md "github.com/nao1215/markdown"
)

func WhatIfMarkdown(asset string, p patrimoine.WhatIfParams, r patrimoine.WhatIfResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("What if: investing in %s", asset))

	doc.BulletList(
		fmt.Sprintf("Cash added: %.2f", r.CashAdded),
		fmt.Sprintf("New quantity: %.4f", r.NewQuantity),
		fmt.Sprintf("New average cost: %.2f", r.NewAverageCost),
		fmt.Sprintf("Projected portfolio weight: %.2f%%", r.PortfolioWeight),
	)

	if len(r.Trajectory) > 0 {
		doc.H2("Monthly Trajectory")
		table := md.TableSet{Header: []string{"Month", "Price", "Avg Cost", "Quantity"}}
		for _, pt := range r.Trajectory {
			table.Rows = append(table.Rows, []string{
				fmt.Sprintf("%d", pt.Month),
				fmt.Sprintf("%.2f", pt.Price),
				fmt.Sprintf("%.2f", pt.AverageCost),
				fmt.Sprintf("%.4f", pt.Quantity),
			})
		}
		doc.Table(table)
	}

	return doc.String()
}
