package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/patrimoine"
	md "github.com/nao1215/markdown"
)

func PositionsMarkdown(on patrimoine.Date, reports []patrimoine.AssetReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Positions on %s", on))
	if len(reports) == 0 {
		doc.PlainText("No open positions.")
		return doc.String()
	}

	table := md.TableSet{
		Header: []string{"Asset", "Account", "Quantity", "Avg Cost", "Price", "Value", "Gain", "Return", "Weight"},
	}
	for _, r := range reports {
		asset := r.Asset
		if r.ActivePlan {
			asset += " (plan)"
		}
		if r.Oversold {
			asset += " (oversold)"
		}
		table.Rows = append(table.Rows, []string{
			asset,
			r.Account,
			r.Quantity.String(),
			r.AverageCost.String(),
			r.Price.String(),
			r.MarketValue.String(),
			r.Gain.SignedString(),
			r.Return.SignedString(),
			r.Weight.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
