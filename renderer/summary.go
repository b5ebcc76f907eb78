package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/patrimoine"
	md "github.com/nao1215/markdown"
)

func SummaryMarkdown(s patrimoine.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio Summary on %s", s.On))
	doc.PlainText(fmt.Sprintf("Market Value: %s across %d positions", s.MarketValue, s.Positions))

	doc.H2("Performance")
	table := md.TableSet{
		Header: []string{"Indicator", "Value"},
		Rows: [][]string{
			{"Invested Capital", s.InvestedCapital.String()},
			{"Market Value", s.MarketValue.String()},
			{"Absolute Return", s.AbsoluteReturn.SignedString()},
			{"Return", s.PercentReturn.SignedString()},
			{"CAGR", s.CAGR.SignedString()},
			{"Projected Annual Dividends", s.AnnualDividends.String()},
		},
	}
	doc.Table(table)

	return doc.String()
}
