package renderer

import (
	"fmt"

	"github.com/etnz/patrimoine"
)

// Transaction renders a transaction to a one-line string.
func Transaction(tx patrimoine.Transaction) string {
	switch v := tx.(type) {
	case patrimoine.Buy:
		return fmt.Sprintf("Bought %s of %s at %s", v.Quantity, v.Asset, v.Price)
	case patrimoine.Sell:
		return fmt.Sprintf("Sold %s of %s at %s", v.Quantity, v.Asset, v.Price)
	case patrimoine.Dividend:
		return fmt.Sprintf("Dividend of %s from %s", v.Amount, v.Asset)
	case patrimoine.RecurringPlan:
		return fmt.Sprintf("Plan of %s in %s over %d months (%d/month)",
			v.TotalAmount, v.Asset, v.DurationMonths, v.ExecutionsPerMonth)
	default:
		return string(tx.What())
	}
}
