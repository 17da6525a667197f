// Package pricing derives checkout totals from a set of cart lines.
package pricing

import "github.com/Amudhavanm/arul-jayam-farm-mart/models"

// Defaults, overridable through configuration. Amounts are whole rupees.
const (
	DefaultFreeShippingThreshold = 10000
	DefaultFlatShippingFee       = 500
)

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// ComputeTotals sums unit price times quantity over the given lines
// (callers pass only the selected lines). Shipping is free strictly above
// the threshold: a subtotal exactly at the threshold still pays the flat
// fee. An empty subtotal ships nothing and pays nothing.
func ComputeTotals(lines []models.LineItem, freeShippingThreshold, flatShippingFee float64) Totals {
	var subtotal float64
	for _, l := range lines {
		subtotal += l.UnitPrice * float64(l.Quantity)
	}

	var shipping float64
	if subtotal > 0 && subtotal <= freeShippingThreshold {
		shipping = flatShippingFee
	}

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}
}
