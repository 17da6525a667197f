package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Amudhavanm/arul-jayam-farm-mart/models"
)

func line(price float64, quantity int) models.LineItem {
	return models.LineItem{UnitPrice: price, Quantity: quantity, Selected: true}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name  string
		lines []models.LineItem
		want  Totals
	}{
		{
			name:  "large order ships free",
			lines: []models.LineItem{line(385000, 1), line(75000, 2)},
			want:  Totals{Subtotal: 535000, Shipping: 0, Total: 535000},
		},
		{
			name:  "small order pays flat fee",
			lines: []models.LineItem{line(5000, 1)},
			want:  Totals{Subtotal: 5000, Shipping: 500, Total: 5500},
		},
		{
			name:  "exactly at threshold still pays shipping",
			lines: []models.LineItem{line(10000, 1)},
			want:  Totals{Subtotal: 10000, Shipping: 500, Total: 10500},
		},
		{
			name:  "one rupee above threshold ships free",
			lines: []models.LineItem{line(10001, 1)},
			want:  Totals{Subtotal: 10001, Shipping: 0, Total: 10001},
		},
		{
			name:  "empty selection pays nothing",
			lines: nil,
			want:  Totals{Subtotal: 0, Shipping: 0, Total: 0},
		},
		{
			name:  "quantity multiplies unit price",
			lines: []models.LineItem{line(2500, 4)},
			want:  Totals{Subtotal: 10000, Shipping: 500, Total: 10500},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.lines, DefaultFreeShippingThreshold, DefaultFlatShippingFee)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeTotals_CustomRates(t *testing.T) {
	got := ComputeTotals([]models.LineItem{line(100, 1)}, 50, 25)
	assert.Equal(t, Totals{Subtotal: 100, Shipping: 0, Total: 100}, got)

	got = ComputeTotals([]models.LineItem{line(40, 1)}, 50, 25)
	assert.Equal(t, Totals{Subtotal: 40, Shipping: 25, Total: 65}, got)
}
