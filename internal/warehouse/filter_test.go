package warehouse

import (
	"testing"

	"freshmart-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodesForFilter(t *testing.T) {
	tests := []struct {
		filter string
		want   []int
	}{
		{"all", []int{2, 3, 4, 5, 6}},
		{"waiting_payment_confirmation", []int{2}},
		{"processing", []int{3}},
		{"delivered", []int{4}},
		{"completed", []int{5}},
		{"cancelled", []int{6}},
		{"bogus", []int{2, 3, 4, 5, 6}},
		{"", []int{2, 3, 4, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCodesForFilter(tt.filter))
		})
	}
}

func TestStatusCodesNeverIncludeAwaitingPayment(t *testing.T) {
	for filter := range filterStatusCodes {
		assert.NotContains(t, StatusCodesForFilter(filter), models.OrderStatusAwaitingPayment, "filter %q", filter)
	}
}

func TestOrderTotals(t *testing.T) {
	// subtotals carry the shipping surcharge per line (5 here); the
	// delivery price is recovered from the first line
	details := []models.OrderDetail{
		{Price: 10, Quantity: 1, Subtotal: 15},
		{Price: 20, Quantity: 2, Subtotal: 45},
	}

	totalProductPrice, deliveryPrice := OrderTotals(details)
	assert.Equal(t, 50.0, totalProductPrice)
	assert.Equal(t, 5.0, deliveryPrice)
}

func TestOrderTotalsNoDetails(t *testing.T) {
	totalProductPrice, deliveryPrice := OrderTotals(nil)
	assert.Zero(t, totalProductPrice)
	assert.Zero(t, deliveryPrice)
}

func TestOrderTotalsFreeShipping(t *testing.T) {
	details := []models.OrderDetail{
		{Price: 12.5, Quantity: 4, Subtotal: 50},
	}

	totalProductPrice, deliveryPrice := OrderTotals(details)
	assert.Equal(t, 50.0, totalProductPrice)
	assert.Equal(t, 0.0, deliveryPrice)
}
