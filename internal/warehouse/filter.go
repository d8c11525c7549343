package warehouse

import "freshmart-backend/internal/models"

// filter keys exposed by the admin console, mapped onto the numeric
// status codes. Status 1 (awaiting payment) is deliberately absent:
// orders only become visible here once a payment proof exists.
var filterStatusCodes = map[string][]int{
	"all":                          {models.OrderStatusWaitingConfirmation, models.OrderStatusProcessing, models.OrderStatusDelivered, models.OrderStatusCompleted, models.OrderStatusCancelled},
	"waiting_payment_confirmation": {models.OrderStatusWaitingConfirmation},
	"processing":                   {models.OrderStatusProcessing},
	"delivered":                    {models.OrderStatusDelivered},
	"completed":                    {models.OrderStatusCompleted},
	"cancelled":                    {models.OrderStatusCancelled},
}

// StatusCodesForFilter falls back to "all" for unknown keys.
func StatusCodesForFilter(filter string) []int {
	if codes, ok := filterStatusCodes[filter]; ok {
		return codes
	}
	return filterStatusCodes["all"]
}

// OrderTotals computes the per-order enrichment for the staff view.
// The delivery price is recovered from the first line: its subtotal
// carries the shipping surcharge on top of price*qty (see
// order.LineSubtotal), so the difference is the shipping component.
func OrderTotals(details []models.OrderDetail) (totalProductPrice, deliveryPrice float64) {
	for _, d := range details {
		totalProductPrice += d.Price * float64(d.Quantity)
	}
	if len(details) > 0 {
		first := details[0]
		deliveryPrice = first.Subtotal - first.Price*float64(first.Quantity)
	}
	return totalProductPrice, deliveryPrice
}
