package domain

import "time"

type Order struct {
	ID           uint
	TotalPrice   float64
	ShippingCost float64
	Status       string
	Items        []OrderItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Status values are informational; the status update endpoint accepts
// any non-empty string.
const (
	OrderStatusPending  = "pending"
	OrderStatusPaid     = "paid"
	OrderStatusShipped  = "shipped"
	OrderStatusCanceled = "canceled"
)

// Subtotal is the sum of item price snapshots times quantities, without
// shipping.
func (o Order) Subtotal() float64 {
	total := 0.0
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
