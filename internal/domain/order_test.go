package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrder_Subtotal(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{ProductID: 1, Quantity: 2, Price: 50},
			{ProductID: 2, Quantity: 1, Price: 120.5},
		},
	}

	assert.Equal(t, 220.5, order.Subtotal())
}

func TestOrder_Subtotal_NoItems(t *testing.T) {
	assert.Equal(t, 0.0, Order{}.Subtotal())
}
