package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusDelivering, false},
		{StatusPending, StatusCompleted, false},
		{StatusProcessing, StatusDelivering, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusProcessing, StatusCompleted, false},
		{StatusDelivering, StatusCompleted, true},
		{StatusDelivering, StatusCancelled, false},
		{StatusCompleted, StatusProcessing, false},
		{StatusCancelled, StatusPending, false},
		{StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+" to "+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrder_ItemsTotal(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{ProductID: 1, Quantity: 3, UnitPrice: 1000},
			{ProductID: 2, Quantity: 2, UnitPrice: 250},
		},
	}

	assert.Equal(t, int64(3500), order.ItemsTotal())
	assert.Equal(t, int64(3000), order.Items[0].LineTotal())
}
