package repository

import (
	"context"

	"shop-order-service/internal/domain"
)

type OrderRepository interface {
	// Create reserves stock for every line item and inserts the order plus
	// its items in one transaction. Either all of the stock decrements and
	// rows persist, or none do.
	Create(ctx context.Context, order *domain.Order) error

	// FindByID loads an order with its line items, nil when absent.
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)

	// UpdateStatus persists a new lifecycle status. Transition legality is
	// the service's concern.
	UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) error
}
