package repository

import (
	"context"

	"shop-order-service/internal/domain"
)

// InventoryRepository is the authoritative ledger of product price and
// available stock.
type InventoryRepository interface {
	// FindProduct returns nil when the product id is unknown.
	FindProduct(ctx context.Context, productID uint64) (*domain.Product, error)

	// Reserve decrements available stock by quantity only if at least that
	// much remains. The check and the decrement are one atomic unit, so
	// concurrent reservations against the same product can never jointly
	// oversell it. Fails with domain.InsufficientStockError or
	// domain.ProductNotFoundError.
	Reserve(ctx context.Context, productID uint64, quantity int64) error

	// Release restores previously reserved stock.
	Release(ctx context.Context, productID uint64, quantity int64) error
}
