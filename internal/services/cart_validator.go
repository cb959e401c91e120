package services

import (
	"context"
	"fmt"

	"shop-order-service/internal/domain"
)

// validateCartShape rejects structurally invalid carts before any product
// lookup happens.
func validateCartShape(cart []domain.CartLine) error {
	if len(cart) == 0 {
		return &domain.ValidationError{Reason: "cart must contain at least one line"}
	}
	for _, line := range cart {
		if line.ProductID == 0 {
			return &domain.ValidationError{Reason: "product id is required on every line"}
		}
		if line.Quantity < 1 {
			return &domain.ValidationError{Reason: fmt.Sprintf("quantity for product %d must be at least 1", line.ProductID)}
		}
	}
	return nil
}

// priceCart checks every cart line against the ledger in the order
// supplied and snapshots unit prices. Validation stops at the first
// failing line and the whole cart is rejected; there are no partial
// orders. Each line is checked independently against the stock as
// currently recorded, so duplicate product ids are not merged -- the
// reservation step inside the commit transaction is what ultimately
// prevents overselling.
func (s *OrderService) priceCart(ctx context.Context, cart []domain.CartLine) ([]domain.OrderItem, int64, error) {
	items := make([]domain.OrderItem, 0, len(cart))
	var total int64

	for _, line := range cart {
		product, err := s.inventory.FindProduct(ctx, line.ProductID)
		if err != nil {
			logger.Error().Err(err).Uint64("product_id", line.ProductID).Msg("product lookup failed")
			return nil, 0, &domain.PersistenceError{Err: err}
		}
		if product == nil {
			return nil, 0, &domain.ProductNotFoundError{ProductID: line.ProductID}
		}
		if line.Quantity > product.Quantity {
			return nil, 0, &domain.InsufficientStockError{ProductID: line.ProductID, Available: product.Quantity}
		}

		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
		})
		total += line.Quantity * product.Price
	}

	return items, total, nil
}
