package domain

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrDuplicateRequest = errors.New("duplicate request")
)

// ValidationError marks a cart that is structurally invalid before any
// product lookup happens. The caller must fix the request and re-submit.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid cart: " + e.Reason
}

// ProductNotFoundError names the cart line whose product id is unknown.
type ProductNotFoundError struct {
	ProductID uint64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// InsufficientStockError names the first product whose requested quantity
// exceeded what the ledger currently has available.
type InsufficientStockError struct {
	ProductID uint64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: %d available", e.ProductID, e.Available)
}

// InvalidTransitionError rejects a lifecycle move the status machine does
// not allow.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move order from %s to %s", e.From, e.To)
}

// PersistenceError wraps a storage-layer fault. The underlying cause is
// logged where it happens; callers only see an opaque message. Nothing was
// committed, so the request is safe to retry.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "order could not be persisted"
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
