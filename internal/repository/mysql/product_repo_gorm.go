package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shop-order-service/internal/domain"
	"shop-order-service/internal/repository"
)

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) repository.InventoryRepository {
	return &inventoryRepo{db: db}
}

func (r *inventoryRepo) FindProduct(ctx context.Context, productID uint64) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *inventoryRepo) Reserve(ctx context.Context, productID uint64, quantity int64) error {
	return reserveStock(r.db.WithContext(ctx), productID, quantity)
}

func (r *inventoryRepo) Release(ctx context.Context, productID uint64, quantity int64) error {
	res := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ?", productID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &domain.ProductNotFoundError{ProductID: productID}
	}
	return nil
}

// reserveStock is the single place stock ever goes down. The quantity
// check and the decrement are one UPDATE, so two callers racing over the
// same product can never jointly take more units than exist. A zero
// RowsAffected means either the row is missing or the stock ran short; a
// follow-up read tells the two apart.
func reserveStock(db *gorm.DB, productID uint64, quantity int64) error {
	res := db.Model(&domain.Product{}).
		Where("id = ? AND quantity >= ?", productID, quantity).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var p domain.Product
	err := db.Select("quantity").First(&p, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &domain.ProductNotFoundError{ProductID: productID}
	}
	if err != nil {
		return err
	}
	return &domain.InsufficientStockError{ProductID: productID, Available: p.Quantity}
}
