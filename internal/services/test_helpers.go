package services

import (
	"time"

	"shop-order-service/internal/domain"
)

const TestUserID = uint64(7)

func CreateMockProduct(id uint64, name string, price, quantity int64) *domain.Product {
	return &domain.Product{
		ID:       id,
		Name:     name,
		Price:    price,
		Quantity: quantity,
	}
}

func CreateMockOrder(id, userID uint64, status domain.OrderStatus) *domain.Order {
	items := []domain.OrderItem{
		{OrderID: id, ProductID: 1, Quantity: 2, UnitPrice: 1000},
	}
	return &domain.Order{
		ID:          id,
		OrderNumber: "00000000-0000-0000-0000-000000000001",
		UserID:      userID,
		TotalAmount: 2000,
		Status:      status,
		OrderDate:   time.Now(),
		Items:       items,
	}
}
