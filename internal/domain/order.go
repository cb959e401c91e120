package domain

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusDelivering OrderStatus = "delivering"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// CanTransitionTo reports whether an order in status s may move to next.
// Cancellation is only possible before the order starts delivering.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusProcessing || next == StatusCancelled
	case StatusProcessing:
		return next == StatusDelivering || next == StatusCancelled
	case StatusDelivering:
		return next == StatusCompleted
	default:
		return false
	}
}

// Order owns its line items exclusively; they are created together in one
// transaction and never modified independently afterwards.
type Order struct {
	ID          uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderNumber string      `json:"orderNumber" gorm:"size:36;uniqueIndex;not null"`
	UserID      uint64      `json:"userId" gorm:"not null;index"`
	TotalAmount int64       `json:"totalAmount" gorm:"not null"`
	Status      OrderStatus `json:"status" gorm:"type:enum('pending','processing','delivering','completed','cancelled');default:'pending'"`
	OrderDate   time.Time   `json:"orderDate" gorm:"not null"`
	Items       []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time   `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time   `json:"updatedAt" gorm:"autoUpdateTime"`
}

// ItemsTotal sums quantity times unit price over the line items. An order's
// TotalAmount must always equal this sum.
func (o *Order) ItemsTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.LineTotal()
	}
	return total
}

// OrderItem snapshots the unit price at order time; later catalog price
// changes do not touch committed orders.
type OrderItem struct {
	ID        uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint64 `json:"orderId" gorm:"not null;index"`
	ProductID uint64 `json:"productId" gorm:"not null;index"`
	Quantity  int64  `json:"quantity" gorm:"not null"`
	UnitPrice int64  `json:"unitPrice" gorm:"not null"`
}

func (i OrderItem) LineTotal() int64 {
	return i.Quantity * i.UnitPrice
}
