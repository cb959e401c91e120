package http

type CartLineRequest struct {
	ProductID uint64 `json:"product_id" binding:"required,min=1"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	CartItems []CartLineRequest `json:"cart_items" binding:"required,min=1,dive"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
