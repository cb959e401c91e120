package domain

// CartLine is one requested position of a cart. It only lives for the
// duration of a placement request and is never persisted.
type CartLine struct {
	ProductID uint64 `json:"productId"`
	Quantity  int64  `json:"quantity"`
}
