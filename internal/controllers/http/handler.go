package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"shop-order-service/internal/domain"
	"shop-order-service/internal/services"
)

const orderCacheTTL = 10 * time.Second

type Handler struct {
	service *services.OrderService
	rdb     *redis.Client
}

func NewHandler(s *services.OrderService, rdb *redis.Client) *Handler {
	return &Handler{service: s, rdb: rdb}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")
	v1.POST("/orders", h.CreateOrder)
	v1.GET("/orders/:id", h.GetOrder)
	v1.PATCH("/orders/:id/status", h.UpdateOrderStatus)

	r.GET("/health", h.Health)
}

// CreateOrder expects the authenticated user id in X-User-ID, set by the
// upstream gateway after token verification.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := strconv.ParseUint(c.GetHeader("X-User-ID"), 10, 64)
	if err != nil || userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid user id"})
		return
	}

	cart := make([]domain.CartLine, 0, len(req.CartItems))
	for _, item := range req.CartItems {
		cart = append(cart, domain.CartLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.service.PlaceOrder(c.Request.Context(), userID, cart, c.GetHeader("Idempotency-Key"))
	if err != nil {
		status, msg := mapError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	cacheKey := "orders:" + c.Param("id")
	if h.rdb != nil {
		if b, err := h.rdb.Get(c.Request.Context(), cacheKey).Bytes(); err == nil {
			c.Data(http.StatusOK, "application/json", b)
			return
		}
	}

	order, err := h.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		status, msg := mapError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	if h.rdb != nil {
		if data, err := json.Marshal(order); err == nil {
			h.rdb.Set(context.Background(), cacheKey, data, orderCacheTTL)
		}
	}

	c.JSON(http.StatusOK, order)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.service.UpdateOrderStatus(c.Request.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		status, msg := mapError(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	if h.rdb != nil {
		h.rdb.Del(context.Background(), "orders:"+c.Param("id"))
	}

	c.JSON(http.StatusOK, order)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func mapError(err error) (int, string) {
	var validationErr *domain.ValidationError
	var notFoundErr *domain.ProductNotFoundError
	var stockErr *domain.InsufficientStockError
	var transitionErr *domain.InvalidTransitionError
	var persistErr *domain.PersistenceError

	switch {
	case errors.As(err, &validationErr), errors.As(err, &notFoundErr):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &stockErr), errors.As(err, &transitionErr):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrDuplicateRequest):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, err.Error()
	case errors.As(err, &persistErr):
		return http.StatusInternalServerError, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}
