package services

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"shop-order-service/internal/domain"
	"shop-order-service/internal/infra/metrics"
	rabbit "shop-order-service/internal/infra/rabbitmq"
	"shop-order-service/internal/repository"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "order-service").Logger()

const (
	idempotencyPrefix = "order:idem:"
	idempotencyTTL    = 24 * time.Hour
)

// OrderService drives order placement: validate the cart, reserve stock
// and persist the order atomically, then announce the result. It also
// exposes lookup and the status lifecycle.
type OrderService struct {
	orders      repository.OrderRepository
	inventory   repository.InventoryRepository
	publisher   rabbit.PublisherInterface
	redisClient *redis.Client
	metrics     *metrics.OrderMetrics
}

func NewOrderService(orders repository.OrderRepository, inventory repository.InventoryRepository, pub rabbit.PublisherInterface) *OrderService {
	return &OrderService{
		orders:    orders,
		inventory: inventory,
		publisher: pub,
	}
}

// SetRedisClient enables the idempotency guard. Without it duplicate
// submissions are accepted as independent orders.
func (s *OrderService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

func (s *OrderService) SetMetrics(m *metrics.OrderMetrics) {
	s.metrics = m
}

// PlaceOrder turns a cart into a committed order owned by userID, or
// returns a structured failure. Until reservation starts nothing is
// externally observable, and a failure anywhere leaves stock exactly as it
// was: reservations and the order rows commit or roll back together.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint64, cart []domain.CartLine, idempotencyKey string) (*domain.Order, error) {
	start := time.Now()
	order, err := s.placeOrder(ctx, userID, cart, idempotencyKey)
	s.observePlacement(time.Since(start), err)
	return order, err
}

func (s *OrderService) placeOrder(ctx context.Context, userID uint64, cart []domain.CartLine, idempotencyKey string) (*domain.Order, error) {
	if err := validateCartShape(cart); err != nil {
		return nil, err
	}

	claimed, err := s.claimIdempotencyKey(ctx, idempotencyKey)
	if err == nil && !claimed {
		return nil, domain.ErrDuplicateRequest
	}

	items, total, err := s.priceCart(ctx, cart)
	if err != nil {
		s.releaseIdempotencyKey(ctx, idempotencyKey)
		return nil, err
	}

	order := &domain.Order{
		OrderNumber: uuid.NewString(),
		UserID:      userID,
		TotalAmount: total,
		Status:      domain.StatusPending,
		OrderDate:   time.Now(),
		Items:       items,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.releaseIdempotencyKey(ctx, idempotencyKey)

		var stockErr *domain.InsufficientStockError
		var missingErr *domain.ProductNotFoundError
		if errors.As(err, &stockErr) || errors.As(err, &missingErr) {
			// Stock moved between validation and reservation; the
			// transaction already rolled back earlier lines.
			return nil, err
		}

		logger.Error().Err(err).Uint64("user_id", userID).Msg("order persistence failed")
		return nil, &domain.PersistenceError{Err: err}
	}

	logger.Info().
		Uint64("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Uint64("user_id", userID).
		Int64("total_amount", order.TotalAmount).
		Msg("order placed")

	go s.publishOrderCreated(context.Background(), order)

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint64) (*domain.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		logger.Error().Err(err).Uint64("order_id", id).Msg("order lookup failed")
		return nil, &domain.PersistenceError{Err: err}
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

// UpdateOrderStatus moves an order along its lifecycle after checking the
// transition is legal. Cancellation never restocks; reserved units stay
// sold, matching how the surrounding admin backend treats cancelled orders.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint64, next domain.OrderStatus) (*domain.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, &domain.InvalidTransitionError{From: order.Status, To: next}
	}

	if err := s.orders.UpdateStatus(ctx, id, next); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, err
		}
		logger.Error().Err(err).Uint64("order_id", id).Msg("status update failed")
		return nil, &domain.PersistenceError{Err: err}
	}

	prev := order.Status
	order.Status = next

	go s.publishStatusChanged(context.Background(), order, prev)

	return order, nil
}

func (s *OrderService) publishOrderCreated(ctx context.Context, order *domain.Order) {
	evt := domain.OrderCreatedEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		CreatedAt:   order.OrderDate,
	}
	if err := s.publisher.Publish(ctx, "order.created", evt); err != nil {
		logger.Warn().Err(err).Uint64("order_id", order.ID).Msg("failed to publish order.created")
	}
}

func (s *OrderService) publishStatusChanged(ctx context.Context, order *domain.Order, prev domain.OrderStatus) {
	evt := domain.OrderStatusChangedEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		From:        prev,
		To:          order.Status,
		ChangedAt:   time.Now(),
	}
	if err := s.publisher.Publish(ctx, "order.status_changed", evt); err != nil {
		logger.Warn().Err(err).Uint64("order_id", order.ID).Msg("failed to publish order.status_changed")
	}
}

// claimIdempotencyKey is best effort: a Redis outage must not block order
// intake, so errors are logged and the request is allowed through.
func (s *OrderService) claimIdempotencyKey(ctx context.Context, key string) (bool, error) {
	if s.redisClient == nil || key == "" {
		return true, nil
	}
	ok, err := s.redisClient.SetNX(ctx, idempotencyPrefix+key, 1, idempotencyTTL).Result()
	if err != nil {
		logger.Warn().Err(err).Msg("idempotency check unavailable")
		return true, err
	}
	return ok, nil
}

// releaseIdempotencyKey frees the key after a failed placement so the
// caller can retry with the same key.
func (s *OrderService) releaseIdempotencyKey(ctx context.Context, key string) {
	if s.redisClient == nil || key == "" {
		return
	}
	s.redisClient.Del(ctx, idempotencyPrefix+key)
}

func (s *OrderService) observePlacement(elapsed time.Duration, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "accepted"
	if err != nil {
		outcome = "rejected"
		var pe *domain.PersistenceError
		if errors.As(err, &pe) {
			outcome = "failed"
		}
	}
	s.metrics.Placements.WithLabelValues(outcome).Inc()
	s.metrics.PlacementSeconds.Observe(elapsed.Seconds())
}
