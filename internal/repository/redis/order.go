package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/solecrafted/internal/domain"
	apperrors "github.com/utafrali/solecrafted/pkg/errors"
)

const (
	orderKeyPrefix   = "order:"
	userOrdersPrefix = "orders:"
)

// OrderRepository implements repository.OrderRepository using Redis. Each
// order is stored under its own key; a per-user list holds the order IDs
// newest first.
type OrderRepository struct {
	client *redis.Client
}

// NewOrderRepository creates a new Redis-backed order repository.
func NewOrderRepository(client *redis.Client) *OrderRepository {
	return &OrderRepository{client: client}
}

// Get retrieves an order by ID from Redis.
func (r *OrderRepository) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	key := orderKeyPrefix + orderID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("order", orderID)
		}
		return nil, fmt.Errorf("redis get order: %w", err)
	}

	var order domain.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w", err)
	}

	return &order, nil
}

// Save persists the order and pushes its ID onto the user's order index.
func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, orderKeyPrefix+order.ID, data, 0)
	pipe.LPush(ctx, userOrdersPrefix+order.UserID, order.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis save order: %w", err)
	}

	return nil
}

// ListByUser retrieves the user's orders, most recent first. IDs in the
// index whose order record is gone are skipped.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	ids, err := r.client.LRange(ctx, userOrdersPrefix+userID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(ids))
	for _, id := range ids {
		order, err := r.Get(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		orders = append(orders, *order)
	}

	return orders, nil
}
