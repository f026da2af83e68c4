package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"voidwebsite/internal/models"
)

const (
	mirrorOrdersKey  = "mirror:orders"
	mirrorSetsKey    = "mirror:sets"
	mirrorPendingKey = "mirror:pending"
)

// Mirror keeps a local copy of the order store and the queue of writes the
// primary store has not acknowledged yet.
type Mirror struct {
	client *Client
}

func NewMirror(client *Client) *Mirror {
	return &Mirror{client: client}
}

func (m *Mirror) SaveOrder(ctx context.Context, order models.Order) error {
	return m.hset(ctx, mirrorOrdersKey, order.ID, order)
}

func (m *Mirror) DeleteOrder(ctx context.Context, id string) error {
	return m.client.rdb.HDel(ctx, mirrorOrdersKey, id).Err()
}

func (m *Mirror) LoadOrders(ctx context.Context) ([]models.Order, error) {
	raw, err := m.client.rdb.HGetAll(ctx, mirrorOrdersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read mirrored orders: %w", err)
	}
	orders := make([]models.Order, 0, len(raw))
	for id, val := range raw {
		var order models.Order
		if err := json.Unmarshal([]byte(val), &order); err != nil {
			return nil, fmt.Errorf("failed to decode mirrored order %s: %w", id, err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (m *Mirror) SaveSet(ctx context.Context, set models.OrderSet) error {
	return m.hset(ctx, mirrorSetsKey, set.ID, set)
}

func (m *Mirror) DeleteSet(ctx context.Context, id string) error {
	return m.client.rdb.HDel(ctx, mirrorSetsKey, id).Err()
}

func (m *Mirror) LoadSets(ctx context.Context) ([]models.OrderSet, error) {
	raw, err := m.client.rdb.HGetAll(ctx, mirrorSetsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read mirrored sets: %w", err)
	}
	sets := make([]models.OrderSet, 0, len(raw))
	for id, val := range raw {
		var set models.OrderSet
		if err := json.Unmarshal([]byte(val), &set); err != nil {
			return nil, fmt.Errorf("failed to decode mirrored set %s: %w", id, err)
		}
		sets = append(sets, set)
	}
	return sets, nil
}

func (m *Mirror) MarkPending(ctx context.Context, key string) error {
	return m.client.rdb.SAdd(ctx, mirrorPendingKey, key).Err()
}

func (m *Mirror) ClearPending(ctx context.Context, key string) error {
	return m.client.rdb.SRem(ctx, mirrorPendingKey, key).Err()
}

func (m *Mirror) Pending(ctx context.Context) ([]string, error) {
	return m.client.rdb.SMembers(ctx, mirrorPendingKey).Result()
}

func (m *Mirror) hset(ctx context.Context, key, field string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", field, err)
	}
	return m.client.rdb.HSet(ctx, key, field, data).Err()
}
