package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"voidwebsite/internal/models"

	"github.com/go-redis/redis/v8"
)

// CartStore keeps storefront carts keyed by an opaque cart id.
type CartStore struct {
	client *Client
	ttl    time.Duration
}

func NewCartStore(client *Client, ttl time.Duration) *CartStore {
	return &CartStore{client: client, ttl: ttl}
}

func cartKey(cartID string) string {
	return "cart:" + cartID
}

// Get returns an empty cart for unknown ids.
func (s *CartStore) Get(ctx context.Context, cartID string) ([]models.OrderItem, error) {
	val, err := s.client.rdb.Get(ctx, cartKey(cartID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []models.OrderItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	var items []models.OrderItem
	if err := json.Unmarshal(val, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return items, nil
}

func (s *CartStore) Put(ctx context.Context, cartID string, items []models.OrderItem) error {
	if items == nil {
		items = []models.OrderItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	return s.client.rdb.Set(ctx, cartKey(cartID), data, s.ttl).Err()
}

// AddItem merges quantities when the product is already in the cart.
func (s *CartStore) AddItem(ctx context.Context, cartID string, item models.OrderItem) ([]models.OrderItem, error) {
	items, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, item)
	}
	return items, s.Put(ctx, cartID, items)
}

// SetQuantity changes a line's quantity; zero or less removes the line.
func (s *CartStore) SetQuantity(ctx context.Context, cartID, productID string, quantity int) ([]models.OrderItem, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, cartID, productID)
	}
	items, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
		}
	}
	return items, s.Put(ctx, cartID, items)
}

func (s *CartStore) RemoveItem(ctx context.Context, cartID, productID string) ([]models.OrderItem, error) {
	items, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	kept := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	return kept, s.Put(ctx, cartID, kept)
}

func (s *CartStore) Clear(ctx context.Context, cartID string) error {
	return s.client.rdb.Del(ctx, cartKey(cartID)).Err()
}
