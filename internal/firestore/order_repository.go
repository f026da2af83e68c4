package firestore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"voidwebsite/internal/models"
	"voidwebsite/internal/repository"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

type orderRepository struct {
	client *firestore.Client
}

func NewOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &orderRepository{client: client}
}

func (r *orderRepository) Upsert(ctx context.Context, order *models.Order) error {
	if _, err := r.client.Collection(ordersCollection).Doc(order.ID).Set(ctx, newOrderDoc(order)); err != nil {
		return fmt.Errorf("failed to write order %s: %w", order.ID, err)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	snap, err := r.client.Collection(ordersCollection).Doc(id).Get(ctx)
	if err != nil {
		if snap != nil && !snap.Exists() {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	order, err := decodeOrder(snap)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	iter := r.client.Collection(ordersCollection).Documents(ctx)
	defer iter.Stop()

	var orders []models.Order
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list orders: %w", err)
		}
		order, err := decodeOrder(snap)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	// createdAt has mixed types across old documents, so order in process.
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt.Time)
	})
	return orders, nil
}

// Delete removes the order and its id from any set holding it.
func (r *orderRepository) Delete(ctx context.Context, id string) error {
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		sets := r.client.Collection(orderSetsCollection).Where("orderIds", "array-contains", id)
		snaps, err := tx.Documents(sets).GetAll()
		if err != nil {
			return err
		}
		for _, snap := range snaps {
			err := tx.Update(snap.Ref, []firestore.Update{
				{Path: "orderIds", Value: firestore.ArrayRemove(id)},
			})
			if err != nil {
				return err
			}
		}
		return tx.Delete(r.client.Collection(ordersCollection).Doc(id))
	})
}

func decodeOrder(snap *firestore.DocumentSnapshot) (models.Order, error) {
	var doc orderDoc
	if err := snap.DataTo(&doc); err != nil {
		return models.Order{}, fmt.Errorf("failed parsing order %s: %w", snap.Ref.ID, err)
	}
	return doc.toModel(snap.Ref.ID)
}
