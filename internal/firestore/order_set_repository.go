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

// array-contains-any accepts at most this many values per query.
const maxInValues = 30

type orderSetRepository struct {
	client *firestore.Client
}

func NewOrderSetRepository(client *firestore.Client) repository.OrderSetRepository {
	return &orderSetRepository{client: client}
}

// Save writes the set and takes its orders out of every other set.
func (r *orderSetRepository) Save(ctx context.Context, set *models.OrderSet) error {
	sets := r.client.Collection(orderSetsCollection)
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var others []*firestore.DocumentSnapshot
		for _, chunk := range chunkIDs(set.OrderIDs, maxInValues) {
			snaps, err := tx.Documents(sets.Where("orderIds", "array-contains-any", chunk)).GetAll()
			if err != nil {
				return err
			}
			others = append(others, snaps...)
		}

		removals := make([]interface{}, len(set.OrderIDs))
		for i, id := range set.OrderIDs {
			removals[i] = id
		}
		seen := make(map[string]struct{})
		for _, snap := range others {
			if snap.Ref.ID == set.ID {
				continue
			}
			if _, ok := seen[snap.Ref.ID]; ok {
				continue
			}
			seen[snap.Ref.ID] = struct{}{}
			err := tx.Update(snap.Ref, []firestore.Update{
				{Path: "orderIds", Value: firestore.ArrayRemove(removals...)},
			})
			if err != nil {
				return err
			}
		}
		return tx.Set(sets.Doc(set.ID), newOrderSetDoc(set))
	})
}

func (r *orderSetRepository) GetAll(ctx context.Context) ([]models.OrderSet, error) {
	iter := r.client.Collection(orderSetsCollection).Documents(ctx)
	defer iter.Stop()

	var sets []models.OrderSet
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list order sets: %w", err)
		}
		var doc orderSetDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("failed parsing order set %s: %w", snap.Ref.ID, err)
		}
		set, err := doc.toModel(snap.Ref.ID)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	sort.SliceStable(sets, func(i, j int) bool {
		return sets[i].CreatedAt.Before(sets[j].CreatedAt.Time)
	})
	return sets, nil
}

func (r *orderSetRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(orderSetsCollection).Doc(id).Delete(ctx)
	return err
}

func chunkIDs(ids []string, size int) [][]string {
	var chunks [][]string
	for len(ids) > size {
		chunks = append(chunks, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		chunks = append(chunks, ids)
	}
	return chunks
}
