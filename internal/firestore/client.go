// Package firestore stores orders and order sets in Cloud Firestore, for
// deployments that keep the storefront's original document collections.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
)

const (
	ordersCollection    = "orders"
	orderSetsCollection = "orderSets"
)

func NewClient(ctx context.Context, projectID string) (*firestore.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firestore project id is required")
	}
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return client, nil
}
