package repository

import (
	"context"
	"testing"
	"voidwebsite/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder(id, name string) *models.Order {
	return &models.Order{
		ID: id,
		Items: []models.OrderItem{
			{ProductID: "1", Name: "Jersey", Price: decimal.RequireFromString("20.00"), Quantity: 1},
			{ProductID: "2", Name: "Sticker", Price: decimal.RequireFromString("2.50"), Quantity: 2},
		},
		Subtotal: decimal.RequireFromString("25.00"),
		Tax:      decimal.RequireFromString("2.00"),
		Total:    decimal.RequireFromString("27.00"),
		CustomerInfo: models.CustomerInfo{
			Name:    name,
			Email:   "customer@example.com",
			Address: "1 Main St",
			ZipCode: "10001",
			Phone:   "555-0100",
			Country: "US",
		},
		Status:    models.OrderAccepted,
		CreatedAt: models.Now(),
	}
}

func TestOrderRepository_UpsertAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(ctx, sampleOrder("ORD-1", "Alice")))

	got, err := repo.GetByID(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.CustomerInfo.Name)
	assert.Equal(t, models.OrderAccepted, got.Status)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Jersey", got.Items[0].Name)
	assert.Equal(t, "Sticker", got.Items[1].Name)
	assert.True(t, decimal.RequireFromString("27").Equal(got.Total))
}

func TestOrderRepository_UpsertOverwritesSameID(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(ctx, sampleOrder("ORD-1", "Alice")))

	second := sampleOrder("ORD-1", "Alice")
	second.Status = models.OrderDelivered
	second.Items = second.Items[:1]
	require.NoError(t, repo.Upsert(ctx, second))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, models.OrderDelivered, all[0].Status)
	assert.Len(t, all[0].Items, 1)
}

func TestOrderRepository_DeleteRemovesLinesAndMembership(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	sets := NewOrderSetRepository(db)

	require.NoError(t, repo.Upsert(ctx, sampleOrder("ORD-1", "Alice")))
	require.NoError(t, repo.Upsert(ctx, sampleOrder("ORD-2", "Bob")))
	require.NoError(t, sets.Save(ctx, &models.OrderSet{ID: "set-1", Name: "Week 1", OrderIDs: []string{"ORD-1", "ORD-2"}}))

	require.NoError(t, repo.Delete(ctx, "ORD-1"))

	_, err := repo.GetByID(ctx, "ORD-1")
	assert.ErrorIs(t, err, ErrNotFound)

	var lines int64
	require.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", "ORD-1").Count(&lines).Error)
	assert.Zero(t, lines)

	all, err := sets.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, []string{"ORD-2"}, all[0].OrderIDs)
}

func TestOrderRepository_GetByIDMissing(t *testing.T) {
	_, err := NewOrderRepository(newTestDB(t)).GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
