package firestore

import (
	"testing"
	"time"
	"voidwebsite/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTime(t *testing.T) {
	want := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value interface{}
	}{
		{"native", want},
		{"native in other zone", want.In(time.FixedZone("UTC+7", 7*3600))},
		{"iso string", "2024-03-01T12:30:00.000Z"},
		{"millis int64", want.UnixMilli()},
		{"millis float", float64(want.UnixMilli())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeTime(tt.value)
			require.NoError(t, err)
			assert.True(t, want.Equal(got.Time), "got %v", got.Time)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	zero, err := normalizeTime(nil)
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	_, err = normalizeTime([]byte("nope"))
	assert.Error(t, err)
}

func TestOrderDoc_ToModel(t *testing.T) {
	doc := orderDoc{
		Items: []itemDoc{
			{ID: int64(1), Name: "Sticker", Price: 0, Quantity: 2},
			{ID: "jersey-24", Name: "Jersey", Price: 12.5, Quantity: 2},
		},
		Subtotal:     25,
		Tax:          2,
		Total:        27,
		CustomerInfo: customerDoc{Name: "Alice", Email: "alice@example.com"},
		CreatedAt:    "2024-03-01T12:30:00Z",
	}

	order, err := doc.toModel("ORD-1")
	require.NoError(t, err)

	assert.Equal(t, "ORD-1", order.ID)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, order.CreatedAt, order.UpdatedAt)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "1", order.Items[0].ProductID)
	assert.Equal(t, "jersey-24", order.Items[1].ProductID)
	assert.Equal(t, 1, order.Items[1].Position)
	assert.True(t, decimal.RequireFromString("27").Equal(order.Total))
	assert.True(t, order.ItemsSubtotal().Equal(order.Subtotal))
}

func TestOrderDoc_RoundTripsThroughModel(t *testing.T) {
	created := models.FromMillis(1709296200000)
	order := models.Order{
		ID: "ORD-2",
		Items: []models.OrderItem{
			{ProductID: "7", Name: "Hoodie", Price: decimal.RequireFromString("49.99"), Quantity: 1},
		},
		Subtotal:  decimal.RequireFromString("49.99"),
		Tax:       decimal.RequireFromString("4.00"),
		Total:     decimal.RequireFromString("53.99"),
		Status:    models.OrderAccepted,
		CreatedAt: created,
	}

	doc := newOrderDoc(&order)
	assert.Equal(t, created.Time, doc.CreatedAt)
	assert.Nil(t, doc.UpdatedAt)

	back, err := doc.toModel(order.ID)
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(back.Total))
	assert.True(t, back.Items[0].Price.Equal(decimal.RequireFromString("49.99")))
	assert.Equal(t, created, back.CreatedAt)
}
