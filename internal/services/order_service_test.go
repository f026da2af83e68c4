package services

import (
	"context"
	"testing"
	"voidwebsite/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminOrders() *fakeOrderStore {
	return &fakeOrderStore{orders: []models.Order{
		{ID: "ORD-1", Status: models.OrderPending, Total: decimal.RequireFromString("27"),
			CustomerInfo: models.CustomerInfo{Name: "Alice", Email: "alice@example.com"},
			Items:        []models.OrderItem{{Quantity: 2}}},
		{ID: "ORD-2", Status: models.OrderDelivered, Total: decimal.RequireFromString("1000"),
			CustomerInfo: models.CustomerInfo{Name: "Bob", Email: "bob@example.com"},
			Items:        []models.OrderItem{{Quantity: 1}}},
		{ID: "ORD-3", Status: models.OrderCanceled, Total: decimal.RequireFromString("50"),
			CustomerInfo: models.CustomerInfo{Name: "Cara", Email: "cara@example.com"}},
		{ID: "ORD-4", Status: models.OrderAccepted, Total: decimal.Zero,
			CustomerInfo: models.CustomerInfo{Name: "Dan", Email: "dan@example.com"}},
	}}
}

func TestOrderService_Search(t *testing.T) {
	svc := NewOrderService(adminOrders())

	found := svc.ListOrders(OrderFilter{Query: "ali"})
	require.Len(t, found, 1)
	assert.Equal(t, "Alice", found[0].CustomerInfo.Name)

	assert.Len(t, svc.ListOrders(OrderFilter{Query: "BOB@EXAMPLE"}), 1)
	assert.Len(t, svc.ListOrders(OrderFilter{Query: "ord-"}), 4)
	assert.Len(t, svc.ListOrders(OrderFilter{}), 4)
	assert.Empty(t, svc.ListOrders(OrderFilter{Query: "zed"}))
}

func TestOrderService_StatusFilter(t *testing.T) {
	svc := NewOrderService(adminOrders())

	delivered := svc.ListOrders(OrderFilter{Status: models.OrderDelivered})
	require.Len(t, delivered, 1)
	assert.Equal(t, "ORD-2", delivered[0].ID)

	assert.Empty(t, svc.ListOrders(OrderFilter{Status: models.OrderDelivered, Query: "alice"}))
}

func TestOrderService_BulkDelete(t *testing.T) {
	store := adminOrders()
	svc := NewOrderService(store)

	result := svc.BulkDelete(context.Background(), []string{"ORD-1", "ORD-2", "ORD-3"})

	assert.Equal(t, []string{"ORD-1", "ORD-2", "ORD-3"}, store.deleted)
	assert.Equal(t, []string{"ORD-1", "ORD-2", "ORD-3"}, result.Deleted)
	assert.Empty(t, result.Failed)
	for _, o := range svc.ListOrders(OrderFilter{}) {
		assert.Equal(t, "ORD-4", o.ID)
	}
}

func TestOrderService_BulkDeleteReportsFailures(t *testing.T) {
	store := adminOrders()
	store.failIDs = map[string]bool{"ORD-2": true}
	svc := NewOrderService(store)

	result := svc.BulkDelete(context.Background(), []string{"ORD-1", "ORD-2"})

	assert.Len(t, store.deleted, 2)
	assert.Equal(t, []string{"ORD-1"}, result.Deleted)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "ORD-2", result.Failed[0].ID)
}

func TestOrderService_Summary(t *testing.T) {
	summary := NewOrderService(adminOrders()).Summary()

	assert.Equal(t, 4, summary.TotalOrders)
	assert.Equal(t, 1, summary.ByStatus[models.OrderCanceled])
	assert.Equal(t, 0, summary.ByStatus[models.OrderProcessing])
	assert.Equal(t, "1027", summary.Revenue.String())
	assert.Equal(t, "$1,027.00", summary.RevenueLabel)
	assert.Equal(t, 3, summary.ItemsSold)
	assert.Equal(t, 1, summary.FreeOrders)
}
