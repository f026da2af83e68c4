package services

import (
	"context"
	"voidwebsite/internal/format"
	"voidwebsite/internal/models"

	"github.com/shopspring/decimal"
)

// OrderStore is the admin view of the shared order state.
type OrderStore interface {
	Orders() []models.Order
	Order(id string) (models.Order, bool)
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

type OrderFilter struct {
	Query  string
	Status models.OrderStatus
}

type OrderSummary struct {
	TotalOrders  int                        `json:"totalOrders"`
	ByStatus     map[models.OrderStatus]int `json:"byStatus"`
	Revenue      decimal.Decimal            `json:"revenue"`
	RevenueLabel string                     `json:"revenueFormatted"`
	ItemsSold    int                        `json:"itemsSold"`
	AverageTotal decimal.Decimal            `json:"averageTotal"`
	FreeOrders   int                        `json:"freeOrders"`
}

type OrderService interface {
	ListOrders(filter OrderFilter) []models.Order
	GetOrder(id string) (models.Order, bool)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error)
	DeleteOrder(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) BulkDeleteResult
	Summary() OrderSummary
}

type orderService struct {
	store OrderStore
}

func NewOrderService(store OrderStore) OrderService {
	return &orderService{store: store}
}

// ListOrders filters by exact status and by a case-insensitive match on
// order id, customer name or customer email.
func (s *orderService) ListOrders(filter OrderFilter) []models.Order {
	var out []models.Order
	for _, o := range s.store.Orders() {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if !format.Match(filter.Query, o.ID, o.CustomerInfo.Name, o.CustomerInfo.Email) {
			continue
		}
		out = append(out, o)
	}
	if out == nil {
		out = []models.Order{}
	}
	return out
}

func (s *orderService) GetOrder(id string) (models.Order, bool) {
	return s.store.Order(id)
}

func (s *orderService) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error) {
	return s.store.UpdateOrderStatus(ctx, id, status)
}

func (s *orderService) DeleteOrder(ctx context.Context, id string) error {
	return s.store.DeleteOrder(ctx, id)
}

func (s *orderService) BulkDelete(ctx context.Context, ids []string) BulkDeleteResult {
	return BulkDelete(ctx, ids, s.store.DeleteOrder)
}

// Summary counts orders per status and totals revenue over orders that
// were not declined or canceled.
func (s *orderService) Summary() OrderSummary {
	summary := OrderSummary{
		ByStatus: make(map[models.OrderStatus]int, len(models.OrderStatuses)),
		Revenue:  decimal.Zero,
	}
	for _, status := range models.OrderStatuses {
		summary.ByStatus[status] = 0
	}

	counted := 0
	for _, o := range s.store.Orders() {
		summary.TotalOrders++
		summary.ByStatus[o.Status]++
		if !o.Total.IsPositive() {
			summary.FreeOrders++
		}
		if o.Status == models.OrderDeclined || o.Status == models.OrderCanceled {
			continue
		}
		counted++
		summary.Revenue = summary.Revenue.Add(o.Total)
		for _, item := range o.Items {
			summary.ItemsSold += item.Quantity
		}
	}
	if counted > 0 {
		summary.AverageTotal = summary.Revenue.Div(decimal.NewFromInt(int64(counted))).Round(2)
	}
	summary.RevenueLabel = format.Currency(summary.Revenue)
	return summary
}
