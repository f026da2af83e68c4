package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"
	"voidwebsite/internal/models"
	"voidwebsite/internal/payment"
	"voidwebsite/internal/redis"
	"voidwebsite/internal/repository"
)

type fakeOrderStore struct {
	mu      sync.Mutex
	orders  []models.Order
	deleted []string
	failIDs map[string]bool
}

func (f *fakeOrderStore) AddOrder(ctx context.Context, order models.Order) (models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append([]models.Order{order}, f.orders...)
	return order, nil
}

func (f *fakeOrderStore) Order(id string) (models.Order, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			return o, true
		}
	}
	return models.Order{}, false
}

func (f *fakeOrderStore) Orders() []models.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Order(nil), f.orders...)
}

func (f *fakeOrderStore) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Status = status
			return f.orders[i], nil
		}
	}
	return models.Order{}, errors.New("order not found")
}

func (f *fakeOrderStore) DeleteOrder(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	if f.failIDs[id] {
		return errors.New("primary unavailable")
	}
	kept := f.orders[:0]
	for _, o := range f.orders {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	f.orders = kept
	return nil
}

type fakeCarts struct {
	carts   map[string][]models.OrderItem
	cleared []string
}

func (f *fakeCarts) Get(ctx context.Context, cartID string) ([]models.OrderItem, error) {
	return f.carts[cartID], nil
}

func (f *fakeCarts) Clear(ctx context.Context, cartID string) error {
	f.cleared = append(f.cleared, cartID)
	delete(f.carts, cartID)
	return nil
}

type fakeTemp struct {
	data map[string][]byte
}

func (f *fakeTemp) SetTempData(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = b
	return nil
}

func (f *fakeTemp) GetTempData(ctx context.Context, key string, dest interface{}) error {
	b, ok := f.data[key]
	if !ok {
		return redis.ErrNotFound
	}
	return json.Unmarshal(b, dest)
}

type fakeGateway struct {
	created []payment.IntentRequest
	status  payment.IntentStatus
	fail    error
}

func (g *fakeGateway) CreateIntent(ctx context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	g.created = append(g.created, req)
	if g.fail != nil {
		return nil, g.fail
	}
	return &payment.Intent{
		ID:           "pi_test_1",
		ClientSecret: "pi_test_1_secret",
		Status:       payment.StatusRequiresPaymentMethod,
		AmountCents:  payment.ToCents(req.Amount),
		Currency:     req.Currency,
		Metadata:     req.Metadata,
	}, nil
}

func (g *fakeGateway) GetIntent(ctx context.Context, id string) (*payment.Intent, error) {
	var metadata map[string]string
	if len(g.created) > 0 {
		metadata = g.created[len(g.created)-1].Metadata
	}
	return &payment.Intent{ID: id, Status: g.status, Metadata: metadata}, nil
}

type fakeSettings struct {
	settings map[string]models.PricingSetting
	fail     error
}

func (f *fakeSettings) GetSetting(ctx context.Context, name string) (*models.PricingSetting, error) {
	s, ok := f.settings[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (f *fakeSettings) GetAllSettings(ctx context.Context) ([]models.PricingSetting, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	var out []models.PricingSetting
	for _, s := range f.settings {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSettings) UpsertSetting(ctx context.Context, setting *models.PricingSetting) error {
	f.settings[setting.Name] = *setting
	return nil
}

type fakeUsers struct {
	users map[string]models.AdminUser
}

func (f *fakeUsers) Create(ctx context.Context, user *models.AdminUser) error {
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*models.AdminUser, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}
