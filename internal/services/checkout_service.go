package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"voidwebsite/internal/models"
	"voidwebsite/internal/payment"
	"voidwebsite/internal/redis"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCustomerInfo = errors.New("please fill in all required fields")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInvalidItem         = errors.New("invalid cart item")
	ErrPaymentIntent       = errors.New("failed to initialize payment")
	ErrPaymentNotCompleted = errors.New("payment has not completed")
	ErrCheckoutNotFound    = errors.New("checkout not found or expired")
)

// OrderCommitter is the order store checkout writes into.
type OrderCommitter interface {
	AddOrder(ctx context.Context, order models.Order) (models.Order, error)
	Order(id string) (models.Order, bool)
}

type Carts interface {
	Get(ctx context.Context, cartID string) ([]models.OrderItem, error)
	Clear(ctx context.Context, cartID string) error
}

// TempStore holds short-lived checkout state between intent creation and
// confirmation.
type TempStore interface {
	SetTempData(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	GetTempData(ctx context.Context, key string, dest interface{}) error
}

type CheckoutRequest struct {
	CartID       string              `json:"cartId"`
	Items        []models.OrderItem  `json:"items"`
	CustomerInfo models.CustomerInfo `json:"customerInfo"`
}

type CheckoutResult struct {
	Free            bool          `json:"free"`
	OrderID         string        `json:"orderId"`
	Order           *models.Order `json:"order,omitempty"`
	ClientSecret    string        `json:"clientSecret,omitempty"`
	PaymentIntentID string        `json:"paymentIntentId,omitempty"`
	Totals          Totals        `json:"totals"`
}

type pendingCheckout struct {
	OrderID      string              `json:"orderId"`
	CartID       string              `json:"cartId"`
	Items        []models.OrderItem  `json:"items"`
	CustomerInfo models.CustomerInfo `json:"customerInfo"`
	Totals       Totals              `json:"totals"`
	CreatedAt    models.Timestamp    `json:"createdAt"`
}

type CheckoutService interface {
	Quote(ctx context.Context, items []models.OrderItem) (Totals, error)
	Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error)
	Confirm(ctx context.Context, paymentIntentID string) (*models.Order, error)
	CreatePaymentIntent(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]string) (string, error)
}

type CheckoutOptions struct {
	Currency    string
	CheckoutTTL time.Duration
	Logger      *slog.Logger
}

type checkoutService struct {
	orders   OrderCommitter
	carts    Carts
	temp     TempStore
	gateway  payment.Gateway
	pricing  PricingService
	currency string
	ttl      time.Duration
	log      *slog.Logger
	now      func() time.Time
}

func NewCheckoutService(orders OrderCommitter, carts Carts, temp TempStore, gateway payment.Gateway, pricing PricingService, opts CheckoutOptions) CheckoutService {
	if opts.Currency == "" {
		opts.Currency = "usd"
	}
	if opts.CheckoutTTL <= 0 {
		opts.CheckoutTTL = time.Hour
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &checkoutService{
		orders:   orders,
		carts:    carts,
		temp:     temp,
		gateway:  gateway,
		pricing:  pricing,
		currency: opts.Currency,
		ttl:      opts.CheckoutTTL,
		log:      opts.Logger.With("component", "checkout"),
		now:      time.Now,
	}
}

func (s *checkoutService) Quote(ctx context.Context, items []models.OrderItem) (Totals, error) {
	if err := validateItems(items); err != nil {
		return Totals{}, err
	}
	return ComputeTotals(items, s.pricing.Current(ctx)), nil
}

// Checkout places a free order directly or opens a payment intent for a
// paid one. Orders totalling zero or less never reach the gateway.
func (s *checkoutService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if missing := req.CustomerInfo.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCustomerInfo, strings.Join(missing, ", "))
	}

	items := req.Items
	if len(items) == 0 && req.CartID != "" {
		cart, err := s.carts.Get(ctx, req.CartID)
		if err != nil {
			return nil, fmt.Errorf("failed to load cart: %w", err)
		}
		items = cart
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}

	totals := ComputeTotals(items, s.pricing.Current(ctx))
	orderID := NewOrderID(s.now())

	if totals.Free() {
		order := s.buildOrder(orderID, items, req.CustomerInfo, totals, "")
		committed, err := s.commit(ctx, order, req.CartID)
		if err != nil {
			return nil, err
		}
		s.log.Info("free order placed", "order_id", orderID, "items", len(items))
		return &CheckoutResult{Free: true, OrderID: orderID, Order: &committed, Totals: totals}, nil
	}

	intent, err := s.gateway.CreateIntent(ctx, payment.IntentRequest{
		Amount:   totals.Total,
		Currency: s.currency,
		Metadata: map[string]string{
			"orderId":       orderID,
			"customerEmail": req.CustomerInfo.Email,
			"customerName":  req.CustomerInfo.Name,
		},
	})
	if err != nil {
		s.log.Error("payment intent creation failed", "order_id", orderID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentIntent, err)
	}

	pending := pendingCheckout{
		OrderID:      orderID,
		CartID:       req.CartID,
		Items:        items,
		CustomerInfo: req.CustomerInfo,
		Totals:       totals,
		CreatedAt:    models.NewTimestamp(s.now()),
	}
	if err := s.temp.SetTempData(ctx, checkoutKey(intent.ID), pending, s.ttl); err != nil {
		return nil, fmt.Errorf("failed to save checkout: %w", err)
	}

	return &CheckoutResult{
		OrderID:         orderID,
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		Totals:          totals,
	}, nil
}

// Confirm turns a succeeded payment intent into an order. The pending
// checkout is left to expire so a repeated confirm returns the same order.
func (s *checkoutService) Confirm(ctx context.Context, paymentIntentID string) (*models.Order, error) {
	var pending pendingCheckout
	if err := s.temp.GetTempData(ctx, checkoutKey(paymentIntentID), &pending); err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return nil, ErrCheckoutNotFound
		}
		return nil, fmt.Errorf("failed to load checkout: %w", err)
	}

	if existing, ok := s.orders.Order(pending.OrderID); ok {
		return &existing, nil
	}

	intent, err := s.gateway.GetIntent(ctx, paymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentIntent, err)
	}
	if intent.Status != payment.StatusSucceeded {
		return nil, fmt.Errorf("%w: status %s", ErrPaymentNotCompleted, intent.Status)
	}
	if id := intent.Metadata["orderId"]; id != "" && id != pending.OrderID {
		return nil, fmt.Errorf("%w: intent belongs to order %s", ErrPaymentNotCompleted, id)
	}

	order := s.buildOrder(pending.OrderID, pending.Items, pending.CustomerInfo, pending.Totals, paymentIntentID)
	committed, err := s.commit(ctx, order, pending.CartID)
	if err != nil {
		return nil, err
	}
	s.log.Info("paid order placed", "order_id", order.ID, "payment_intent", paymentIntentID)
	return &committed, nil
}

func (s *checkoutService) CreatePaymentIntent(ctx context.Context, amount decimal.Decimal, currency string, metadata map[string]string) (string, error) {
	if !amount.IsPositive() || payment.ToCents(amount) <= 0 {
		return "", payment.ErrInvalidAmount
	}
	if currency == "" {
		currency = s.currency
	}
	intent, err := s.gateway.CreateIntent(ctx, payment.IntentRequest{
		Amount:   amount,
		Currency: currency,
		Metadata: metadata,
	})
	if err != nil {
		s.log.Error("payment intent creation failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrPaymentIntent, err)
	}
	return intent.ClientSecret, nil
}

func (s *checkoutService) buildOrder(id string, items []models.OrderItem, customer models.CustomerInfo, totals Totals, intentID string) models.Order {
	now := models.NewTimestamp(s.now())
	lines := make([]models.OrderItem, len(items))
	for i, item := range items {
		item.OrderID = id
		item.Position = i
		item.RowID = 0
		lines[i] = item
	}
	return models.Order{
		ID:              id,
		Items:           lines,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Shipping:        totals.Shipping,
		Total:           totals.Total,
		CustomerInfo:    trimCustomer(customer),
		Status:          models.OrderAccepted,
		PaymentIntentID: intentID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// commit adds the order to the store and clears the cart. A failed primary
// write is handled by the store; a failed cart clear only gets logged.
func (s *checkoutService) commit(ctx context.Context, order models.Order, cartID string) (models.Order, error) {
	committed, err := s.orders.AddOrder(ctx, order)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to place order: %w", err)
	}
	if cartID != "" {
		if err := s.carts.Clear(ctx, cartID); err != nil {
			s.log.Warn("failed to clear cart", "cart_id", cartID, "error", err)
		}
	}
	return committed, nil
}

func validateItems(items []models.OrderItem) error {
	if len(items) == 0 {
		return ErrEmptyCart
	}
	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("%w: item %d has no name", ErrInvalidItem, i+1)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: %s quantity must be at least 1", ErrInvalidItem, item.Name)
		}
		if item.Price.IsNegative() {
			return fmt.Errorf("%w: %s price cannot be negative", ErrInvalidItem, item.Name)
		}
	}
	return nil
}

func trimCustomer(c models.CustomerInfo) models.CustomerInfo {
	return models.CustomerInfo{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.TrimSpace(c.Email),
		Address: strings.TrimSpace(c.Address),
		ZipCode: strings.TrimSpace(c.ZipCode),
		Phone:   strings.TrimSpace(c.Phone),
		Country: strings.TrimSpace(c.Country),
	}
}

func checkoutKey(paymentIntentID string) string {
	return "checkout:" + paymentIntentID
}
