package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"voidwebsite/internal/models"
	"voidwebsite/internal/repository"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPricing     = errors.New("invalid pricing settings")
	ErrPricingUnavailable = errors.New("pricing settings are not configured")
)

// Pricing holds the checkout parameters: a tax rate as a fraction (0.08)
// and a flat shipping charge in dollars.
type Pricing struct {
	TaxRate      decimal.Decimal `json:"taxRate"`
	ShippingFlat decimal.Decimal `json:"shippingFlat"`
}

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Free reports whether the order skips the payment processor.
func (t Totals) Free() bool {
	return !t.Total.IsPositive()
}

// ComputeTotals prices a cart. Tax is charged only on a positive subtotal
// and rounded to cents.
func ComputeTotals(items []models.OrderItem, p Pricing) Totals {
	subtotal := models.SumItems(items).Round(2)
	tax := decimal.Zero
	if subtotal.IsPositive() {
		tax = subtotal.Mul(p.TaxRate).Round(2)
	}
	shipping := p.ShippingFlat.Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal.Add(tax).Add(shipping),
	}
}

type PricingService interface {
	Current(ctx context.Context) Pricing
	Update(ctx context.Context, p Pricing) (Pricing, error)
}

type pricingService struct {
	settingsRepo repository.SettingsRepository
	defaults     Pricing
	log          *slog.Logger
}

// NewPricingService reads pricing from the settings table, falling back to
// defaults for missing rows.
func NewPricingService(settingsRepo repository.SettingsRepository, defaults Pricing, logger *slog.Logger) PricingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &pricingService{settingsRepo: settingsRepo, defaults: defaults, log: logger}
}

func (s *pricingService) Current(ctx context.Context) Pricing {
	p := s.defaults
	if s.settingsRepo == nil {
		return p
	}
	settings, err := s.settingsRepo.GetAllSettings(ctx)
	if err != nil {
		s.log.Warn("pricing settings unavailable, using defaults", "error", err)
		return p
	}
	for _, setting := range settings {
		switch setting.Name {
		case models.SettingTaxRate:
			p.TaxRate = setting.Value
		case models.SettingShippingFlat:
			p.ShippingFlat = setting.Value
		}
	}
	return p
}

func (s *pricingService) Update(ctx context.Context, p Pricing) (Pricing, error) {
	if p.TaxRate.IsNegative() || p.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return Pricing{}, fmt.Errorf("%w: tax rate must be between 0 and 1", ErrInvalidPricing)
	}
	if p.ShippingFlat.IsNegative() {
		return Pricing{}, fmt.Errorf("%w: shipping cannot be negative", ErrInvalidPricing)
	}
	if s.settingsRepo == nil {
		return Pricing{}, ErrPricingUnavailable
	}

	for name, value := range map[string]decimal.Decimal{
		models.SettingTaxRate:      p.TaxRate,
		models.SettingShippingFlat: p.ShippingFlat,
	} {
		if err := s.settingsRepo.UpsertSetting(ctx, &models.PricingSetting{Name: name, Value: value}); err != nil {
			return Pricing{}, fmt.Errorf("failed to save %s: %w", name, err)
		}
	}
	return s.Current(ctx), nil
}
