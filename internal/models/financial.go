package models

import "github.com/shopspring/decimal"

// PricingSetting is one named checkout parameter, e.g. tax_rate 0.08.
type PricingSetting struct {
	Name      string          `json:"name" gorm:"primaryKey;size:64"`
	Value     decimal.Decimal `json:"value" gorm:"type:numeric(12,4);not null"`
	UpdatedAt Timestamp       `json:"updatedAt"`
}

const (
	SettingTaxRate      = "tax_rate"
	SettingShippingFlat = "shipping_flat"
)
