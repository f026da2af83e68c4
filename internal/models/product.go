package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;size:64"`
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"`
	Image       string          `json:"image"`
	Category    string          `json:"category" gorm:"index"`
	Sizes       []string        `json:"sizes" gorm:"type:text;serializer:json"`
	InStock     bool            `json:"inStock"`
	Featured    bool            `json:"featured"`
	CreatedAt   Timestamp       `json:"createdAt"`
	UpdatedAt   Timestamp       `json:"updatedAt"`
}

// UnmarshalJSON treats a body without inStock as in stock.
func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	v := plain{InStock: true}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Product(v)
	return nil
}

func (p *Product) GetID() string   { return p.ID }
func (p *Product) SetID(id string) { p.ID = id }
func (p *Product) SearchFields() []string {
	return []string{p.Name, p.Category, p.Description}
}
