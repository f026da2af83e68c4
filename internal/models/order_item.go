package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderItem is a purchased line. Price is the unit price at purchase time.
type OrderItem struct {
	RowID     uint            `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID   string          `json:"-" gorm:"size:64;index;not null"`
	Position  int             `json:"-" gorm:"not null;default:0"`
	ProductID string          `json:"id" gorm:"size:64"`
	Name      string          `json:"name" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Image     string          `json:"image"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// UnmarshalJSON accepts the product id as a string or a number; the
// storefront catalog uses numeric ids.
func (i *OrderItem) UnmarshalJSON(data []byte) error {
	type plain OrderItem
	var raw struct {
		plain
		ProductID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = OrderItem(raw.plain)

	id := bytes.TrimSpace(raw.ProductID)
	switch {
	case len(id) == 0 || bytes.Equal(id, []byte("null")):
		i.ProductID = ""
	case id[0] == '"':
		return json.Unmarshal(id, &i.ProductID)
	default:
		var n json.Number
		if err := json.Unmarshal(id, &n); err != nil {
			return fmt.Errorf("invalid item id %s: %w", id, err)
		}
		i.ProductID = n.String()
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
