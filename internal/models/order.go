package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Prices go over the wire as JSON numbers, as the storefront sends them.
	decimal.MarshalJSONWithoutQuotes = true
}

type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;size:64"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Subtotal        decimal.Decimal `json:"subtotal" gorm:"type:numeric(12,2)"`
	Tax             decimal.Decimal `json:"tax" gorm:"type:numeric(12,2)"`
	Shipping        decimal.Decimal `json:"shipping" gorm:"type:numeric(12,2)"`
	Total           decimal.Decimal `json:"total" gorm:"type:numeric(12,2);not null"`
	CustomerInfo    CustomerInfo    `json:"customerInfo" gorm:"embedded;embeddedPrefix:customer_"`
	Status          OrderStatus     `json:"status" gorm:"size:32;index;default:'pending'"`
	PaymentIntentID string          `json:"paymentIntentId,omitempty" gorm:"size:128;index"`
	CreatedAt       Timestamp       `json:"createdAt" gorm:"index"`
	UpdatedAt       Timestamp       `json:"updatedAt"`
}

type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email" gorm:"index"`
	Address string `json:"address"`
	ZipCode string `json:"zipCode"`
	Phone   string `json:"phone"`
	Country string `json:"country"`
}

// Missing returns the names of the required fields that are blank.
func (c CustomerInfo) Missing() []string {
	var missing []string
	fields := []struct {
		name  string
		value string
	}{
		{"name", c.Name},
		{"email", c.Email},
		{"address", c.Address},
		{"zipCode", c.ZipCode},
		{"phone", c.Phone},
		{"country", c.Country},
	}
	for _, f := range fields {
		if isBlank(f.value) {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// ItemsSubtotal is the sum of price*quantity over the order lines.
func (o *Order) ItemsSubtotal() decimal.Decimal {
	return SumItems(o.Items)
}

func SumItems(items []OrderItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

// Clone returns a copy whose Items slice can be mutated independently.
func (o Order) Clone() Order {
	if o.Items != nil {
		items := make([]OrderItem, len(o.Items))
		copy(items, o.Items)
		o.Items = items
	}
	return o
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderAccepted   OrderStatus = "accepted"
	OrderProcessing OrderStatus = "processing"
	OrderDelivered  OrderStatus = "delivered"
	OrderDeclined   OrderStatus = "declined"
	OrderCanceled   OrderStatus = "canceled"
)

var OrderStatuses = []OrderStatus{
	OrderPending,
	OrderAccepted,
	OrderProcessing,
	OrderDelivered,
	OrderDeclined,
	OrderCanceled,
}

func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderDeclined || s == OrderCanceled
}

// progression ranks the forward path pending → accepted → processing → delivered.
var progression = map[OrderStatus]int{
	OrderPending:    0,
	OrderAccepted:   1,
	OrderProcessing: 2,
	OrderDelivered:  3,
}

// IsBackward reports whether moving from s to next walks the lifecycle
// backwards. Such moves are permitted but worth flagging.
func (s OrderStatus) IsBackward(next OrderStatus) bool {
	if s == next {
		return false
	}
	if s.Terminal() && !next.Terminal() {
		return true
	}
	from, okFrom := progression[s]
	to, okTo := progression[next]
	return okFrom && okTo && to < from
}
