package firestore

import (
	"fmt"
	"strconv"
	"time"
	"voidwebsite/internal/models"

	"github.com/shopspring/decimal"
)

// orderDoc is the document layout of the orders collection. Timestamps are
// left untyped on read: older documents hold ISO strings or epoch millis
// instead of native timestamps.
type orderDoc struct {
	Items           []itemDoc   `firestore:"items"`
	Subtotal        float64     `firestore:"subtotal"`
	Tax             float64     `firestore:"tax"`
	Shipping        float64     `firestore:"shipping"`
	Total           float64     `firestore:"total"`
	CustomerInfo    customerDoc `firestore:"customerInfo"`
	Status          string      `firestore:"status"`
	PaymentIntentID string      `firestore:"paymentIntentId,omitempty"`
	CreatedAt       interface{} `firestore:"createdAt"`
	UpdatedAt       interface{} `firestore:"updatedAt,omitempty"`
}

type itemDoc struct {
	ID       interface{} `firestore:"id"`
	Name     string      `firestore:"name"`
	Price    float64     `firestore:"price"`
	Quantity int         `firestore:"quantity"`
	Image    string      `firestore:"image,omitempty"`
}

type customerDoc struct {
	Name    string `firestore:"name"`
	Email   string `firestore:"email"`
	Address string `firestore:"address"`
	ZipCode string `firestore:"zipCode"`
	Phone   string `firestore:"phone"`
	Country string `firestore:"country"`
}

type orderSetDoc struct {
	Name       string      `firestore:"name"`
	OrderIDs   []string    `firestore:"orderIds"`
	IsExpanded bool        `firestore:"isExpanded"`
	CreatedAt  interface{} `firestore:"createdAt"`
}

func newOrderDoc(o *models.Order) orderDoc {
	doc := orderDoc{
		Items:    make([]itemDoc, 0, len(o.Items)),
		Subtotal: o.Subtotal.InexactFloat64(),
		Tax:      o.Tax.InexactFloat64(),
		Shipping: o.Shipping.InexactFloat64(),
		Total:    o.Total.InexactFloat64(),
		CustomerInfo: customerDoc{
			Name:    o.CustomerInfo.Name,
			Email:   o.CustomerInfo.Email,
			Address: o.CustomerInfo.Address,
			ZipCode: o.CustomerInfo.ZipCode,
			Phone:   o.CustomerInfo.Phone,
			Country: o.CustomerInfo.Country,
		},
		Status:          string(o.Status),
		PaymentIntentID: o.PaymentIntentID,
		CreatedAt:       o.CreatedAt.Time,
	}
	if !o.UpdatedAt.IsZero() {
		doc.UpdatedAt = o.UpdatedAt.Time
	}
	for _, item := range o.Items {
		doc.Items = append(doc.Items, itemDoc{
			ID:       item.ProductID,
			Name:     item.Name,
			Price:    item.Price.InexactFloat64(),
			Quantity: item.Quantity,
			Image:    item.Image,
		})
	}
	return doc
}

func (d orderDoc) toModel(id string) (models.Order, error) {
	createdAt, err := normalizeTime(d.CreatedAt)
	if err != nil {
		return models.Order{}, fmt.Errorf("order %s createdAt: %w", id, err)
	}
	updatedAt, err := normalizeTime(d.UpdatedAt)
	if err != nil {
		return models.Order{}, fmt.Errorf("order %s updatedAt: %w", id, err)
	}
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	order := models.Order{
		ID:       id,
		Items:    make([]models.OrderItem, 0, len(d.Items)),
		Subtotal: decimal.NewFromFloat(d.Subtotal).Round(2),
		Tax:      decimal.NewFromFloat(d.Tax).Round(2),
		Shipping: decimal.NewFromFloat(d.Shipping).Round(2),
		Total:    decimal.NewFromFloat(d.Total).Round(2),
		CustomerInfo: models.CustomerInfo{
			Name:    d.CustomerInfo.Name,
			Email:   d.CustomerInfo.Email,
			Address: d.CustomerInfo.Address,
			ZipCode: d.CustomerInfo.ZipCode,
			Phone:   d.CustomerInfo.Phone,
			Country: d.CustomerInfo.Country,
		},
		Status:          models.OrderStatus(d.Status),
		PaymentIntentID: d.PaymentIntentID,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
	if order.Status == "" {
		order.Status = models.OrderPending
	}
	for i, item := range d.Items {
		order.Items = append(order.Items, models.OrderItem{
			OrderID:   id,
			Position:  i,
			ProductID: productID(item.ID),
			Name:      item.Name,
			Price:     decimal.NewFromFloat(item.Price).Round(2),
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}
	return order, nil
}

func newOrderSetDoc(s *models.OrderSet) orderSetDoc {
	ids := s.OrderIDs
	if ids == nil {
		ids = []string{}
	}
	return orderSetDoc{
		Name:       s.Name,
		OrderIDs:   ids,
		IsExpanded: s.IsExpanded,
		CreatedAt:  s.CreatedAt.Time,
	}
}

func (d orderSetDoc) toModel(id string) (models.OrderSet, error) {
	createdAt, err := normalizeTime(d.CreatedAt)
	if err != nil {
		return models.OrderSet{}, fmt.Errorf("order set %s createdAt: %w", id, err)
	}
	ids := d.OrderIDs
	if ids == nil {
		ids = []string{}
	}
	return models.OrderSet{
		ID:         id,
		Name:       d.Name,
		OrderIDs:   ids,
		IsExpanded: d.IsExpanded,
		CreatedAt:  createdAt,
	}, nil
}

// normalizeTime maps every stored createdAt variant onto a Timestamp:
// native timestamps, ISO-8601 strings and epoch millis.
func normalizeTime(v interface{}) (models.Timestamp, error) {
	switch t := v.(type) {
	case nil:
		return models.Timestamp{}, nil
	case time.Time:
		if t.IsZero() {
			return models.Timestamp{}, nil
		}
		return models.NewTimestamp(t), nil
	case *time.Time:
		if t == nil {
			return models.Timestamp{}, nil
		}
		return normalizeTime(*t)
	case string:
		return models.ParseTimestamp(t)
	case int64:
		return models.FromMillis(t), nil
	case int:
		return models.FromMillis(int64(t)), nil
	case float64:
		return models.FromMillis(int64(t)), nil
	}
	return models.Timestamp{}, fmt.Errorf("unsupported timestamp value %T", v)
}

// productID renders numeric ids written by the storefront as plain strings.
func productID(v interface{}) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case int64:
		return strconv.FormatInt(id, 10)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
