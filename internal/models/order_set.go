package models

// OrderSet groups orders by id. Order payloads are never copied into a set;
// the set view is resolved against the canonical order list.
type OrderSet struct {
	ID         string    `json:"id" gorm:"primaryKey;size:64"`
	Name       string    `json:"name" gorm:"not null"`
	OrderIDs   []string  `json:"orderIds" gorm:"-"`
	IsExpanded bool      `json:"isExpanded"`
	CreatedAt  Timestamp `json:"createdAt"`
}

// OrderSetMember is one row of set membership. The unique order_id index
// keeps an order in at most one set.
type OrderSetMember struct {
	SetID    string `gorm:"size:64;index;not null"`
	OrderID  string `gorm:"size:64;uniqueIndex;not null"`
	Position int    `gorm:"not null;default:0"`
}

func (s OrderSet) Contains(orderID string) bool {
	for _, id := range s.OrderIDs {
		if id == orderID {
			return true
		}
	}
	return false
}

func (s OrderSet) Clone() OrderSet {
	if s.OrderIDs != nil {
		ids := make([]string, len(s.OrderIDs))
		copy(ids, s.OrderIDs)
		s.OrderIDs = ids
	}
	return s
}
