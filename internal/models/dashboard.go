package models

// DashboardItem is a card on the landing page dashboard.
type DashboardItem struct {
	ID          string    `json:"id" gorm:"primaryKey;size:64"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Image       string    `json:"image"`
	Link        string    `json:"link"`
	Category    string    `json:"category"`
	Position    int       `json:"position" gorm:"default:0"`
	CreatedAt   Timestamp `json:"createdAt"`
}

func (DashboardItem) TableName() string { return "dashboard_items" }

func (d *DashboardItem) GetID() string   { return d.ID }
func (d *DashboardItem) SetID(id string) { d.ID = id }
func (d *DashboardItem) SearchFields() []string {
	return []string{d.Title, d.Category}
}
