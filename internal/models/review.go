package models

type Review struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	ProductID string    `json:"productId" gorm:"size:64;index"`
	UserName  string    `json:"userName" gorm:"not null"`
	UserEmail string    `json:"userEmail"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment" gorm:"type:text"`
	Verified  bool      `json:"verified"`
	Helpful   int       `json:"helpful" gorm:"default:0"`
	CreatedAt Timestamp `json:"createdAt" gorm:"index"`
}

const (
	MinRating = 1
	MaxRating = 5
)

func (r *Review) GetID() string   { return r.ID }
func (r *Review) SetID(id string) { r.ID = id }
func (r *Review) SearchFields() []string {
	return []string{r.UserName, r.UserEmail, r.Comment}
}
