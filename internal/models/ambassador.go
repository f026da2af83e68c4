package models

type Ambassador struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	Name      string    `json:"name" gorm:"not null"`
	Title     string    `json:"title"`
	Bio       string    `json:"bio" gorm:"type:text"`
	Image     string    `json:"image"`
	Twitter   string    `json:"twitter"`
	Twitch    string    `json:"twitch"`
	YouTube   string    `json:"youtube"`
	Instagram string    `json:"instagram"`
	CreatedAt Timestamp `json:"createdAt"`
}

func (a *Ambassador) GetID() string   { return a.ID }
func (a *Ambassador) SetID(id string) { a.ID = id }
func (a *Ambassador) SearchFields() []string {
	return []string{a.Name, a.Title}
}
