package models

type ScheduleMatch struct {
	ID         string      `json:"id" gorm:"primaryKey;size:64"`
	Game       string      `json:"game"`
	Team       string      `json:"team" gorm:"not null"`
	Opponent   string      `json:"opponent" gorm:"not null"`
	Tournament string      `json:"tournament"`
	Date       Timestamp   `json:"date" gorm:"index"`
	Status     MatchStatus `json:"status" gorm:"size:16;default:'upcoming'"`
	Score      string      `json:"score"`
	StreamURL  string      `json:"streamUrl"`
}

type MatchStatus string

const (
	MatchUpcoming  MatchStatus = "upcoming"
	MatchLive      MatchStatus = "live"
	MatchCompleted MatchStatus = "completed"
)

type ScheduleEvent struct {
	ID          string    `json:"id" gorm:"primaryKey;size:64"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Date        Timestamp `json:"date" gorm:"index"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
}

func (m *ScheduleMatch) GetID() string   { return m.ID }
func (m *ScheduleMatch) SetID(id string) { m.ID = id }
func (m *ScheduleMatch) SearchFields() []string {
	return []string{m.Team, m.Opponent, m.Tournament, m.Game}
}

func (e *ScheduleEvent) GetID() string   { return e.ID }
func (e *ScheduleEvent) SetID(id string) { e.ID = id }
func (e *ScheduleEvent) SearchFields() []string {
	return []string{e.Title, e.Location, e.Type}
}
