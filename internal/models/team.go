package models

// Team owns its roster through the players table. Version increases on
// every write to the team or its players.
type Team struct {
	ID           string     `json:"id" gorm:"primaryKey;size:64"`
	Name         string     `json:"name" gorm:"not null"`
	Game         string     `json:"game"`
	Logo         string     `json:"logo"`
	Description  string     `json:"description" gorm:"type:text"`
	Achievements []string   `json:"achievements" gorm:"type:text;serializer:json"`
	Version      int        `json:"version" gorm:"not null;default:1"`
	Players      []Player   `json:"players" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	CreatedAt    Timestamp  `json:"createdAt"`
	UpdatedAt    Timestamp  `json:"updatedAt"`
}

type Player struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	TeamID    string    `json:"teamId" gorm:"size:64;index;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Gamertag  string    `json:"gamertag"`
	Role      string    `json:"role"`
	Image     string    `json:"image"`
	Country   string    `json:"country"`
	Twitter   string    `json:"twitter"`
	Twitch    string    `json:"twitch"`
	Position  int       `json:"position" gorm:"default:0"`
	CreatedAt Timestamp `json:"createdAt"`
}

// PlayerPatch is a partial player update. Nil fields keep the stored value.
type PlayerPatch struct {
	Name     *string `json:"name"`
	Gamertag *string `json:"gamertag"`
	Role     *string `json:"role"`
	Image    *string `json:"image"`
	Country  *string `json:"country"`
	Twitter  *string `json:"twitter"`
	Twitch   *string `json:"twitch"`
	Position *int    `json:"position"`
}

func (p PlayerPatch) Apply(player *Player) {
	for dst, src := range map[*string]*string{
		&player.Name:     p.Name,
		&player.Gamertag: p.Gamertag,
		&player.Role:     p.Role,
		&player.Image:    p.Image,
		&player.Country:  p.Country,
		&player.Twitter:  p.Twitter,
		&player.Twitch:   p.Twitch,
	} {
		if src != nil {
			*dst = *src
		}
	}
	if p.Position != nil {
		player.Position = *p.Position
	}
}

// Player returns the roster entry with the given id.
func (t *Team) Player(id string) (Player, bool) {
	for _, p := range t.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

func (t *Team) GetID() string   { return t.ID }
func (t *Team) SetID(id string) { t.ID = id }
func (t *Team) SearchFields() []string {
	return []string{t.Name, t.Game}
}
