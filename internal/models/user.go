package models

type AdminUser struct {
	ID           string    `json:"id" gorm:"primaryKey;size:64"`
	Email        string    `json:"email" gorm:"unique;not null"`
	Name         string    `json:"name"`
	Role         UserRole  `json:"role" gorm:"size:32;default:'admin'"`
	PasswordHash string    `json:"-" gorm:"not null"`
	IsActive     bool      `json:"isActive" gorm:"default:true"`
	CreatedAt    Timestamp `json:"createdAt"`
	UpdatedAt    Timestamp `json:"updatedAt"`
}

type UserRole string

const (
	SuperAdmin UserRole = "super_admin"
	Admin      UserRole = "admin"
)
