package models

// Record is implemented by every admin-managed record.
type Record interface {
	GetID() string
	SetID(id string)
	// SearchFields are the values the admin search box matches against.
	SearchFields() []string
}
