package models

import "time"

// Conference represents the conferences table. Catalog CRUD is handled
// elsewhere; the workflow only reads it for hydration.
type Conference struct {
	ID        uint       `gorm:"primaryKey;column:id" json:"id"`
	Name      string     `gorm:"column:name" json:"name"`
	Venue     *string    `gorm:"column:venue" json:"venue,omitempty"`
	StartDate *time.Time `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate   *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"-"`
}

// TableName overrides the table name for Conference.
func (Conference) TableName() string {
	return "conferences"
}
