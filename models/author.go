package models

import "time"

// Author represents the authors table. Account management lives in the
// identity service; this model only resolves and hydrates author references.
type Author struct {
	ID        uint       `gorm:"primaryKey;column:id" json:"id"`
	FirstName string     `gorm:"column:first_name" json:"first_name"`
	LastName  string     `gorm:"column:last_name" json:"last_name"`
	Email     string     `gorm:"column:email" json:"email"`
	Institute *string    `gorm:"column:institute" json:"institute,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"-"`
}

// TableName overrides the table name for Author.
func (Author) TableName() string {
	return "authors"
}

// FullName joins the author's first and last names for mail templates.
func (a *Author) FullName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}
