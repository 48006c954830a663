package models

import "time"

// Editor represents the editor_applications table. An approved, active
// application is what the workflow treats as an assignable editor.
type Editor struct {
	ID             uint       `gorm:"primaryKey;column:id" json:"id"`
	JournalID      uint       `gorm:"column:journal_id" json:"journal_id"`
	Title          *string    `gorm:"column:title" json:"title,omitempty"`
	FirstName      string     `gorm:"column:first_name" json:"first_name"`
	LastName       string     `gorm:"column:last_name" json:"last_name"`
	Email          string     `gorm:"column:email" json:"email"`
	Qualification  *string    `gorm:"column:qualification" json:"qualification,omitempty"`
	Specialization *string    `gorm:"column:specialization" json:"specialization,omitempty"`
	Institute      *string    `gorm:"column:institute" json:"institute,omitempty"`
	Status         string     `gorm:"column:status" json:"status"`
	IsActive       bool       `gorm:"column:is_active" json:"is_active"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt      *time.Time `gorm:"column:deleted_at" json:"-"`
}

// TableName overrides the table name for Editor.
func (Editor) TableName() string {
	return "editor_applications"
}

// FullName joins the editor's first and last names for mail templates.
func (e *Editor) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
