package models

import "time"

// Admin represents the admins table.
type Admin struct {
	ID        uint       `gorm:"primaryKey;column:id" json:"id"`
	FirstName string     `gorm:"column:first_name" json:"first_name"`
	LastName  string     `gorm:"column:last_name" json:"last_name"`
	Email     string     `gorm:"column:email" json:"email"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"-"`
}

// TableName overrides the table name for Admin.
func (Admin) TableName() string {
	return "admins"
}
