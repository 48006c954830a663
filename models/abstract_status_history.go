package models

import "time"

// ActorType identifies who triggered a status change.
type ActorType string

const (
	ActorSystem           ActorType = "system"
	ActorAdmin            ActorType = "admin"
	ActorEditor           ActorType = "editor"
	ActorConferenceEditor ActorType = "conference_editor"
	ActorAuthor           ActorType = "author"
)

func (t ActorType) Valid() bool {
	switch t {
	case ActorSystem, ActorAdmin, ActorEditor, ActorConferenceEditor, ActorAuthor:
		return true
	}
	return false
}

// AbstractStatusHistory is the append-only status ledger. StatusFrom is
// NULL for the initial submission event. Rows are written inside the same
// transaction as the status mutation they record and never updated.
type AbstractStatusHistory struct {
	ID            uint            `gorm:"primaryKey;column:id" json:"id"`
	AbstractID    uint            `gorm:"column:abstract_id" json:"abstract_id"`
	StatusFrom    *AbstractStatus `gorm:"column:status_from" json:"status_from"`
	StatusTo      AbstractStatus  `gorm:"column:status_to" json:"status_to"`
	ChangedByType ActorType       `gorm:"column:changed_by_type" json:"changed_by_type"`
	ChangedByID   *uint           `gorm:"column:changed_by_id" json:"changed_by_id"`
	AssignmentID  *uint           `gorm:"column:assignment_id" json:"assignment_id"`
	ReviewID      *uint           `gorm:"column:review_id" json:"review_id"`
	Remarks       *string         `gorm:"column:remarks" json:"remarks"`
	ChangedAt     time.Time       `gorm:"column:changed_at" json:"changed_at"`
	CreatedAt     time.Time       `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the table name for AbstractStatusHistory.
func (AbstractStatusHistory) TableName() string {
	return "abstract_status_history"
}
