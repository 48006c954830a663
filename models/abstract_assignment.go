package models

import "time"

// AssignmentStage identifies which reviewer role an assignment binds.
type AssignmentStage string

const (
	StageEditor           AssignmentStage = "editor"
	StageConferenceEditor AssignmentStage = "conference_editor"
)

func (s AssignmentStage) Valid() bool {
	switch s {
	case StageEditor, StageConferenceEditor:
		return true
	}
	return false
}

// AssignmentStatus is the lifecycle state of one assignment record.
// 'reassigned' and 'cancelled' are accepted on read but no workflow
// operation currently produces them.
type AssignmentStatus string

const (
	AssignmentAssigned   AssignmentStatus = "assigned"
	AssignmentReviewed   AssignmentStatus = "reviewed"
	AssignmentReassigned AssignmentStatus = "reassigned"
	AssignmentCancelled  AssignmentStatus = "cancelled"
)

func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentAssigned, AssignmentReviewed, AssignmentReassigned, AssignmentCancelled:
		return true
	}
	return false
}

// AbstractAssignment represents the abstract_assignments table.
// One row per assignment event; at most one row per (abstract, stage)
// may be in 'assigned' status at a time.
type AbstractAssignment struct {
	ID          uint             `gorm:"primaryKey;column:id" json:"id"`
	AbstractID  uint             `gorm:"column:abstract_id" json:"abstract_id"`
	EditorID    uint             `gorm:"column:editor_id" json:"editor_id"`
	Stage       AssignmentStage  `gorm:"column:stage" json:"stage"`
	AssignedBy  uint             `gorm:"column:assigned_by" json:"assigned_by"`
	Status      AssignmentStatus `gorm:"column:status" json:"status"`
	AssignedAt  time.Time        `gorm:"column:assigned_at" json:"assigned_at"`
	CompletedAt *time.Time       `gorm:"column:completed_at" json:"completed_at"`
	Notes       *string          `gorm:"column:notes" json:"notes"`
	CreatedAt   time.Time        `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt   *time.Time       `gorm:"column:deleted_at" json:"deleted_at,omitempty"`

	Editor *Editor `gorm:"foreignKey:EditorID" json:"editor,omitempty"`
}

// TableName overrides the table name for AbstractAssignment.
func (AbstractAssignment) TableName() string {
	return "abstract_assignments"
}
