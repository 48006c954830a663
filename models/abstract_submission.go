package models

import (
	"fmt"
	"time"
)

// AbstractStatus is the workflow state of an abstract submission.
type AbstractStatus string

const (
	StatusSubmitted                  AbstractStatus = "Submitted"
	StatusAssignedToEditor           AbstractStatus = "Assigned to Editor"
	StatusReviewedByEditor           AbstractStatus = "Reviewed by Editor"
	StatusAssignedToConferenceEditor AbstractStatus = "Assigned to Conference Editor"
	StatusReviewedByConferenceEditor AbstractStatus = "Reviewed by Conference Editor"
	StatusAccepted                   AbstractStatus = "Accepted"
	StatusRejected                   AbstractStatus = "Rejected"
)

// AbstractStatuses lists every defined workflow state.
var AbstractStatuses = []AbstractStatus{
	StatusSubmitted,
	StatusAssignedToEditor,
	StatusReviewedByEditor,
	StatusAssignedToConferenceEditor,
	StatusReviewedByConferenceEditor,
	StatusAccepted,
	StatusRejected,
}

func (s AbstractStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusAssignedToEditor, StatusReviewedByEditor,
		StatusAssignedToConferenceEditor, StatusReviewedByConferenceEditor,
		StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is defined from s.
func (s AbstractStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// ParseAbstractStatus converts a stored string back to a typed status.
func ParseAbstractStatus(raw string) (AbstractStatus, error) {
	s := AbstractStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown abstract status '%s'", raw)
	}
	return s, nil
}

// AbstractSubmission represents the abstract_submissions table.
// One non-deleted row per (author, conference); mutated only by the
// workflow service, soft-deleted only.
type AbstractSubmission struct {
	ID                        uint           `gorm:"primaryKey;column:id" json:"id"`
	ConferenceID              uint           `gorm:"column:conference_id" json:"conference_id"`
	AuthorID                  uint           `gorm:"column:author_id" json:"author_id"`
	Title                     *string        `gorm:"column:title" json:"title,omitempty"`
	AbstractFile              string         `gorm:"column:abstract_file" json:"abstract_file"`
	Status                    AbstractStatus `gorm:"column:status" json:"status"`
	CurrentEditorID           *uint          `gorm:"column:current_editor_id" json:"current_editor_id"`
	CurrentConferenceEditorID *uint          `gorm:"column:current_conference_editor_id" json:"current_conference_editor_id"`
	CreatedAt                 time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt                 time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt                 *time.Time     `gorm:"column:deleted_at" json:"deleted_at,omitempty"`

	Conference *Conference `gorm:"foreignKey:ConferenceID" json:"conference,omitempty"`
	Author     *Author     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// TableName overrides the table name for AbstractSubmission.
func (AbstractSubmission) TableName() string {
	return "abstract_submissions"
}
