package models

import "time"

// ReviewerType identifies which role produced a review decision.
type ReviewerType string

const (
	ReviewerEditor           ReviewerType = "editor"
	ReviewerConferenceEditor ReviewerType = "conference_editor"
	ReviewerAdmin            ReviewerType = "admin"
)

func (t ReviewerType) Valid() bool {
	switch t {
	case ReviewerEditor, ReviewerConferenceEditor, ReviewerAdmin:
		return true
	}
	return false
}

// ReviewDecision is the outcome of one review action.
type ReviewDecision string

const (
	DecisionAccepted ReviewDecision = "accepted"
	DecisionRejected ReviewDecision = "rejected"
)

func (d ReviewDecision) Valid() bool {
	switch d {
	case DecisionAccepted, DecisionRejected:
		return true
	}
	return false
}

// AbstractReview represents the abstract_reviews table. One immutable row
// per review action. AssignmentID is NULL for the admin's final decision,
// which has no assignment.
type AbstractReview struct {
	ID           uint           `gorm:"primaryKey;column:id" json:"id"`
	AbstractID   uint           `gorm:"column:abstract_id" json:"abstract_id"`
	AssignmentID *uint          `gorm:"column:assignment_id" json:"assignment_id"`
	ReviewerType ReviewerType   `gorm:"column:reviewer_type" json:"reviewer_type"`
	ReviewerID   uint           `gorm:"column:reviewer_id" json:"reviewer_id"`
	Decision     ReviewDecision `gorm:"column:decision" json:"decision"`
	Comment      string         `gorm:"column:comment" json:"comment"`
	StatusBefore AbstractStatus `gorm:"column:status_before" json:"status_before"`
	StatusAfter  AbstractStatus `gorm:"column:status_after" json:"status_after"`
	ReviewedAt   time.Time      `gorm:"column:reviewed_at" json:"reviewed_at"`
	CreatedAt    time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt    *time.Time     `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
}

// TableName overrides the table name for AbstractReview.
func (AbstractReview) TableName() string {
	return "abstract_reviews"
}
