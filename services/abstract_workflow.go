package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"editorial-management-api/config"
	"editorial-management-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Notifier delivers best-effort notifications after a workflow transition
// has committed. Implementations must never be called inside the
// transaction; a returned error is logged and never surfaced to the caller.
type Notifier interface {
	AbstractAssigned(assignment *models.AbstractAssignment, abstract *models.AbstractSubmission) error
	AbstractDecided(review *models.AbstractReview, abstract *models.AbstractSubmission) error
}

// AbstractWorkflowService drives the abstract review state machine. Every
// operation runs as one transaction: status update, assignment/review
// mutation and history append either all commit or all roll back.
type AbstractWorkflowService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewAbstractWorkflowService(db *gorm.DB, notifier Notifier) *AbstractWorkflowService {
	if db == nil {
		db = config.DB
	}
	return &AbstractWorkflowService{db: db, notifier: notifier}
}

// SubmitAbstractInput carries the fields of a new submission. FilePath is
// the already-persisted location of the uploaded abstract file.
type SubmitAbstractInput struct {
	ConferenceID uint
	AuthorID     uint
	Title        string
	FilePath     string
}

// Submit creates a new abstract in status Submitted together with its
// initial history row. A second non-deleted submission for the same
// (author, conference) pair fails with a conflict.
func (s *AbstractWorkflowService) Submit(ctx context.Context, in SubmitAbstractInput) (*models.AbstractSubmission, error) {
	if in.ConferenceID == 0 {
		return nil, errValidation("conference ID is required")
	}
	if in.AuthorID == 0 {
		return nil, errValidation("author ID is required")
	}
	if strings.TrimSpace(in.FilePath) == "" {
		return nil, errValidation("abstract file is required")
	}

	submission := models.AbstractSubmission{
		ConferenceID: in.ConferenceID,
		AuthorID:     in.AuthorID,
		AbstractFile: in.FilePath,
		Status:       models.StatusSubmitted,
	}
	if title := strings.TrimSpace(in.Title); title != "" {
		submission.Title = &title
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.AbstractSubmission
		err := tx.Where("conference_id = ? AND author_id = ? AND deleted_at IS NULL",
			in.ConferenceID, in.AuthorID).First(&existing).Error
		if err == nil {
			return errConflict("an abstract has already been submitted for this conference")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&submission).Error; err != nil {
			return err
		}

		authorID := in.AuthorID
		return s.recordHistory(tx, &models.AbstractStatusHistory{
			AbstractID:    submission.ID,
			StatusFrom:    nil,
			StatusTo:      models.StatusSubmitted,
			ChangedByType: models.ActorAuthor,
			ChangedByID:   &authorID,
		})
	})
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// AssignEditor binds an editor to a Submitted abstract and advances it to
// Assigned to Editor.
func (s *AbstractWorkflowService) AssignEditor(ctx context.Context, abstractID, editorID, adminID uint, notes string) (*models.AbstractSubmission, error) {
	return s.assign(ctx, abstractID, editorID, adminID, notes, models.StageEditor)
}

// AssignConferenceEditor binds a conference editor to an abstract that has
// been reviewed by its editor and advances it to Assigned to Conference
// Editor.
func (s *AbstractWorkflowService) AssignConferenceEditor(ctx context.Context, abstractID, editorID, adminID uint, notes string) (*models.AbstractSubmission, error) {
	return s.assign(ctx, abstractID, editorID, adminID, notes, models.StageConferenceEditor)
}

func (s *AbstractWorkflowService) assign(ctx context.Context, abstractID, editorID, adminID uint, notes string, stage models.AssignmentStage) (*models.AbstractSubmission, error) {
	var action string
	var required, next models.AbstractStatus
	switch stage {
	case models.StageEditor:
		action = "assign editor"
		required = models.StatusSubmitted
		next = models.StatusAssignedToEditor
	case models.StageConferenceEditor:
		action = "assign conference editor"
		required = models.StatusReviewedByEditor
		next = models.StatusAssignedToConferenceEditor
	default:
		return nil, errValidation("unknown assignment stage '%s'", stage)
	}

	var submission models.AbstractSubmission
	var assignment models.AbstractAssignment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockAbstract(tx, abstractID, &submission); err != nil {
			return err
		}
		if submission.Status != required {
			return errInvalidTransition(action, required, submission.Status)
		}

		var editor models.Editor
		err := tx.Where("id = ? AND status = ? AND is_active = ? AND deleted_at IS NULL",
			editorID, "approved", true).First(&editor).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("editor not found")
			}
			return err
		}

		now := time.Now()
		assignment = models.AbstractAssignment{
			AbstractID: abstractID,
			EditorID:   editorID,
			Stage:      stage,
			AssignedBy: adminID,
			Status:     models.AssignmentAssigned,
			AssignedAt: now,
		}
		if trimmed := strings.TrimSpace(notes); trimmed != "" {
			assignment.Notes = &trimmed
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"status":     next,
			"updated_at": now,
		}
		if stage == models.StageEditor {
			updates["current_editor_id"] = editorID
		} else {
			updates["current_conference_editor_id"] = editorID
		}
		if err := tx.Model(&models.AbstractSubmission{}).
			Where("id = ?", abstractID).Updates(updates).Error; err != nil {
			return err
		}

		from := submission.Status
		actorID := adminID
		if err := s.recordHistory(tx, &models.AbstractStatusHistory{
			AbstractID:    abstractID,
			StatusFrom:    &from,
			StatusTo:      next,
			ChangedByType: models.ActorAdmin,
			ChangedByID:   &actorID,
			AssignmentID:  &assignment.ID,
		}); err != nil {
			return err
		}

		submission.Status = next
		if stage == models.StageEditor {
			submission.CurrentEditorID = &editorID
		} else {
			submission.CurrentConferenceEditorID = &editorID
		}
		submission.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyAssigned(&assignment, &submission)
	return &submission, nil
}

// Review records an editor or conference-editor decision. The stage is
// inferred from the abstract's current status; the acting editor must be
// the one currently assigned for that stage. Accept advances the workflow,
// reject is terminal.
func (s *AbstractWorkflowService) Review(ctx context.Context, abstractID, editorID uint, decision models.ReviewDecision, comment string) (*models.AbstractSubmission, error) {
	if !decision.Valid() {
		return nil, errValidation("action must be 'accept' or 'reject'")
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, errValidation("review comment is required")
	}

	var submission models.AbstractSubmission
	var review models.AbstractReview

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockAbstract(tx, abstractID, &submission); err != nil {
			return err
		}

		var stage models.AssignmentStage
		var reviewerType models.ReviewerType
		var actorType models.ActorType
		var currentEditor *uint
		var acceptedNext models.AbstractStatus

		switch submission.Status {
		case models.StatusAssignedToEditor:
			stage = models.StageEditor
			reviewerType = models.ReviewerEditor
			actorType = models.ActorEditor
			currentEditor = submission.CurrentEditorID
			acceptedNext = models.StatusReviewedByEditor
		case models.StatusAssignedToConferenceEditor:
			stage = models.StageConferenceEditor
			reviewerType = models.ReviewerConferenceEditor
			actorType = models.ActorConferenceEditor
			currentEditor = submission.CurrentConferenceEditorID
			acceptedNext = models.StatusReviewedByConferenceEditor
		case models.StatusSubmitted, models.StatusReviewedByEditor,
			models.StatusReviewedByConferenceEditor, models.StatusAccepted, models.StatusRejected:
			return &WorkflowError{
				Kind:    KindInvalidTransition,
				Message: "cannot review: no review stage is open in status '" + string(submission.Status) + "'",
			}
		default:
			return errValidation("abstract has unknown status '%s'", submission.Status)
		}

		if currentEditor == nil || *currentEditor != editorID {
			return errUnauthorized("you are not the assigned %s for this abstract", stage)
		}

		// Most recently created active assignment wins when reassignment
		// has left multiple rows for the stage.
		var assignment models.AbstractAssignment
		err := tx.Where("abstract_id = ? AND stage = ? AND status = ? AND deleted_at IS NULL",
			abstractID, stage, models.AssignmentAssigned).
			Order("assigned_at DESC, id DESC").
			First(&assignment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("no active assignment for stage '%s'", stage)
			}
			return err
		}

		now := time.Now()
		next := acceptedNext
		if decision == models.DecisionRejected {
			next = models.StatusRejected
		}

		if err := tx.Model(&models.AbstractAssignment{}).
			Where("id = ?", assignment.ID).
			Updates(map[string]interface{}{
				"status":       models.AssignmentReviewed,
				"completed_at": now,
				"updated_at":   now,
			}).Error; err != nil {
			return err
		}

		assignmentID := assignment.ID
		review = models.AbstractReview{
			AbstractID:   abstractID,
			AssignmentID: &assignmentID,
			ReviewerType: reviewerType,
			ReviewerID:   editorID,
			Decision:     decision,
			Comment:      comment,
			StatusBefore: submission.Status,
			StatusAfter:  next,
			ReviewedAt:   now,
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.AbstractSubmission{}).
			Where("id = ?", abstractID).
			Updates(map[string]interface{}{
				"status":     next,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		from := submission.Status
		actorID := editorID
		if err := s.recordHistory(tx, &models.AbstractStatusHistory{
			AbstractID:    abstractID,
			StatusFrom:    &from,
			StatusTo:      next,
			ChangedByType: actorType,
			ChangedByID:   &actorID,
			AssignmentID:  &assignmentID,
			ReviewID:      &review.ID,
		}); err != nil {
			return err
		}

		submission.Status = next
		submission.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyDecided(&review, &submission)
	return &submission, nil
}

// AdminDecision records the admin's final accept/reject once the
// conference editor has reviewed. The review row carries no assignment. A
// rejection requires a comment; an acceptance may leave it empty.
func (s *AbstractWorkflowService) AdminDecision(ctx context.Context, abstractID, adminID uint, decision models.ReviewDecision, comment string) (*models.AbstractSubmission, error) {
	if !decision.Valid() {
		return nil, errValidation("action must be 'accept' or 'reject'")
	}
	comment = strings.TrimSpace(comment)
	if decision == models.DecisionRejected && comment == "" {
		return nil, errValidation("a comment is required when rejecting an abstract")
	}

	var submission models.AbstractSubmission
	var review models.AbstractReview

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockAbstract(tx, abstractID, &submission); err != nil {
			return err
		}
		if submission.Status != models.StatusReviewedByConferenceEditor {
			return errInvalidTransition("record final decision", models.StatusReviewedByConferenceEditor, submission.Status)
		}

		now := time.Now()
		next := models.StatusAccepted
		if decision == models.DecisionRejected {
			next = models.StatusRejected
		}

		review = models.AbstractReview{
			AbstractID:   abstractID,
			AssignmentID: nil,
			ReviewerType: models.ReviewerAdmin,
			ReviewerID:   adminID,
			Decision:     decision,
			Comment:      comment,
			StatusBefore: submission.Status,
			StatusAfter:  next,
			ReviewedAt:   now,
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.AbstractSubmission{}).
			Where("id = ?", abstractID).
			Updates(map[string]interface{}{
				"status":     next,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		from := submission.Status
		actorID := adminID
		if err := s.recordHistory(tx, &models.AbstractStatusHistory{
			AbstractID:    abstractID,
			StatusFrom:    &from,
			StatusTo:      next,
			ChangedByType: models.ActorAdmin,
			ChangedByID:   &actorID,
			ReviewID:      &review.ID,
		}); err != nil {
			return err
		}

		submission.Status = next
		submission.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyDecided(&review, &submission)
	return &submission, nil
}

// FullPaperUpload describes one already-persisted full paper file.
type FullPaperUpload struct {
	FileName string
	FileType string
	FilePath string
}

// AttachFullPapers stores full-paper files for an accepted abstract. The
// requester must be the owning author. Re-uploads append new rows, never
// replace existing ones.
func (s *AbstractWorkflowService) AttachFullPapers(ctx context.Context, abstractID, authorID uint, files []FullPaperUpload) ([]models.FullPaperFile, error) {
	if len(files) == 0 {
		return nil, errValidation("at least one file is required")
	}

	var created []models.FullPaperFile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var submission models.AbstractSubmission
		if err := lockAbstract(tx, abstractID, &submission); err != nil {
			return err
		}
		if submission.AuthorID != authorID {
			return errUnauthorized("only the submitting author can upload full papers")
		}
		if submission.Status != models.StatusAccepted {
			return errInvalidState("full papers can only be uploaded for accepted abstracts (current status '%s')", submission.Status)
		}

		for _, f := range files {
			row := models.FullPaperFile{
				AbstractID: abstractID,
				FileName:   f.FileName,
				FileType:   f.FileType,
				FilePath:   f.FilePath,
				UploadedBy: authorID,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			created = append(created, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// recordHistory appends one immutable ledger row. It must always run
// inside the transaction of the status mutation it records.
func (s *AbstractWorkflowService) recordHistory(tx *gorm.DB, h *models.AbstractStatusHistory) error {
	if h.ChangedAt.IsZero() {
		h.ChangedAt = time.Now()
	}
	return tx.Create(h).Error
}

// lockAbstract loads the submission row under FOR UPDATE so concurrent
// transitions on the same abstract serialize; the loser re-reads the
// post-transition status and fails its precondition check.
func lockAbstract(tx *gorm.DB, abstractID uint, dst *models.AbstractSubmission) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND deleted_at IS NULL", abstractID).
		First(dst).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound("abstract not found")
		}
		return err
	}
	return nil
}

func (s *AbstractWorkflowService) notifyAssigned(assignment *models.AbstractAssignment, submission *models.AbstractSubmission) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.AbstractAssigned(assignment, submission); err != nil {
		log.Printf("Warning: assignment notification for abstract %d failed: %v", submission.ID, err)
	}
}

func (s *AbstractWorkflowService) notifyDecided(review *models.AbstractReview, submission *models.AbstractSubmission) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.AbstractDecided(review, submission); err != nil {
		log.Printf("Warning: decision notification for abstract %d failed: %v", submission.ID, err)
	}
}
