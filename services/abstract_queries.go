package services

import (
	"context"
	"errors"

	"editorial-management-api/config"
	"editorial-management-api/models"

	"gorm.io/gorm"
)

// AbstractDetail is the fixed read-model shape returned by the query
// service: the submission plus its conference, author, the latest
// assignment per stage, the latest review per reviewer type, and
// optionally the attached full-paper files.
type AbstractDetail struct {
	models.AbstractSubmission
	EditorAssignment           *models.AbstractAssignment `json:"editor_assignment,omitempty"`
	ConferenceEditorAssignment *models.AbstractAssignment `json:"conference_editor_assignment,omitempty"`
	EditorReview               *models.AbstractReview     `json:"editor_review,omitempty"`
	ConferenceEditorReview     *models.AbstractReview     `json:"conference_editor_review,omitempty"`
	AdminReview                *models.AbstractReview     `json:"admin_review,omitempty"`
	FullPapers                 []models.FullPaperFile     `json:"full_papers,omitempty"`
}

// AbstractQueryService assembles hydrated abstract read models with
// explicit queries instead of ad-hoc eager loading.
type AbstractQueryService struct {
	db *gorm.DB
}

func NewAbstractQueryService(db *gorm.DB) *AbstractQueryService {
	if db == nil {
		db = config.DB
	}
	return &AbstractQueryService{db: db}
}

// ListByConference returns every non-deleted abstract of a conference,
// newest first, fully hydrated including full-paper files.
func (q *AbstractQueryService) ListByConference(ctx context.Context, conferenceID uint) ([]AbstractDetail, error) {
	var submissions []models.AbstractSubmission
	err := q.db.WithContext(ctx).
		Where("conference_id = ? AND deleted_at IS NULL", conferenceID).
		Order("created_at DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return q.hydrate(ctx, submissions, true)
}

// ListAssignedToEditor returns the abstracts an editor is responsible for:
// currently assigned at either stage (including already reviewed ones
// awaiting the next step), plus rejected abstracts the editor handled.
func (q *AbstractQueryService) ListAssignedToEditor(ctx context.Context, editorID uint) ([]AbstractDetail, error) {
	editorStatuses := []models.AbstractStatus{models.StatusAssignedToEditor, models.StatusReviewedByEditor}
	confStatuses := []models.AbstractStatus{models.StatusAssignedToConferenceEditor, models.StatusReviewedByConferenceEditor}

	var submissions []models.AbstractSubmission
	err := q.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Where("(current_editor_id = ? AND status IN ?) OR (current_conference_editor_id = ? AND status IN ?) OR (status = ? AND id IN (SELECT abstract_id FROM abstract_assignments WHERE editor_id = ? AND deleted_at IS NULL))",
			editorID, editorStatuses, editorID, confStatuses, models.StatusRejected, editorID).
		Order("updated_at DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return q.hydrate(ctx, submissions, false)
}

// ListAcceptedByAuthor returns an author's accepted abstracts with their
// full-paper files attached.
func (q *AbstractQueryService) ListAcceptedByAuthor(ctx context.Context, authorID uint) ([]AbstractDetail, error) {
	var submissions []models.AbstractSubmission
	err := q.db.WithContext(ctx).
		Where("author_id = ? AND status = ? AND deleted_at IS NULL", authorID, models.StatusAccepted).
		Order("updated_at DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return q.hydrate(ctx, submissions, true)
}

// Detail returns one hydrated abstract.
func (q *AbstractQueryService) Detail(ctx context.Context, abstractID uint) (*AbstractDetail, error) {
	var submission models.AbstractSubmission
	err := q.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", abstractID).
		First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("abstract not found")
		}
		return nil, err
	}
	details, err := q.hydrate(ctx, []models.AbstractSubmission{submission}, true)
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (q *AbstractQueryService) hydrate(ctx context.Context, submissions []models.AbstractSubmission, withFiles bool) ([]AbstractDetail, error) {
	details := make([]AbstractDetail, 0, len(submissions))
	if len(submissions) == 0 {
		return details, nil
	}

	abstractIDs := make([]uint, 0, len(submissions))
	conferenceIDs := make([]uint, 0, len(submissions))
	authorIDs := make([]uint, 0, len(submissions))
	for _, s := range submissions {
		abstractIDs = append(abstractIDs, s.ID)
		conferenceIDs = append(conferenceIDs, s.ConferenceID)
		authorIDs = append(authorIDs, s.AuthorID)
	}

	conferences, err := q.loadConferences(ctx, conferenceIDs)
	if err != nil {
		return nil, err
	}
	authors, err := q.loadAuthors(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	assignments, err := q.loadLatestAssignments(ctx, abstractIDs)
	if err != nil {
		return nil, err
	}
	reviews, err := q.loadLatestReviews(ctx, abstractIDs)
	if err != nil {
		return nil, err
	}

	var files map[uint][]models.FullPaperFile
	if withFiles {
		files, err = q.loadFullPapers(ctx, abstractIDs)
		if err != nil {
			return nil, err
		}
	}

	for _, s := range submissions {
		d := AbstractDetail{AbstractSubmission: s}
		if c, ok := conferences[s.ConferenceID]; ok {
			d.Conference = c
		}
		if a, ok := authors[s.AuthorID]; ok {
			d.Author = a
		}
		d.EditorAssignment = assignments[assignmentKey{s.ID, models.StageEditor}]
		d.ConferenceEditorAssignment = assignments[assignmentKey{s.ID, models.StageConferenceEditor}]
		d.EditorReview = reviews[reviewKey{s.ID, models.ReviewerEditor}]
		d.ConferenceEditorReview = reviews[reviewKey{s.ID, models.ReviewerConferenceEditor}]
		d.AdminReview = reviews[reviewKey{s.ID, models.ReviewerAdmin}]
		if withFiles {
			d.FullPapers = files[s.ID]
		}
		details = append(details, d)
	}
	return details, nil
}

func (q *AbstractQueryService) loadConferences(ctx context.Context, ids []uint) (map[uint]*models.Conference, error) {
	var rows []models.Conference
	if err := q.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Conference, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}
	return byID, nil
}

func (q *AbstractQueryService) loadAuthors(ctx context.Context, ids []uint) (map[uint]*models.Author, error) {
	var rows []models.Author
	if err := q.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Author, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}
	return byID, nil
}

type assignmentKey struct {
	abstractID uint
	stage      models.AssignmentStage
}

// loadLatestAssignments picks the most recent assignment per
// (abstract, stage) and attaches its editor.
func (q *AbstractQueryService) loadLatestAssignments(ctx context.Context, abstractIDs []uint) (map[assignmentKey]*models.AbstractAssignment, error) {
	var rows []models.AbstractAssignment
	err := q.db.WithContext(ctx).
		Where("abstract_id IN ? AND deleted_at IS NULL", abstractIDs).
		Order("assigned_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	latest := make(map[assignmentKey]*models.AbstractAssignment)
	editorIDs := make([]uint, 0, len(rows))
	for i := range rows {
		key := assignmentKey{rows[i].AbstractID, rows[i].Stage}
		if _, seen := latest[key]; seen {
			continue
		}
		latest[key] = &rows[i]
		editorIDs = append(editorIDs, rows[i].EditorID)
	}
	if len(editorIDs) == 0 {
		return latest, nil
	}

	var editors []models.Editor
	if err := q.db.WithContext(ctx).Where("id IN ?", editorIDs).Find(&editors).Error; err != nil {
		return nil, err
	}
	editorsByID := make(map[uint]*models.Editor, len(editors))
	for i := range editors {
		editorsByID[editors[i].ID] = &editors[i]
	}
	for _, a := range latest {
		a.Editor = editorsByID[a.EditorID]
	}
	return latest, nil
}

type reviewKey struct {
	abstractID   uint
	reviewerType models.ReviewerType
}

// loadLatestReviews picks the most recent review per (abstract, reviewer type).
func (q *AbstractQueryService) loadLatestReviews(ctx context.Context, abstractIDs []uint) (map[reviewKey]*models.AbstractReview, error) {
	var rows []models.AbstractReview
	err := q.db.WithContext(ctx).
		Where("abstract_id IN ? AND deleted_at IS NULL", abstractIDs).
		Order("reviewed_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	latest := make(map[reviewKey]*models.AbstractReview)
	for i := range rows {
		key := reviewKey{rows[i].AbstractID, rows[i].ReviewerType}
		if _, seen := latest[key]; seen {
			continue
		}
		latest[key] = &rows[i]
	}
	return latest, nil
}

func (q *AbstractQueryService) loadFullPapers(ctx context.Context, abstractIDs []uint) (map[uint][]models.FullPaperFile, error) {
	var rows []models.FullPaperFile
	err := q.db.WithContext(ctx).
		Where("abstract_id IN ? AND deleted_at IS NULL", abstractIDs).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	byAbstract := make(map[uint][]models.FullPaperFile)
	for _, f := range rows {
		byAbstract[f.AbstractID] = append(byAbstract[f.AbstractID], f)
	}
	return byAbstract, nil
}
