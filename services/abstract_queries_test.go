package services

import (
	"context"
	"testing"
	"time"

	"editorial-management-api/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reviewColumns = []string{
	"id", "abstract_id", "assignment_id", "reviewer_type", "reviewer_id", "decision",
	"comment", "status_before", "status_after", "reviewed_at", "created_at", "updated_at", "deleted_at",
}

func reviewRowAt(rows *sqlmock.Rows, id, abstractID uint, assignmentID interface{}, reviewerType models.ReviewerType, decision models.ReviewDecision, reviewedAt time.Time) *sqlmock.Rows {
	return rows.AddRow(
		id, abstractID, assignmentID, string(reviewerType), 3, string(decision),
		"comment", string(models.StatusAssignedToEditor), string(models.StatusReviewedByEditor),
		reviewedAt, reviewedAt, reviewedAt, nil,
	)
}

func TestDetailHydratesEverything(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAbstractQueryService(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM `abstract_submissions`").
		WillReturnRows(submissionRow(1, 5, 9, models.StatusAccepted, 3, 7))
	mock.ExpectQuery("SELECT (.+) FROM `conferences`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(5, "ICSE 2026"))
	mock.ExpectQuery("SELECT (.+) FROM `authors`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email"}).
			AddRow(9, "Alice", "Author", "alice@example.org"))
	mock.ExpectQuery("SELECT (.+) FROM `abstract_assignments`").
		WillReturnRows(sqlmock.NewRows(assignmentColumns).
			AddRow(12, 1, 7, string(models.StageConferenceEditor), 1, string(models.AssignmentReviewed), now, now, nil, now, now, nil).
			AddRow(11, 1, 3, string(models.StageEditor), 1, string(models.AssignmentReviewed), now.Add(-time.Hour), now, nil, now, now, nil))
	mock.ExpectQuery("SELECT (.+) FROM `editor_applications`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "status", "is_active"}).
			AddRow(7, "Carol", "Conf", "carol@example.org", "approved", true).
			AddRow(3, "Jane", "Doe", "jane@example.org", "approved", true))
	reviewRows := sqlmock.NewRows(reviewColumns)
	reviewRowAt(reviewRows, 31, 1, nil, models.ReviewerAdmin, models.DecisionAccepted, now)
	reviewRowAt(reviewRows, 22, 1, 12, models.ReviewerConferenceEditor, models.DecisionAccepted, now.Add(-time.Hour))
	reviewRowAt(reviewRows, 21, 1, 11, models.ReviewerEditor, models.DecisionAccepted, now.Add(-2*time.Hour))
	mock.ExpectQuery("SELECT (.+) FROM `abstract_reviews`").
		WillReturnRows(reviewRows)
	mock.ExpectQuery("SELECT (.+) FROM `full_paper_files`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "abstract_id", "file_name", "file_type", "file_path", "uploaded_by"}).
			AddRow(41, 1, "paper.pdf", "application/pdf", "uploads/full_papers/p1.pdf", 9))

	detail, err := svc.Detail(context.Background(), 1)
	require.NoError(t, err)

	require.NotNil(t, detail.Conference)
	assert.Equal(t, "ICSE 2026", detail.Conference.Name)
	require.NotNil(t, detail.Author)
	assert.Equal(t, "Alice Author", detail.Author.FullName())

	require.NotNil(t, detail.EditorAssignment)
	assert.Equal(t, uint(11), detail.EditorAssignment.ID)
	require.NotNil(t, detail.EditorAssignment.Editor)
	assert.Equal(t, "Jane Doe", detail.EditorAssignment.Editor.FullName())
	require.NotNil(t, detail.ConferenceEditorAssignment)
	assert.Equal(t, uint(12), detail.ConferenceEditorAssignment.ID)

	require.NotNil(t, detail.EditorReview)
	assert.Equal(t, uint(21), detail.EditorReview.ID)
	require.NotNil(t, detail.ConferenceEditorReview)
	assert.Equal(t, uint(22), detail.ConferenceEditorReview.ID)
	require.NotNil(t, detail.AdminReview)
	assert.Equal(t, uint(31), detail.AdminReview.ID)
	assert.Nil(t, detail.AdminReview.AssignmentID)

	require.Len(t, detail.FullPapers, 1)
	assert.Equal(t, "paper.pdf", detail.FullPapers[0].FileName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDetailUnknownAbstract(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAbstractQueryService(db)

	mock.ExpectQuery("SELECT (.+) FROM `abstract_submissions`").
		WillReturnRows(sqlmock.NewRows(submissionColumns))

	_, err := svc.Detail(context.Background(), 42)
	assert.Equal(t, KindNotFound, wfError(t, err).Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestAssignmentWinsPerStage(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAbstractQueryService(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM `abstract_submissions`").
		WillReturnRows(submissionRow(1, 5, 9, models.StatusAssignedToEditor, 4, nil))
	mock.ExpectQuery("SELECT (.+) FROM `conferences`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(5, "ICSE 2026"))
	mock.ExpectQuery("SELECT (.+) FROM `authors`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name"}).AddRow(9, "Alice"))
	// Rows arrive newest first; only the first per stage must survive.
	mock.ExpectQuery("SELECT (.+) FROM `abstract_assignments`").
		WillReturnRows(sqlmock.NewRows(assignmentColumns).
			AddRow(13, 1, 4, string(models.StageEditor), 1, string(models.AssignmentAssigned), now, nil, nil, now, now, nil).
			AddRow(11, 1, 3, string(models.StageEditor), 1, string(models.AssignmentCancelled), now.Add(-time.Hour), nil, nil, now, now, nil))
	mock.ExpectQuery("SELECT (.+) FROM `editor_applications`").
		WillReturnRows(editorRow(4))
	mock.ExpectQuery("SELECT (.+) FROM `abstract_reviews`").
		WillReturnRows(sqlmock.NewRows(reviewColumns))
	mock.ExpectQuery("SELECT (.+) FROM `full_paper_files`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	detail, err := svc.Detail(context.Background(), 1)
	require.NoError(t, err)

	require.NotNil(t, detail.EditorAssignment)
	assert.Equal(t, uint(13), detail.EditorAssignment.ID)
	assert.Equal(t, uint(4), detail.EditorAssignment.EditorID)
	assert.Nil(t, detail.ConferenceEditorAssignment)
	assert.Nil(t, detail.EditorReview)
	assert.Empty(t, detail.FullPapers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByConferenceEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAbstractQueryService(db)

	mock.ExpectQuery("SELECT (.+) FROM `abstract_submissions`").
		WillReturnRows(sqlmock.NewRows(submissionColumns))

	details, err := svc.ListByConference(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, details)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAssignedToEditorSkipsFullPapers(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAbstractQueryService(db)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM `abstract_submissions`").
		WillReturnRows(submissionRow(1, 5, 9, models.StatusAssignedToEditor, 3, nil))
	mock.ExpectQuery("SELECT (.+) FROM `conferences`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(5, "ICSE 2026"))
	mock.ExpectQuery("SELECT (.+) FROM `authors`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name"}).AddRow(9, "Alice"))
	mock.ExpectQuery("SELECT (.+) FROM `abstract_assignments`").
		WillReturnRows(sqlmock.NewRows(assignmentColumns).
			AddRow(11, 1, 3, string(models.StageEditor), 1, string(models.AssignmentAssigned), now, nil, nil, now, now, nil))
	mock.ExpectQuery("SELECT (.+) FROM `editor_applications`").
		WillReturnRows(editorRow(3))
	mock.ExpectQuery("SELECT (.+) FROM `abstract_reviews`").
		WillReturnRows(sqlmock.NewRows(reviewColumns))
	// No full_paper_files query on the editor worklist.

	details, err := svc.ListAssignedToEditor(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Nil(t, details[0].FullPapers)
	require.NotNil(t, details[0].EditorAssignment)
	assert.Equal(t, uint(11), details[0].EditorAssignment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAcceptedByAuthorIncludesFiles(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewAbstractQueryService(db)

	mock.ExpectQuery("SELECT (.+) FROM `abstract_submissions`").
		WillReturnRows(submissionRow(1, 5, 9, models.StatusAccepted, 3, 7))
	mock.ExpectQuery("SELECT (.+) FROM `conferences`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(5, "ICSE 2026"))
	mock.ExpectQuery("SELECT (.+) FROM `authors`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name"}).AddRow(9, "Alice"))
	mock.ExpectQuery("SELECT (.+) FROM `abstract_assignments`").
		WillReturnRows(sqlmock.NewRows(assignmentColumns))
	mock.ExpectQuery("SELECT (.+) FROM `abstract_reviews`").
		WillReturnRows(sqlmock.NewRows(reviewColumns))
	mock.ExpectQuery("SELECT (.+) FROM `full_paper_files`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "abstract_id", "file_name", "file_type", "file_path", "uploaded_by"}).
			AddRow(41, 1, "paper.pdf", "application/pdf", "uploads/full_papers/p1.pdf", 9).
			AddRow(42, 1, "revised.pdf", "application/pdf", "uploads/full_papers/p2.pdf", 9))

	details, err := svc.ListAcceptedByAuthor(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Len(t, details[0].FullPapers, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
