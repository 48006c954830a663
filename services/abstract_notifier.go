package services

import (
	"fmt"

	"editorial-management-api/config"
	"editorial-management-api/models"

	"gorm.io/gorm"
)

// MailNotifier sends workflow notifications over SMTP. All lookups run on
// its own handle, outside the workflow transaction.
type MailNotifier struct {
	db *gorm.DB
}

func NewMailNotifier(db *gorm.DB) *MailNotifier {
	if db == nil {
		db = config.DB
	}
	return &MailNotifier{db: db}
}

// AbstractAssigned mails the editor who has just been assigned.
func (n *MailNotifier) AbstractAssigned(assignment *models.AbstractAssignment, abstract *models.AbstractSubmission) error {
	var editor models.Editor
	if err := n.db.Where("id = ? AND deleted_at IS NULL", assignment.EditorID).First(&editor).Error; err != nil {
		return fmt.Errorf("resolve editor %d: %w", assignment.EditorID, err)
	}

	subject := "New abstract assigned for review"
	if assignment.Stage == models.StageConferenceEditor {
		subject = "Abstract assigned for conference editor review"
	}
	body := fmt.Sprintf(`<p>Dear %s,</p>
<p>Abstract #%d (%s) has been assigned to you for review.</p>
<p>Please log in to the editorial system to record your decision.</p>`,
		editor.FullName(), abstract.ID, abstractTitle(abstract))

	return config.SendMail([]string{editor.Email}, subject, body)
}

// AbstractDecided mails the author about a recorded decision. Intermediate
// accepts stay internal; the author hears about terminal outcomes only.
func (n *MailNotifier) AbstractDecided(review *models.AbstractReview, abstract *models.AbstractSubmission) error {
	if !abstract.Status.Terminal() {
		return nil
	}

	var author models.Author
	if err := n.db.Where("id = ? AND deleted_at IS NULL", abstract.AuthorID).First(&author).Error; err != nil {
		return fmt.Errorf("resolve author %d: %w", abstract.AuthorID, err)
	}

	var subject, outcome string
	switch abstract.Status {
	case models.StatusAccepted:
		subject = "Your abstract has been accepted"
		outcome = "accepted. You may now upload your full paper."
	case models.StatusRejected:
		subject = "Decision on your abstract submission"
		outcome = "rejected."
	default:
		return nil
	}

	body := fmt.Sprintf(`<p>Dear %s,</p>
<p>Your abstract #%d (%s) has been %s</p>`,
		author.FullName(), abstract.ID, abstractTitle(abstract), outcome)
	if review.Comment != "" {
		body += fmt.Sprintf("<p>Reviewer comment: %s</p>", review.Comment)
	}

	return config.SendMail([]string{author.Email}, subject, body)
}

func abstractTitle(abstract *models.AbstractSubmission) string {
	if abstract.Title != nil && *abstract.Title != "" {
		return *abstract.Title
	}
	return "untitled"
}
