package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"editorial-management-api/models"
	"editorial-management-api/services"
	"editorial-management-api/utils"

	"github.com/gin-gonic/gin"
)

type abstractWorkflow interface {
	Submit(ctx context.Context, in services.SubmitAbstractInput) (*models.AbstractSubmission, error)
	AssignEditor(ctx context.Context, abstractID, editorID, adminID uint, notes string) (*models.AbstractSubmission, error)
	AssignConferenceEditor(ctx context.Context, abstractID, editorID, adminID uint, notes string) (*models.AbstractSubmission, error)
	Review(ctx context.Context, abstractID, editorID uint, decision models.ReviewDecision, comment string) (*models.AbstractSubmission, error)
	AdminDecision(ctx context.Context, abstractID, adminID uint, decision models.ReviewDecision, comment string) (*models.AbstractSubmission, error)
	AttachFullPapers(ctx context.Context, abstractID, authorID uint, files []services.FullPaperUpload) ([]models.FullPaperFile, error)
}

type abstractQueries interface {
	ListByConference(ctx context.Context, conferenceID uint) ([]services.AbstractDetail, error)
	ListAssignedToEditor(ctx context.Context, editorID uint) ([]services.AbstractDetail, error)
	ListAcceptedByAuthor(ctx context.Context, authorID uint) ([]services.AbstractDetail, error)
	Detail(ctx context.Context, abstractID uint) (*services.AbstractDetail, error)
}

// AbstractController exposes the abstract review workflow over HTTP.
type AbstractController struct {
	workflow abstractWorkflow
	queries  abstractQueries
}

func NewAbstractController(workflow abstractWorkflow, queries abstractQueries) *AbstractController {
	return &AbstractController{workflow: workflow, queries: queries}
}

// SubmitAbstract handles POST /abstracts/submit-abstract. Multipart fields:
// conference_id, author_id, title (optional), file field 'abstract'.
func (ac *AbstractController) SubmitAbstract(c *gin.Context) {
	file, err := c.FormFile("abstract")
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Abstract file is required")
		return
	}
	conferenceID, err := strconv.ParseUint(c.PostForm("conference_id"), 10, 32)
	if err != nil || conferenceID == 0 {
		respondMessage(c, http.StatusBadRequest, "Conference ID is required")
		return
	}
	authorID, err := strconv.ParseUint(c.PostForm("author_id"), 10, 32)
	if err != nil || authorID == 0 {
		respondMessage(c, http.StatusBadRequest, "Author ID is required")
		return
	}

	if err := utils.ValidateUpload(file); err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	dir, err := utils.UploadDir("abstracts")
	if err != nil {
		respondError(c, err)
		return
	}
	storedPath := filepath.Join(dir, utils.StoredFilename("abstract", file.Filename))
	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		respondError(c, err)
		return
	}

	submission, err := ac.workflow.Submit(c.Request.Context(), services.SubmitAbstractInput{
		ConferenceID: uint(conferenceID),
		AuthorID:     uint(authorID),
		Title:        utils.SanitizeInput(c.PostForm("title")),
		FilePath:     storedPath,
	})
	if err != nil {
		removeOrphanFile(storedPath)
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, "Abstract submitted successfully", submission)
}

// GetConferenceAbstracts handles GET /abstracts/conference/:conferenceId
// (admin only), returning the hydrated list.
func (ac *AbstractController) GetConferenceAbstracts(c *gin.Context) {
	conferenceID, ok := parseIDParam(c, "conferenceId")
	if !ok {
		return
	}
	details, err := ac.queries.ListByConference(c.Request.Context(), conferenceID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Abstracts retrieved successfully", details)
}

// GetAssignedAbstracts handles GET /abstracts/editor/assigned for the
// authenticated editor.
func (ac *AbstractController) GetAssignedAbstracts(c *gin.Context) {
	editorID, ok := currentActorID(c)
	if !ok {
		return
	}
	details, err := ac.queries.ListAssignedToEditor(c.Request.Context(), editorID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Assigned abstracts retrieved successfully", details)
}

// GetAcceptedAbstracts handles GET /abstracts/author/accepted for the
// authenticated author, full papers attached.
func (ac *AbstractController) GetAcceptedAbstracts(c *gin.Context) {
	authorID, ok := currentActorID(c)
	if !ok {
		return
	}
	details, err := ac.queries.ListAcceptedByAuthor(c.Request.Context(), authorID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Accepted abstracts retrieved successfully", details)
}

// respondDetail re-reads the hydrated abstract after a successful
// transition; when hydration fails the transition has still committed, so
// fall back to the bare submission.
func (ac *AbstractController) respondDetail(c *gin.Context, message string, submission *models.AbstractSubmission) {
	detail, err := ac.queries.Detail(c.Request.Context(), submission.ID)
	if err != nil {
		log.Printf("Warning: failed to hydrate abstract %d after transition: %v", submission.ID, err)
		respondSuccess(c, http.StatusOK, message, submission)
		return
	}
	respondSuccess(c, http.StatusOK, message, detail)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || raw == 0 {
		respondMessage(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(raw), true
}

// currentActorID reads the principal id set by the auth middleware.
func currentActorID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("userID")
	if !exists {
		respondMessage(c, http.StatusUnauthorized, "Authentication required")
		return 0, false
	}
	id, ok := value.(uint)
	if !ok || id == 0 {
		respondMessage(c, http.StatusUnauthorized, "Invalid authentication context")
		return 0, false
	}
	return id, true
}

func removeOrphanFile(path string) {
	if err := os.Remove(path); err != nil {
		log.Printf("Warning: failed to remove orphan upload %s: %v", path, err)
	}
}
