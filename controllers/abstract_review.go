package controllers

import (
	"net/http"
	"strings"

	"editorial-management-api/models"

	"github.com/gin-gonic/gin"
)

type assignEditorRequest struct {
	EditorID uint   `json:"editorId" binding:"required"`
	Notes    string `json:"notes"`
}

type decisionRequest struct {
	Action  string `json:"action" binding:"required"`
	Comment string `json:"comment"`
}

// AssignEditor handles POST /abstracts/:abstractId/assign-editor (admin).
func (ac *AbstractController) AssignEditor(c *gin.Context) {
	ac.handleAssign(c, models.StageEditor)
}

// AssignConferenceEditor handles
// POST /abstracts/:abstractId/assign-conference-editor (admin).
func (ac *AbstractController) AssignConferenceEditor(c *gin.Context) {
	ac.handleAssign(c, models.StageConferenceEditor)
}

func (ac *AbstractController) handleAssign(c *gin.Context, stage models.AssignmentStage) {
	abstractID, ok := parseIDParam(c, "abstractId")
	if !ok {
		return
	}
	adminID, ok := currentActorID(c)
	if !ok {
		return
	}

	var req assignEditorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Editor ID is required")
		return
	}

	var (
		submission *models.AbstractSubmission
		err        error
		message    string
	)
	switch stage {
	case models.StageEditor:
		submission, err = ac.workflow.AssignEditor(c.Request.Context(), abstractID, req.EditorID, adminID, req.Notes)
		message = "Editor assigned successfully"
	case models.StageConferenceEditor:
		submission, err = ac.workflow.AssignConferenceEditor(c.Request.Context(), abstractID, req.EditorID, adminID, req.Notes)
		message = "Conference editor assigned successfully"
	}
	if err != nil {
		respondError(c, err)
		return
	}

	ac.respondDetail(c, message, submission)
}

// ReviewAbstract handles POST /abstracts/:abstractId/review for the
// currently assigned editor at whichever stage matches the abstract's
// state. The comment is always mandatory.
func (ac *AbstractController) ReviewAbstract(c *gin.Context) {
	abstractID, ok := parseIDParam(c, "abstractId")
	if !ok {
		return
	}
	editorID, ok := currentActorID(c)
	if !ok {
		return
	}

	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Action is required")
		return
	}
	decision, ok := parseDecision(req.Action)
	if !ok {
		respondMessage(c, http.StatusBadRequest, "Action must be either 'accept' or 'reject'")
		return
	}

	submission, err := ac.workflow.Review(c.Request.Context(), abstractID, editorID, decision, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	ac.respondDetail(c, "Review recorded successfully", submission)
}

// AdminDecision handles POST /abstracts/:abstractId/admin-decision. A
// rejection requires a comment; an acceptance may omit it.
func (ac *AbstractController) AdminDecision(c *gin.Context) {
	abstractID, ok := parseIDParam(c, "abstractId")
	if !ok {
		return
	}
	adminID, ok := currentActorID(c)
	if !ok {
		return
	}

	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Action is required")
		return
	}
	decision, ok := parseDecision(req.Action)
	if !ok {
		respondMessage(c, http.StatusBadRequest, "Action must be either 'accept' or 'reject'")
		return
	}

	submission, err := ac.workflow.AdminDecision(c.Request.Context(), abstractID, adminID, decision, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Abstract accepted"
	if decision == models.DecisionRejected {
		message = "Abstract rejected"
	}
	ac.respondDetail(c, message, submission)
}

func parseDecision(action string) (models.ReviewDecision, bool) {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "accept":
		return models.DecisionAccepted, true
	case "reject":
		return models.DecisionRejected, true
	}
	return "", false
}
