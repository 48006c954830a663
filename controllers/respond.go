package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strings"

	"editorial-management-api/services"

	"github.com/gin-gonic/gin"
)

func respondSuccess(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func respondMessage(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"success": false,
		"message": message,
	})
}

// respondError maps workflow error kinds to HTTP status codes. Unexpected
// errors become a 500 with the detail hidden in production.
func respondError(c *gin.Context, err error) {
	var wfErr *services.WorkflowError
	if errors.As(err, &wfErr) {
		respondMessage(c, statusForKind(wfErr.Kind), wfErr.Message)
		return
	}

	log.Printf("Error: %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	payload := gin.H{
		"success": false,
		"message": "Internal server error",
	}
	if strings.ToLower(os.Getenv("ENVIRONMENT")) != "production" {
		payload["detail"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, payload)
}

func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation, services.KindInvalidTransition, services.KindInvalidState:
		return http.StatusBadRequest
	case services.KindUnauthorized:
		return http.StatusForbidden
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
