package services

import (
	"fmt"

	"editorial-management-api/models"
)

// ErrorKind classifies workflow failures so the HTTP layer can map them to
// status codes without string matching.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindNotFound          ErrorKind = "not_found"
	KindInvalidTransition ErrorKind = "invalid_transition"
	KindInvalidState      ErrorKind = "invalid_state"
	KindUnauthorized      ErrorKind = "unauthorized"
	KindConflict          ErrorKind = "conflict"
)

// WorkflowError is the error type raised by the abstract workflow and
// query services for caller-correctable failures.
type WorkflowError struct {
	Kind    ErrorKind
	Message string
}

func (e *WorkflowError) Error() string {
	return e.Message
}

func errValidation(format string, args ...interface{}) error {
	return &WorkflowError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func errNotFound(format string, args ...interface{}) error {
	return &WorkflowError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func errInvalidTransition(action string, expected, current models.AbstractStatus) error {
	return &WorkflowError{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("cannot %s: abstract must be in status '%s' but is '%s'", action, expected, current),
	}
}

func errInvalidState(format string, args ...interface{}) error {
	return &WorkflowError{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func errUnauthorized(format string, args ...interface{}) error {
	return &WorkflowError{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func errConflict(format string, args ...interface{}) error {
	return &WorkflowError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}
