package util

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors for the HTTP boundary.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// FieldValidationError reports a caller input violating a field-level rule.
// Always attributable to exactly one field; the message carries the
// user-facing (French locale) text, the type stays locale agnostic.
type FieldValidationError struct {
	Field   string
	Message string
}

func (e *FieldValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewFieldValidation constructs a FieldValidationError.
func NewFieldValidation(field, message string) error {
	return &FieldValidationError{Field: field, Message: message}
}

// ArchivedStateError is raised only when mutating an archived ticket. It
// depends on persisted state, not input shape, which is why it is a distinct
// type rather than a FieldValidationError.
type ArchivedStateError struct {
	TicketID string
}

func (e *ArchivedStateError) Error() string {
	return "un ticket archivé ne peut pas être modifié"
}

// NewArchivedState constructs an ArchivedStateError.
func NewArchivedState(ticketID string) error {
	return &ArchivedStateError{TicketID: ticketID}
}

// ReferenceValidationError reports a referenced entity that does not exist.
// It blocks the write rather than describing its target, which keeps it apart
// from a plain not-found.
type ReferenceValidationError struct {
	Field   string
	Message string
}

func (e *ReferenceValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewReferenceValidation constructs a ReferenceValidationError.
func NewReferenceValidation(field, message string) error {
	return &ReferenceValidationError{Field: field, Message: message}
}

func NewUnauthorized(message string) error {
	return &DomainError{Code: "UNAUTHORIZED", Message: message, HTTPStatus: http.StatusUnauthorized}
}

func NewConflict(message string, details map[string]any) error {
	return &DomainError{Code: "CONFLICT", Message: message, HTTPStatus: http.StatusConflict, Details: details}
}

func NewNotFound(resource string) error {
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts core errors to their HTTP-facing DomainError shape.
// Validation kinds map to 400, unknown errors to an opaque 500.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fieldErr *FieldValidationError
	if errors.As(err, &fieldErr) {
		return &DomainError{
			Code:       "VALIDATION_FAILED",
			Message:    fieldErr.Message,
			HTTPStatus: http.StatusBadRequest,
			Details:    map[string]any{"field": fieldErr.Field},
			Err:        err,
		}
	}
	var archivedErr *ArchivedStateError
	if errors.As(err, &archivedErr) {
		return &DomainError{
			Code:       "TICKET_ARCHIVED",
			Message:    archivedErr.Error(),
			HTTPStatus: http.StatusBadRequest,
			Details:    map[string]any{"ticket_id": archivedErr.TicketID},
			Err:        err,
		}
	}
	var refErr *ReferenceValidationError
	if errors.As(err, &refErr) {
		return &DomainError{
			Code:       "INVALID_REFERENCE",
			Message:    refErr.Message,
			HTTPStatus: http.StatusBadRequest,
			Details:    map[string]any{"field": refErr.Field},
			Err:        err,
		}
	}
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
