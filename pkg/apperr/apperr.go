package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError so callers can branch on the failure class
// without string matching.
type Kind string

const (
	KindValidation       Kind = "validation"
	KindNotFound         Kind = "not_found"
	KindInvalidOperation Kind = "invalid_operation"
	KindPersistence      Kind = "persistence"
	KindModeration       Kind = "moderation"
)

// AppError is a custom error type that carries the failure class and the
// HTTP status it maps to at the transport edge.
type AppError struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// New creates an AppError with an explicit kind and status code.
func New(kind Kind, code int, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

func Validation(msg string) *AppError {
	return New(KindValidation, http.StatusBadRequest, msg)
}

func NotFound(msg string) *AppError {
	return New(KindNotFound, http.StatusNotFound, msg)
}

func InvalidOperation(msg string) *AppError {
	return New(KindInvalidOperation, http.StatusBadRequest, msg)
}

func Persistence(msg string) *AppError {
	return New(KindPersistence, http.StatusInternalServerError, msg)
}

// Moderation covers both an abusive-content rejection and a classifier
// outage; the message distinguishes the two for the user.
func Moderation(msg string) *AppError {
	return New(KindModeration, http.StatusBadRequest, msg)
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}
