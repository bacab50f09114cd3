package errors

import (
	"errors"
	"fmt"
	"net/http"
)

/*
APIError is an error that carries the HTTP status and the user-facing
message it should be rendered with.
*/
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

var (
	ErrEmptyMessage = &APIError{Status: http.StatusBadRequest, Message: "Message cannot be empty"}
	ErrInvalidBody  = &APIError{Status: http.StatusBadRequest, Message: "Invalid request body"}
	ErrProcessing   = &APIError{Status: http.StatusInternalServerError, Message: "I'm having trouble processing your request. Please try again."}
	ErrNotFound     = &APIError{Status: http.StatusNotFound, Message: "Endpoint not found"}
	ErrRateLimited  = &APIError{Status: http.StatusTooManyRequests, Message: "Too many requests, please slow down"}
	ErrInternal     = &APIError{Status: http.StatusInternalServerError, Message: "Internal server error"}
)

// ErrMissingConfig marks a required setting that was not provided.
var ErrMissingConfig = errors.New("missing configuration")

// Missing reports the named setting as absent.
func Missing(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingConfig, name)
}
