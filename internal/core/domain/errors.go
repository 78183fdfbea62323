package domain

import (
	"fmt"
	"net/http"
)

// APIError is an error that maps directly to an HTTP response envelope.
type APIError struct {
	StatusCode int
	Message    string
	Details    any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

var (
	ErrMissingToken    = &APIError{StatusCode: http.StatusUnauthorized, Message: "Access token required"}
	ErrInvalidToken    = &APIError{StatusCode: http.StatusUnauthorized, Message: "Invalid or expired access token"}
	ErrNoSubscriptions = &APIError{StatusCode: http.StatusNotFound, Message: "No subscriptions found"}
	ErrVideoNotFound   = &APIError{StatusCode: http.StatusNotFound, Message: "Video not found"}
)

// NewUpstreamError wraps an error payload forwarded by the video platform.
// A zero status falls back to 400.
func NewUpstreamError(statusCode int, message string, details any) *APIError {
	if statusCode == 0 {
		statusCode = http.StatusBadRequest
	}
	if message == "" {
		message = "Upstream API error"
	}
	return &APIError{StatusCode: statusCode, Message: message, Details: details}
}
