package api

import (
	"errors"
	"fmt"
)

// ErrSessionExpired is returned on HTTP 401. Redirecting to login is the
// embedding application's job, not this client's.
var ErrSessionExpired = errors.New("session expired")

// APIError is a non-success response from the backend; Message carries the
// server's own wording verbatim so it can be surfaced to the user.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

const connectivityMessage = "Something went wrong while talking to the server. Try again."

// UserMessage picks the text to show the user for a failed call: the server
// message when there is one, a generic connectivity message otherwise
// (network errors, open circuit breaker).
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return connectivityMessage
}
