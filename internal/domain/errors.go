package domain

import "errors"

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes and WS error frames.
var (
	ErrSessionNotFound = errors.New("session_not_found")
	ErrOrderNotFound   = errors.New("order_not_found")
	ErrUnknownAction   = errors.New("unknown_action")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
