package service

import "errors"

var (
	// ErrOwnershipMismatch is returned when the acting user does not own the blog.
	ErrOwnershipMismatch = errors.New("token does not match blog creator")
	// ErrUnknownUser is returned when a verified identity no longer resolves to a user.
	ErrUnknownUser = errors.New("user does not exist")
)

// ValidationError reports a rejected payload. Message is safe to return to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
