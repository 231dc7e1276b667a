package domain

import "errors"

var (
	// ErrNotFound is returned by stores when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrMalformedID is returned when an identifier cannot be parsed by the store.
	ErrMalformedID = errors.New("malformed id")
	// ErrDuplicateUsername is returned when a username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")
)
