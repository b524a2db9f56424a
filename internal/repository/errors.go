package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateUsername is returned when the storage-level uniqueness
	// constraint on usernames rejects an insert.
	ErrDuplicateUsername = errors.New("username already taken")
)
