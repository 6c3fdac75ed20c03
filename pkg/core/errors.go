package core

import "errors"

// Common errors.
var (
	// ErrNotFound is returned by Storage.Get when the key holds no value.
	ErrNotFound = errors.New("key not found")

	// ErrReadOnly is returned by storage adapters opened in read-only mode.
	ErrReadOnly = errors.New("storage is in read-only mode")

	// ErrValidation marks form data rejected by a Validator.
	ErrValidation = errors.New("validation failed")

	// ErrPersist marks a mutation whose in-memory change succeeded but whose write to storage failed.
	ErrPersist = errors.New("failed to persist notes")

	// ErrMalformed marks stored data that could not be decoded.
	ErrMalformed = errors.New("malformed stored notes")
)
