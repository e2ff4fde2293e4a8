package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrStorage           = errors.New("storage failure")
	ErrConfigUnavailable = errors.New("config store unavailable")
)

// ValidationError rejects a request before any side effect. Reason is safe
// to show to the end user.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

var (
	ErrNoFile          = &ValidationError{Reason: "No file uploaded"}
	ErrInvalidType     = &ValidationError{Reason: "Invalid file type"}
	ErrTooLarge        = &ValidationError{Reason: "File too large (max 5MB)"}
	ErrNoFilename      = &ValidationError{Reason: "No filename provided"}
	ErrInvalidFilename = &ValidationError{Reason: "Invalid filename"}
	ErrInvalidLink     = &ValidationError{Reason: "Invalid YouTube link"}
)

// StorageError wraps an I/O or network failure while writing or deleting
// backing content.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }
