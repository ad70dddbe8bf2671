package errors

import "errors"

var (
	ErrNotFound = errors.New("booking record not found")

	ErrInvalidID = errors.New("invalid booking record ID format")

	ErrVersionConflict = errors.New("booking record was modified concurrently")
)
