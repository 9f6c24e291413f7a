package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrEmptyDocument = errors.New("empty document")
	ErrShapeMismatch = errors.New("matrix shape mismatch")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrInvalidConfig = errors.New("invalid configuration")
)
