package service

import "errors"

// Sentinel errors the API layer maps to HTTP status codes
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)
