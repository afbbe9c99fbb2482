package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidID          = errors.New("invalid id format")
)

// ValidationError carries a field-indexed map of messages for payloads
// that fail schema validation. The error normalizer renders it as a
// 400 with the map in the body.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// StatusError is an error that already knows its HTTP status code.
// It is the escape hatch for failures outside the closed taxonomy.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

func NewStatusError(code int, message string) *StatusError {
	return &StatusError{Code: code, Message: message}
}
