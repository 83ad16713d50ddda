package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument classifies caller mistakes (bad season, non-positive quantity, missing fields)
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound classifies lookups of unknown cargo types or settlements
	ErrNotFound = errors.New("not found")
)

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is lets callers match any validation failure with errors.Is(err, ErrInvalidArgument)
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Lookup errors

type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Key)
}

// Is lets callers match any lookup failure with errors.Is(err, ErrNotFound)
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NewNotFoundError(entity, key string) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}

// IsInvalidArgument reports whether err (or anything it wraps) is a validation failure
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsNotFound reports whether err (or anything it wraps) is a lookup failure
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
