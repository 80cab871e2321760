package config

import (
	"errors"
	"fmt"
)

var (
	// ErrValidationFailed matches every *ValidationError.
	ErrValidationFailed = errors.New("config: validation failed")

	// ErrTypeMismatch matches every *TypeError.
	ErrTypeMismatch = errors.New("config: type mismatch")

	// ErrClosed is returned by a Manager after Close.
	ErrClosed = errors.New("config: manager closed")
)

// ValidationError is a setting whose value is of the right type but
// unusable, such as a negative repeat cap.
type ValidationError struct {
	Path    string
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// TypeError is a setting whose file or environment value has the wrong
// type, such as a string where a bool belongs.
type TypeError struct {
	Path string
	Want string
	Got  any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: want %s, got %T", e.Path, e.Want, e.Got)
}

func (e *TypeError) Is(target error) bool {
	return target == ErrTypeMismatch
}
