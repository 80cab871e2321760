package app

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by every editing call after Shutdown.
	ErrClosed = errors.New("app: closed")

	// ErrNoPath is returned when saving a scratch document.
	ErrNoPath = errors.New("app: document has no path")
)

// InitError is a component that failed while New was building the
// application.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// OperationError is a failed file or script operation on a document:
// open, save or script, with the path involved when there is one.
type OperationError struct {
	Op     string
	Target string
	Err    error
}

// NewOperationError wraps err as op on target.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

func (e *OperationError) Error() string {
	msg := e.Op
	if e.Target != "" {
		msg += " " + e.Target
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *OperationError) Unwrap() error { return e.Err }
