package handler

import (
	"fmt"

	"github.com/dshills/transpose/internal/engine/cursor"
)

// ResultStatus is the outcome class of a dispatched action.
type ResultStatus uint8

const (
	// StatusOK means the action changed the buffer at least once.
	StatusOK ResultStatus = iota
	// StatusNoOp means the action ran but left the buffer as it was.
	StatusNoOp
	// StatusError means the action failed; the buffer is unchanged.
	StatusError
	// StatusCancelled means a pre-hook refused the action.
	StatusCancelled
)

var statusNames = [...]string{
	StatusOK:        "ok",
	StatusNoOp:      "no-op",
	StatusError:     "error",
	StatusCancelled: "cancelled",
}

func (s ResultStatus) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Result is what a handler reports back to the dispatcher and the host.
type Result struct {
	Status ResultStatus
	Error  error

	// Message is the status text of the last run, empty when there is none.
	Message string

	// Carets are the carets after the action, in creation order.
	Carets []cursor.Caret

	// Runs counts the repetitions that changed the buffer.
	Runs int
}

// IsOK reports whether the action changed the buffer.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsError reports whether the action failed.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// Success is a bare successful result.
func Success() Result {
	return Result{Status: StatusOK}
}

// Changed builds the result of an action that ran runs times before
// stopping, ending with message and carets.
func Changed(runs int, message string, carets []cursor.Caret) Result {
	status := StatusOK
	if runs == 0 {
		status = StatusNoOp
	}
	return Result{Status: status, Message: message, Carets: carets, Runs: runs}
}

// Error wraps err in a failed result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf is Error with a formatted error.
func Errorf(format string, args ...any) Result {
	return Error(fmt.Errorf(format, args...))
}

// WithMessage returns a copy of the result carrying msg.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}
