// Package execctx provides the execution context for action handlers.
package execctx

import (
	"github.com/dshills/transpose/internal/engine/buffer"
	"github.com/dshills/transpose/internal/input"
	"github.com/dshills/transpose/internal/logging"
	"github.com/dshills/transpose/internal/transpose"
)

// Transposer runs the transpose commands against the current buffer.
// *transpose.Engine implements it.
type Transposer interface {
	Transpose() (transpose.Outcome, error)
	MoveSelectionLeft() (transpose.Outcome, error)
	MoveSelectionRight() (transpose.Outcome, error)
}

// ExecutionContext provides context for action execution.
type ExecutionContext struct {
	// Text is the buffer and caret service of the host.
	Text buffer.TextService

	// Transposer runs the transpose commands against Text.
	Transposer Transposer

	// Logger receives handler diagnostics. Never nil after New.
	Logger *logging.Logger

	// InvocationID identifies one dispatch in logs.
	InvocationID string

	// Source is where the action came from.
	Source input.ActionSource

	// ReadOnly rejects edits when set.
	ReadOnly bool

	// Count is the repeat count (1 if not specified).
	Count int
}

// New creates a new execution context.
func New() *ExecutionContext {
	return &ExecutionContext{
		Logger: logging.Null(),
		Count:  1,
	}
}

// WithText returns the context with the text service set.
func (ctx *ExecutionContext) WithText(text buffer.TextService) *ExecutionContext {
	ctx.Text = text
	return ctx
}

// WithTransposer returns the context with the transposer set.
func (ctx *ExecutionContext) WithTransposer(t Transposer) *ExecutionContext {
	ctx.Transposer = t
	return ctx
}

// WithLogger returns the context with the logger set. A nil logger is ignored.
func (ctx *ExecutionContext) WithLogger(logger *logging.Logger) *ExecutionContext {
	if logger != nil {
		ctx.Logger = logger
	}
	return ctx
}

// WithCount returns the context with repeat count set.
func (ctx *ExecutionContext) WithCount(count int) *ExecutionContext {
	if count > 0 {
		ctx.Count = count
	}
	return ctx
}

// GetCount returns the repeat count, defaulting to 1.
func (ctx *ExecutionContext) GetCount() int {
	if ctx.Count <= 0 {
		return 1
	}
	return ctx.Count
}

// HasSelection returns true if any caret carries a selection.
func (ctx *ExecutionContext) HasSelection() bool {
	if ctx.Text == nil {
		return false
	}
	return ctx.Text.Carets().HasSelection()
}

// Validate checks that the context has all required components.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Text == nil {
		return ErrMissingText
	}
	return nil
}

// ValidateForEdit checks that the context is valid for editing operations.
func (ctx *ExecutionContext) ValidateForEdit() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.Transposer == nil {
		return ErrMissingTransposer
	}
	if ctx.ReadOnly {
		return ErrReadOnly
	}
	return nil
}
