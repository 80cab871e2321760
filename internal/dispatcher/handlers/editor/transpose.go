package editor

import (
	"github.com/dshills/transpose/internal/dispatcher/execctx"
	"github.com/dshills/transpose/internal/dispatcher/handler"
	"github.com/dshills/transpose/internal/input"
	"github.com/dshills/transpose/internal/transpose"
)

// Action names for the transpose commands.
const (
	ActionTranspose          = "editor.transpose"
	ActionMoveSelectionLeft  = "editor.moveSelectionLeft"
	ActionMoveSelectionRight = "editor.moveSelectionRight"
)

// Actions lists every action the handler serves.
var Actions = []string{ActionTranspose, ActionMoveSelectionLeft, ActionMoveSelectionRight}

// TransposeHandler handles the transpose commands.
type TransposeHandler struct{}

// NewTransposeHandler creates a new transpose handler.
func NewTransposeHandler() *TransposeHandler {
	return &TransposeHandler{}
}

// Namespace returns the editor namespace.
func (h *TransposeHandler) Namespace() string {
	return "editor"
}

// CanHandle returns true if this handler can process the action.
func (h *TransposeHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionTranspose, ActionMoveSelectionLeft, ActionMoveSelectionRight:
		return true
	}
	return false
}

// HandleAction processes a transpose action.
func (h *TransposeHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	var run func() (transpose.Outcome, error)
	switch action.Name {
	case ActionTranspose:
		run = ctx.Transposer.Transpose
	case ActionMoveSelectionLeft:
		run = ctx.Transposer.MoveSelectionLeft
	case ActionMoveSelectionRight:
		run = ctx.Transposer.MoveSelectionRight
	default:
		return handler.Errorf("unknown transpose action: %s", action.Name)
	}

	return h.repeat(action.Name, ctx, run)
}

// repeat runs a command up to ctx.GetCount() times.
func (h *TransposeHandler) repeat(name string, ctx *execctx.ExecutionContext, run func() (transpose.Outcome, error)) handler.Result {
	var (
		last  transpose.Outcome
		runs  int
		count = ctx.GetCount()
	)
	for runs < count {
		out, err := run()
		if err != nil {
			ctx.Logger.Error("%s failed after %d runs: %v", name, runs, err)
			return handler.Error(err)
		}
		last = out
		if !out.Changed {
			break
		}
		runs++
	}

	ctx.Logger.Debug("%s ran %d of %d times", name, runs, count)
	return handler.Changed(runs, last.Message, last.Carets)
}
