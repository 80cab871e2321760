package transpose

import (
	"fmt"

	"github.com/dshills/transpose/internal/engine/buffer"
	"github.com/dshills/transpose/internal/engine/cursor"
	"github.com/dshills/transpose/internal/logging"
)

// Outcome describes what a command did.
type Outcome struct {
	// Changed is true if the buffer text was modified.
	Changed bool
	// Message is the status text shown to the user, if any.
	Message string
	// Carets are the carets after the command, in creation order.
	Carets []cursor.Caret
}

// Engine runs the transpose commands against a text service.
// An Engine holds no state between commands.
type Engine struct {
	svc            buffer.TextService
	surrogatePairs bool
	lineSwap       bool
	messages       Messages
	logger         *logging.Logger
}

// New creates an engine for the given text service.
func New(svc buffer.TextService, opts ...Option) *Engine {
	e := &Engine{
		svc:            svc,
		surrogatePairs: true,
		lineSwap:       true,
		messages:       DefaultMessages(),
		logger:         logging.Null(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Service returns the text service the engine edits.
func (e *Engine) Service() buffer.TextService {
	return e.svc
}

// Messages returns the status texts in use.
func (e *Engine) Messages() Messages {
	return e.messages
}

// Transpose swaps text at every caret.
//
// One collapsed caret swaps the surrounding characters (or lines at
// column 0). Several carets with at least one selection rotate their
// contents by one. Several collapsed carets each swap characters on
// their own.
func (e *Engine) Transpose() (Outcome, error) {
	if e.svc == nil {
		return Outcome{}, ErrNoService
	}

	carets := e.svc.Carets()
	switch {
	case carets.Len() == 0:
		return Outcome{}, nil
	case !carets.IsMulti():
		return e.transposeSingle(carets.Primary())
	case carets.HasSelection():
		return e.rotate(carets)
	default:
		return e.transposeEach(carets.All())
	}
}

// MoveSelectionLeft moves a single-line selection one character left.
func (e *Engine) MoveSelectionLeft() (Outcome, error) {
	if e.svc == nil {
		return Outcome{}, ErrNoService
	}
	return e.moveSelection(-1)
}

// MoveSelectionRight moves a single-line selection one character right.
func (e *Engine) MoveSelectionRight() (Outcome, error) {
	if e.svc == nil {
		return Outcome{}, ErrNoService
	}
	return e.moveSelection(1)
}

// notice shows msg on the host status line and returns an unchanged outcome.
func (e *Engine) notice(msg string, carets []cursor.Caret) Outcome {
	e.svc.ShowStatus(msg)
	return Outcome{Message: msg, Carets: carets}
}

// placeCarets writes carets back to the host in creation order.
func (e *Engine) placeCarets(carets []cursor.Caret) error {
	for i, c := range carets {
		mode := buffer.SetAdd
		if i == 0 {
			mode = buffer.SetReplace
		}
		if err := e.svc.SetCaret(c, mode); err != nil {
			return fmt.Errorf("transpose: set caret %d: %w", i, err)
		}
	}
	return nil
}
