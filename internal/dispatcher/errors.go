package dispatcher

import "errors"

var (
	// ErrInvalidAction wraps the reason an action name was refused.
	ErrInvalidAction = errors.New("dispatcher: invalid action")

	// ErrNoHandler means nothing is registered for the action name.
	ErrNoHandler = errors.New("dispatcher: no handler for action")

	// ErrActionCancelled means a pre-dispatch hook refused the action.
	ErrActionCancelled = errors.New("dispatcher: action cancelled by hook")

	// ErrPanic wraps a recovered handler panic.
	ErrPanic = errors.New("dispatcher: handler panic")
)
