package execctx

import "errors"

// Errors returned by Validate and ValidateForEdit.
var (
	ErrMissingText       = errors.New("execctx: no text service")
	ErrMissingTransposer = errors.New("execctx: no transposer")
	ErrReadOnly          = errors.New("execctx: document is read-only")
)
