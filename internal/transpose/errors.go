package transpose

import "errors"

// Errors returned by Engine operations.
var (
	// ErrNoService indicates the engine has no text service.
	ErrNoService = errors.New("transpose: text service is required")
)
