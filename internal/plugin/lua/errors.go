package lua

import "errors"

var (
	ErrStateClosed      = errors.New("lua: state closed")
	ErrExecutionTimeout = errors.New("lua: execution timed out")
	ErrNoEditor         = errors.New("lua: no editor attached")
)

// CapabilityError is raised in a script that calls a function needing a
// capability the sandbox does not grant, such as editing in read-only mode.
type CapabilityError struct {
	Capability Capability
}

func (e *CapabilityError) Error() string {
	return "lua: capability not granted: " + string(e.Capability)
}
