package input

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidName is returned for action names not of the form
// "namespace.command".
var ErrInvalidName = errors.New("input: invalid action name")

// ActionSource indicates the origin of an action.
type ActionSource uint8

const (
	// SourceKeyboard indicates the action came from a key chord.
	SourceKeyboard ActionSource = iota
	// SourcePlugin indicates the action came from a Lua script.
	SourcePlugin
	// SourceSession indicates the action came from a JSON session.
	SourceSession
	// SourceAPI indicates the action came from a direct call.
	SourceAPI
)

var sourceNames = [...]string{
	SourceKeyboard: "keyboard",
	SourcePlugin:   "plugin",
	SourceSession:  "session",
	SourceAPI:      "api",
}

// String returns a string representation of the action source.
func (s ActionSource) String() string {
	if int(s) < len(sourceNames) {
		return sourceNames[s]
	}
	return "unknown"
}

// ParseSource is the inverse of ActionSource.String.
func ParseSource(name string) (ActionSource, bool) {
	for s, n := range sourceNames {
		if n == name {
			return ActionSource(s), true
		}
	}
	return 0, false
}

// Action is one command for the dispatcher.
type Action struct {
	// Name is the command identifier, such as "editor.transpose".
	Name string

	// Source indicates where this action originated.
	Source ActionSource

	// Count is the repeat count. Zero means once.
	Count int
}

// SplitName splits an action name at its first dot.
func SplitName(name string) (namespace, command string) {
	namespace, command, found := strings.Cut(name, ".")
	if !found {
		return "", name
	}
	return namespace, command
}

// ValidateName checks that name has a non-empty namespace and command
// and no whitespace.
func ValidateName(name string) error {
	namespace, command := SplitName(name)
	if namespace == "" || command == "" || strings.ContainsAny(name, " \t\n") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Namespace returns the part of the name before the first dot.
func (a Action) Namespace() string {
	ns, _ := SplitName(a.Name)
	return ns
}

// Times returns how often the action runs: Count, or once when Count is
// not positive.
func (a Action) Times() int {
	if a.Count < 1 {
		return 1
	}
	return a.Count
}

// String returns the action as "name×count (source)".
func (a Action) String() string {
	return fmt.Sprintf("%s×%d (%s)", a.Name, a.Times(), a.Source)
}
