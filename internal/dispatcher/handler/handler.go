// Package handler defines what the dispatcher routes actions to and the
// Result a handler reports back.
package handler

import (
	"github.com/dshills/transpose/internal/dispatcher/execctx"
	"github.com/dshills/transpose/internal/input"
)

// Handler serves one or more actions.
type Handler interface {
	Handle(action input.Action, ctx *execctx.ExecutionContext) Result

	// CanHandle reports whether the handler serves actionName.
	CanHandle(actionName string) bool

	// Priority orders handlers registered for the same name; higher wins.
	Priority() int
}

// Func is a Handler made of a single function. It serves whatever it
// is registered for and has priority 0.
type Func func(action input.Action, ctx *execctx.ExecutionContext) Result

// Handle calls f. A nil Func fails instead of panicking.
func (f Func) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	if f == nil {
		return Errorf("no function registered for %s", action.Name)
	}
	return f(action, ctx)
}

// CanHandle is always true.
func (f Func) CanHandle(string) bool { return true }

// Priority is always 0.
func (f Func) Priority() int { return 0 }

type prioritized struct {
	Handler
	prio int
}

func (p prioritized) Priority() int { return p.prio }

// WithPriority returns h reporting priority p.
func WithPriority(h Handler, p int) Handler {
	return prioritized{Handler: h, prio: p}
}

// NamespaceHandler serves the actions of one namespace, the part of an
// action name before the first dot ("editor" in "editor.transpose").
type NamespaceHandler interface {
	Namespace() string
	CanHandle(actionName string) bool
	HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result
}

type namespaceAdapter struct {
	NamespaceHandler
}

func (a namespaceAdapter) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	return a.HandleAction(action, ctx)
}

func (a namespaceAdapter) Priority() int { return 0 }

// FromNamespace adapts h to Handler.
func FromNamespace(h NamespaceHandler) Handler {
	return namespaceAdapter{h}
}

// Table is a NamespaceHandler that looks actions up by full name.
type Table struct {
	namespace string
	funcs     map[string]Func
}

// NewTable creates an empty table for namespace.
func NewTable(namespace string) *Table {
	return &Table{namespace: namespace, funcs: make(map[string]Func)}
}

// Set serves actionName with fn, replacing any previous function.
func (t *Table) Set(actionName string, fn Func) *Table {
	t.funcs[actionName] = fn
	return t
}

func (t *Table) Namespace() string { return t.namespace }

func (t *Table) CanHandle(actionName string) bool {
	_, ok := t.funcs[actionName]
	return ok
}

func (t *Table) HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result {
	fn, ok := t.funcs[action.Name]
	if !ok {
		return Errorf("%s: unknown action %s", t.namespace, action.Name)
	}
	return fn(action, ctx)
}
