package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/transpose/internal/engine/cursor"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the undo stack when New is given zero.
const DefaultMaxEntries = 1000

// Target is the buffer a history records and restores.
type Target interface {
	Text() string
	Carets() *cursor.CaretSet
	Version() uint64
	Restore(text string, carets []cursor.Caret) error
}

// Snapshot is the state of a target at one moment.
type Snapshot struct {
	Text   string
	Carets []cursor.Caret
}

// Capture takes a snapshot of t.
func Capture(t Target) Snapshot {
	return Snapshot{Text: t.Text(), Carets: t.Carets().All()}
}

func (s Snapshot) restore(t Target) error {
	return t.Restore(s.Text, s.Carets)
}

// entry is one undo unit.
type entry struct {
	name      string
	before    Snapshot
	after     Snapshot
	timestamp time.Time
}

// EntryInfo describes an undo or redo entry.
type EntryInfo struct {
	Name      string
	Timestamp time.Time
}

// History manages undo/redo state for a buffer.
type History struct {
	mu sync.Mutex

	undoStack []*entry
	redoStack []*entry

	// Grouping state
	grouping bool
	group    *entry

	maxEntries int
}

// New creates a history keeping at most maxEntries undo entries.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Record runs fn and, if it changed the text of t, pushes an entry that
// restores the state before the call. The entry is pushed even when fn
// fails part way, so a partial change can still be undone.
func (h *History) Record(name string, t Target, fn func() error) error {
	before := Capture(t)
	version := t.Version()

	err := fn()

	if t.Version() != version {
		h.push(&entry{
			name:      name,
			before:    before,
			after:     Capture(t),
			timestamp: time.Now(),
		})
	}
	return err
}

func (h *History) push(e *entry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		if h.group.timestamp.IsZero() {
			h.group.before = e.before
		}
		h.group.after = e.after
		h.group.timestamp = e.timestamp
		return
	}
	h.pushLocked(e)
}

// pushLocked adds an entry without acquiring the lock.
func (h *History) pushLocked(e *entry) {
	h.undoStack = append(h.undoStack, e)
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo restores the state before the last entry.
func (h *History) Undo(t Target) (EntryInfo, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return EntryInfo{}, ErrNothingToUndo
	}
	e := h.undoStack[len(h.undoStack)-1]
	if err := e.before.restore(t); err != nil {
		return EntryInfo{}, err
	}
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, e)
	return e.info(), nil
}

// Redo restores the state after the last undone entry.
func (h *History) Redo(t Target) (EntryInfo, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return EntryInfo{}, ErrNothingToRedo
	}
	e := h.redoStack[len(h.redoStack)-1]
	if err := e.after.restore(t); err != nil {
		return EntryInfo{}, err
	}
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, e)
	return e.info(), nil
}

func (e *entry) info() EntryInfo {
	return EntryInfo{Name: e.name, Timestamp: e.timestamp}
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo entries available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo entries available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// BeginGroup starts a group. Changes recorded until EndGroup form a
// single entry named name. Nested calls are ignored.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		return
	}
	h.grouping = true
	h.group = &entry{name: name}
}

// EndGroup pushes the group, if anything in it changed the buffer.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.grouping {
		return
	}
	h.grouping = false
	if !h.group.timestamp.IsZero() {
		h.pushLocked(h.group)
	}
	h.group = nil
}

// IsGrouping returns true if currently in a group.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grouping
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.group = nil
}

// PeekUndo returns the next undo entry without removing it.
func (h *History) PeekUndo() (EntryInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return EntryInfo{}, false
	}
	return h.undoStack[len(h.undoStack)-1].info(), true
}

// PeekRedo returns the next redo entry without removing it.
func (h *History) PeekRedo() (EntryInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return EntryInfo{}, false
	}
	return h.redoStack[len(h.redoStack)-1].info(), true
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
