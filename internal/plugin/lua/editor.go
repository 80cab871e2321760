package lua

import (
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/transpose/internal/dispatcher/handler"
	editorhandler "github.com/dshills/transpose/internal/dispatcher/handlers/editor"
	"github.com/dshills/transpose/internal/engine/buffer"
	"github.com/dshills/transpose/internal/engine/cursor"
	"github.com/dshills/transpose/internal/input"
)

// Buffer is the text a script can read.
type Buffer interface {
	buffer.TextService
	Text() string
}

// Host runs editor actions on behalf of scripts.
type Host interface {
	Dispatch(action input.Action) handler.Result
	Buffer() Buffer
}

// EditorModule implements the editor API module.
type EditorModule struct {
	host    Host
	sandbox *Sandbox

	mu     sync.Mutex
	status string
}

// NewEditorModule creates the module. Edits are checked against
// sandbox capabilities.
func NewEditorModule(host Host, sandbox *Sandbox) *EditorModule {
	return &EditorModule{host: host, sandbox: sandbox}
}

// Name returns the module name.
func (m *EditorModule) Name() string {
	return "editor"
}

// Loader builds the module table.
func (m *EditorModule) Loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"transpose":  m.command(editorhandler.ActionTranspose),
		"move_left":  m.command(editorhandler.ActionMoveSelectionLeft),
		"move_right": m.command(editorhandler.ActionMoveSelectionRight),
		"text":       m.text,
		"line":       m.line,
		"line_count": m.lineCount,
		"carets":     m.carets,
		"set_carets": m.setCarets,
		"status":     m.lastStatus,
	})
	L.Push(mod)
	return 1
}

// Status returns the message of the last command a script ran.
func (m *EditorModule) Status() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// command returns transpose/move_left/move_right([count]) -> changed, message.
func (m *EditorModule) command(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		count := L.OptInt(1, 1)
		if count < 1 {
			L.ArgError(1, "count must be positive")
			return 0
		}
		if !m.checkEdit(L) {
			return 0
		}

		result := m.host.Dispatch(input.Action{
			Name:   name,
			Source: input.SourcePlugin,
			Count:  count,
		})
		if result.IsError() {
			L.RaiseError("%s: %v", name, result.Error)
			return 0
		}

		m.mu.Lock()
		m.status = result.Message
		m.mu.Unlock()

		L.Push(lua.LBool(result.Status == handler.StatusOK))
		L.Push(lua.LString(result.Message))
		return 2
	}
}

// text() -> string
func (m *EditorModule) text(L *lua.LState) int {
	buf := m.buffer(L)
	if buf == nil {
		return 0
	}
	L.Push(lua.LString(buf.Text()))
	return 1
}

// line(n) -> string
func (m *EditorModule) line(L *lua.LState) int {
	n := L.CheckInt(1)
	buf := m.buffer(L)
	if buf == nil {
		return 0
	}
	if n < 0 || n >= buf.LineCount() {
		L.ArgError(1, "line out of range")
		return 0
	}
	L.Push(lua.LString(buf.LineText(n)))
	return 1
}

// line_count() -> number
func (m *EditorModule) lineCount(L *lua.LState) int {
	buf := m.buffer(L)
	if buf == nil {
		return 0
	}
	L.Push(lua.LNumber(buf.LineCount()))
	return 1
}

// carets() -> {{col, line, end_col, end_line}, ...}
func (m *EditorModule) carets(L *lua.LState) int {
	buf := m.buffer(L)
	if buf == nil {
		return 0
	}
	t := L.NewTable()
	for _, c := range buf.Carets().All() {
		t.Append(CaretToTable(L, c))
	}
	L.Push(t)
	return 1
}

// set_carets({caret, ...})
func (m *EditorModule) setCarets(L *lua.LState) int {
	list := L.CheckTable(1)
	if !m.checkEdit(L) {
		return 0
	}
	buf := m.buffer(L)
	if buf == nil {
		return 0
	}

	var carets []cursor.Caret
	for i := 1; i <= list.Len(); i++ {
		t, ok := list.RawGetInt(i).(*lua.LTable)
		if !ok {
			L.ArgError(1, "carets must be tables")
			return 0
		}
		c, err := TableToCaret(t)
		if err != nil {
			L.ArgError(1, err.Error())
			return 0
		}
		carets = append(carets, c)
	}
	if len(carets) == 0 {
		L.ArgError(1, "at least one caret is required")
		return 0
	}

	for i, c := range carets {
		mode := buffer.SetAdd
		if i == 0 {
			mode = buffer.SetReplace
		}
		if err := buf.SetCaret(c, mode); err != nil {
			L.RaiseError("set_carets: %v", err)
			return 0
		}
	}
	return 0
}

// status() -> string
func (m *EditorModule) lastStatus(L *lua.LState) int {
	L.Push(lua.LString(m.Status()))
	return 1
}

func (m *EditorModule) buffer(L *lua.LState) Buffer {
	if m.host == nil || m.host.Buffer() == nil {
		L.RaiseError("%v", ErrNoEditor)
		return nil
	}
	return m.host.Buffer()
}

func (m *EditorModule) checkEdit(L *lua.LState) bool {
	if m.host == nil {
		L.RaiseError("%v", ErrNoEditor)
		return false
	}
	if m.sandbox != nil {
		if err := m.sandbox.CheckCapability(CapabilityEdit); err != nil {
			L.RaiseError("%v", err)
			return false
		}
	}
	return true
}
