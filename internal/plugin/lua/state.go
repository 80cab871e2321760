package lua

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultExecutionTimeout bounds one DoString or DoFile.
const DefaultExecutionTimeout = 5 * time.Second

// State is a sandboxed gopher-lua state. gopher-lua states are not safe
// for concurrent use, so every call takes the state's mutex.
type State struct {
	mu      sync.Mutex
	L       *lua.LState
	sandbox *Sandbox
	closed  bool

	timeout time.Duration
	output  io.Writer
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout bounds each script run. Zero removes the bound.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		if d >= 0 {
			s.timeout = d
		}
	}
}

// WithOutput sends print output to w instead of os.Stdout.
func WithOutput(w io.Writer) StateOption {
	return func(s *State) {
		if w != nil {
			s.output = w
		}
	}
}

// safeLibs are the standard libraries a script may use.
var safeLibs = map[string]lua.LGFunction{
	lua.LoadLibName:   lua.OpenPackage,
	lua.BaseLibName:   lua.OpenBase,
	lua.TabLibName:    lua.OpenTable,
	lua.StringLibName: lua.OpenString,
	lua.MathLibName:   lua.OpenMath,
}

// NewState creates a state with only the safe libraries open and the
// sandbox installed.
func NewState(opts ...StateOption) *State {
	s := &State{timeout: DefaultExecutionTimeout, output: os.Stdout}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	// package first: the others register themselves in package.loaded.
	s.openLib(lua.LoadLibName)
	for name := range safeLibs {
		if name != lua.LoadLibName {
			s.openLib(name)
		}
	}

	s.sandbox = NewSandbox(s.L, s.output)
	s.sandbox.Install()
	return s
}

func (s *State) openLib(name string) {
	s.L.Push(s.L.NewFunction(safeLibs[name]))
	s.L.Push(lua.LString(name))
	s.L.Call(1, 0)
}

// DoString compiles and runs code.
func (s *State) DoString(code string) error {
	return s.exec(func() (*lua.LFunction, error) {
		return s.L.LoadString(code)
	})
}

// DoFile compiles and runs the script at path.
func (s *State) DoFile(path string) error {
	code, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("lua: read %s: %w", path, err)
	}
	return s.exec(func() (*lua.LFunction, error) {
		return s.L.Load(bytes.NewReader(code), path)
	})
}

// exec compiles a chunk and calls it under the timeout, turning a Go
// panic inside the VM into an error.
func (s *State) exec(compile func() (*lua.LFunction, error)) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStateClosed
	}

	fn, err := compile()
	if err != nil {
		return err
	}

	ctx, cancel := context.Background(), context.CancelFunc(func() {})
	if s.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
	}
	defer cancel()
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	top := s.L.GetTop()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
		s.L.SetTop(top)
	}()

	s.L.Push(fn)
	err = s.L.PCall(0, lua.MultRet, nil)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrExecutionTimeout, err)
	}
	return err
}

// GetGlobal returns the global name, or nil once the state is closed.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// Module is a Go library scripts can use.
type Module interface {
	Name() string
	Loader(L *lua.LState) int
}

// Register makes m loadable with require and sets it as the global
// named after it.
func (s *State) Register(m Module) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.L.PreloadModule(m.Name(), m.Loader)
	s.sandbox.Allow(m.Name())

	s.L.Push(s.L.NewFunction(m.Loader))
	s.L.Call(0, 1)
	s.L.SetGlobal(m.Name(), s.L.Get(-1))
	s.L.Pop(1)
}

// Sandbox returns the sandbox, for granting and revoking capabilities.
func (s *State) Sandbox() *Sandbox {
	return s.sandbox
}

// Close releases the state. Later runs fail with ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.L.Close()
		s.closed = true
	}
	return nil
}
