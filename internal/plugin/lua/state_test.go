package lua

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"
)

func newState(t *testing.T, opts ...StateOption) *State {
	t.Helper()
	s := NewState(opts...)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStateDoString(t *testing.T) {
	s := newState(t)

	if err := s.DoString(`x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	num, ok := s.GetGlobal("x").(glua.LNumber)
	if !ok || float64(num) != 2 {
		t.Errorf("x = %v, want 2", s.GetGlobal("x"))
	}
}

func TestStateDoStringSyntaxError(t *testing.T) {
	s := newState(t)
	if err := s.DoString(`invalid lua code !!!`); err == nil {
		t.Error("DoString() should fail on a syntax error")
	}
}

func TestStateDoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.lua")
	if err := os.WriteFile(path, []byte("answer = 6 * 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := newState(t)
	if err := s.DoFile(path); err != nil {
		t.Fatalf("DoFile() error = %v", err)
	}
	if got := s.GetGlobal("answer"); got.String() != "42" {
		t.Errorf("answer = %v, want 42", got)
	}

	if err := s.DoFile(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("DoFile() should fail for a missing file")
	}
}

func TestStateTimeout(t *testing.T) {
	s := newState(t, WithExecutionTimeout(50*time.Millisecond))

	err := s.DoString(`while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("DoString() error = %v, want ErrExecutionTimeout", err)
	}

	// The state stays usable.
	if err := s.DoString(`y = 1`); err != nil {
		t.Errorf("DoString() after timeout error = %v", err)
	}
}

func TestStateClosed(t *testing.T) {
	s := NewState()
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() after Close = %v, want ErrStateClosed", err)
	}
	if s.GetGlobal("x") != glua.LNil {
		t.Error("GetGlobal() after Close should be nil")
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestSandboxRemovesLoaders(t *testing.T) {
	s := newState(t)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "io", "os", "debug"} {
		if s.GetGlobal(name) != glua.LNil {
			t.Errorf("global %s should not be available", name)
		}
	}
}

func TestSandboxRequire(t *testing.T) {
	s := newState(t)

	if err := s.DoString(`local s = require("string"); up = s.upper("ab")`); err != nil {
		t.Fatalf("require(string) error = %v", err)
	}
	if got := s.GetGlobal("up").String(); got != "AB" {
		t.Errorf("up = %q, want AB", got)
	}

	for _, mod := range []string{"io", "os", "debug", "socket"} {
		err := s.DoString(`require("` + mod + `")`)
		if err == nil || !strings.Contains(err.Error(), "not available") {
			t.Errorf("require(%q) error = %v, want not available", mod, err)
		}
	}
}

func TestSandboxPrint(t *testing.T) {
	var out bytes.Buffer
	s := newState(t, WithOutput(&out))

	if err := s.DoString(`print("a", 1, true)`); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "a\t1\ttrue\n"; got != want {
		t.Errorf("print output = %q, want %q", got, want)
	}
}

func TestSandboxCapabilities(t *testing.T) {
	s := newState(t)
	sb := s.Sandbox()

	if !sb.HasCapability(CapabilityEdit) {
		t.Fatal("CapabilityEdit should be granted by default")
	}
	sb.Revoke(CapabilityEdit)

	err := sb.CheckCapability(CapabilityEdit)
	var capErr *CapabilityError
	if !errors.As(err, &capErr) || capErr.Capability != CapabilityEdit {
		t.Fatalf("CheckCapability() = %v, want CapabilityError", err)
	}
	if got, want := err.Error(), "lua: capability not granted: editor.edit"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	sb.Grant(CapabilityEdit)
	if err := sb.CheckCapability(CapabilityEdit); err != nil {
		t.Errorf("CheckCapability() after Grant = %v", err)
	}
}
