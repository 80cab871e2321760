package dispatcher_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/transpose/internal/dispatcher"
	"github.com/dshills/transpose/internal/dispatcher/execctx"
	"github.com/dshills/transpose/internal/dispatcher/handler"
	editorhandler "github.com/dshills/transpose/internal/dispatcher/handlers/editor"
	"github.com/dshills/transpose/internal/engine/buffer"
	"github.com/dshills/transpose/internal/engine/cursor"
	"github.com/dshills/transpose/internal/input"
	"github.com/dshills/transpose/internal/logging"
	"github.com/dshills/transpose/internal/transpose"
)

func newEditorDispatcher(t *testing.T, cfg dispatcher.Config, text string, carets ...cursor.Caret) (*dispatcher.Dispatcher, *buffer.LineBuffer) {
	t.Helper()

	b := buffer.NewLineBuffer(text)
	if len(carets) > 0 {
		if err := b.SetCarets(carets...); err != nil {
			t.Fatalf("SetCarets error = %v", err)
		}
	}

	d := dispatcher.New(cfg)
	d.SetText(b)
	d.SetTransposer(transpose.New(b))
	d.RegisterNamespace("editor", editorhandler.NewTransposeHandler())
	return d, b
}

func TestNewWithDefaults(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	if d.Router() == nil {
		t.Fatal("expected a router")
	}
	if d.Metrics() != nil {
		t.Error("expected nil metrics by default")
	}
	if !d.Config().RecoverFromPanic {
		t.Error("expected panic recovery by default")
	}
}

func TestDispatchNoHandler(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	result := d.Dispatch(input.Action{Name: "unknown.action"})
	if !errors.Is(result.Error, dispatcher.ErrNoHandler) {
		t.Errorf("error = %v, want ErrNoHandler", result.Error)
	}
}

func TestDispatchEmptyName(t *testing.T) {
	result := dispatcher.NewWithDefaults().Dispatch(input.Action{})
	if !errors.Is(result.Error, dispatcher.ErrInvalidAction) {
		t.Errorf("error = %v, want ErrInvalidAction", result.Error)
	}
}

func TestDispatchTranspose(t *testing.T) {
	d, b := newEditorDispatcher(t, dispatcher.DefaultConfig(), "AB CD",
		cursor.Selected(cursor.Pos(0, 0), cursor.Pos(2, 0)),
		cursor.Selected(cursor.Pos(3, 0), cursor.Pos(5, 0)))

	if !d.CanDispatch(editorhandler.ActionTranspose) {
		t.Fatal("editor.transpose should be routable")
	}

	result := d.Dispatch(input.Action{Name: editorhandler.ActionTranspose})
	if !result.IsOK() {
		t.Fatalf("status = %v, error = %v", result.Status, result.Error)
	}
	if b.Text() != "CD AB" {
		t.Errorf("text = %q, want %q", b.Text(), "CD AB")
	}
}

func TestDispatchMoveSelections(t *testing.T) {
	d, b := newEditorDispatcher(t, dispatcher.DefaultConfig(), "abcdef",
		cursor.Selected(cursor.Pos(2, 0), cursor.Pos(4, 0)))

	d.Dispatch(input.Action{Name: editorhandler.ActionMoveSelectionRight})
	if b.Text() != "abecdf" {
		t.Errorf("after right: %q", b.Text())
	}
	d.Dispatch(input.Action{Name: editorhandler.ActionMoveSelectionLeft, Count: 2})
	if b.Text() != "acdbef" {
		t.Errorf("after left x2: %q", b.Text())
	}
}

func TestDispatchMaxRepeatCount(t *testing.T) {
	cfg := dispatcher.DefaultConfig().WithMaxRepeatCount(2)
	d, b := newEditorDispatcher(t, cfg, "abcde", cursor.Collapsed(cursor.Pos(1, 0)))

	result := d.Dispatch(input.Action{Name: editorhandler.ActionTranspose, Count: 10})
	if got := result.Runs; got != 2 {
		t.Errorf("runs = %d, want 2", got)
	}
	if b.Text() != "bcade" {
		t.Errorf("text = %q, want %q", b.Text(), "bcade")
	}
}

func TestDispatchReadOnly(t *testing.T) {
	d, b := newEditorDispatcher(t, dispatcher.DefaultConfig().WithReadOnly(true), "abcd",
		cursor.Collapsed(cursor.Pos(2, 0)))

	result := d.Dispatch(input.Action{Name: editorhandler.ActionTranspose})
	if !errors.Is(result.Error, execctx.ErrReadOnly) {
		t.Errorf("error = %v, want ErrReadOnly", result.Error)
	}
	if b.Text() != "abcd" {
		t.Errorf("text changed to %q", b.Text())
	}
}

func TestPanicRecovery(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	d.RegisterHandlerFunc("test.panic", func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		panic("boom")
	})

	result := d.Dispatch(input.Action{Name: "test.panic"})
	if !errors.Is(result.Error, dispatcher.ErrPanic) {
		t.Errorf("error = %v, want ErrPanic", result.Error)
	}
}

func TestPreHookCancels(t *testing.T) {
	d, b := newEditorDispatcher(t, dispatcher.DefaultConfig(), "abcd", cursor.Collapsed(cursor.Pos(2, 0)))
	d.RegisterPreHook(dispatcher.PreDispatchFunc(func(action *input.Action, ctx *execctx.ExecutionContext) bool {
		return action.Source != input.SourcePlugin
	}))

	result := d.Dispatch(input.Action{Name: editorhandler.ActionTranspose, Source: input.SourcePlugin})
	if result.Status != handler.StatusCancelled || !errors.Is(result.Error, dispatcher.ErrActionCancelled) {
		t.Errorf("result = %+v", result)
	}
	if b.Text() != "abcd" {
		t.Errorf("cancelled action changed text to %q", b.Text())
	}
}

func TestPostHookSeesResult(t *testing.T) {
	d, _ := newEditorDispatcher(t, dispatcher.DefaultConfig(), "ab", cursor.Collapsed(cursor.Pos(2, 0)))

	var seen []string
	var ids []string
	d.RegisterPostHook(dispatcher.PostDispatchFunc(func(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
		seen = append(seen, result.Message)
		ids = append(ids, ctx.InvocationID)
	}))

	d.Dispatch(input.Action{Name: editorhandler.ActionTranspose})
	d.Dispatch(input.Action{Name: editorhandler.ActionTranspose})

	if len(seen) != 2 || seen[0] != "End of file reached" {
		t.Errorf("seen = %q", seen)
	}
	if ids[0] == "" || ids[0] == ids[1] {
		t.Errorf("invocation ids not unique: %q", ids)
	}
}

func TestLoggingHook(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})

	d, _ := newEditorDispatcher(t, dispatcher.DefaultConfig(), "abcd", cursor.Collapsed(cursor.Pos(2, 0)))
	d.SetLogger(logger)
	hook := dispatcher.NewLoggingHook(logger)
	d.RegisterPreHook(hook)
	d.RegisterPostHook(hook)

	d.Dispatch(input.Action{Name: editorhandler.ActionTranspose})

	out := buf.String()
	if !strings.Contains(out, "dispatching editor.transpose") {
		t.Errorf("missing pre-dispatch line in %q", out)
	}
	if !strings.Contains(out, "editor.transpose -> ok") {
		t.Errorf("missing post-dispatch line in %q", out)
	}
	if !strings.Contains(out, "dispatch=") {
		t.Errorf("missing invocation id field in %q", out)
	}
}

func TestMetrics(t *testing.T) {
	d, _ := newEditorDispatcher(t, dispatcher.DefaultConfig().WithMetrics(), "abcdef", cursor.Collapsed(cursor.Pos(2, 0)))
	d.RegisterHandlerFunc("test.panic", func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		panic("boom")
	})

	d.Dispatch(input.Action{Name: editorhandler.ActionTranspose})
	d.Dispatch(input.Action{Name: "test.panic"})

	d.Dispatch(input.Action{Name: editorhandler.ActionTranspose, Count: 2})

	stats, ok := d.Metrics().Action(editorhandler.ActionTranspose)
	if !ok || stats.Dispatches != 2 || stats.Changed != 2 || stats.Runs != 3 {
		t.Errorf("transpose stats = %+v", stats)
	}
	if panics, _ := d.Metrics().Action("test.panic"); panics.Panics != 1 || panics.Errors != 1 {
		t.Errorf("panic stats = %+v", panics)
	}

	total := d.Metrics().Total()
	if total.Dispatches != 3 || total.Errors != 1 {
		t.Errorf("total = %+v", total)
	}
	if !strings.Contains(d.Metrics().Summary(), "editor.transpose: 2 dispatched, 2 changed (3 runs)") {
		t.Errorf("summary = %q", d.Metrics().Summary())
	}

	d.Metrics().Reset()
	if len(d.Metrics().Snapshot()) != 0 {
		t.Error("Reset did not clear counters")
	}
}

func TestDispatchNameWithoutNamespace(t *testing.T) {
	result := dispatcher.NewWithDefaults().Dispatch(input.Action{Name: "transpose"})
	if !errors.Is(result.Error, dispatcher.ErrInvalidAction) || !errors.Is(result.Error, input.ErrInvalidName) {
		t.Errorf("error = %v, want ErrInvalidAction wrapping ErrInvalidName", result.Error)
	}
}
