package editor_test

import (
	"errors"
	"testing"

	"github.com/dshills/transpose/internal/dispatcher/execctx"
	"github.com/dshills/transpose/internal/dispatcher/handler"
	editorhandler "github.com/dshills/transpose/internal/dispatcher/handlers/editor"
	"github.com/dshills/transpose/internal/engine/buffer"
	"github.com/dshills/transpose/internal/engine/cursor"
	"github.com/dshills/transpose/internal/input"
	"github.com/dshills/transpose/internal/transpose"
)

func newContext(t *testing.T, text string, carets ...cursor.Caret) (*execctx.ExecutionContext, *buffer.LineBuffer) {
	t.Helper()

	b := buffer.NewLineBuffer(text)
	if len(carets) > 0 {
		if err := b.SetCarets(carets...); err != nil {
			t.Fatalf("SetCarets error = %v", err)
		}
	}
	ctx := execctx.New().WithText(b).WithTransposer(transpose.New(b))
	return ctx, b
}

func TestTransposeHandlerNamespace(t *testing.T) {
	h := editorhandler.NewTransposeHandler()
	if h.Namespace() != "editor" {
		t.Errorf("expected namespace 'editor', got %q", h.Namespace())
	}
}

func TestTransposeHandlerCanHandle(t *testing.T) {
	h := editorhandler.NewTransposeHandler()

	tests := []struct {
		action   string
		expected bool
	}{
		{editorhandler.ActionTranspose, true},
		{editorhandler.ActionMoveSelectionLeft, true},
		{editorhandler.ActionMoveSelectionRight, true},
		{"editor.unknown", false},
		{"cursor.moveLeft", false},
	}

	for _, tc := range tests {
		if h.CanHandle(tc.action) != tc.expected {
			t.Errorf("CanHandle(%q) = %v, want %v", tc.action, h.CanHandle(tc.action), tc.expected)
		}
	}
}

func TestTransposeHandlerSwap(t *testing.T) {
	ctx, b := newContext(t, "abcd", cursor.Collapsed(cursor.Pos(2, 0)))
	h := editorhandler.NewTransposeHandler()

	result := h.HandleAction(input.Action{Name: editorhandler.ActionTranspose}, ctx)
	if result.Status != handler.StatusOK {
		t.Fatalf("status = %v, error = %v", result.Status, result.Error)
	}
	if b.Text() != "acbd" {
		t.Errorf("text = %q, want %q", b.Text(), "acbd")
	}
	if result.Runs != 1 || len(result.Carets) != 1 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestTransposeHandlerCountDragsCharacter(t *testing.T) {
	ctx, b := newContext(t, "abcd", cursor.Collapsed(cursor.Pos(1, 0)))
	ctx.WithCount(3)

	result := editorhandler.NewTransposeHandler().HandleAction(input.Action{Name: editorhandler.ActionTranspose}, ctx)
	if b.Text() != "bcda" {
		t.Errorf("text = %q, want %q", b.Text(), "bcda")
	}
	if got := result.Runs; got != 3 {
		t.Errorf("runs = %d, want 3", got)
	}
}

func TestTransposeHandlerCountStopsWhenBlocked(t *testing.T) {
	sel := cursor.Selected(cursor.Pos(1, 0), cursor.Pos(2, 0))
	ctx, b := newContext(t, "abc", sel)
	ctx.WithCount(5)

	result := editorhandler.NewTransposeHandler().HandleAction(input.Action{Name: editorhandler.ActionMoveSelectionRight}, ctx)
	if b.Text() != "acb" {
		t.Errorf("text = %q, want %q", b.Text(), "acb")
	}
	if result.Status != handler.StatusOK || result.Runs != 1 {
		t.Errorf("status = %v, runs = %d", result.Status, result.Runs)
	}
	if result.Message != transpose.DefaultMessages().EndOfLine {
		t.Errorf("message = %q", result.Message)
	}
}

func TestTransposeHandlerNoOp(t *testing.T) {
	ctx, b := newContext(t, "ab", cursor.Collapsed(cursor.Pos(2, 0)))

	result := editorhandler.NewTransposeHandler().HandleAction(input.Action{Name: editorhandler.ActionTranspose}, ctx)
	if result.Status != handler.StatusNoOp {
		t.Errorf("status = %v, want no-op", result.Status)
	}
	if result.Message != "End of file reached" {
		t.Errorf("message = %q", result.Message)
	}
	if b.Status() != "End of file reached" {
		t.Errorf("buffer status = %q", b.Status())
	}
}

func TestTransposeHandlerMoveLeft(t *testing.T) {
	ctx, b := newContext(t, "abcd", cursor.Selected(cursor.Pos(2, 0), cursor.Pos(4, 0)))

	result := editorhandler.NewTransposeHandler().HandleAction(input.Action{Name: editorhandler.ActionMoveSelectionLeft}, ctx)
	if !result.IsOK() {
		t.Fatalf("status = %v", result.Status)
	}
	if b.Text() != "acdb" {
		t.Errorf("text = %q, want %q", b.Text(), "acdb")
	}
}

func TestTransposeHandlerValidation(t *testing.T) {
	h := editorhandler.NewTransposeHandler()

	result := h.HandleAction(input.Action{Name: editorhandler.ActionTranspose}, execctx.New())
	if !errors.Is(result.Error, execctx.ErrMissingText) {
		t.Errorf("error = %v, want ErrMissingText", result.Error)
	}

	ctx, b := newContext(t, "abcd", cursor.Collapsed(cursor.Pos(2, 0)))
	ctx.ReadOnly = true
	result = h.HandleAction(input.Action{Name: editorhandler.ActionTranspose}, ctx)
	if !errors.Is(result.Error, execctx.ErrReadOnly) {
		t.Errorf("error = %v, want ErrReadOnly", result.Error)
	}
	if b.Text() != "abcd" {
		t.Errorf("read-only buffer changed to %q", b.Text())
	}
}

func TestTransposeHandlerUnknownAction(t *testing.T) {
	ctx, _ := newContext(t, "abcd")
	result := editorhandler.NewTransposeHandler().HandleAction(input.Action{Name: "editor.bogus"}, ctx)
	if !result.IsError() {
		t.Errorf("status = %v, want error", result.Status)
	}
}
