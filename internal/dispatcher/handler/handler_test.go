package handler_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/transpose/internal/dispatcher/execctx"
	"github.com/dshills/transpose/internal/dispatcher/handler"
	"github.com/dshills/transpose/internal/engine/cursor"
	"github.com/dshills/transpose/internal/input"
)

func TestFunc(t *testing.T) {
	called := false
	var h handler.Handler = handler.Func(func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		called = true
		return handler.Success()
	})

	if !h.CanHandle("anything") || h.Priority() != 0 {
		t.Error("Func should accept any action at priority 0")
	}
	if result := h.Handle(input.Action{Name: "editor.transpose"}, execctx.New()); !called || !result.IsOK() {
		t.Errorf("called = %v, status = %v", called, result.Status)
	}

	if p := handler.WithPriority(h, 7); p.Priority() != 7 || !p.CanHandle("x") {
		t.Errorf("WithPriority: priority = %d", p.Priority())
	}
}

func TestNilFunc(t *testing.T) {
	var fn handler.Func
	if result := fn.Handle(input.Action{Name: "editor.transpose"}, execctx.New()); !result.IsError() {
		t.Errorf("nil Func status = %v, want error", result.Status)
	}
}

func TestTable(t *testing.T) {
	table := handler.NewTable("editor").
		Set("editor.transpose", func(input.Action, *execctx.ExecutionContext) handler.Result {
			return handler.Success().WithMessage("done")
		})

	if table.Namespace() != "editor" {
		t.Errorf("Namespace() = %q", table.Namespace())
	}
	if !table.CanHandle("editor.transpose") || table.CanHandle("editor.other") {
		t.Error("CanHandle mismatch")
	}
	if r := table.HandleAction(input.Action{Name: "editor.transpose"}, execctx.New()); r.Message != "done" {
		t.Errorf("Message = %q", r.Message)
	}
	if r := table.HandleAction(input.Action{Name: "editor.other"}, execctx.New()); !r.IsError() {
		t.Errorf("unknown action status = %v", r.Status)
	}

	h := handler.FromNamespace(table)
	if !h.CanHandle("editor.transpose") || h.Priority() != 0 {
		t.Error("adapter should forward CanHandle at priority 0")
	}
	if r := h.Handle(input.Action{Name: "editor.transpose"}, execctx.New()); !r.IsOK() {
		t.Errorf("adapted status = %v", r.Status)
	}
}

func TestChanged(t *testing.T) {
	carets := []cursor.Caret{cursor.Collapsed(cursor.Pos(1, 0))}

	tests := []struct {
		name string
		runs int
		want handler.ResultStatus
	}{
		{"ran", 2, handler.StatusOK},
		{"blocked", 0, handler.StatusNoOp},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := handler.Changed(tc.runs, "End of line reached", carets)
			if r.Status != tc.want || r.Runs != tc.runs {
				t.Errorf("status = %v, runs = %d", r.Status, r.Runs)
			}
			if diff := cmp.Diff(carets, r.Carets); diff != "" {
				t.Errorf("carets mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestErrorResults(t *testing.T) {
	err := errors.New("boom")
	if r := handler.Error(err); !errors.Is(r.Error, err) || !r.IsError() {
		t.Errorf("Error result = %+v", r)
	}
	if r := handler.Errorf("bad %d", 1); r.Error.Error() != "bad 1" {
		t.Errorf("Errorf = %v", r.Error)
	}
}

func TestResultStatusString(t *testing.T) {
	tests := map[handler.ResultStatus]string{
		handler.StatusOK:        "ok",
		handler.StatusNoOp:      "no-op",
		handler.StatusError:     "error",
		handler.StatusCancelled: "cancelled",
		handler.ResultStatus(9): "unknown",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}
