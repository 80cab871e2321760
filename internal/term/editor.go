package term

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/transpose/internal/app"
	"github.com/dshills/transpose/internal/config"
	"github.com/dshills/transpose/internal/dispatcher/execctx"
	"github.com/dshills/transpose/internal/dispatcher/handler"
	"github.com/dshills/transpose/internal/engine/buffer"
	"github.com/dshills/transpose/internal/engine/cursor"
	"github.com/dshills/transpose/internal/input/keymap"
	"github.com/dshills/transpose/internal/logging"
)

var (
	textStyle   = tcell.StyleDefault
	selectStyle = tcell.StyleDefault.Reverse(true)
	statusStyle = tcell.StyleDefault.Reverse(true).Bold(true)
)

// reloadNotice carries a configuration reload into the event loop.
type reloadNotice struct {
	err error
}

var quitChord = keymap.MustParseChord("ctrl+q")

// stopRequest ends the event loop from another goroutine.
type stopRequest struct{}

// command is a built-in key handler.
type command func(e *Editor)

// builtins are consulted when the application keymap has no binding.
var builtins = map[keymap.Chord]command{
	keymap.MustParseChord("left"):        motion(stepLeft, false),
	keymap.MustParseChord("right"):       motion(stepRight, false),
	keymap.MustParseChord("up"):          motion(vertical(-1), false),
	keymap.MustParseChord("down"):        motion(vertical(1), false),
	keymap.MustParseChord("home"):        motion(lineStart, false),
	keymap.MustParseChord("end"):         motion(lineEnd, false),
	keymap.MustParseChord("shift+left"):  motion(stepLeft, true),
	keymap.MustParseChord("shift+right"): motion(stepRight, true),
	keymap.MustParseChord("shift+up"):    motion(vertical(-1), true),
	keymap.MustParseChord("shift+down"):  motion(vertical(1), true),
	keymap.MustParseChord("shift+home"):  motion(lineStart, true),
	keymap.MustParseChord("shift+end"):   motion(lineEnd, true),
	keymap.MustParseChord("alt+up"):      (*Editor).addCaretAbove,
	keymap.MustParseChord("alt+down"):    (*Editor).addCaretBelow,
	keymap.MustParseChord("escape"):      (*Editor).singleCaret,
	keymap.MustParseChord("ctrl+s"):      (*Editor).save,
	keymap.MustParseChord("ctrl+z"):      (*Editor).undo,
	keymap.MustParseChord("ctrl+y"):      (*Editor).redo,
	quitChord:                            (*Editor).quit,
}

func vertical(delta int) func(*buffer.LineBuffer, cursor.Position) cursor.Position {
	return func(b *buffer.LineBuffer, p cursor.Position) cursor.Position {
		return stepVertical(b, p, delta)
	}
}

func motion(step func(*buffer.LineBuffer, cursor.Position) cursor.Position, extend bool) command {
	return func(e *Editor) {
		b := e.buffer()
		carets := b.Carets().All()
		for i, c := range carets {
			carets[i] = moveCaret(c, step(b, c.Point), extend)
		}
		e.setCarets(carets)
	}
}

// Editor is the interactive terminal editor.
type Editor struct {
	app    *app.Application
	screen *Screen
	logger *logging.Logger

	top  int // first visible line
	left int // first visible cell

	message   string
	quitArmed bool
	done      bool
	pressed   bool
}

// New creates an editor drawing a onto screen.
func New(a *app.Application, screen *Screen) *Editor {
	return &Editor{
		app:    a,
		screen: screen,
		logger: a.Logger().WithComponent("term"),
	}
}

// Run initializes the screen and processes events until the user quits.
func (e *Editor) Run() error {
	if err := e.screen.Init(); err != nil {
		return fmt.Errorf("term: init screen: %w", err)
	}
	defer e.screen.Fini()

	e.app.OnReload(func(_ *config.Config, err error) {
		_ = e.screen.PostEvent(tcell.NewEventInterrupt(reloadNotice{err: err}))
	})

	for !e.done {
		e.Draw()
		ev := e.screen.PollEvent()
		if ev == nil {
			break
		}
		e.HandleEvent(ev)
	}
	return nil
}

// Stop asks a running editor to exit without saving. Safe from any goroutine.
func (e *Editor) Stop() {
	_ = e.screen.PostEvent(tcell.NewEventInterrupt(stopRequest{}))
}

// Done reports whether the user asked to quit.
func (e *Editor) Done() bool {
	return e.done
}

// Message returns the status line message.
func (e *Editor) Message() string {
	return e.message
}

// HandleEvent applies one terminal event.
func (e *Editor) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		e.handleKey(ev)
	case *tcell.EventMouse:
		e.handleMouse(ev)
	case *tcell.EventResize:
		e.screen.Sync()
	case *tcell.EventInterrupt:
		switch data := ev.Data().(type) {
		case reloadNotice:
			if data.err != nil {
				e.message = "config: " + data.err.Error()
			} else {
				e.message = "configuration reloaded"
			}
		case stopRequest:
			e.done = true
		}
	}
}

func (e *Editor) handleKey(ev *tcell.EventKey) {
	armed := e.quitArmed
	e.quitArmed = false

	if res, ok := e.app.HandleKey(ev); ok {
		e.report(res)
		return
	}

	chord := keymap.FromEvent(ev)
	if cmd, ok := builtins[chord]; ok {
		if chord == quitChord {
			e.quitArmed = armed
		}
		cmd(e)
		return
	}

	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) == 0 {
			e.edit(selection, string(ev.Rune()))
		}
	case tcell.KeyEnter:
		e.edit(selection, "\n")
	case tcell.KeyTab:
		e.edit(selection, "\t")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.edit(previousChar, "")
	case tcell.KeyDelete:
		e.edit(nextChar, "")
	}
}

func (e *Editor) handleMouse(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 {
		e.pressed = false
		return
	}
	if e.pressed {
		return
	}
	e.pressed = true

	x, y := ev.Position()
	_, height := e.screen.Size()
	if y >= height-1 {
		return
	}

	b := e.buffer()
	line := min(e.top+y, b.LineCount()-1)
	col := layoutLine(b.LineText(line)).unitAt(x + e.left)
	units := b.LineUnits(line)
	if splitsPair(units, col) {
		col--
	}
	caret := cursor.Collapsed(cursor.Pos(col, line))

	if ev.Modifiers()&tcell.ModCtrl != 0 {
		e.setCarets(append(b.Carets().All(), caret))
		return
	}
	e.setCarets([]cursor.Caret{caret})
}

func (e *Editor) buffer() *buffer.LineBuffer {
	return e.app.Document().Buffer()
}

func (e *Editor) setCarets(carets []cursor.Caret) {
	if err := e.buffer().SetCarets(dedupe(carets)...); err != nil {
		e.message = err.Error()
	}
}

func (e *Editor) edit(pick span, text string) {
	name := "type"
	if text == "" {
		name = "delete"
	}
	err := e.app.Edit(name, func(b *buffer.LineBuffer) error {
		return replaceAll(b, pick, text)
	})
	switch {
	case errors.Is(err, execctx.ErrReadOnly):
		e.message = "read-only"
		e.screen.Beep()
	case err != nil:
		e.message = err.Error()
		e.logger.Error("%v", err)
	default:
		e.message = ""
	}
}

func (e *Editor) undo() {
	name, err := e.app.Undo()
	if err != nil {
		e.message = err.Error()
		return
	}
	e.message = "undid " + name
}

func (e *Editor) redo() {
	name, err := e.app.Redo()
	if err != nil {
		e.message = err.Error()
		return
	}
	e.message = "redid " + name
}

func (e *Editor) report(res handler.Result) {
	switch {
	case res.IsError():
		e.message = res.Error.Error()
	default:
		e.message = res.Message
	}
}

func (e *Editor) addCaretAbove() {
	carets := e.buffer().Carets().All()
	if len(carets) == 0 {
		return
	}
	first := carets[0]
	for _, c := range carets[1:] {
		if c.Point.Before(first.Point) {
			first = c
		}
	}
	e.addCaret(first.Point, -1)
}

func (e *Editor) addCaretBelow() {
	carets := e.buffer().Carets().All()
	if len(carets) == 0 {
		return
	}
	last := carets[0]
	for _, c := range carets[1:] {
		if c.Point.After(last.Point) {
			last = c
		}
	}
	e.addCaret(last.Point, 1)
}

func (e *Editor) addCaret(from cursor.Position, delta int) {
	b := e.buffer()
	p := stepVertical(b, from, delta)
	if p == from {
		return
	}
	e.setCarets(append(b.Carets().All(), cursor.Collapsed(p)))
}

func (e *Editor) singleCaret() {
	e.setCarets([]cursor.Caret{e.buffer().Carets().Primary()})
}

func (e *Editor) save() {
	doc := e.app.Document()
	err := doc.Save()
	switch {
	case errors.Is(err, app.ErrNoPath):
		e.message = "no file name"
	case err != nil:
		e.message = err.Error()
		e.logger.Error("save %s: %v", doc.Path, err)
	default:
		e.message = "saved " + doc.Path
		e.logger.Info("saved %s", doc.Path)
	}
}

func (e *Editor) quit() {
	if e.app.Document().IsModified() && !e.quitArmed {
		e.quitArmed = true
		e.message = "unsaved changes, press ctrl+q again to quit"
		return
	}
	e.done = true
}
