package term

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Screen serializes access to a tcell screen.
type Screen struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewScreen creates a screen on the controlling terminal.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Screen{screen: s}, nil
}

// NewScreenFrom wraps an existing tcell screen, such as a simulation screen.
func NewScreenFrom(s tcell.Screen) *Screen {
	return &Screen{screen: s}
}

// Init initializes the terminal and enables mouse and bracketed paste.
func (s *Screen) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.screen.Init(); err != nil {
		return err
	}
	s.screen.EnableMouse()
	s.screen.EnablePaste()
	s.screen.SetCursorStyle(tcell.CursorStyleSteadyBar)
	return nil
}

// Fini restores the terminal.
func (s *Screen) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Fini()
}

func (s *Screen) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.screen.Size()
}

// Put draws one grapheme cluster at (x, y).
func (s *Screen) Put(x, y int, cluster string, style tcell.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runes := []rune(cluster)
	if len(runes) == 0 {
		return
	}
	s.screen.SetContent(x, y, runes[0], runes[1:], style)
}

// FillRow paints a row from x to the right edge.
func (s *Screen) FillRow(x, y int, style tcell.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()

	width, _ := s.screen.Size()
	for ; x < width; x++ {
		s.screen.SetContent(x, y, ' ', nil, style)
	}
}

func (s *Screen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Clear()
}

func (s *Screen) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Show()
}

// Sync redraws the whole terminal, after a resize for example.
func (s *Screen) Sync() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Sync()
}

func (s *Screen) ShowCursor(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.ShowCursor(x, y)
}

func (s *Screen) HideCursor() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.HideCursor()
}

func (s *Screen) Beep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.screen.Beep() // best-effort; terminal may not support beep
}

// PollEvent blocks for the next event. It returns nil once the screen
// is finalized.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// PostEvent queues an event for PollEvent. Safe from any goroutine.
func (s *Screen) PostEvent(ev tcell.Event) error {
	return s.screen.PostEvent(ev)
}
