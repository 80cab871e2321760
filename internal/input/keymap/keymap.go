// Package keymap maps key chords to action names.
package keymap

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("keymap: empty key specification")
	ErrInvalidSpec = errors.New("keymap: invalid key specification")
)

// Chord is one key press with its modifiers.
// Character keys use tcell.KeyRune with a lower-case Rune when Ctrl is held.
type Chord struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

var namedKeys = map[string]tcell.Key{
	"escape":    tcell.KeyEscape,
	"esc":       tcell.KeyEscape,
	"enter":     tcell.KeyEnter,
	"return":    tcell.KeyEnter,
	"tab":       tcell.KeyTab,
	"backspace": tcell.KeyBackspace2,
	"delete":    tcell.KeyDelete,
	"del":       tcell.KeyDelete,
	"insert":    tcell.KeyInsert,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pageup":    tcell.KeyPgUp,
	"pgup":      tcell.KeyPgUp,
	"pagedown":  tcell.KeyPgDn,
	"pgdn":      tcell.KeyPgDn,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"f1":        tcell.KeyF1,
	"f2":        tcell.KeyF2,
	"f3":        tcell.KeyF3,
	"f4":        tcell.KeyF4,
	"f5":        tcell.KeyF5,
	"f6":        tcell.KeyF6,
	"f7":        tcell.KeyF7,
	"f8":        tcell.KeyF8,
	"f9":        tcell.KeyF9,
	"f10":       tcell.KeyF10,
	"f11":       tcell.KeyF11,
	"f12":       tcell.KeyF12,
}

var keyNames = map[tcell.Key]string{
	tcell.KeyEscape:     "Escape",
	tcell.KeyEnter:      "Enter",
	tcell.KeyTab:        "Tab",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyDelete:     "Delete",
	tcell.KeyInsert:     "Insert",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PageUp",
	tcell.KeyPgDn:       "PageDown",
	tcell.KeyUp:         "Up",
	tcell.KeyDown:       "Down",
	tcell.KeyLeft:       "Left",
	tcell.KeyRight:      "Right",
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyF6:         "F6",
	tcell.KeyF7:         "F7",
	tcell.KeyF8:         "F8",
	tcell.KeyF9:         "F9",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
}

var modifierNames = map[string]tcell.ModMask{
	"ctrl":    tcell.ModCtrl,
	"control": tcell.ModCtrl,
	"c":       tcell.ModCtrl,
	"alt":     tcell.ModAlt,
	"option":  tcell.ModAlt,
	"a":       tcell.ModAlt,
	"shift":   tcell.ModShift,
	"s":       tcell.ModShift,
	"meta":    tcell.ModMeta,
	"cmd":     tcell.ModMeta,
	"m":       tcell.ModMeta,
}

// ParseChord parses specifications like "ctrl+t", "Alt+Left" or "<C-t>".
func ParseChord(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptySpec
	}

	sep := "+"
	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") && len(spec) > 2 {
		spec = spec[1 : len(spec)-1]
		sep = "-"
	}

	parts := strings.Split(spec, sep)
	if len(parts) > 1 && parts[len(parts)-1] == "" {
		// "ctrl++" binds the separator itself.
		parts = append(parts[:len(parts)-2], sep)
	}

	var mod tcell.ModMask
	for _, p := range parts[:len(parts)-1] {
		m, ok := modifierNames[strings.ToLower(strings.TrimSpace(p))]
		if !ok {
			return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mod |= m
	}

	keyPart := strings.TrimSpace(parts[len(parts)-1])
	if keyPart == "" {
		return Chord{}, fmt.Errorf("%w: missing key", ErrInvalidSpec)
	}
	if k, ok := namedKeys[strings.ToLower(keyPart)]; ok {
		return Chord{Key: k, Mod: mod}, nil
	}
	if strings.EqualFold(keyPart, "space") {
		return runeChord(' ', mod), nil
	}
	if utf8.RuneCountInString(keyPart) == 1 {
		r, _ := utf8.DecodeRuneInString(keyPart)
		return runeChord(r, mod), nil
	}
	return Chord{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// MustParseChord parses a chord and panics on error.
func MustParseChord(spec string) Chord {
	c, err := ParseChord(spec)
	if err != nil {
		panic(err)
	}
	return c
}

// runeChord drops Shift, which the character already carries, and folds
// case under Ctrl.
func runeChord(r rune, mod tcell.ModMask) Chord {
	mod &^= tcell.ModShift
	if mod&tcell.ModCtrl != 0 {
		r = unicode.ToLower(r)
	}
	return Chord{Key: tcell.KeyRune, Rune: r, Mod: mod}
}

// FromEvent converts a terminal key event into a chord.
func FromEvent(ev *tcell.EventKey) Chord {
	k, mod := ev.Key(), ev.Modifiers()
	switch {
	case k == tcell.KeyRune:
		return runeChord(ev.Rune(), mod)
	case k == tcell.KeyTab || k == tcell.KeyEnter || k == tcell.KeyBackspace:
		if mod&tcell.ModCtrl == 0 {
			return Chord{Key: k, Mod: mod}
		}
		return runeChord(rune('a'+(k-tcell.KeyCtrlA)), mod)
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return runeChord(rune('a'+(k-tcell.KeyCtrlA)), mod|tcell.ModCtrl)
	}
	return Chord{Key: k, Mod: mod}
}

// String returns the chord in "Ctrl+Alt+Shift+Key" form.
func (c Chord) String() string {
	var b strings.Builder
	if c.Mod&tcell.ModCtrl != 0 {
		b.WriteString("Ctrl+")
	}
	if c.Mod&tcell.ModAlt != 0 {
		b.WriteString("Alt+")
	}
	if c.Mod&tcell.ModMeta != 0 {
		b.WriteString("Meta+")
	}
	if c.Mod&tcell.ModShift != 0 {
		b.WriteString("Shift+")
	}
	if c.Key == tcell.KeyRune {
		if c.Rune == ' ' {
			b.WriteString("Space")
		} else {
			b.WriteRune(c.Rune)
		}
		return b.String()
	}
	if name, ok := keyNames[c.Key]; ok {
		b.WriteString(name)
	} else {
		fmt.Fprintf(&b, "Key(%d)", c.Key)
	}
	return b.String()
}

// Binding maps a key specification to an action name.
type Binding struct {
	Keys   string
	Action string
}

// Keymap holds chord bindings. It is safe for concurrent use.
type Keymap struct {
	mu       sync.RWMutex
	bindings map[Chord]Binding
}

// New creates an empty keymap.
func New() *Keymap {
	return &Keymap{bindings: make(map[Chord]Binding)}
}

// Add binds keys to action, replacing any earlier binding of the chord.
func (k *Keymap) Add(keys, action string) error {
	if action == "" {
		return fmt.Errorf("keymap: %s: empty action", keys)
	}
	c, err := ParseChord(keys)
	if err != nil {
		return fmt.Errorf("keymap: %s: %w", keys, err)
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.bindings[c] = Binding{Keys: keys, Action: action}
	return nil
}

// Load adds every binding in m (key specification to action name).
func (k *Keymap) Load(m map[string]string) error {
	keys := make([]string, 0, len(m))
	for spec := range m {
		keys = append(keys, spec)
	}
	sort.Strings(keys)

	for _, spec := range keys {
		if err := k.Add(spec, m[spec]); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the action bound to c.
func (k *Keymap) Lookup(c Chord) (string, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	b, ok := k.bindings[c]
	return b.Action, ok
}

// LookupEvent returns the action bound to a terminal key event.
func (k *Keymap) LookupEvent(ev *tcell.EventKey) (string, bool) {
	return k.Lookup(FromEvent(ev))
}

// Bindings returns all bindings sorted by key specification.
func (k *Keymap) Bindings() []Binding {
	k.mu.RLock()
	defer k.mu.RUnlock()

	result := make([]Binding, 0, len(k.bindings))
	for _, b := range k.bindings {
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Keys < result[j].Keys
	})
	return result
}

// Len returns the number of bindings.
func (k *Keymap) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.bindings)
}
