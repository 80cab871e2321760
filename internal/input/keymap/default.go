package keymap

// DefaultBindings returns the built-in key bindings.
func DefaultBindings() map[string]string {
	return map[string]string{
		"ctrl+t":    "editor.transpose",
		"alt+left":  "editor.moveSelectionLeft",
		"alt+right": "editor.moveSelectionRight",
	}
}

// NewDefault creates a keymap holding DefaultBindings. It panics if a
// default binding does not parse.
func NewDefault() *Keymap {
	k := New()
	if err := k.Load(DefaultBindings()); err != nil {
		panic(err)
	}
	return k
}
