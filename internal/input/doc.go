// Package input defines the actions hosts hand to the dispatcher.
//
// An Action names a command such as "editor.transpose" and records where
// it came from. Hosts build actions from whatever they receive: the
// terminal host maps key chords through a keymap (see package keymap),
// the Lua bridge and the session runner build them from command names.
//
//	result := dispatcher.Dispatch(input.Action{
//	    Name:   "editor.moveSelectionRight",
//	    Source: input.SourceKeyboard,
//	    Count:  3,
//	})
package input
