package transpose

import "fmt"

// Message keys accepted by Messages.Override.
const (
	KeyNothingToTranspose = "nothing_to_transpose"
	KeyEndOfFile          = "end_of_file"
	KeySelectionsOverlap  = "selections_overlap"
	KeyNoValidSelection   = "no_valid_selection"
	KeyStartOfLine        = "start_of_line"
	KeyEndOfLine          = "end_of_line"
	KeyMovedLeft          = "moved_left"
	KeyMovedRight         = "moved_right"
)

// Messages holds the status texts shown to the user.
type Messages struct {
	NothingToTranspose string
	EndOfFile          string
	SelectionsOverlap  string
	NoValidSelection   string
	StartOfLine        string
	EndOfLine          string
	MovedLeft          string
	MovedRight         string
}

// DefaultMessages returns the built-in English status texts.
func DefaultMessages() Messages {
	return Messages{
		NothingToTranspose: "Nothing to transpose",
		EndOfFile:          "End of file reached",
		SelectionsOverlap:  "Selections overlap, nothing transposed",
		NoValidSelection:   "Select text on a single line with one caret to move it",
		StartOfLine:        "Start of line reached",
		EndOfLine:          "End of line reached",
		MovedLeft:          "Selection moved left",
		MovedRight:         "Selection moved right",
	}
}

// Override returns a copy with the texts named in overrides replaced.
// Empty values are ignored.
func (m Messages) Override(overrides map[string]string) (Messages, error) {
	fields := map[string]*string{
		KeyNothingToTranspose: &m.NothingToTranspose,
		KeyEndOfFile:          &m.EndOfFile,
		KeySelectionsOverlap:  &m.SelectionsOverlap,
		KeyNoValidSelection:   &m.NoValidSelection,
		KeyStartOfLine:        &m.StartOfLine,
		KeyEndOfLine:          &m.EndOfLine,
		KeyMovedLeft:          &m.MovedLeft,
		KeyMovedRight:         &m.MovedRight,
	}
	for key, text := range overrides {
		field, ok := fields[key]
		if !ok {
			return m, fmt.Errorf("transpose: unknown message key %q", key)
		}
		if text != "" {
			*field = text
		}
	}
	return m, nil
}
