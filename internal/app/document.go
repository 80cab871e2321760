package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/transpose/internal/engine/buffer"
)

// Document is the text being edited, optionally backed by a file.
type Document struct {
	// Path is the file path (empty for scratch buffers).
	Path string

	// Name is the display name (filename or "Untitled").
	Name string

	buf          *buffer.LineBuffer
	savedVersion uint64
	crlf         bool
}

// NewDocument creates a document holding content. Windows line endings
// are converted on load and restored on save.
func NewDocument(path string, content []byte) *Document {
	name := filepath.Base(path)
	if path == "" {
		name = "Untitled"
	}

	text := string(content)
	crlf := strings.Contains(text, "\r\n")
	if crlf {
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}

	buf := buffer.NewLineBuffer(text)
	return &Document{
		Path:         path,
		Name:         name,
		buf:          buf,
		savedVersion: buf.Version(),
		crlf:         crlf,
	}
}

// NewScratchDocument creates an unsaved document holding text.
func NewScratchDocument(text string) *Document {
	return NewDocument("", []byte(text))
}

// OpenDocument reads a file. A missing file opens as an empty document
// that will be created on save.
func OpenDocument(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, NewOperationError("open", path, err)
	}
	return NewDocument(path, content), nil
}

// Buffer returns the document's text buffer.
func (d *Document) Buffer() *buffer.LineBuffer {
	return d.buf
}

// IsScratch returns true if the document has no file.
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

// IsModified returns true if the text changed since it was loaded or saved.
func (d *Document) IsModified() bool {
	return d.buf.Version() != d.savedVersion
}

// Content returns the text as it would be written to disk.
func (d *Document) Content() string {
	text := d.buf.Text()
	if d.crlf {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	return text
}

// Save writes the document to its path.
func (d *Document) Save() error {
	if d.Path == "" {
		return NewOperationError("save", d.Name, ErrNoPath)
	}
	return d.SaveAs(d.Path)
}

// SaveAs writes the document to path and makes path its file.
func (d *Document) SaveAs(path string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(d.Content()), mode); err != nil {
		return NewOperationError("save", path, err)
	}
	d.Path = path
	d.Name = filepath.Base(path)
	d.savedVersion = d.buf.Version()
	return nil
}
