package engine

import (
	"io/fs"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dshills/rmde/internal/engine/buffer"
	"github.com/dshills/rmde/internal/engine/cursor"
)

// Re-export commonly used types for convenience.
type (
	// ByteOffset is a byte position in the buffer.
	ByteOffset = buffer.ByteOffset

	// Range represents a byte range in the buffer.
	Range = buffer.Range

	// Selection represents a cursor selection.
	Selection = cursor.Selection
)

// UntitledTitle is the title of a document that has no file path.
const UntitledTitle = "Untitled"

// Document is one editable text with its selections and file metadata.
//
// Every mutating method leaves the selection set normalized: non-empty,
// sorted by start, non-overlapping, and within [0, Len].
//
// A Document is not safe for concurrent use.
type Document struct {
	id   DocumentID
	buf  *buffer.Buffer
	sels *cursor.SelectionSet

	path     string
	dirty    bool
	fileMode fs.FileMode

	// Initialization
	initContent string
}

// NewDocument creates a document with a single cursor at offset 0.
func NewDocument(opts ...Option) *Document {
	d := &Document{
		id:       NextDocumentID(),
		fileMode: DefaultFileMode,
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.initContent != "" {
		if !utf8.ValidString(d.initContent) {
			d.initContent = strings.ToValidUTF8(d.initContent, string(utf8.RuneError))
		}
		d.buf = buffer.NewBufferFromString(d.initContent)
		d.initContent = ""
	} else {
		d.buf = buffer.NewBuffer()
	}
	d.sels = cursor.NewSelectionSet()
	return d
}

// ID returns the document's id.
func (d *Document) ID() DocumentID {
	return d.id
}

// Path returns the file path, or "" if the document was never saved.
func (d *Document) Path() string {
	return d.path
}

// Title returns the file name, or "Untitled" if there is no path.
func (d *Document) Title() string {
	if d.path == "" {
		return UntitledTitle
	}
	return filepath.Base(d.path)
}

// IsDirty reports whether the content changed since it was loaded or saved.
func (d *Document) IsDirty() bool {
	return d.dirty
}

// Content returns the full text.
func (d *Document) Content() string {
	return d.buf.Text()
}

// TextRange returns the text in the byte range [start, end).
func (d *Document) TextRange(start, end ByteOffset) string {
	return d.buf.TextRange(start, end)
}

// Len returns the length in bytes.
func (d *Document) Len() ByteOffset {
	return d.buf.Len()
}

// LenChars returns the length in characters.
func (d *Document) LenChars() int64 {
	return d.buf.LenChars()
}

// IsEmpty returns true if the document has no content.
func (d *Document) IsEmpty() bool {
	return d.buf.IsEmpty()
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return int(d.buf.LineCount())
}

// Line returns line idx (0-indexed) including its newline.
func (d *Document) Line(idx int) (string, bool) {
	if idx < 0 || idx >= d.LineCount() {
		return "", false
	}
	return d.buf.Line(uint32(idx)), true
}

// Selections returns a copy of the selections in ascending order.
func (d *Document) Selections() []Selection {
	return d.sels.All()
}

// PrimarySelection returns the lowest selection.
func (d *Document) PrimarySelection() Selection {
	return d.sels.Primary()
}

// CursorPosition returns the head of the primary selection.
func (d *Document) CursorPosition() ByteOffset {
	return d.sels.Primary().Head
}

// SelectedText returns the text covered by the primary selection.
// It returns false if the primary selection is a cursor.
func (d *Document) SelectedText() (string, bool) {
	sel := d.sels.Primary()
	if sel.IsEmpty() {
		return "", false
	}
	return d.buf.TextRange(sel.Start(), sel.End()), true
}
