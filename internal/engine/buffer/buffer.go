package buffer

import (
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dshills/rmde/internal/engine/rope"
)

// Errors returned by buffer operations.
var (
	ErrInvalidUTF8  = errors.New("content is not valid UTF-8")
	ErrRangeInvalid = errors.New("invalid range")
)

// Buffer is the editable text of one document. It wraps an immutable rope
// and swaps in the edited rope after each change.
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	rope rope.Rope
}

// NewBuffer creates a new empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{rope: rope.New()}
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string) *Buffer {
	return &Buffer{rope: rope.FromString(s)}
}

// NewBufferFromReader creates a buffer from an io.Reader.
// Content that is not valid UTF-8 is rejected with ErrInvalidUTF8.
func NewBufferFromReader(r io.Reader) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}
	return NewBufferFromString(string(data)), nil
}

// Read Operations

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	return b.rope.String()
}

// TextRange returns the text in the byte range [start, end).
func (b *Buffer) TextRange(start, end ByteOffset) string {
	start, end = b.Clamp(start), b.Clamp(end)
	return b.rope.Slice(rope.ByteOffset(start), rope.ByteOffset(end))
}

// WriteTo writes the buffer content to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, b.rope.String())
	return int64(n), err
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	return ByteOffset(b.rope.Len())
}

// LenChars returns the number of characters in the buffer.
func (b *Buffer) LenChars() CharIndex {
	return CharIndex(b.rope.LenChars())
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	return b.rope.IsEmpty()
}

// LineCount returns the number of lines (newlines + 1).
func (b *Buffer) LineCount() uint32 {
	return b.rope.LineCount()
}

// LineText returns the text of a line without its newline.
func (b *Buffer) LineText(line uint32) string {
	return b.rope.LineText(line)
}

// Line returns the text of a line including its trailing newline, if any.
func (b *Buffer) Line(line uint32) string {
	if line >= b.rope.LineCount() {
		return ""
	}
	return b.rope.Slice(b.rope.LineStartOffset(line), b.rope.LineStartOffset(line+1))
}

// Coordinate Conversion

// ByteToChar converts a byte offset to the index of the character
// containing it. Out of range offsets are clamped.
func (b *Buffer) ByteToChar(offset ByteOffset) CharIndex {
	return CharIndex(b.rope.ByteToChar(rope.ByteOffset(b.Clamp(offset))))
}

// CharToByte converts a character index to the byte offset where that
// character starts. Out of range indices are clamped.
func (b *Buffer) CharToByte(idx CharIndex) ByteOffset {
	if idx <= 0 {
		return 0
	}
	return ByteOffset(b.rope.CharToByte(uint64(idx)))
}

// Clamp clamps offset into [0, Len].
func (b *Buffer) Clamp(offset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if n := b.Len(); offset > n {
		return n
	}
	return offset
}

// IsCharBoundary reports whether offset falls between two characters.
func (b *Buffer) IsCharBoundary(offset ByteOffset) bool {
	if offset <= 0 || offset >= b.Len() {
		return offset == 0 || offset == b.Len()
	}
	c, _ := b.rope.ByteAt(rope.ByteOffset(offset))
	return utf8.RuneStart(c)
}

// SnapBackward clamps offset and moves it down to the nearest character
// boundary at or before it.
func (b *Buffer) SnapBackward(offset ByteOffset) ByteOffset {
	offset = b.Clamp(offset)
	return b.CharToByte(b.ByteToChar(offset))
}

// SnapForward clamps offset and moves it up to the nearest character
// boundary at or after it.
func (b *Buffer) SnapForward(offset ByteOffset) ByteOffset {
	offset = b.Clamp(offset)
	if b.IsCharBoundary(offset) {
		return offset
	}
	return b.CharToByte(b.ByteToChar(offset) + 1)
}

// PrevCharStart returns the start of the character ending at offset.
// It returns offset itself at the start of the buffer.
func (b *Buffer) PrevCharStart(offset ByteOffset) ByteOffset {
	idx := b.ByteToChar(b.SnapBackward(offset))
	if idx == 0 {
		return 0
	}
	return b.CharToByte(idx - 1)
}

// NextCharEnd returns the end of the character starting at offset.
// It returns offset itself at the end of the buffer.
func (b *Buffer) NextCharEnd(offset ByteOffset) ByteOffset {
	idx := b.ByteToChar(b.SnapBackward(offset))
	return b.CharToByte(idx + 1)
}

// Index returns the byte offset of the first occurrence of text that lies
// entirely within [from, to), or -1 if there is none.
func (b *Buffer) Index(text string, from, to ByteOffset) ByteOffset {
	from, to = b.Clamp(from), b.Clamp(to)
	if text == "" || to-from < ByteOffset(len(text)) {
		return -1
	}
	i := strings.Index(b.TextRange(from, to), text)
	if i < 0 {
		return -1
	}
	return from + ByteOffset(i)
}

// Write Operations

// InsertChars inserts text before the character at idx.
// An index past the end appends.
func (b *Buffer) InsertChars(idx CharIndex, text string) {
	if text == "" {
		return
	}
	b.rope = b.rope.Insert(rope.ByteOffset(b.CharToByte(idx)), text)
}

// RemoveChars removes the characters in [start, end).
func (b *Buffer) RemoveChars(start, end CharIndex) error {
	if start < 0 || start > end {
		return ErrRangeInvalid
	}
	lo, hi := b.CharToByte(start), b.CharToByte(end)
	b.rope = b.rope.Delete(rope.ByteOffset(lo), rope.ByteOffset(hi))
	return nil
}

// ReplaceChars replaces the characters in [start, end) with text.
func (b *Buffer) ReplaceChars(start, end CharIndex, text string) error {
	if start < 0 || start > end {
		return ErrRangeInvalid
	}
	lo, hi := b.CharToByte(start), b.CharToByte(end)
	b.rope = b.rope.Replace(rope.ByteOffset(lo), rope.ByteOffset(hi), text)
	return nil
}
