package rope

import (
	"io"
	"strings"
)

// Rope is an immutable rope. The zero value is an empty rope.
type Rope struct {
	root *Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeafNode()}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}

	chunks := splitIntoChunks(s)
	leaves := make([]*Node, 0, len(chunks)/MaxChunksPerLeaf+1)
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := min(i+MaxChunksPerLeaf, len(chunks))
		leaves = append(leaves, newLeafNodeWithChunks(chunks[i:end:end]))
	}
	return Rope{root: buildNodeFromChildren(leaves)}
}

// FromReader creates a rope from everything r yields.
func FromReader(r io.Reader) (Rope, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Rope{}, err
	}
	return FromString(string(data)), nil
}

// Len returns the total byte length.
func (r Rope) Len() ByteOffset {
	if r.root == nil {
		return 0
	}
	return r.root.Len()
}

// LenChars returns the number of Unicode scalar values.
func (r Rope) LenChars() uint64 {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Chars
}

// LineCount returns the number of lines (newlines + 1).
func (r Rope) LineCount() uint32 {
	if r.root == nil {
		return 1
	}
	return r.root.summary.Lines + 1
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// String returns the full text.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(int(r.Len()))
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text in the byte range [start, end).
func (r Rope) Slice(start, end ByteOffset) string {
	if end > r.Len() {
		end = r.Len()
	}
	if r.root == nil || start >= end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(int(end - start))
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// ByteAt returns the byte at the given offset.
func (r Rope) ByteAt(offset ByteOffset) (byte, bool) {
	if offset >= r.Len() {
		return 0, false
	}
	return r.root.byteAt(offset), true
}

// ByteToChar returns the index of the character containing byte offset.
// Offsets at or past the end map to LenChars.
func (r Rope) ByteToChar(offset ByteOffset) uint64 {
	if r.root == nil {
		return 0
	}
	return r.root.byteToChar(offset)
}

// CharToByte returns the byte offset where character idx starts.
// Indices at or past the end map to Len.
func (r Rope) CharToByte(idx uint64) ByteOffset {
	if r.root == nil {
		return 0
	}
	return r.root.charToByte(idx)
}

// Insert inserts text at the given byte offset.
func (r Rope) Insert(offset ByteOffset, text string) Rope {
	if len(text) == 0 {
		return r
	}
	if r.IsEmpty() {
		return FromString(text)
	}
	if offset >= r.Len() {
		return r.Concat(FromString(text))
	}
	if offset == 0 {
		return FromString(text).Concat(r)
	}

	left, right := r.Split(offset)
	return left.Concat(FromString(text)).Concat(right)
}

// Delete removes text in the byte range [start, end).
func (r Rope) Delete(start, end ByteOffset) Rope {
	if end > r.Len() {
		end = r.Len()
	}
	if start >= end {
		return r
	}

	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(right)
}

// Replace replaces text in the byte range [start, end) with text.
func (r Rope) Replace(start, end ByteOffset, text string) Rope {
	return r.Delete(start, end).Insert(start, text)
}

// Split splits the rope into [0, offset) and [offset, len).
func (r Rope) Split(offset ByteOffset) (Rope, Rope) {
	if r.root == nil || offset == 0 {
		return New(), r
	}
	if offset >= r.Len() {
		return r, New()
	}
	left, right := r.root.split(offset)
	return Rope{root: left}, Rope{root: right}
}

// Concat concatenates two ropes.
func (r Rope) Concat(other Rope) Rope {
	if r.IsEmpty() {
		if other.root == nil {
			return New()
		}
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rope{root: concat(r.root, other.root)}
}

// LineStartOffset returns the byte offset of the start of a 0-indexed line.
// Lines past the end map to Len.
func (r Rope) LineStartOffset(line uint32) ByteOffset {
	if r.root == nil || line == 0 {
		return 0
	}
	if line >= r.LineCount() {
		return r.Len()
	}
	return r.root.offsetAfterNewline(line)
}

// LineEndOffset returns the byte offset of the end of a line, before its newline.
func (r Rope) LineEndOffset(line uint32) ByteOffset {
	if line+1 >= r.LineCount() {
		return r.Len()
	}
	return r.LineStartOffset(line+1) - 1
}

// LineText returns the text of the given line without its newline.
func (r Rope) LineText(line uint32) string {
	if line >= r.LineCount() {
		return ""
	}
	return r.Slice(r.LineStartOffset(line), r.LineEndOffset(line))
}

// Equals returns true if two ropes contain the same text.
func (r Rope) Equals(other Rope) bool {
	if r.Len() != other.Len() || r.LenChars() != other.LenChars() {
		return false
	}
	return r.String() == other.String()
}
