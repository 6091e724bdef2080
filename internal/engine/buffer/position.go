package buffer

import "fmt"

// ByteOffset is a byte position in the buffer. Selections are stored in
// byte offsets because they stay stable for UI layers.
type ByteOffset = int64

// CharIndex is a position counted in Unicode scalar values. Edits are
// addressed in characters so they can never split an encoded codepoint.
type CharIndex = int64

// Range is a half-open byte range [Start, End).
type Range struct {
	Start ByteOffset
	End   ByteOffset
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the length of the range in bytes.
func (r Range) Len() ByteOffset {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Contains returns true if offset is within [Start, End).
func (r Range) Contains(offset ByteOffset) bool {
	return offset >= r.Start && offset < r.End
}
