package rope

import "unicode/utf8"

// ByteOffset represents an absolute byte position in the rope.
type ByteOffset uint64

// TextSummary holds aggregated metrics for a text span.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes ByteOffset

	// Chars is the number of Unicode scalar values.
	Chars uint64

	// Lines is the number of newline characters.
	Lines uint32

	Flags TextFlags
}

// TextFlags indicate text properties for fast paths.
type TextFlags uint8

const (
	// FlagASCII indicates all characters are ASCII, so bytes and chars coincide.
	FlagASCII TextFlags = 1 << iota

	// FlagHasNewlines indicates the text contains newline characters.
	FlagHasNewlines
)

// Add combines two summaries.
func (s TextSummary) Add(other TextSummary) TextSummary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}

	result := TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		Lines: s.Lines + other.Lines,
		Flags: s.Flags & other.Flags & FlagASCII,
	}
	if (s.Flags|other.Flags)&FlagHasNewlines != 0 {
		result.Flags |= FlagHasNewlines
	}
	return result
}

// IsASCII reports whether the span is pure ASCII.
func (s TextSummary) IsASCII() bool {
	return s.Flags&FlagASCII != 0
}

// ComputeSummary calculates metrics for a string.
func ComputeSummary(s string) TextSummary {
	sum := TextSummary{Flags: FlagASCII}
	if len(s) == 0 {
		return sum
	}

	sum.Bytes = ByteOffset(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c == '\n' {
				sum.Lines++
				sum.Flags |= FlagHasNewlines
			}
			i++
		} else {
			sum.Flags &^= FlagASCII
			_, size := utf8.DecodeRuneInString(s[i:])
			i += size
		}
		sum.Chars++
	}
	return sum
}

// FindNthNewline finds the byte position of the nth newline (1-indexed).
// Returns -1 if not found.
func FindNthNewline(s string, n uint32) int {
	if n == 0 {
		return -1
	}

	var count uint32
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			count++
			if count == n {
				return i
			}
		}
	}
	return -1
}

// charsBefore counts the characters that start before byte offset off.
// An offset inside a multi-byte sequence counts as the character containing it.
func charsBefore(s string, off int) uint64 {
	if off <= 0 {
		return 0
	}
	if off > len(s) {
		off = len(s)
	}
	for off > 0 && off < len(s) && !isUTF8Start(s[off]) {
		off--
	}
	return uint64(utf8.RuneCountInString(s[:off]))
}

// byteOfChar returns the byte offset of the idx-th character of s,
// or len(s) if s has idx characters or fewer.
func byteOfChar(s string, idx uint64) int {
	var n uint64
	for i := range s {
		if n == idx {
			return i
		}
		n++
	}
	return len(s)
}
