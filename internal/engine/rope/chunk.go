package rope

// Chunk size constants control the granularity of text storage.
const (
	MinChunkSize    = 128
	MaxChunkSize    = 256
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// Chunk is an immutable run of text stored in a leaf.
// A chunk never ends in the middle of a UTF-8 sequence.
type Chunk struct {
	data    string
	summary TextSummary
}

// NewChunk creates a chunk from a string and computes its summary.
func NewChunk(s string) Chunk {
	return Chunk{data: s, summary: ComputeSummary(s)}
}

// String returns the chunk's text.
func (c Chunk) String() string { return c.data }

// Summary returns the chunk's precomputed metrics.
func (c Chunk) Summary() TextSummary { return c.summary }

// Len returns the byte length of the chunk.
func (c Chunk) Len() int { return len(c.data) }

// IsEmpty returns true if the chunk contains no text.
func (c Chunk) IsEmpty() bool { return len(c.data) == 0 }

// Split splits a chunk at byte offset. The offset must be a codepoint boundary.
func (c Chunk) Split(offset int) (Chunk, Chunk) {
	if offset <= 0 {
		return Chunk{}, c
	}
	if offset >= len(c.data) {
		return c, Chunk{}
	}
	return NewChunk(c.data[:offset]), NewChunk(c.data[offset:])
}

// splitIntoChunks cuts s into chunks of roughly TargetChunkSize bytes.
func splitIntoChunks(s string) []Chunk {
	if len(s) == 0 {
		return nil
	}

	chunks := make([]Chunk, 0, len(s)/TargetChunkSize+1)
	for len(s) > MaxChunkSize {
		cut := findUTF8Boundary(s, TargetChunkSize)
		chunks = append(chunks, NewChunk(s[:cut]))
		s = s[cut:]
	}
	return append(chunks, NewChunk(s))
}

// findUTF8Boundary picks a split point near target. It prefers the byte
// after a nearby newline and otherwise backs up to a codepoint start.
func findUTF8Boundary(s string, target int) int {
	if target >= len(s) {
		return len(s)
	}

	window := MinChunkSize / 4
	for i := target; i < len(s) && i < target+window; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= 0 && i >= target-window; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	pos := target
	for pos > 0 && !isUTF8Start(s[pos]) {
		pos--
	}
	if pos == 0 {
		// A pathological run of continuation bytes; move forward instead.
		for pos = target; pos < len(s) && !isUTF8Start(s[pos]); pos++ {
		}
	}
	return pos
}

// isUTF8Start reports whether b starts a UTF-8 sequence (is not 10xxxxxx).
func isUTF8Start(b byte) bool {
	return b&0xC0 != 0x80
}
