package engine

// HighlightKind tags a span of Markdown for styling. Only the tags exist;
// no tokenizer produces them yet.
type HighlightKind uint8

// Highlight kinds. The numeric values are stable and shared with hosts.
const (
	HighlightNone HighlightKind = 0

	// Headings
	HighlightHeading1 HighlightKind = 1
	HighlightHeading2 HighlightKind = 2
	HighlightHeading3 HighlightKind = 3
	HighlightHeading4 HighlightKind = 4
	HighlightHeading5 HighlightKind = 5
	HighlightHeading6 HighlightKind = 6

	// Emphasis
	HighlightBold   HighlightKind = 10
	HighlightItalic HighlightKind = 11

	// Code
	HighlightCode      HighlightKind = 20
	HighlightCodeBlock HighlightKind = 21

	// Links
	HighlightLink    HighlightKind = 30
	HighlightLinkURL HighlightKind = 31

	HighlightListMarker HighlightKind = 40
	HighlightBlockQuote HighlightKind = 50
)

var highlightKindNames = map[HighlightKind]string{
	HighlightNone:       "none",
	HighlightHeading1:   "heading1",
	HighlightHeading2:   "heading2",
	HighlightHeading3:   "heading3",
	HighlightHeading4:   "heading4",
	HighlightHeading5:   "heading5",
	HighlightHeading6:   "heading6",
	HighlightBold:       "bold",
	HighlightItalic:     "italic",
	HighlightCode:       "code",
	HighlightCodeBlock:  "code_block",
	HighlightLink:       "link",
	HighlightLinkURL:    "link_url",
	HighlightListMarker: "list_marker",
	HighlightBlockQuote: "block_quote",
}

// String returns the string representation of a highlight kind.
func (k HighlightKind) String() string {
	if name, ok := highlightKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsHeading returns true for the six heading levels.
func (k HighlightKind) IsHeading() bool {
	return k >= HighlightHeading1 && k <= HighlightHeading6
}

// HeadingLevel returns 1-6 for headings and 0 otherwise.
func (k HighlightKind) HeadingLevel() int {
	if !k.IsHeading() {
		return 0
	}
	return int(k)
}

// HighlightSpan is a highlighted byte range [Start, End) of a document.
type HighlightSpan struct {
	Start ByteOffset
	End   ByteOffset
	Kind  HighlightKind
}

// Len returns the length of the span in bytes.
func (s HighlightSpan) Len() ByteOffset {
	return s.End - s.Start
}

// Contains returns true if offset is within the span.
func (s HighlightSpan) Contains(offset ByteOffset) bool {
	return offset >= s.Start && offset < s.End
}
