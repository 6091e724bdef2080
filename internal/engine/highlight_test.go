package engine

import "testing"

func TestHighlightKind(t *testing.T) {
	tests := []struct {
		kind    HighlightKind
		name    string
		heading int
	}{
		{HighlightHeading1, "heading1", 1},
		{HighlightHeading6, "heading6", 6},
		{HighlightBold, "bold", 0},
		{HighlightLinkURL, "link_url", 0},
		{HighlightBlockQuote, "block_quote", 0},
		{HighlightKind(99), "unknown", 0},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.name {
			t.Errorf("HighlightKind(%d).String() = %q, want %q", tt.kind, got, tt.name)
		}
		if got := tt.kind.HeadingLevel(); got != tt.heading {
			t.Errorf("HighlightKind(%d).HeadingLevel() = %d, want %d", tt.kind, got, tt.heading)
		}
	}
}

func TestHighlightSpan(t *testing.T) {
	span := HighlightSpan{Start: 2, End: 6, Kind: HighlightCode}
	if span.Len() != 4 {
		t.Errorf("Len() = %d, want 4", span.Len())
	}
	if !span.Contains(2) || span.Contains(6) {
		t.Error("Contains() should be half-open")
	}
}
