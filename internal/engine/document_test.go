package engine

import (
	"math/rand"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/rivo/uniseg"

	"github.com/dshills/rmde/internal/engine/cursor"
)

func cursors(offsets ...ByteOffset) []Selection {
	sels := make([]Selection, len(offsets))
	for i, off := range offsets {
		sels[i] = cursor.NewCursorSelection(off)
	}
	return sels
}

func checkInvariants(t *testing.T, d *Document) {
	t.Helper()
	sels := d.Selections()
	if len(sels) == 0 {
		t.Fatal("selection set is empty")
	}
	for i, sel := range sels {
		if sel.Start() < 0 || sel.End() > d.Len() {
			t.Fatalf("selection %s outside [0, %d]", sel, d.Len())
		}
		if i > 0 && sel.Start() <= sels[i-1].End() {
			t.Fatalf("selections %s and %s overlap or are unsorted", sels[i-1], sel)
		}
	}
}

func TestNewDocument(t *testing.T) {
	d := NewDocument()

	if !d.IsEmpty() {
		t.Error("new document should be empty")
	}
	if d.IsDirty() {
		t.Error("new document should not be dirty")
	}
	if d.Title() != "Untitled" {
		t.Errorf("Title() = %q, want %q", d.Title(), "Untitled")
	}
	if d.ID() == 0 {
		t.Error("ID() should never be zero")
	}
	if diff := cmp.Diff(cursors(0), d.Selections()); diff != "" {
		t.Errorf("selections mismatch (-want +got):\n%s", diff)
	}
}

func TestNewDocumentWithContent(t *testing.T) {
	d := NewDocument(WithContent("Hello, World!"), WithPath("/tmp/hello.md"))

	if d.Content() != "Hello, World!" {
		t.Errorf("Content() = %q", d.Content())
	}
	if d.Len() != 13 {
		t.Errorf("Len() = %d, want 13", d.Len())
	}
	if d.Title() != "hello.md" {
		t.Errorf("Title() = %q, want %q", d.Title(), "hello.md")
	}
	if d.IsDirty() {
		t.Error("initial content should not mark the document dirty")
	}
}

func TestDocumentIDsAreUnique(t *testing.T) {
	a, b := NewDocument(), NewDocument()
	if a.ID() == b.ID() {
		t.Errorf("documents share id %s", a.ID())
	}
	if b.ID() <= a.ID() {
		t.Errorf("ids should increase: %d then %d", a.ID(), b.ID())
	}
}

func TestInsert(t *testing.T) {
	d := NewDocument()

	d.Insert("Hello")
	if d.Content() != "Hello" {
		t.Errorf("expected %q, got %q", "Hello", d.Content())
	}
	if !d.IsDirty() {
		t.Error("insert should mark the document dirty")
	}

	d.Insert(" World")
	if d.Content() != "Hello World" {
		t.Errorf("expected %q, got %q", "Hello World", d.Content())
	}
	if d.CursorPosition() != 11 {
		t.Errorf("CursorPosition() = %d, want 11", d.CursorPosition())
	}
}

func TestNewDocumentSanitizesContent(t *testing.T) {
	d := NewDocument(WithContent("a\xffb\xc3"))
	if got := d.Content(); got != "a\uFFFDb\uFFFD" {
		t.Errorf("Content() = %q, want %q", got, "a\uFFFDb\uFFFD")
	}
	if !utf8.ValidString(d.Content()) {
		t.Error("content should be valid UTF-8")
	}
	if d.IsDirty() {
		t.Error("initial content should not mark the document dirty")
	}

	d.SetCursor(2)
	if got := d.CursorPosition(); got != 1 {
		t.Errorf("SetCursor(2) inside U+FFFD = %d, want 1", got)
	}
}

func TestInsertEmptyIsNoop(t *testing.T) {
	d := NewDocument(WithContent("abc"))
	d.Insert("")
	if d.IsDirty() {
		t.Error("empty insert should not mark the document dirty")
	}
}

func TestInsertSameLengthReplacementIsDirty(t *testing.T) {
	d := NewDocument(WithContent("cat"))
	d.SelectAll()
	d.Insert("dog")
	if d.Content() != "dog" {
		t.Fatalf("Content() = %q, want dog", d.Content())
	}
	if !d.IsDirty() {
		t.Error("replacing text with text of the same length should mark the document dirty")
	}
}

func TestInsertTwoCursors(t *testing.T) {
	d := NewDocument(WithContent("ab"))
	d.SetCursor(1)
	d.AddCursor(2)

	d.Insert("X")

	if d.Content() != "aXbX" {
		t.Errorf("Content() = %q, want %q", d.Content(), "aXbX")
	}
	if diff := cmp.Diff(cursors(2, 4), d.Selections()); diff != "" {
		t.Errorf("selections mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertReplacesSelections(t *testing.T) {
	d := NewDocument(WithContent("one two three"))
	d.SetSelections([]Selection{cursor.NewSelection(0, 3), cursor.NewSelection(8, 13)})

	d.Insert("1")

	if d.Content() != "1 two 1" {
		t.Errorf("Content() = %q, want %q", d.Content(), "1 two 1")
	}
	if diff := cmp.Diff(cursors(1, 7), d.Selections()); diff != "" {
		t.Errorf("selections mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertMultibyte(t *testing.T) {
	d := NewDocument(WithContent("日本"))
	d.SetCursor(3)
	d.Insert("語")

	if d.Content() != "日語本" {
		t.Errorf("Content() = %q", d.Content())
	}
	if d.CursorPosition() != 6 {
		t.Errorf("CursorPosition() = %d, want 6", d.CursorPosition())
	}
}

func TestInsertInvalidUTF8(t *testing.T) {
	d := NewDocument()
	d.Insert("a\xffb")
	if !utf8.ValidString(d.Content()) {
		t.Errorf("content %q is not valid UTF-8", d.Content())
	}
	if d.Content() != "a\uFFFDb" {
		t.Errorf("Content() = %q", d.Content())
	}
}

func TestDeleteBackwardEmptyBuffer(t *testing.T) {
	d := NewDocument()
	before := d.Selections()

	d.DeleteBackward()

	if d.Content() != "" {
		t.Errorf("Content() = %q, want empty", d.Content())
	}
	if diff := cmp.Diff(before, d.Selections()); diff != "" {
		t.Errorf("selections changed (-want +got):\n%s", diff)
	}
	if d.IsDirty() {
		t.Error("backspace on an empty buffer should not mark it dirty")
	}
}

func TestDeleteBackward(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		sels     []Selection
		want     string
		wantSels []Selection
	}{
		{"single", "Hello", cursors(5), "Hell", cursors(4)},
		{"at start", "Hello", cursors(0), "Hello", cursors(0)},
		{"multibyte", "aé", cursors(3), "a", cursors(1)},
		{"emoji", "x🌍", cursors(5), "x", cursors(1)},
		{"two cursors", "abc", cursors(1, 3), "b", cursors(0, 1)},
		{"adjacent cursors merge", "abc", cursors(2, 3), "a", cursors(1)},
		{"range", "hello world", []Selection{cursor.NewSelection(11, 5)}, "hello", cursors(5)},
		{"range and cursor", "abcdef", []Selection{cursor.NewSelection(0, 2), cursor.NewCursorSelection(5)}, "cdf", cursors(0, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDocument(WithContent(tt.content))
			d.SetSelections(tt.sels)
			d.DeleteBackward()

			if d.Content() != tt.want {
				t.Errorf("Content() = %q, want %q", d.Content(), tt.want)
			}
			if diff := cmp.Diff(tt.wantSels, d.Selections()); diff != "" {
				t.Errorf("selections mismatch (-want +got):\n%s", diff)
			}
			checkInvariants(t, d)
		})
	}
}

func TestDeleteForward(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		sels     []Selection
		want     string
		wantSels []Selection
	}{
		{"single", "Hello", cursors(0), "ello", cursors(0)},
		{"at end", "Hello", cursors(5), "Hello", cursors(5)},
		{"multibyte", "日本", cursors(0), "本", cursors(0)},
		{"two cursors", "abc", cursors(0, 2), "b", cursors(0, 1)},
		{"range collapses to start", "hello world", []Selection{cursor.NewSelection(5, 11)}, "hello", cursors(5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDocument(WithContent(tt.content))
			d.SetSelections(tt.sels)
			d.DeleteForward()

			if d.Content() != tt.want {
				t.Errorf("Content() = %q, want %q", d.Content(), tt.want)
			}
			if diff := cmp.Diff(tt.wantSels, d.Selections()); diff != "" {
				t.Errorf("selections mismatch (-want +got):\n%s", diff)
			}
			checkInvariants(t, d)
		})
	}
}

func TestDeleteForwardAtEndStaysClean(t *testing.T) {
	d := NewDocument(WithContent("abc"))
	d.SetCursor(3)
	d.DeleteForward()
	if d.IsDirty() {
		t.Error("delete at end should not mark the document dirty")
	}
}

func TestMoveCursors(t *testing.T) {
	d := NewDocument(WithContent("héllo"))

	d.SetCursor(1)
	d.MoveCursors(1, false)
	if got := d.CursorPosition(); got != 3 {
		t.Errorf("moving into é should snap forward to 3, got %d", got)
	}

	d.MoveCursors(-1, false)
	if got := d.CursorPosition(); got != 1 {
		t.Errorf("moving back into é should snap to 1, got %d", got)
	}

	d.MoveCursors(-10, false)
	if got := d.CursorPosition(); got != 0 {
		t.Errorf("moving past start should clamp to 0, got %d", got)
	}

	d.MoveCursors(100, false)
	if got := d.CursorPosition(); got != d.Len() {
		t.Errorf("moving past end should clamp to %d, got %d", d.Len(), got)
	}
}

func TestMoveCursorsExtend(t *testing.T) {
	d := NewDocument(WithContent("abcdef"))
	d.SetCursor(1)
	d.MoveCursors(3, true)

	want := []Selection{cursor.NewSelection(1, 4)}
	if diff := cmp.Diff(want, d.Selections()); diff != "" {
		t.Errorf("selections mismatch (-want +got):\n%s", diff)
	}
	if text, ok := d.SelectedText(); !ok || text != "bcd" {
		t.Errorf("SelectedText() = %q, %v; want %q, true", text, ok, "bcd")
	}
}

func TestMoveCursorsMerge(t *testing.T) {
	d := NewDocument(WithContent("abc"))
	d.SetCursor(0)
	d.AddCursor(1)
	d.MoveCursors(-5, false)

	if diff := cmp.Diff(cursors(0), d.Selections()); diff != "" {
		t.Errorf("selections mismatch (-want +got):\n%s", diff)
	}
}

func TestSetCursorClamps(t *testing.T) {
	d := NewDocument(WithContent("aé"))

	tests := []struct {
		pos, want ByteOffset
	}{
		{-5, 0},
		{100, 3},
		{2, 1},
		{1, 1},
	}
	for _, tt := range tests {
		d.SetCursor(tt.pos)
		if diff := cmp.Diff(cursors(tt.want), d.Selections()); diff != "" {
			t.Errorf("SetCursor(%d) mismatch (-want +got):\n%s", tt.pos, diff)
		}
	}
}

func TestAddCursor(t *testing.T) {
	d := NewDocument(WithContent("hello"))
	d.SetCursor(1)
	d.AddCursor(4)
	d.AddCursor(4)
	d.AddCursor(99)

	if diff := cmp.Diff(cursors(1, 4, 5), d.Selections()); diff != "" {
		t.Errorf("selections mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectAll(t *testing.T) {
	d := NewDocument(WithContent("Hello World"))
	d.SelectAll()

	text, ok := d.SelectedText()
	if !ok || text != "Hello World" {
		t.Errorf("SelectedText() = %q, %v; want %q, true", text, ok, "Hello World")
	}
}

func TestSelectedTextCursor(t *testing.T) {
	d := NewDocument(WithContent("abc"))
	if _, ok := d.SelectedText(); ok {
		t.Error("SelectedText() should report false for a cursor")
	}
}

func TestSelectNextOccurrence(t *testing.T) {
	d := NewDocument(WithContent("cat dog cat"))
	d.SetSelections([]Selection{cursor.NewSelection(0, 3)})

	if !d.SelectNextOccurrence("cat") {
		t.Fatal("SelectNextOccurrence() should find the second cat")
	}
	want := []Selection{cursor.NewSelection(0, 3), cursor.NewSelection(8, 11)}
	if diff := cmp.Diff(want, d.Selections()); diff != "" {
		t.Errorf("selections mismatch (-want +got):\n%s", diff)
	}

	if !d.SelectNextOccurrence("cat") {
		t.Fatal("SelectNextOccurrence() should wrap to the first cat")
	}
	if diff := cmp.Diff(want, d.Selections()); diff != "" {
		t.Errorf("wrapped match should merge into the first (-want +got):\n%s", diff)
	}
}

func TestSelectNextOccurrenceMisses(t *testing.T) {
	d := NewDocument(WithContent("cat dog cat"))
	before := d.Selections()

	if d.SelectNextOccurrence("") {
		t.Error("empty text should not match")
	}
	if d.SelectNextOccurrence("bird") {
		t.Error("missing text should not match")
	}
	if diff := cmp.Diff(before, d.Selections()); diff != "" {
		t.Errorf("selections changed (-want +got):\n%s", diff)
	}
}

func TestSelectNextOccurrenceThenInsert(t *testing.T) {
	d := NewDocument(WithContent("foo bar foo baz foo"))
	d.SetSelections([]Selection{cursor.NewSelection(0, 3)})
	d.SelectNextOccurrence("foo")
	d.SelectNextOccurrence("foo")
	d.Insert("qux")

	if d.Content() != "qux bar qux baz qux" {
		t.Errorf("Content() = %q", d.Content())
	}
	if diff := cmp.Diff(cursors(3, 11, 19), d.Selections()); diff != "" {
		t.Errorf("selections mismatch (-want +got):\n%s", diff)
	}
}

func TestLine(t *testing.T) {
	d := NewDocument(WithContent("one\ntwo"))

	if d.LineCount() != 2 {
		t.Errorf("LineCount() = %d, want 2", d.LineCount())
	}
	if line, ok := d.Line(0); !ok || line != "one\n" {
		t.Errorf("Line(0) = %q, %v", line, ok)
	}
	if line, ok := d.Line(1); !ok || line != "two" {
		t.Errorf("Line(1) = %q, %v", line, ok)
	}
	if _, ok := d.Line(2); ok {
		t.Error("Line(2) should report false")
	}
}

func TestRandomEditsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	words := []string{"a", "é", "世界", "🌍", "\n", "cat"}
	d := NewDocument(WithContent("cat 世界 é cat"))

	for step := 0; step < 500; step++ {
		pos := ByteOffset(rng.Intn(int(d.Len()) + 3))
		switch rng.Intn(9) {
		case 0:
			d.Insert(words[rng.Intn(len(words))])
		case 1:
			d.DeleteBackward()
		case 2:
			d.DeleteForward()
		case 3:
			d.MoveCursors(ByteOffset(rng.Intn(9)-4), rng.Intn(2) == 0)
		case 4:
			d.SetCursor(pos)
		case 5:
			d.AddCursor(pos)
		case 6:
			d.SelectNextOccurrence(words[rng.Intn(len(words))])
		case 7:
			d.SelectAll()
		case 8:
			d.SetSelections([]Selection{cursor.NewSelection(pos, pos-2), cursor.NewCursorSelection(pos + 1)})
		}

		checkInvariants(t, d)
		if !utf8.ValidString(d.Content()) {
			t.Fatalf("step %d: content is not valid UTF-8: %q", step, d.Content())
		}
		for _, sel := range d.Selections() {
			if !utf8.RuneStart(byteAt(d, sel.Anchor)) || !utf8.RuneStart(byteAt(d, sel.Head)) {
				t.Fatalf("step %d: selection %s splits a character", step, sel)
			}
		}
	}
}

// byteAt returns the byte at off, or an ASCII byte at the end of the text.
func byteAt(d *Document, off ByteOffset) byte {
	if off >= d.Len() {
		return 'x'
	}
	return d.Content()[off]
}

// Backspace removes one codepoint, not one grapheme cluster. These cases
// pin down the current behavior so a change to it is deliberate.
func TestDeleteBackwardSplitsGraphemes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"combining accent", "e\u0301", "e"},
		{"flag", "\U0001F1FA\U0001F1F8", "\U0001F1FA"},
		{"family", "\U0001F468\u200d\U0001F469", "\U0001F468\u200d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if n := uniseg.GraphemeClusterCount(tt.content); n != 1 {
				t.Fatalf("%q should be a single grapheme, got %d", tt.content, n)
			}

			d := NewDocument(WithContent(tt.content))
			d.SetCursor(d.Len())
			d.DeleteBackward()

			if d.Content() != tt.want {
				t.Errorf("Content() = %q, want %q", d.Content(), tt.want)
			}
			if !utf8.ValidString(d.Content()) {
				t.Error("partial grapheme deletion must still leave valid UTF-8")
			}
			if d.Content() == "" {
				t.Error("one backspace currently removes a single codepoint, not the whole grapheme")
			}
		})
	}
}
