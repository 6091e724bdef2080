package engine

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/rmde/internal/engine/cursor"
)

// editFunc applies one selection's change to the buffer. It returns the
// selection that replaces sel, the change in buffer length, and whether
// the buffer was modified.
type editFunc func(sel Selection) (Selection, ByteOffset, bool)

// applyEdits runs fn for every selection from the highest start down.
//
// An edit never moves text below its own selection, so each lower selection
// is still valid when its turn comes. Selections already processed sit above
// every later edit and are shifted afterwards by the total length change of
// the edits below them. It reports whether the content changed.
func (d *Document) applyEdits(fn editFunc) bool {
	desc := d.sels.Descending()
	out := make([]Selection, len(desc))
	deltas := make([]ByteOffset, len(desc))
	changed := false
	for i, sel := range desc {
		var modified bool
		out[i], deltas[i], modified = fn(sel)
		changed = changed || modified
	}

	var shift ByteOffset
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = Selection{Anchor: out[i].Anchor + shift, Head: out[i].Head + shift}
		shift += deltas[i]
	}

	d.sels.SetAll(out)
	if changed {
		d.dirty = true
	}
	return changed
}

// remove deletes the bytes [start, end), which must lie on character
// boundaries, and returns how many bytes were removed.
func (d *Document) remove(start, end ByteOffset) ByteOffset {
	if start >= end {
		return 0
	}
	before := d.buf.Len()
	if err := d.buf.RemoveChars(d.buf.ByteToChar(start), d.buf.ByteToChar(end)); err != nil {
		return 0
	}
	return before - d.buf.Len()
}

// Insert replaces every selection with text, leaving a cursor after each
// insertion. Invalid UTF-8 in text is replaced with U+FFFD. Empty text is
// a no-op.
func (d *Document) Insert(text string) {
	if text == "" {
		return
	}
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}
	n := ByteOffset(len(text))

	d.applyEdits(func(sel Selection) (Selection, ByteOffset, bool) {
		pos := sel.Start()
		before := d.buf.Len()
		if sel.IsEmpty() {
			d.buf.InsertChars(d.buf.ByteToChar(pos), text)
		} else if err := d.buf.ReplaceChars(d.buf.ByteToChar(pos), d.buf.ByteToChar(sel.End()), text); err != nil {
			return sel, 0, false
		}
		return cursor.NewCursorSelection(pos + n), d.buf.Len() - before, true
	})
}

// DeleteBackward removes the selected text of every range selection and the
// character before every cursor. Cursors at offset 0 are left alone.
//
// Deletion is by codepoint, so one press may remove only part of a
// multi-codepoint grapheme such as a flag or combining sequence.
func (d *Document) DeleteBackward() {
	d.applyEdits(func(sel Selection) (Selection, ByteOffset, bool) {
		if !sel.IsEmpty() {
			removed := d.remove(sel.Start(), sel.End())
			return sel.CollapseToStart(), -removed, removed > 0
		}
		if sel.Head == 0 {
			return sel, 0, false
		}
		prev := d.buf.PrevCharStart(sel.Head)
		removed := d.remove(prev, sel.Head)
		return cursor.NewCursorSelection(prev), -removed, removed > 0
	})
}

// DeleteForward removes the selected text of every range selection and the
// character after every cursor. Cursors at the end are left alone.
func (d *Document) DeleteForward() {
	d.applyEdits(func(sel Selection) (Selection, ByteOffset, bool) {
		if !sel.IsEmpty() {
			removed := d.remove(sel.Start(), sel.End())
			return sel.CollapseToStart(), -removed, removed > 0
		}
		removed := d.remove(sel.Head, d.buf.NextCharEnd(sel.Head))
		return sel, -removed, removed > 0
	})
}

// MoveCursors moves every selection head by delta bytes, clamped to the
// buffer. Heads that land inside a character are pushed to its boundary in
// the direction of travel. With extend the anchors stay put; otherwise each
// selection collapses to a cursor at its new head.
func (d *Document) MoveCursors(delta ByteOffset, extend bool) {
	maxOffset := d.buf.Len()
	sels := d.sels.All()
	for i, sel := range sels {
		moved := sel.MoveBy(delta, maxOffset, extend)
		if delta > 0 {
			moved.Head = d.buf.SnapForward(moved.Head)
		} else {
			moved.Head = d.buf.SnapBackward(moved.Head)
		}
		if !extend {
			moved.Anchor = moved.Head
		}
		sels[i] = moved
	}
	d.sels.SetAll(sels)
}

// SetCursor replaces all selections with a single cursor at pos.
// pos is clamped to the buffer and snapped back to a character boundary.
func (d *Document) SetCursor(pos ByteOffset) {
	d.sels.Set(cursor.NewCursorSelection(d.buf.SnapBackward(pos)))
}

// AddCursor adds a cursor at pos unless a cursor already sits there.
// pos is clamped and snapped like SetCursor.
func (d *Document) AddCursor(pos ByteOffset) {
	pos = d.buf.SnapBackward(pos)
	for _, sel := range d.sels.All() {
		if sel.IsEmpty() && sel.Head == pos {
			return
		}
	}
	d.sels.Add(cursor.NewCursorSelection(pos))
}

// SetSelections replaces the selection set. Offsets are clamped and
// snapped to character boundaries before normalizing.
func (d *Document) SetSelections(sels []Selection) {
	snapped := make([]Selection, len(sels))
	for i, sel := range sels {
		snapped[i] = Selection{
			Anchor: d.buf.SnapBackward(sel.Anchor),
			Head:   d.buf.SnapBackward(sel.Head),
		}
	}
	d.sels.SetAll(snapped)
}

// SelectAll replaces all selections with one covering the whole buffer.
func (d *Document) SelectAll() {
	d.sels.Set(cursor.NewSelection(0, d.buf.Len()))
}

// SelectNextOccurrence searches for text after the last selection and adds
// the first match as a new selection. If nothing follows, the search wraps
// to the part of the buffer before that point. It reports whether a match
// was added; empty or invalid UTF-8 text never matches.
func (d *Document) SelectNextOccurrence(text string) bool {
	if text == "" || !utf8.ValidString(text) {
		return false
	}

	from := d.sels.Last().End()
	pos := d.buf.Index(text, from, d.buf.Len())
	if pos < 0 && from > 0 {
		pos = d.buf.Index(text, 0, from)
	}
	if pos < 0 {
		return false
	}

	d.sels.Add(cursor.NewSelection(pos, pos+ByteOffset(len(text))))
	return true
}
