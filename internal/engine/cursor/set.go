package cursor

import "sort"

// SelectionSet manages multiple cursors/selections.
// After Normalize the set is never empty, is sorted by start, and holds no
// overlapping or touching selections. The first selection is the primary.
type SelectionSet struct {
	selections []Selection
}

// NewSelectionSet creates a set holding a single cursor at offset 0.
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{
		selections: []Selection{NewCursorSelection(0)},
	}
}

// NewSelectionSetFrom creates a set from a slice of selections.
// The selections are normalized (sorted and merged).
func NewSelectionSetFrom(selections []Selection) *SelectionSet {
	ss := &SelectionSet{}
	ss.SetAll(selections)
	return ss
}

// Primary returns the primary (lowest offset) selection.
func (ss *SelectionSet) Primary() Selection {
	if len(ss.selections) == 0 {
		return Selection{}
	}
	return ss.selections[0]
}

// Last returns the highest offset selection.
func (ss *SelectionSet) Last() Selection {
	if len(ss.selections) == 0 {
		return Selection{}
	}
	return ss.selections[len(ss.selections)-1]
}

// All returns a copy of all selections.
// The returned slice is safe to modify without affecting the SelectionSet.
func (ss *SelectionSet) All() []Selection {
	result := make([]Selection, len(ss.selections))
	copy(result, ss.selections)
	return result
}

// Descending returns a copy of the selections ordered by start, highest first.
// Edits applied in this order never shift a selection that is still pending.
func (ss *SelectionSet) Descending() []Selection {
	result := ss.All()
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Start() > result[j].Start()
	})
	return result
}

// Count returns the number of cursors/selections.
func (ss *SelectionSet) Count() int {
	return len(ss.selections)
}

// Set replaces all selections with a single selection.
func (ss *SelectionSet) Set(sel Selection) {
	ss.selections = []Selection{sel}
}

// SetAll replaces all selections and normalizes.
func (ss *SelectionSet) SetAll(sels []Selection) {
	ss.selections = make([]Selection, len(sels))
	copy(ss.selections, sels)
	ss.Normalize()
}

// Add appends a selection and normalizes, merging it with any selection it
// overlaps or touches.
func (ss *SelectionSet) Add(sel Selection) {
	ss.selections = append(ss.selections, sel)
	ss.Normalize()
}

// Clamp clamps all selections to the valid range [0, maxOffset].
func (ss *SelectionSet) Clamp(maxOffset ByteOffset) {
	for i, sel := range ss.selections {
		ss.selections[i] = sel.Clamp(maxOffset)
	}
	ss.Normalize()
}

// Normalize sorts selections by start and merges those where the next
// start is at or before the running end. An empty set becomes a single
// cursor at 0.
func (ss *SelectionSet) Normalize() {
	if len(ss.selections) == 0 {
		ss.selections = []Selection{NewCursorSelection(0)}
		return
	}
	if len(ss.selections) == 1 {
		return
	}

	sort.Slice(ss.selections, func(i, j int) bool {
		si, sj := ss.selections[i].Start(), ss.selections[j].Start()
		if si != sj {
			return si < sj
		}
		// Same start: larger ranges first
		return ss.selections[i].End() > ss.selections[j].End()
	})

	merged := ss.selections[:1]
	for _, sel := range ss.selections[1:] {
		last := &merged[len(merged)-1]
		if sel.Start() <= last.End() {
			*last = last.Merge(sel)
		} else {
			merged = append(merged, sel)
		}
	}
	ss.selections = merged
}

// Equals returns true if two sets have the same selections.
func (ss *SelectionSet) Equals(other *SelectionSet) bool {
	if other == nil || ss.Count() != other.Count() {
		return false
	}
	for i, sel := range ss.selections {
		if !sel.Equals(other.selections[i]) {
			return false
		}
	}
	return true
}
