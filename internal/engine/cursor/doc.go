// Package cursor provides the multi-cursor selection model.
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current cursor position (where typing would occur)
//
// When Anchor == Head, the selection represents just a cursor with no
// selected text. The selection can extend forward (head > anchor) or
// backward (head < anchor), preserving the user's selection direction.
//
// SelectionSet holds the selections of one document. After Normalize it is:
//   - Never empty
//   - Sorted ascending by start
//   - Free of overlapping or touching selections, which are merged
//
// Basic usage:
//
//	ss := cursor.NewSelectionSet()
//	ss.Add(cursor.NewSelection(3, 8))
//	for _, sel := range ss.Descending() {
//		// edit at sel without disturbing lower selections
//	}
//
// Selection is an immutable value type. SelectionSet is not safe for
// concurrent use.
package cursor
