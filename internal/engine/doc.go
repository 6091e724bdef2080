// Package engine provides the document model of the editor: a text buffer,
// its multi-cursor selection set, and the editing operations that keep the
// two consistent.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - rope: B+ tree rope for efficient text storage (O(log n) operations)
//   - buffer: Mutable buffer with byte/character conversion
//   - cursor: Selections and the normalized SelectionSet
//
// Selections are stored as byte offsets. Edits are addressed in characters,
// so no operation can split a UTF-8 encoded codepoint.
//
// # Multi-Cursor Editing
//
// Every mutating operation visits the selections from the highest start
// down, applies its change, then renormalizes the set:
//
//	d := engine.NewDocument(engine.WithContent("ab"))
//	d.SetCursor(1)
//	d.AddCursor(2)
//	d.Insert("X") // "aXbX"
//
// # Files
//
//	d, err := engine.OpenDocument("notes.md")
//	...
//	err = d.Save()
//
// Persisted state is the plain UTF-8 text of the file.
//
// # Thread Safety
//
// A Document is not safe for concurrent use. Callers serialize access.
package engine
