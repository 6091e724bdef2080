// Package rope provides an immutable rope for text storage.
//
// Leaves hold bounded UTF-8 chunks; internal nodes cache the summed byte,
// character and newline counts of their subtrees. Those counts make byte
// offset, character index and line lookups O(log n) descents instead of
// scans over the whole text.
//
// Offsets handed to the rope are byte offsets. Callers that need to edit in
// character units convert with ByteToChar and CharToByte first; both land
// on codepoint boundaries.
//
//	r := rope.FromString("héllo")
//	r.Len()          // 6
//	r.LenChars()     // 5
//	r.CharToByte(2)  // 3
//	r = r.Insert(r.CharToByte(2), "X")
//
// Every mutating method returns a new Rope and leaves the receiver intact.
package rope
