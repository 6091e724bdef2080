// Package buffer provides the editable text storage of a document, built
// on top of the rope package.
//
// Two coordinate systems meet here:
//
//   - ByteOffset: raw UTF-8 byte position. Selections are stored this way.
//   - CharIndex: position in Unicode scalar values. Edits are applied this
//     way so that an edit can never cut an encoded codepoint in half.
//
// ByteToChar and CharToByte convert between the two. SnapBackward and
// SnapForward bring an arbitrary byte offset onto a character boundary.
//
//	buf := buffer.NewBufferFromString("héllo")
//	buf.InsertChars(buf.ByteToChar(3), "X") // "héXllo"
//	_ = buf.RemoveChars(0, 2)               // "Xllo"
//
// A Buffer is not safe for concurrent use; its owner serializes access.
package buffer
