package engine

import (
	"strconv"
	"sync/atomic"
)

// DocumentID identifies a document for the life of the process.
// IDs are handed out in increasing order starting at 1 and never reused;
// the zero value means "no document".
type DocumentID uint64

var lastDocumentID atomic.Uint64

// NextDocumentID allocates a fresh DocumentID.
func NextDocumentID() DocumentID {
	return DocumentID(lastDocumentID.Add(1))
}

// String returns the decimal form of the id.
func (id DocumentID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}
