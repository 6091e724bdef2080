package app

import (
	"errors"
	"fmt"
)

// Tab manager errors.
var (
	// ErrNoActiveDocument indicates no document is currently active.
	ErrNoActiveDocument = errors.New("no active document")

	// ErrDocumentNotFound indicates a document was not found.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidPosition is for callers that validate offsets themselves.
	// Editing operations clamp positions and never return it.
	ErrInvalidPosition = errors.New("invalid position")
)

// DocumentNotFoundError reports a lookup by id that matched no open tab.
type DocumentNotFoundError struct {
	ID uint64
}

func (e *DocumentNotFoundError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("document not found: %d", e.ID)
}

// Is matches ErrDocumentNotFound.
func (e *DocumentNotFoundError) Is(target error) bool {
	return target == ErrDocumentNotFound
}
