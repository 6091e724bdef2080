package engine

import (
	"fmt"
	"io/fs"
)

// Errors returned by engine operations.
var (
	// ErrNoPath indicates Save was called on a document that has never
	// been given a file path. It matches fs.ErrNotExist.
	ErrNoPath = fmt.Errorf("no file path set: %w", fs.ErrNotExist)
)
