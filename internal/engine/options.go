package engine

import "io/fs"

// DefaultFileMode is the permission used when saving creates a new file.
const DefaultFileMode fs.FileMode = 0o644

// Option configures a Document during creation.
type Option func(*Document)

// WithContent sets the initial content of the document. Invalid UTF-8 is
// replaced with U+FFFD.
func WithContent(content string) Option {
	return func(d *Document) {
		d.initContent = content
	}
}

// WithPath associates the document with a file path without reading it.
func WithPath(path string) Option {
	return func(d *Document) {
		d.path = path
	}
}

// WithFileMode sets the permission bits used when saving creates a file.
func WithFileMode(mode fs.FileMode) Option {
	return func(d *Document) {
		if mode != 0 {
			d.fileMode = mode
		}
	}
}
