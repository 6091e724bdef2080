package engine

import (
	"errors"
	"io/fs"
	"os"

	"github.com/dshills/rmde/internal/engine/buffer"
)

// OpenDocument reads the file at path into a new document. The path is
// stored as given. Read failures are returned unchanged; content that is
// not valid UTF-8 fails with a *fs.PathError wrapping buffer.ErrInvalidUTF8.
func OpenDocument(path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := buffer.NewBufferFromReader(f)
	if err != nil {
		if errors.Is(err, buffer.ErrInvalidUTF8) {
			return nil, &fs.PathError{Op: "open", Path: path, Err: err}
		}
		return nil, err
	}

	d := NewDocument(opts...)
	d.buf = buf
	d.path = path
	return d, nil
}

// Save writes the content to the document's path and clears the dirty
// flag. It fails with ErrNoPath if the document has no path.
func (d *Document) Save() error {
	if d.path == "" {
		return ErrNoPath
	}
	return d.writeTo(d.path)
}

// SaveAs writes the content to path, adopts path as the document's path
// and clears the dirty flag. On failure the document is unchanged.
func (d *Document) SaveAs(path string) error {
	if err := d.writeTo(path); err != nil {
		return err
	}
	d.path = path
	return nil
}

func (d *Document) writeTo(path string) error {
	if err := os.WriteFile(path, []byte(d.buf.Text()), d.fileMode); err != nil {
		return err
	}
	d.dirty = false
	return nil
}
