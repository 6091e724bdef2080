package app

import (
	"path/filepath"

	"github.com/dshills/rmde/internal/engine"
)

// The methods below operate on the active document. Each returns
// ErrNoActiveDocument if there is none.

// Content returns the active document's text.
func (tm *TabManager) Content() (string, error) {
	doc, err := tm.Active()
	if err != nil {
		return "", err
	}
	return doc.Content(), nil
}

// Len returns the active document's length in bytes.
func (tm *TabManager) Len() (engine.ByteOffset, error) {
	doc, err := tm.Active()
	if err != nil {
		return 0, err
	}
	return doc.Len(), nil
}

// Insert inserts text at every selection of the active document.
func (tm *TabManager) Insert(text string) error {
	doc, err := tm.Active()
	if err != nil {
		return err
	}
	doc.Insert(text)
	return nil
}

// DeleteBackward deletes backward at every selection.
func (tm *TabManager) DeleteBackward() error {
	doc, err := tm.Active()
	if err != nil {
		return err
	}
	doc.DeleteBackward()
	return nil
}

// DeleteForward deletes forward at every selection.
func (tm *TabManager) DeleteForward() error {
	doc, err := tm.Active()
	if err != nil {
		return err
	}
	doc.DeleteForward()
	return nil
}

// SetCursor replaces the selections with a single cursor at pos.
func (tm *TabManager) SetCursor(pos engine.ByteOffset) error {
	doc, err := tm.Active()
	if err != nil {
		return err
	}
	doc.SetCursor(pos)
	return nil
}

// AddCursor adds a cursor at pos.
func (tm *TabManager) AddCursor(pos engine.ByteOffset) error {
	doc, err := tm.Active()
	if err != nil {
		return err
	}
	doc.AddCursor(pos)
	return nil
}

// MoveCursors moves every selection head by delta bytes.
func (tm *TabManager) MoveCursors(delta engine.ByteOffset, extend bool) error {
	doc, err := tm.Active()
	if err != nil {
		return err
	}
	doc.MoveCursors(delta, extend)
	return nil
}

// SelectAll selects the whole active document.
func (tm *TabManager) SelectAll() error {
	doc, err := tm.Active()
	if err != nil {
		return err
	}
	doc.SelectAll()
	return nil
}

// SelectNextOccurrence adds the next match of text as a selection and
// reports whether one was found.
func (tm *TabManager) SelectNextOccurrence(text string) (bool, error) {
	doc, err := tm.Active()
	if err != nil {
		return false, err
	}
	return doc.SelectNextOccurrence(text), nil
}

// Selections returns the active document's selections.
func (tm *TabManager) Selections() ([]engine.Selection, error) {
	doc, err := tm.Active()
	if err != nil {
		return nil, err
	}
	return doc.Selections(), nil
}

// SelectedText returns the text of the primary selection. The bool is
// false when the primary selection is a cursor.
func (tm *TabManager) SelectedText() (string, bool, error) {
	doc, err := tm.Active()
	if err != nil {
		return "", false, err
	}
	text, ok := doc.SelectedText()
	return text, ok, nil
}

// CursorPosition returns the head of the primary selection.
func (tm *TabManager) CursorPosition() (engine.ByteOffset, error) {
	doc, err := tm.Active()
	if err != nil {
		return 0, err
	}
	return doc.CursorPosition(), nil
}

// Save writes the active document to its path.
func (tm *TabManager) Save() error {
	doc, err := tm.Active()
	if err != nil {
		return err
	}
	if err := doc.Save(); err != nil {
		tm.log.Error("save tab %s: %v", doc.ID(), err)
		return err
	}
	tm.log.Debug("saved tab %s to %s", doc.ID(), doc.Path())
	return nil
}

// SaveAs writes the active document to path and adopts it. The path is
// stored in absolute form so a later OpenFile of it finds this tab.
func (tm *TabManager) SaveAs(path string) error {
	doc, err := tm.Active()
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := doc.SaveAs(abs); err != nil {
		tm.log.Error("save tab %s as %s: %v", doc.ID(), abs, err)
		return err
	}
	tm.log.Debug("saved tab %s as %s", doc.ID(), abs)
	return nil
}

// IsDirty reports whether the active document has unsaved changes.
func (tm *TabManager) IsDirty() (bool, error) {
	doc, err := tm.Active()
	if err != nil {
		return false, err
	}
	return doc.IsDirty(), nil
}

// Title returns the active document's title.
func (tm *TabManager) Title() (string, error) {
	doc, err := tm.Active()
	if err != nil {
		return "", err
	}
	return doc.Title(), nil
}
