package app

import (
	"path/filepath"

	"github.com/dshills/rmde/internal/engine"
)

// TabInfo describes one tab for display.
type TabInfo struct {
	ID    uint64 `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Dirty bool   `json:"dirty" yaml:"dirty"`
}

// TabManager owns the open documents and tracks which one is active.
//
// The tab list is never empty and the active index is always valid.
// Closing the last tab replaces it with a fresh empty document.
//
// A TabManager is not safe for concurrent use.
type TabManager struct {
	docs   []*engine.Document
	active int

	log             *Logger
	resolveSymlinks bool
	docOpts         []engine.Option
}

// TabOption configures a TabManager.
type TabOption func(*TabManager)

// WithLogger sets the logger. Tab events are logged under the "tabs"
// component.
func WithLogger(l *Logger) TabOption {
	return func(tm *TabManager) {
		if l != nil {
			tm.log = l
		}
	}
}

// WithResolveSymlinks controls whether opened paths are resolved through
// symlinks before checking for an already open tab. It is on by default.
func WithResolveSymlinks(resolve bool) TabOption {
	return func(tm *TabManager) {
		tm.resolveSymlinks = resolve
	}
}

// WithDocumentOptions sets options applied to every document the manager
// creates or opens.
func WithDocumentOptions(opts ...engine.Option) TabOption {
	return func(tm *TabManager) {
		tm.docOpts = append(tm.docOpts, opts...)
	}
}

// NewTabManager creates a manager holding one empty document.
func NewTabManager(opts ...TabOption) *TabManager {
	tm := &TabManager{
		log:             NullLogger,
		resolveSymlinks: true,
	}
	for _, opt := range opts {
		opt(tm)
	}
	tm.log = tm.log.WithComponent("tabs")

	tm.docs = []*engine.Document{engine.NewDocument(tm.docOpts...)}
	return tm
}

// NewTab appends an empty document, activates it, and returns its id.
func (tm *TabManager) NewTab() engine.DocumentID {
	doc := engine.NewDocument(tm.docOpts...)
	tm.docs = append(tm.docs, doc)
	tm.active = len(tm.docs) - 1
	tm.log.Debug("new tab %s", doc.ID())
	return doc.ID()
}

// OpenFile activates the tab already showing path, or loads path into a
// new tab. The document keeps the absolute form of path as given; symlinks
// are resolved only to find an existing tab. Read failures are returned
// unchanged and leave the tabs as they were.
func (tm *TabManager) OpenFile(path string) (engine.DocumentID, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, err
	}
	resolved, err := tm.resolvePath(abs)
	if err != nil {
		return 0, err
	}

	if idx := tm.indexOfPath(resolved); idx >= 0 {
		tm.active = idx
		tm.log.Debug("file already open in tab %s: %s", tm.docs[idx].ID(), resolved)
		return tm.docs[idx].ID(), nil
	}

	doc, err := engine.OpenDocument(abs, tm.docOpts...)
	if err != nil {
		tm.log.Error("open %s: %v", abs, err)
		return 0, err
	}
	tm.docs = append(tm.docs, doc)
	tm.active = len(tm.docs) - 1
	tm.log.Debug("opened %s in tab %s", abs, doc.ID())
	return doc.ID(), nil
}

// resolvePath makes path absolute and, when enabled, follows symlinks.
// A path that cannot be evaluated is kept absolute so the read that
// follows reports the real error.
func (tm *TabManager) resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if !tm.resolveSymlinks {
		return abs, nil
	}
	if target, err := filepath.EvalSymlinks(abs); err == nil {
		return target, nil
	}
	return abs, nil
}

// indexOfPath finds the tab whose document path resolves to path. Paths
// are resolved again here since a file saved under one name may be
// reached through a symlink later.
func (tm *TabManager) indexOfPath(path string) int {
	for i, doc := range tm.docs {
		if doc.Path() == "" {
			continue
		}
		if doc.Path() == path {
			return i
		}
		if resolved, err := tm.resolvePath(doc.Path()); err == nil && resolved == path {
			return i
		}
	}
	return -1
}

func (tm *TabManager) indexOf(id engine.DocumentID) int {
	for i, doc := range tm.docs {
		if doc.ID() == id {
			return i
		}
	}
	return -1
}

// CloseTab closes the tab with the given id and reports whether it existed.
// Closing the only tab replaces it with a fresh empty document.
func (tm *TabManager) CloseTab(id engine.DocumentID) bool {
	idx := tm.indexOf(id)
	if idx < 0 {
		return false
	}

	if len(tm.docs) == 1 {
		tm.docs[0] = engine.NewDocument(tm.docOpts...)
		tm.active = 0
		tm.log.Debug("closed last tab %s, replaced with %s", id, tm.docs[0].ID())
		return true
	}

	tm.docs = append(tm.docs[:idx], tm.docs[idx+1:]...)
	switch {
	case tm.active >= len(tm.docs):
		tm.active = len(tm.docs) - 1
	case tm.active > idx:
		tm.active--
	}
	tm.log.Debug("closed tab %s", id)
	return true
}

// SwitchTab activates the tab with the given id and reports whether it
// existed.
func (tm *TabManager) SwitchTab(id engine.DocumentID) bool {
	idx := tm.indexOf(id)
	if idx < 0 {
		return false
	}
	tm.active = idx
	return true
}

// NextTab activates the next tab, wrapping around.
func (tm *TabManager) NextTab() {
	if len(tm.docs) == 0 {
		return
	}
	tm.active = (tm.active + 1) % len(tm.docs)
}

// PrevTab activates the previous tab, wrapping around.
func (tm *TabManager) PrevTab() {
	if len(tm.docs) == 0 {
		return
	}
	tm.active = (tm.active - 1 + len(tm.docs)) % len(tm.docs)
}

// Tabs returns a snapshot of every tab in order.
func (tm *TabManager) Tabs() []TabInfo {
	tabs := make([]TabInfo, len(tm.docs))
	for i, doc := range tm.docs {
		tabs[i] = TabInfo{
			ID:    uint64(doc.ID()),
			Title: doc.Title(),
			Dirty: doc.IsDirty(),
		}
	}
	return tabs
}

// TabCount returns the number of open tabs.
func (tm *TabManager) TabCount() int {
	return len(tm.docs)
}

// ActiveID returns the id of the active document, or 0 if there is none.
func (tm *TabManager) ActiveID() engine.DocumentID {
	doc, err := tm.Active()
	if err != nil {
		return 0
	}
	return doc.ID()
}

// Active returns the active document.
func (tm *TabManager) Active() (*engine.Document, error) {
	if tm.active < 0 || tm.active >= len(tm.docs) {
		return nil, ErrNoActiveDocument
	}
	return tm.docs[tm.active], nil
}

// Document returns the document with the given id.
func (tm *TabManager) Document(id engine.DocumentID) (*engine.Document, error) {
	idx := tm.indexOf(id)
	if idx < 0 {
		return nil, &DocumentNotFoundError{ID: uint64(id)}
	}
	return tm.docs[idx], nil
}
