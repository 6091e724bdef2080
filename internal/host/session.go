package host

import (
	"github.com/google/uuid"

	"github.com/dshills/rmde/internal/app"
	"github.com/dshills/rmde/internal/engine"
)

// SelectionInfo is one selection as plain byte offsets.
type SelectionInfo struct {
	Anchor int `json:"anchor" yaml:"anchor"`
	Head   int `json:"head" yaml:"head"`
}

// Session is one editor instance seen through the flat surface.
//
// A Session is not safe for concurrent use.
type Session struct {
	id   string
	log  *app.Logger
	tabs *app.TabManager
}

// Option configures a Session.
type Option func(*sessionConfig)

type sessionConfig struct {
	log     *app.Logger
	tabOpts []app.TabOption
}

// WithLogger sets the session logger. Every line it writes carries the
// session id.
func WithLogger(l *app.Logger) Option {
	return func(c *sessionConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTabOptions passes options through to the tab manager.
func WithTabOptions(opts ...app.TabOption) Option {
	return func(c *sessionConfig) {
		c.tabOpts = append(c.tabOpts, opts...)
	}
}

// NewSession creates a session holding one empty tab.
func NewSession(opts ...Option) *Session {
	cfg := sessionConfig{log: app.NullLogger}
	for _, opt := range opts {
		opt(&cfg)
	}

	id := uuid.New().String()
	log := cfg.log.WithField("session", id)
	tabOpts := append([]app.TabOption{app.WithLogger(log)}, cfg.tabOpts...)

	s := &Session{
		id:   id,
		log:  log.WithComponent("host"),
		tabs: app.NewTabManager(tabOpts...),
	}
	s.log.Info("session started")
	return s
}

// SessionID returns the session's uuid.
func (s *Session) SessionID() string {
	return s.id
}

// NewTab opens an empty tab, activates it, and returns its id.
func (s *Session) NewTab() uint64 {
	return uint64(s.tabs.NewTab())
}

// CloseTab closes tab id and reports whether it existed.
func (s *Session) CloseTab(id uint64) bool {
	return s.tabs.CloseTab(engine.DocumentID(id))
}

// SwitchTab activates tab id and reports whether it existed.
func (s *Session) SwitchTab(id uint64) bool {
	return s.tabs.SwitchTab(engine.DocumentID(id))
}

// NextTab activates the next tab, wrapping around.
func (s *Session) NextTab() {
	s.tabs.NextTab()
}

// PrevTab activates the previous tab, wrapping around.
func (s *Session) PrevTab() {
	s.tabs.PrevTab()
}

// TabCount returns the number of open tabs.
func (s *Session) TabCount() int {
	return s.tabs.TabCount()
}

// ActiveTabID returns the active tab's id, or 0 if there is none.
func (s *Session) ActiveTabID() uint64 {
	return uint64(s.tabs.ActiveID())
}

// Tabs returns every tab in order.
func (s *Session) Tabs() []app.TabInfo {
	return s.tabs.Tabs()
}

// Content returns the active document's text.
func (s *Session) Content() string {
	text, _ := s.tabs.Content()
	return text
}

// ContentLength returns the active document's length in bytes.
func (s *Session) ContentLength() int {
	n, _ := s.tabs.Len()
	return int(n)
}

// InsertText inserts text at every selection.
func (s *Session) InsertText(text string) {
	_ = s.tabs.Insert(text)
}

// DeleteBackward deletes the selection or previous character at every
// selection.
func (s *Session) DeleteBackward() {
	_ = s.tabs.DeleteBackward()
}

// DeleteForward deletes the selection or next character at every
// selection.
func (s *Session) DeleteForward() {
	_ = s.tabs.DeleteForward()
}

// SetCursor replaces all selections with a cursor at pos.
func (s *Session) SetCursor(pos int) {
	_ = s.tabs.SetCursor(offset(pos))
}

// AddCursor adds a cursor at pos.
func (s *Session) AddCursor(pos int) {
	_ = s.tabs.AddCursor(offset(pos))
}

// MoveCursors moves every selection head by delta bytes, extending the
// selections when extend is set.
func (s *Session) MoveCursors(delta int64, extend bool) {
	_ = s.tabs.MoveCursors(engine.ByteOffset(delta), extend)
}

// SelectAll selects the whole document.
func (s *Session) SelectAll() {
	_ = s.tabs.SelectAll()
}

// SelectNextOccurrence adds the next match of text as a selection and
// reports whether one was found.
func (s *Session) SelectNextOccurrence(text string) bool {
	found, _ := s.tabs.SelectNextOccurrence(text)
	return found
}

// Selections returns the active document's selections in order.
func (s *Session) Selections() []SelectionInfo {
	sels, err := s.tabs.Selections()
	if err != nil {
		return nil
	}
	out := make([]SelectionInfo, len(sels))
	for i, sel := range sels {
		out[i] = SelectionInfo{Anchor: int(sel.Anchor), Head: int(sel.Head)}
	}
	return out
}

// SelectedText returns the primary selection's text, or "" for a cursor.
func (s *Session) SelectedText() string {
	text, _, _ := s.tabs.SelectedText()
	return text
}

// CursorPosition returns the primary cursor's byte offset.
func (s *Session) CursorPosition() int {
	pos, _ := s.tabs.CursorPosition()
	return int(pos)
}

// OpenFile opens path in a tab, reusing one that already shows it.
func (s *Session) OpenFile(path string) string {
	_, err := s.tabs.OpenFile(path)
	return errString(err)
}

// SaveFile writes the active document to its path.
func (s *Session) SaveFile() string {
	return errString(s.tabs.Save())
}

// SaveFileAs writes the active document to path and adopts it.
func (s *Session) SaveFileAs(path string) string {
	return errString(s.tabs.SaveAs(path))
}

// IsDirty reports whether the active document has unsaved changes.
func (s *Session) IsDirty() bool {
	dirty, _ := s.tabs.IsDirty()
	return dirty
}

// Title returns the active document's title.
func (s *Session) Title() string {
	title, _ := s.tabs.Title()
	return title
}

func offset(pos int) engine.ByteOffset {
	return engine.ByteOffset(max(pos, 0))
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
