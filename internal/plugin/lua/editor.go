package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/rmde/internal/host"
)

// Module is a set of Go functions exposed to scripts.
type Module interface {
	// Name returns the global the module is installed under.
	Name() string
	// Register installs the module into L.
	Register(L *lua.LState) error
}

// EditorModule implements the rmde API module over a host session.
type EditorModule struct {
	session *host.Session
}

// NewEditorModule creates an editor module driving session.
func NewEditorModule(session *host.Session) *EditorModule {
	return &EditorModule{session: session}
}

// Name returns the module name.
func (m *EditorModule) Name() string {
	return "rmde"
}

// Register registers the module into the Lua state.
func (m *EditorModule) Register(L *lua.LState) error {
	mod := L.NewTable()

	// Tabs
	L.SetField(mod, "new_tab", L.NewFunction(m.newTab))
	L.SetField(mod, "close_tab", L.NewFunction(m.closeTab))
	L.SetField(mod, "switch_tab", L.NewFunction(m.switchTab))
	L.SetField(mod, "next_tab", L.NewFunction(m.nextTab))
	L.SetField(mod, "prev_tab", L.NewFunction(m.prevTab))
	L.SetField(mod, "tab_count", L.NewFunction(m.tabCount))
	L.SetField(mod, "active_id", L.NewFunction(m.activeID))
	L.SetField(mod, "tabs", L.NewFunction(m.tabs))

	// Text
	L.SetField(mod, "content", L.NewFunction(m.content))
	L.SetField(mod, "length", L.NewFunction(m.length))
	L.SetField(mod, "insert", L.NewFunction(m.insert))
	L.SetField(mod, "backspace", L.NewFunction(m.backspace))
	L.SetField(mod, "delete", L.NewFunction(m.deleteForward))

	// Cursors
	L.SetField(mod, "set_cursor", L.NewFunction(m.setCursor))
	L.SetField(mod, "add_cursor", L.NewFunction(m.addCursor))
	L.SetField(mod, "move", L.NewFunction(m.move))
	L.SetField(mod, "select_all", L.NewFunction(m.selectAll))
	L.SetField(mod, "select_next", L.NewFunction(m.selectNext))
	L.SetField(mod, "selections", L.NewFunction(m.selections))
	L.SetField(mod, "selected_text", L.NewFunction(m.selectedText))
	L.SetField(mod, "cursor", L.NewFunction(m.cursor))

	// Files
	L.SetField(mod, "open", L.NewFunction(m.open))
	L.SetField(mod, "save", L.NewFunction(m.save))
	L.SetField(mod, "save_as", L.NewFunction(m.saveAs))
	L.SetField(mod, "dirty", L.NewFunction(m.dirty))
	L.SetField(mod, "title", L.NewFunction(m.title))

	L.SetGlobal(m.Name(), mod)
	return nil
}

// new_tab() -> number
func (m *EditorModule) newTab(L *lua.LState) int {
	L.Push(lua.LNumber(m.session.NewTab()))
	return 1
}

// close_tab(id) -> bool
func (m *EditorModule) closeTab(L *lua.LState) int {
	id := L.CheckInt64(1)
	L.Push(lua.LBool(id > 0 && m.session.CloseTab(uint64(id))))
	return 1
}

// switch_tab(id) -> bool
func (m *EditorModule) switchTab(L *lua.LState) int {
	id := L.CheckInt64(1)
	L.Push(lua.LBool(id > 0 && m.session.SwitchTab(uint64(id))))
	return 1
}

// next_tab()
func (m *EditorModule) nextTab(L *lua.LState) int {
	m.session.NextTab()
	return 0
}

// prev_tab()
func (m *EditorModule) prevTab(L *lua.LState) int {
	m.session.PrevTab()
	return 0
}

// tab_count() -> number
func (m *EditorModule) tabCount(L *lua.LState) int {
	L.Push(lua.LNumber(m.session.TabCount()))
	return 1
}

// active_id() -> number
// Returns 0 if no tab is active.
func (m *EditorModule) activeID(L *lua.LState) int {
	L.Push(lua.LNumber(m.session.ActiveTabID()))
	return 1
}

// tabs() -> {{id=, title=, dirty=}, ...}
func (m *EditorModule) tabs(L *lua.LState) int {
	tbl := L.NewTable()
	for _, tab := range m.session.Tabs() {
		entry := L.NewTable()
		entry.RawSetString("id", lua.LNumber(tab.ID))
		entry.RawSetString("title", lua.LString(tab.Title))
		entry.RawSetString("dirty", lua.LBool(tab.Dirty))
		tbl.Append(entry)
	}
	L.Push(tbl)
	return 1
}

// content() -> string
func (m *EditorModule) content(L *lua.LState) int {
	L.Push(lua.LString(m.session.Content()))
	return 1
}

// length() -> number
// Returns the length in bytes.
func (m *EditorModule) length(L *lua.LState) int {
	L.Push(lua.LNumber(m.session.ContentLength()))
	return 1
}

// insert(text)
func (m *EditorModule) insert(L *lua.LState) int {
	m.session.InsertText(L.CheckString(1))
	return 0
}

// backspace()
func (m *EditorModule) backspace(L *lua.LState) int {
	m.session.DeleteBackward()
	return 0
}

// delete()
func (m *EditorModule) deleteForward(L *lua.LState) int {
	m.session.DeleteForward()
	return 0
}

// set_cursor(offset)
func (m *EditorModule) setCursor(L *lua.LState) int {
	m.session.SetCursor(L.CheckInt(1))
	return 0
}

// add_cursor(offset)
func (m *EditorModule) addCursor(L *lua.LState) int {
	m.session.AddCursor(L.CheckInt(1))
	return 0
}

// move(delta [, extend])
func (m *EditorModule) move(L *lua.LState) int {
	delta := L.CheckInt64(1)
	extend := L.OptBool(2, false)
	m.session.MoveCursors(delta, extend)
	return 0
}

// select_all()
func (m *EditorModule) selectAll(L *lua.LState) int {
	m.session.SelectAll()
	return 0
}

// select_next(text) -> bool
func (m *EditorModule) selectNext(L *lua.LState) int {
	L.Push(lua.LBool(m.session.SelectNextOccurrence(L.CheckString(1))))
	return 1
}

// selections() -> {{anchor=, head=}, ...}
func (m *EditorModule) selections(L *lua.LState) int {
	tbl := L.NewTable()
	for _, sel := range m.session.Selections() {
		entry := L.NewTable()
		entry.RawSetString("anchor", lua.LNumber(sel.Anchor))
		entry.RawSetString("head", lua.LNumber(sel.Head))
		tbl.Append(entry)
	}
	L.Push(tbl)
	return 1
}

// selected_text() -> string
func (m *EditorModule) selectedText(L *lua.LState) int {
	L.Push(lua.LString(m.session.SelectedText()))
	return 1
}

// cursor() -> number
func (m *EditorModule) cursor(L *lua.LState) int {
	L.Push(lua.LNumber(m.session.CursorPosition()))
	return 1
}

// open(path) -> id | nil, err
func (m *EditorModule) open(L *lua.LState) int {
	if msg := m.session.OpenFile(L.CheckString(1)); msg != "" {
		return pushError(L, msg)
	}
	L.Push(lua.LNumber(m.session.ActiveTabID()))
	return 1
}

// save() -> true | nil, err
func (m *EditorModule) save(L *lua.LState) int {
	if msg := m.session.SaveFile(); msg != "" {
		return pushError(L, msg)
	}
	L.Push(lua.LTrue)
	return 1
}

// save_as(path) -> true | nil, err
func (m *EditorModule) saveAs(L *lua.LState) int {
	if msg := m.session.SaveFileAs(L.CheckString(1)); msg != "" {
		return pushError(L, msg)
	}
	L.Push(lua.LTrue)
	return 1
}

// dirty() -> bool
func (m *EditorModule) dirty(L *lua.LState) int {
	L.Push(lua.LBool(m.session.IsDirty()))
	return 1
}

// title() -> string
func (m *EditorModule) title(L *lua.LState) int {
	L.Push(lua.LString(m.session.Title()))
	return 1
}

func pushError(L *lua.LState, msg string) int {
	L.Push(lua.LNil)
	L.Push(lua.LString(msg))
	return 2
}
