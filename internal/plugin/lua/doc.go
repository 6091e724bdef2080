// Package lua runs editing scripts against a host.Session.
//
// A State is a gopher-lua interpreter with only the base, table, string
// and math libraries. EditorModule installs the global table "rmde":
//
//	rmde.insert("# ")
//	rmde.set_cursor(0)
//	local ok, err = rmde.save_as("notes.md")
//	if not ok then print(err) end
//
// Offsets are 0-based byte offsets, the same values the Go API uses.
package lua
