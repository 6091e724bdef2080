// Package host exposes the editor through a flat call surface.
//
// Session wraps an app.TabManager with methods that take and return only
// plain values: ids are uint64, positions are int, and failures are
// reported as error message strings that are empty on success. It is the
// layer scripting bindings and embedding hosts talk to.
//
// Positions below zero are treated as zero. Larger positions are clamped
// by the document. When no document is active, reads return zero values
// and edits do nothing.
package host
