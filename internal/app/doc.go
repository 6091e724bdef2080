// Package app holds the editor's tab model and its structured logger.
//
// TabManager keeps an ordered list of engine documents with one active.
// Editing calls on the manager go to the active document.
package app
