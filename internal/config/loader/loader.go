// Package loader decodes rmde configuration files and collects
// environment overrides.
//
// File loaders decode straight into a caller-supplied struct. A file that
// does not exist is not an error; the loaders report it so the caller can
// keep its defaults.
package loader

import (
	"os"
	"path/filepath"
	"strings"
)

// FileLoader decodes one configuration file into v.
type FileLoader interface {
	// LoadFrom decodes path into v. It returns false, nil if path does
	// not exist.
	LoadFrom(path string, v any) (bool, error)
}

// FileSystem is the file access the loaders need. Tests substitute an
// in-memory implementation.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// ForPath returns the loader for path's extension: ".toml" uses TOML and
// ".yaml" or ".yml" use YAML. It returns nil for any other extension.
func ForPath(fsys FileSystem, path string) FileLoader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return NewTOMLLoaderWithFS(fsys)
	case ".yaml", ".yml":
		return NewYAMLLoaderWithFS(fsys)
	default:
		return nil
	}
}
