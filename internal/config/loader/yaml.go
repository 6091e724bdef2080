package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// yamlLine extracts the line number from yaml.v3 syntax errors, which are
// formatted as "yaml: line N: ...".
var yamlLine = regexp.MustCompile(`line (\d+):`)

// YAMLLoader loads configuration from YAML files.
type YAMLLoader struct {
	fs FileSystem
}

// NewYAMLLoader creates a YAML loader reading from the OS file system.
func NewYAMLLoader() *YAMLLoader {
	return &YAMLLoader{fs: DefaultFS()}
}

// NewYAMLLoaderWithFS creates a YAML loader with a custom file system.
func NewYAMLLoaderWithFS(fsys FileSystem) *YAMLLoader {
	return &YAMLLoader{fs: fsys}
}

// LoadFrom decodes the YAML file at path into v.
func (l *YAMLLoader) LoadFrom(path string, v any) (bool, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return true, l.parse(path, data, v)
}

func (l *YAMLLoader) parse(source string, data []byte, v any) error {
	dec := yaml.NewDecoder(bytesReader(data))
	dec.KnownFields(true)
	err := dec.Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		// An empty document decodes to nothing.
		return nil
	}

	perr := &ParseError{Path: source, Message: err.Error(), Err: err}
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		perr.Line, _ = strconv.Atoi(m[1])
	}
	return perr
}

func bytesReader(data []byte) io.Reader {
	return bytes.NewReader(data)
}
