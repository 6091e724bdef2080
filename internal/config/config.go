package config

import (
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/dshills/rmde/internal/config/loader"
)

// Config holds every rmde setting.
type Config struct {
	Logging Logging `toml:"logging" yaml:"logging"`
	Files   Files   `toml:"files" yaml:"files"`
}

// Logging configures the logger.
type Logging struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
	// File receives log output. Empty means stderr.
	File string `toml:"file" yaml:"file"`
}

// Files configures how documents are opened and saved.
type Files struct {
	// ResolveSymlinks makes opening a symlink reuse the tab of its target.
	ResolveSymlinks bool `toml:"resolve_symlinks" yaml:"resolve_symlinks"`
	// Permissions is the octal mode for newly written files, e.g. "0644".
	Permissions string `toml:"permissions" yaml:"permissions"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Logging: Logging{Level: "info"},
		Files: Files{
			ResolveSymlinks: true,
			Permissions:     "0644",
		},
	}
}

// Load returns the defaults overlaid with the file at path. A missing file
// is not an error. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	return LoadFS(loader.DefaultFS(), path)
}

// LoadFS is Load reading through fsys.
func LoadFS(fsys loader.FileSystem, path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	l := loader.ForPath(fsys, path)
	if l == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if _, err := l.LoadFrom(path, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return cfg, nil
}

// ApplyEnv overlays the RMDE_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	return applyEnv(cfg, loader.NewEnvLoader())
}

func applyEnv(cfg *Config, l *loader.EnvLoader) error {
	for _, ev := range l.Load() {
		if err := cfg.set(ev.Path, ev.Value); err != nil {
			return &ParseError{Path: ev.Var, Message: err.Error(), Err: err}
		}
	}
	if err := cfg.Validate(); err != nil {
		return &ParseError{Path: "environment", Message: err.Error(), Err: err}
	}
	return nil
}

// set assigns one setting from its string form.
func (c *Config) set(path, value string) error {
	switch path {
	case "logging.level":
		c.Logging.Level = value
	case "logging.file":
		c.Logging.File = value
	case "files.resolve_symlinks":
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		c.Files.ResolveSymlinks = b
	case "files.permissions":
		c.Files.Permissions = value
	default:
		return fmt.Errorf("unknown setting %q", path)
	}
	return nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if !validLevel(c.Logging.Level) {
		return fmt.Errorf("%w: logging.level %q", ErrInvalidValue, c.Logging.Level)
	}
	if _, err := c.FileMode(); err != nil {
		return err
	}
	return nil
}

// FileMode parses Files.Permissions. An empty value yields 0, which leaves
// the document default in place.
func (c *Config) FileMode() (fs.FileMode, error) {
	if c.Files.Permissions == "" {
		return 0, nil
	}
	mode, err := strconv.ParseUint(c.Files.Permissions, 8, 32)
	if err != nil || mode > 0o777 {
		return 0, fmt.Errorf("%w: files.permissions %q", ErrInvalidValue, c.Files.Permissions)
	}
	return fs.FileMode(mode), nil
}

// validLevel mirrors the level names the app logger understands.
func validLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, s)
}
