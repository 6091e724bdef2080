package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/rmde/internal/config/loader"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if !cfg.Files.ResolveSymlinks {
		t.Error("Files.ResolveSymlinks = false, want true")
	}
	mode, err := cfg.FileMode()
	if err != nil || mode != 0o644 {
		t.Errorf("FileMode() = %o, %v; want 644, nil", mode, err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "rmde.toml", `
[logging]
level = "debug"
file = "/tmp/rmde.log"

[files]
resolve_symlinks = false
permissions = "0600"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := &Config{
		Logging: Logging{Level: "debug", File: "/tmp/rmde.log"},
		Files:   Files{ResolveSymlinks: false, Permissions: "0600"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAMLKeepsUnsetDefaults(t *testing.T) {
	path := writeFile(t, "rmde.yaml", "logging:\n  level: warn\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
	if !cfg.Files.ResolveSymlinks || cfg.Files.Permissions != "0644" {
		t.Errorf("Files = %+v, want defaults", cfg.Files)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("missing file should give defaults (-want +got):\n%s", diff)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil || cfg == nil {
		t.Fatalf("Load(\"\") = %v, %v", cfg, err)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"bad yaml", "bad.yaml", "logging: [\n"},
		{"bad toml", "bad.toml", "[logging\n"},
		{"unknown level", "level.toml", "[logging]\nlevel = \"loud\"\n"},
		{"bad permissions", "perm.yml", "files:\n  permissions: \"999\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := Load(path)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Load() error = %T %v, want *ParseError", err, err)
			}
			if perr.Path != path {
				t.Errorf("ParseError.Path = %q, want %q", perr.Path, path)
			}
		})
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load("settings.json")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load(json) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadReadError(t *testing.T) {
	// A directory named like a config file cannot be read.
	dir := filepath.Join(t.TempDir(), "dir.toml")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected an error reading a directory")
	}
	var perr *ParseError
	if errors.As(err, &perr) {
		t.Errorf("read failure should not be a ParseError: %v", err)
	}
}

type mapFS map[string]string

func (m mapFS) ReadFile(path string) ([]byte, error) {
	s, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(s), nil
}

func TestLoadFS(t *testing.T) {
	fsys := mapFS{"/etc/rmde.yml": "files:\n  resolve_symlinks: false\n"}
	cfg, err := LoadFS(fsys, "/etc/rmde.yml")
	if err != nil {
		t.Fatalf("LoadFS() error = %v", err)
	}
	if cfg.Files.ResolveSymlinks {
		t.Error("ResolveSymlinks = true, want false")
	}
}

func TestApplyEnv(t *testing.T) {
	path := writeFile(t, "rmde.toml", "[logging]\nlevel = \"debug\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	t.Setenv("RMDE_LOG_LEVEL", "error")
	t.Setenv("RMDE_LOG_FILE", "/var/log/rmde.log")
	t.Setenv("RMDE_RESOLVE_SYMLINKS", "off")
	t.Setenv("RMDE_FILE_MODE", "0640")

	if err := ApplyEnv(cfg); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	want := &Config{
		Logging: Logging{Level: "error", File: "/var/log/rmde.log"},
		Files:   Files{ResolveSymlinks: false, Permissions: "0640"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("env should beat file values (-want +got):\n%s", diff)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"bool", "RMDE_RESOLVE_SYMLINKS", "maybe"},
		{"mode", "RMDE_FILE_MODE", "rw-r--r--"},
		{"level", "RMDE_LOG_LEVEL", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			err := ApplyEnv(Default())
			if !errors.Is(err, ErrInvalidValue) {
				t.Errorf("ApplyEnv() error = %v, want ErrInvalidValue", err)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Errorf("ApplyEnv() error = %T, want *ParseError", err)
			}
		})
	}

	t.Run("error names the variable", func(t *testing.T) {
		t.Setenv("RMDE_TEST_FLAG", "maybe")
		err := applyEnv(Default(), loader.NewEnvLoaderWithMapping(map[string]string{
			"RMDE_TEST_FLAG": "files.resolve_symlinks",
		}))
		var perr *ParseError
		if !errors.As(err, &perr) || perr.Path != "RMDE_TEST_FLAG" {
			t.Errorf("applyEnv() error = %v, want *ParseError for RMDE_TEST_FLAG", err)
		}
	})

	t.Run("unknown path", func(t *testing.T) {
		t.Setenv("RMDE_TEST_OTHER", "x")
		err := applyEnv(Default(), loader.NewEnvLoaderWithMapping(map[string]string{
			"RMDE_TEST_OTHER": "ui.theme",
		}))
		if err == nil {
			t.Error("expected an error for an unknown setting")
		}
	})
}

func TestFileMode(t *testing.T) {
	tests := []struct {
		perm    string
		want    fs.FileMode
		wantErr bool
	}{
		{"", 0, false},
		{"644", 0o644, false},
		{"0600", 0o600, false},
		{"1777", 0, true},
		{"8", 0, true},
	}
	for _, tt := range tests {
		cfg := &Config{Files: Files{Permissions: tt.perm}}
		got, err := cfg.FileMode()
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("FileMode(%q) = %o, %v", tt.perm, got, err)
		}
	}
}
