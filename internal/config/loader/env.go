package loader

import (
	"os"
	"sort"
)

// EnvLoader collects configuration overrides from environment variables.
type EnvLoader struct {
	mapping map[string]string // Env var -> config path
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates a loader for the default rmde variables.
func NewEnvLoader() *EnvLoader {
	return NewEnvLoaderWithMapping(defaultEnvMapping())
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		mapping: mapping,
		lookup:  os.LookupEnv,
	}
}

// defaultEnvMapping returns the default environment variable mappings.
func defaultEnvMapping() map[string]string {
	return map[string]string{
		"RMDE_LOG_LEVEL":        "logging.level",
		"RMDE_LOG_FILE":         "logging.file",
		"RMDE_RESOLVE_SYMLINKS": "files.resolve_symlinks",
		"RMDE_FILE_MODE":        "files.permissions",
	}
}

// EnvValue is one override found in the environment.
type EnvValue struct {
	Var   string // environment variable name
	Path  string // dotted config path
	Value string
}

// Load returns the set variables in variable-name order.
// Empty values are treated as set.
func (l *EnvLoader) Load() []EnvValue {
	vars := make([]string, 0, len(l.mapping))
	for env := range l.mapping {
		vars = append(vars, env)
	}
	sort.Strings(vars)

	var out []EnvValue
	for _, env := range vars {
		if val, ok := l.lookup(env); ok {
			out = append(out, EnvValue{Var: env, Path: l.mapping[env], Value: val})
		}
	}
	return out
}
