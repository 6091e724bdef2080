// Package main is the entry point for the rmde command.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/tidwall/sjson"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/dshills/rmde/internal/app"
	"github.com/dshills/rmde/internal/config"
	"github.com/dshills/rmde/internal/engine"
	"github.com/dshills/rmde/internal/host"
	"github.com/dshills/rmde/internal/plugin/lua"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// options holds the parsed command line.
type options struct {
	ConfigPath  string
	LogLevel    string
	ScriptPath  string
	Exec        string
	Print       bool
	Format      string
	ShowVersion bool
	Files       []string
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if opts.ShowVersion {
		fmt.Fprintf(stdout, "rmde %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to load config: %v\n", err)
		return 1
	}

	logger, closeLog, err := newLogger(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to open log file: %v\n", err)
		return 1
	}
	defer closeLog()

	session, err := newSession(cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	for _, path := range opts.Files {
		if msg := session.OpenFile(path); msg != "" {
			fmt.Fprintf(stderr, "Error: %s\n", msg)
			return 1
		}
	}

	script, err := readScript(opts, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to read script: %v\n", err)
		return 1
	}
	if script != "" || opts.ScriptPath != "" {
		if err := runScript(session, opts.ScriptPath, script, stdout); err != nil {
			logger.Error("script failed: %v", err)
			fmt.Fprintf(stderr, "Error: script: %v\n", err)
			return 1
		}
	}

	if err := report(stdout, session, opts); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("rmde", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.ScriptPath, "script", "", "Lua script to run against the open tabs")
	fs.StringVar(&opts.ScriptPath, "s", "", "Lua script (shorthand)")
	fs.StringVar(&opts.Exec, "e", "", "Lua code to run after the script")
	fs.BoolVar(&opts.Print, "print", false, "Print the active document's content")
	fs.BoolVar(&opts.Print, "p", false, "Print the active document's content (shorthand)")
	fs.StringVar(&opts.Format, "format", "text", "Output format (text, yaml, json)")
	fs.BoolVar(&opts.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.ShowVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "rmde - multi-cursor text editing from the command line\n\n")
		fmt.Fprintf(stderr, "Usage: rmde [options] [files...]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  rmde notes.md                     List the opened tab\n")
		fmt.Fprintf(stderr, "  rmde -s fix.lua -p notes.md       Run a script and print the result\n")
		fmt.Fprintf(stderr, "  echo 'rmde.insert(\"x\")' | rmde -p  Read the script from stdin\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	switch opts.Format {
	case "text", "yaml", "json":
	default:
		return opts, fmt.Errorf("invalid format %q (must be text, yaml, or json)", opts.Format)
	}
	if opts.LogLevel != "" {
		switch strings.ToLower(opts.LogLevel) {
		case "debug", "info", "warn", "warning", "error":
		default:
			return opts, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", opts.LogLevel)
		}
	}

	opts.Files = fs.Args()
	return opts, nil
}

// loadConfig layers the config file, the environment, and the command line.
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, stderr io.Writer) (*app.Logger, func(), error) {
	out := stderr
	closeFn := func() {}
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}

	logCfg := app.DefaultLoggerConfig()
	logCfg.Level = app.ParseLogLevel(cfg.Logging.Level)
	logCfg.Output = out
	return app.NewLogger(logCfg), closeFn, nil
}

func newSession(cfg *config.Config, logger *app.Logger) (*host.Session, error) {
	mode, err := cfg.FileMode()
	if err != nil {
		return nil, err
	}
	return host.NewSession(
		host.WithLogger(logger),
		host.WithTabOptions(
			app.WithResolveSymlinks(cfg.Files.ResolveSymlinks),
			app.WithDocumentOptions(engine.WithFileMode(mode)),
		),
	), nil
}

// readScript returns the inline code to run. Without -script or -e, a
// script piped on stdin is used.
func readScript(opts options, stdin io.Reader) (string, error) {
	if opts.Exec != "" || opts.ScriptPath != "" {
		return opts.Exec, nil
	}
	f, ok := stdin.(*os.File)
	if !ok || f == nil || term.IsTerminal(int(f.Fd())) {
		return "", nil
	}
	info, err := f.Stat()
	if err != nil {
		return "", nil
	}
	if mode := info.Mode(); mode&os.ModeNamedPipe == 0 && !mode.IsRegular() {
		return "", nil
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func runScript(session *host.Session, path, code string, stdout io.Writer) error {
	state := lua.NewState()
	defer state.Close()

	state.Sandbox().RedirectPrint(stdout)
	if err := state.Register(lua.NewEditorModule(session)); err != nil {
		return err
	}
	if path != "" {
		if err := state.DoFile(path); err != nil {
			return err
		}
	}
	if code != "" {
		return state.DoString(code)
	}
	return nil
}

// summary is the machine-readable form of the final session state.
type summary struct {
	Session string        `yaml:"session"`
	Active  uint64        `yaml:"active"`
	Tabs    []app.TabInfo `yaml:"tabs"`
	Content *string       `yaml:"content,omitempty"`
}

func report(w io.Writer, session *host.Session, opts options) error {
	sum := summary{
		Session: session.SessionID(),
		Active:  session.ActiveTabID(),
		Tabs:    session.Tabs(),
	}
	if opts.Print {
		content := session.Content()
		sum.Content = &content
	}

	switch opts.Format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(sum); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		data, err := encodeJSON(sum)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	default:
		return writeText(w, sum)
	}
}

func encodeJSON(sum summary) ([]byte, error) {
	data := []byte(`{}`)
	var err error
	if data, err = sjson.SetBytes(data, "session", sum.Session); err != nil {
		return nil, err
	}
	if data, err = sjson.SetBytes(data, "active", sum.Active); err != nil {
		return nil, err
	}
	if data, err = sjson.SetBytes(data, "tabs", sum.Tabs); err != nil {
		return nil, err
	}
	if sum.Content != nil {
		if data, err = sjson.SetBytes(data, "content", *sum.Content); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func writeText(w io.Writer, sum summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, tab := range sum.Tabs {
		marker := " "
		if tab.ID == sum.Active {
			marker = "*"
		}
		dirty := ""
		if tab.Dirty {
			dirty = "modified"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", marker, tab.ID, tab.Title, dirty)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if sum.Content != nil {
		_, err := io.WriteString(w, *sum.Content)
		return err
	}
	return nil
}
