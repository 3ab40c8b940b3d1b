package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/tmux-layout-control/internal/app"
	"github.com/atomicstack/tmux-layout-control/internal/tmux"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envSocketPath = "TMUX_LAYOUT_CONTROL_SOCKET"
	envLayout     = "TMUX_LAYOUT_CONTROL_LAYOUT"
	envSession    = "TMUX_LAYOUT_CONTROL_SESSION"
	envWindow     = "TMUX_LAYOUT_CONTROL_WINDOW"
	envMode       = "TMUX_LAYOUT_CONTROL_MODE"
	envBackend    = "TMUX_LAYOUT_CONTROL_BACKEND"
	envWidth      = "TMUX_LAYOUT_CONTROL_WIDTH"
	envHeight     = "TMUX_LAYOUT_CONTROL_HEIGHT"
	envToggle     = "TMUX_LAYOUT_CONTROL_TOGGLE"
	envTrace      = "TMUX_LAYOUT_CONTROL_TRACE"
	envLogFile    = "TMUX_LAYOUT_CONTROL_LOG_FILE"
)

var (
	modes    = []string{app.ModeRender, app.ModePreview, app.ModeUI, app.ModeExec}
	backends = []string{tmux.BackendControl, tmux.BackendGotmux}
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := pflag.NewFlagSet("tmux-layout-control", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	fs.SortFlags = false

	socket := fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)")
	layout := fs.StringP("layout", "l", envOrDefault(env, envLayout, ""), "layout file (YAML)")
	session := fs.StringP("session", "s", envOrDefault(env, envSession, ""), "session identity (overrides the layout file)")
	window := fs.StringP("window", "w", envOrDefault(env, envWindow, ""), "window identity (overrides the layout file)")
	mode := fs.StringP("mode", "m", envOrDefault(env, envMode, app.ModeRender), "one of "+strings.Join(modes, "|"))
	backend := fs.String("backend", envOrDefault(env, envBackend, tmux.BackendControl), "one of "+strings.Join(backends, "|"))
	width := fs.Int("width", envOrInt(env, envWidth, 0), "preview width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "preview height in rows (0 uses terminal height)")
	toggle := fs.StringSliceP("toggle", "t", envOrList(env, envToggle), "pane identities to toggle before rendering")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			SocketPath: *socket,
			LayoutPath: *layout,
			Session:    *session,
			Window:     *window,
			Mode:       *mode,
			Backend:    *backend,
			Width:      *width,
			Height:     *height,
			Toggle:     append([]string(nil), (*toggle)...),
			Args:       fs.Args(),
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"socket":  *socket,
			"layout":  *layout,
			"session": *session,
			"window":  *window,
			"mode":    *mode,
			"backend": *backend,
			"width":   strconv.Itoa(*width),
			"height":  strconv.Itoa(*height),
			"toggle":  strings.Join(*toggle, ","),
			"trace":   strconv.FormatBool(*trace),
			"logFile": *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		values[key] = value
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// envOrList splits a comma separated variable, dropping empty entries.
func envOrList(env map[string]string, key string) []string {
	var out []string
	for _, part := range strings.Split(env[key], ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects unknown modes and backends and checks that each mode has
// its inputs.
func Validate(cfg Config) error {
	if !contains(modes, cfg.App.Mode) {
		return fmt.Errorf("unknown mode %q (want %s)", cfg.App.Mode, strings.Join(modes, "|"))
	}
	if !contains(backends, cfg.App.Backend) {
		return fmt.Errorf("unknown backend %q (want %s)", cfg.App.Backend, strings.Join(backends, "|"))
	}
	switch cfg.App.Mode {
	case app.ModeExec:
		if len(cfg.App.Args) == 0 {
			return fmt.Errorf("mode %s needs tmux commands after --", app.ModeExec)
		}
	default:
		if cfg.App.LayoutPath == "" {
			return fmt.Errorf("mode %s needs --layout", cfg.App.Mode)
		}
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
