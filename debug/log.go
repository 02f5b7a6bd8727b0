// Package debug writes diagnostic logs to a file. The TUI owns the terminal,
// so nothing is ever logged to stdout or stderr while it runs.
package debug

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Config controls the debug log
type Config struct {
	Enabled bool   `toml:"enabled"`
	File    string `toml:"file"`
	Level   string `toml:"level"`
	Format  string `toml:"format"`
}

var (
	mu      sync.RWMutex
	file    *os.File
	enabled bool
	base    slog.Handler = slog.DiscardHandler
	level                = new(slog.LevelVar)
)

// DefaultPath returns ~/.config/lightdeck/debug.log
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "lightdeck", "debug.log"), nil
}

// Enable starts logging to cfg.File (or DefaultPath) and returns the path.
// The file is truncated on each start.
func Enable(cfg Config) (string, error) {
	path := cfg.File
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return "", err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return "", err
	}

	mu.Lock()
	if file != nil {
		file.Close()
	}
	file = f
	enabled = true
	level.Set(ParseLevel(cfg.Level))
	base = newHandler(f, cfg.Format)
	mu.Unlock()

	Logger("debug").Info("debug logging started", "path", path)
	return path, nil
}

// EnableWriter routes logs to w. Used by one-shot CLI commands and tests.
func EnableWriter(w io.Writer, cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
	level.Set(ParseLevel(cfg.Level))
	base = newHandler(w, cfg.Format)
}

// Disable stops debug logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	enabled = false
	base = slog.DiscardHandler
}

// Enabled reports whether logs are being written
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Logger returns a logger tagged with module. Loggers created before Enable
// start writing once it is called.
func Logger(module string) *slog.Logger {
	return slog.New(lazyHandler{attrs: []slog.Attr{slog.String("module", module)}})
}

// ParseLevel maps a level name to a slog level, defaulting to info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newHandler(w io.Writer, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func current() slog.Handler {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// lazyHandler resolves the active handler on every record
type lazyHandler struct {
	attrs []slog.Attr
}

func (h lazyHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return current().Enabled(ctx, l)
}

func (h lazyHandler) Handle(ctx context.Context, r slog.Record) error {
	return current().WithAttrs(h.attrs).Handle(ctx, r)
}

func (h lazyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return lazyHandler{attrs: append(slices.Clip(h.attrs), attrs...)}
}

// WithGroup binds to the handler active at call time
func (h lazyHandler) WithGroup(name string) slog.Handler {
	return current().WithAttrs(h.attrs).WithGroup(name)
}

var (
	countersMu sync.Mutex
	counters   = make(map[string]int)
)

// LogEvery logs only every n calls with the same msg (knob sweeps send a CC
// per tick)
func LogEvery(logger *slog.Logger, n int, msg string, args ...any) {
	countersMu.Lock()
	counters[msg]++
	count := counters[msg]
	countersMu.Unlock()

	if n <= 1 || count%n == 0 {
		logger.Debug(msg, append(args, "every", n, "count", count)...)
	}
}

// Path returns the current log file path, if any
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	if file == nil {
		return ""
	}
	return file.Name()
}
