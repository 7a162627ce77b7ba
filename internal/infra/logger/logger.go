// Package logger holds the process-wide JSON file logger. Until Setup succeeds every
// call to L is discarded.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileName is the log file created inside the log directory.
const FileName = "wire.log"

const defaultDir = ".wire/logs"

type Config struct {
	Root string
	// Dir is the log directory, relative to Root unless absolute. Empty means ".wire/logs".
	Dir   string
	Debug bool
}

type sink struct {
	log  *slog.Logger
	file *os.File
	path string
}

var (
	mu      sync.RWMutex
	current = discard()
)

func discard() sink {
	return sink{log: slog.New(slog.NewJSONHandler(io.Discard, nil))}
}

// Setup opens <root>/<dir>/wire.log for appending and installs it as the global logger.
// The returned func closes the file and restores the discard logger.
func Setup(cfg Config) (func() error, error) {
	path := filepath.Join(logDir(cfg), FileName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		reset()
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		reset()
		return nil, err
	}

	s := sink{log: slog.New(newHandler(f, cfg.Debug)), file: f, path: path}

	mu.Lock()
	current = s
	mu.Unlock()

	s.log.Info("logger.initialized", "path", path, "debug", cfg.Debug)

	return func() error {
		mu.Lock()
		defer mu.Unlock()

		var err error
		if current.file == f {
			current = discard()
		}
		if f != nil {
			err = f.Close()
		}
		return err
	}, nil
}

func logDir(cfg Config) string {
	dir := cfg.Dir
	if dir == "" {
		dir = defaultDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(filepath.Clean(cfg.Root), filepath.FromSlash(dir))
}

// newHandler writes one JSON object per line with UTC RFC3339Nano timestamps. Debug adds
// source positions.
func newHandler(w io.Writer, debug bool) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return a
		},
	}
	if debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}
	return slog.NewJSONHandler(w, opts)
}

func reset() {
	mu.Lock()
	defer mu.Unlock()
	current = discard()
}

func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current.log
}

// Path is the active log file, or "" before Setup.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return current.path
}

func IsReady() error {
	mu.RLock()
	defer mu.RUnlock()
	if current.file == nil {
		return errors.New("logger not initialized")
	}
	return nil
}
