// Package logging sets up the process-wide slog logger. Logs go to a file
// because the terminal belongs to the TUI.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	appName     = "reel"
	logFileName = "reel.log"
)

// Path returns the log file location under the XDG state directory.
func Path() (string, error) {
	return xdg.StateFile(filepath.Join(appName, logFileName))
}

// Setup points the default slog logger at the log file. The returned closer
// closes the file; callers should defer it.
func Setup(level slog.Level) (io.Closer, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return SetupFile(path, level)
}

// SetupFile is like Setup with an explicit file path.
func SetupFile(path string, level slog.Level) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(New(f, level))
	return f, nil
}

// New returns a text logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
