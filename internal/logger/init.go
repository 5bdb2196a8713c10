package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
)

// InitPterm sends all diagnostic output to stderr so stdout stays clean for
// command output such as `gm config show`.
func InitPterm() {
	SetWriter(os.Stderr)
}

// SetWriter routes every pterm prefix printer used by the logger to w.
func SetWriter(w io.Writer) {
	pterm.Info.Writer = w
	pterm.Success.Writer = w
	pterm.Warning.Writer = w
	pterm.Error.Writer = w
	pterm.Debug.Writer = w
}

// InitFile redirects logging into the file at path. The terminal belongs to
// the TUI while it runs, so anything printed to stderr would corrupt the
// screen. The returned closer restores stderr and closes the file.
func InitFile(path string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	pterm.DisableStyling()
	SetWriter(f)

	return closerFunc(func() error {
		SetWriter(os.Stderr)
		pterm.EnableStyling()

		return f.Close()
	}), nil
}

type closerFunc func() error

func (fn closerFunc) Close() error {
	return fn()
}
