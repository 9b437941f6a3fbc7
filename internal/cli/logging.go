package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

const logTimeFormat = "02/01/06 15:04:05"

// newLogger builds the run logger. Records are appended to path, or written
// to w when path is empty. Debug lowers the level from WARN to INFO.
func newLogger(path string, w io.Writer, debug bool) (*log.Logger, func() error, error) {
	closeFn := func() error { return nil }
	if path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, err
			}
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}

	level := log.WarnLevel
	if debug {
		level = log.InfoLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      logTimeFormat,
		Level:           level,
	})
	return logger, closeFn, nil
}
