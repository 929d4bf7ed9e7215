// Package logger configures the logrus logger shared by the client.
//
// The terminal belongs to the UI while it runs, so log output goes to a file
// instead of stdout.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to w at the given level. Unknown levels fall
// back to info.
func New(levelStr string, w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetOutput(w)
	return log
}

// Open creates (or appends to) the log file at path and returns a logger
// writing to it along with the file to close on exit.
func Open(levelStr, path string) (*logrus.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return New(levelStr, f), f, nil
}

// Discard returns a logger that drops everything. Used when no log file
// could be opened and in tests.
func Discard() *logrus.Logger {
	return New("panic", io.Discard)
}
