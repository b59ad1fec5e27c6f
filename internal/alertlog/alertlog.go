// Package alertlog appends confirmed alert events to a persistent,
// human-readable log file.
package alertlog

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// timeLayout is the human-readable timestamp written to the log.
const timeLayout = "2006-01-02 15:04:05"

// Logger writes one line per confirmed alert to an append-only file.
// The file is never truncated; history survives restarts.
type Logger struct {
	path string
	mu   sync.Mutex
}

// New creates a Logger writing to path. The file is created on first
// append.
func New(path string) *Logger {
	return &Logger{path: path}
}

// Append writes one "Alert detected at <timestamp>" line.
func (l *Logger) Append(t time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open alert log: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "Alert detected at %s\n", t.Format(timeLayout)); err != nil {
		return fmt.Errorf("append alert log: %w", err)
	}

	return nil
}

// Path returns the log file path.
func (l *Logger) Path() string {
	return l.path
}
