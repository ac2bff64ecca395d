// Package logger records export activity to daily log files. Each process
// start opens a fresh numbered file, so repeated runs on the same day never
// interleave. A nil *Logger is valid and drops everything, which lets
// callers log unconditionally whether or not file logging is enabled.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger appends timestamped activity lines to one file.
type Logger struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// nextLogPath picks the first unused run number for the day's log file.
func nextLogPath(dir string, now time.Time) string {
	day := now.Format("2006-01-02")
	matches, _ := filepath.Glob(filepath.Join(dir, fmt.Sprintf("changepilot_%s_*.log", day)))
	return filepath.Join(dir, fmt.Sprintf("changepilot_%s_%d.log", day, len(matches)+1))
}

// Open creates the day's next activity log under dir.
func Open(dir string) (*Logger, error) {
	path := nextLogPath(dir, time.Now())
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open activity log: %w", err)
	}
	l := &Logger{file: f, path: path}
	l.Logf("service started")
	return l, nil
}

// Path returns the file this logger writes to.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Logf appends one formatted line. Safe on a nil receiver.
func (l *Logger) Logf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return
	}
	fmt.Fprintf(l.file, "[%s] %s\n", time.Now().Format("15:04:05.000"), fmt.Sprintf(format, args...))
}

// Close writes the closing line and releases the file. Safe on a nil
// receiver and after a prior Close.
func (l *Logger) Close() {
	if l == nil {
		return
	}
	l.Logf("service stopped")
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
}
