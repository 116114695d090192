package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogFilePath is the default log file, relative to the working directory.
const LogFilePath = "logs/gallery.txt"

// maxLines bounds the in-memory history shown by the overlay; the file keeps everything.
const maxLines = 200

// Logger keeps recent lines in memory and appends every line to a file on disk.
// It is safe for concurrent use; texture loads log from their own goroutines.
// A nil *Logger discards everything.
type Logger struct {
	mu    sync.Mutex
	path  string
	lines []string
}

// New returns a Logger writing to path (LogFilePath when empty) and ensures its directory exists.
func New(path string) *Logger {
	if path == "" {
		path = LogFilePath
	}
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	return &Logger{path: path, lines: make([]string, 0)}
}

// Infof logs an informational line.
func (l *Logger) Infof(format string, args ...any) {
	l.log("INFO", fmt.Sprintf(format, args...))
}

// Warnf logs a recoverable problem (failed texture, unreadable manifest entry).
func (l *Logger) Warnf(format string, args ...any) {
	l.log("WARN", fmt.Sprintf(format, args...))
}

// log stamps the line with [timestamp] LEVEL, stores it and appends it to the file.
func (l *Logger) log(level, line string) {
	if l == nil {
		return
	}
	ts := time.Now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] " + level + " " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	if len(l.lines) > maxLines {
		l.lines = append(l.lines[:0], l.lines[len(l.lines)-maxLines:]...)
	}
	l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Lines returns a copy of the recent lines.
func (l *Logger) Lines() []string {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
