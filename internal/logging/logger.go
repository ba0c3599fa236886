package logging

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FileName is the command log inside the logs directory.
const FileName = "commands.log"

// Logger appends timestamped lines to .latticegen/logs/commands.log so users
// can inspect create_clone and xmlchange output after the run finishes.
type Logger struct {
	mu      sync.Mutex
	file    *os.File
	pending []byte
}

// New creates (or reuses) the command log inside logsDir.
func New(logsDir string) (*Logger, error) {
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	path := filepath.Join(logsDir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return &Logger{file: f}, nil
}

// Close flushes any partial line and releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	l.mu.Lock()
	if len(l.pending) > 0 {
		l.writeLine(string(l.pending))
		l.pending = nil
	}
	l.mu.Unlock()
	return l.file.Close()
}

// Printf writes a single timestamped line to the log file.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || l.file == nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	line = strings.TrimRight(line, "\n")
	l.mu.Lock()
	defer l.mu.Unlock()
	l.writeLine(line)
}

// Write timestamps each complete line of p. A trailing partial line is held
// until the next newline or Close.
func (l *Logger) Write(p []byte) (int, error) {
	if l == nil || l.file == nil {
		return len(p), nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = append(l.pending, p...)
	for {
		idx := bytes.IndexByte(l.pending, '\n')
		if idx < 0 {
			break
		}
		l.writeLine(strings.TrimRight(string(l.pending[:idx]), "\r"))
		l.pending = l.pending[idx+1:]
	}
	return len(p), nil
}

func (l *Logger) writeLine(line string) {
	timestamp := time.Now().Format(time.RFC3339)
	fmt.Fprintf(l.file, "[%s] %s\n", timestamp, line)
}
