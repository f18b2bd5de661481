package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger writes timestamped lines to a dated log file and, optionally, to
// an echo writer such as stderr. It drops messages until Init or SetEcho.
type Logger struct {
	file *os.File
	echo io.Writer
	now  func() time.Time
	mu   sync.Mutex
}

// NewLogger creates a new Logger instance
func NewLogger() *Logger {
	return &Logger{now: time.Now}
}

// Init opens hrslides_<date>_<run>.log in logDir, creating the directory.
// Each call in the same day gets the next run number.
func (l *Logger) Init(logDir string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	dateStr := l.now().Format("2006-01-02")
	pattern := filepath.Join(logDir, fmt.Sprintf("hrslides_%s_*.log", dateStr))
	matches, _ := filepath.Glob(pattern)
	runCount := len(matches) + 1
	filename := filepath.Join(logDir, fmt.Sprintf("hrslides_%s_%d.log", dateStr, runCount))

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	l.file = f
	l.logInternal("Session started")
	return nil
}

// SetEcho copies every line to w as well. nil turns echoing off.
func (l *Logger) SetEcho(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.echo = w
}

// Path returns the current log file name, empty before Init.
func (l *Logger) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

// Log writes a message to the log file
func (l *Logger) Log(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logInternal(message)
}

// Logf writes a formatted message to the log file
func (l *Logger) Logf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logInternal(fmt.Sprintf(format, args...))
}

func (l *Logger) logInternal(message string) {
	if l.file == nil && l.echo == nil {
		return
	}
	line := fmt.Sprintf("[%s] %s\n", l.now().Format("15:04:05.000"), message)
	if l.file != nil {
		io.WriteString(l.file, line)
	}
	if l.echo != nil {
		io.WriteString(l.echo, line)
	}
}

// Close closes the log file
func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.logInternal("Session ended")
		l.file.Close()
		l.file = nil
	}
}
