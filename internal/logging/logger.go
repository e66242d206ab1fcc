// Package logging is the diagnostic log channel. Normal operation is silent
// apart from info lines; errors always reach stderr.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents the logging level.
type Level int

const (
	LevelSilent Level = iota
	LevelError
	LevelInfo
	LevelVerbose
	LevelDebug
)

var levelNames = map[string]Level{
	"silent":  LevelSilent,
	"error":   LevelError,
	"info":    LevelInfo,
	"verbose": LevelVerbose,
	"debug":   LevelDebug,
}

// ParseLevel maps a config string to a Level.
func ParseLevel(name string) (Level, error) {
	level, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// Logger writes leveled lines to stderr, stdout and an optional file.
type Logger struct {
	mu      sync.Mutex
	level   Level
	file    *os.File
	fileLog *log.Logger
	stdout  *log.Logger
	stderr  *log.Logger
}

// New creates a logger. An empty logFile disables file output.
func New(level Level, logFile string) (*Logger, error) {
	l := NewWithWriters(level, os.Stdout, os.Stderr)
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = file
		l.fileLog = log.New(file, "", log.LstdFlags)
	}
	return l, nil
}

// NewWithWriters creates a logger on explicit writers.
func NewWithWriters(level Level, stdout, stderr io.Writer) *Logger {
	return &Logger{
		level:  level,
		stdout: log.New(stdout, "", log.LstdFlags),
		stderr: log.New(stderr, "", log.LstdFlags),
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWithWriters(LevelSilent, io.Discard, io.Discard)
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		l.fileLog = nil
		return err
	}
	return nil
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.logf(LevelError, "ERROR: ", format, v...)
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.logf(LevelInfo, "INFO: ", format, v...)
}

// Verbose logs a verbose message
func (l *Logger) Verbose(format string, v ...interface{}) {
	l.logf(LevelVerbose, "VERBOSE: ", format, v...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.logf(LevelDebug, "DEBUG: ", format, v...)
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Level returns the current logging level
func (l *Logger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *Logger) logf(level Level, prefix, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.level < level {
		return
	}
	msg := fmt.Sprintf(prefix+format, v...)
	if l.fileLog != nil {
		l.fileLog.Println(msg)
	}
	if level == LevelError {
		l.stderr.Println(msg)
	} else {
		l.stdout.Println(msg)
	}
}
