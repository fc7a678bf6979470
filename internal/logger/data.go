package logger

import (
	"io"
	"log"
	"strings"
	"sync"
)

// Logger writes levelled, component-tagged lines. The zero value logs at LevelDebug
// through the standard log package.
type Logger struct {
	MinLevel LogLevel
	out      *log.Logger
	mu       sync.Mutex
}

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// New returns a logger writing to w. A nil w keeps the standard log output.
func New(level LogLevel, w io.Writer) *Logger {
	l := &Logger{MinLevel: level}
	if w != nil {
		l.out = log.New(w, "", 0)
	}
	return l
}

// ParseLevel maps LOG_LEVEL values to a level, defaulting to info.
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	}
	return LevelInfo
}
