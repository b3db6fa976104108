package logger

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cdsupina/thetawave-sync/config"
)

// Logger defines the logging interface
type Logger interface {
	// Error logs an error message
	Error(msg string, args ...interface{})
	// Warn logs a warning message
	Warn(msg string, args ...interface{})
	// Info logs an informational message
	Info(msg string, args ...interface{})
	// Debug logs a debug message
	Debug(msg string, args ...interface{})
	// Verbose logs a verbose/trace message
	Verbose(msg string, args ...interface{})

	// With returns a new logger with an additional context field
	With(key string, value interface{}) Logger
}

// levelRank maps a level to its position in the verbosity ladder.
// Higher rank means more output.
func levelRank(level config.LogLevel) int {
	switch level {
	case config.LogLevelError:
		return 1
	case config.LogLevelInfo:
		return 2
	case config.LogLevelDebug:
		return 3
	case config.LogLevelVerbose:
		return 4
	default: // silent or unknown
		return 0
	}
}

// StdLogger writes plain, line-oriented output to a writer (stdout by
// default). All sync diagnostics go through it; there is no structured log.
type StdLogger struct {
	mu     sync.Mutex
	cfg    *config.LoggerConfig
	writer io.Writer
	fields map[string]interface{}
}

// NewLogger creates a new logger with the given configuration
func NewLogger(cfg *config.LoggerConfig) Logger {
	return NewLoggerWithWriter(cfg, os.Stdout)
}

// NewLoggerWithWriter creates a logger with a custom writer (useful for testing)
func NewLoggerWithWriter(cfg *config.LoggerConfig, writer io.Writer) Logger {
	if cfg == nil {
		cfg = &config.LoggerConfig{}
	}
	cfg.ApplyDefaults()

	return &StdLogger{
		cfg:    cfg,
		writer: writer,
		fields: make(map[string]interface{}),
	}
}

func (l *StdLogger) shouldLog(level config.LogLevel) bool {
	if l.cfg.Level == config.LogLevelSilent {
		return false
	}
	return levelRank(level) <= levelRank(l.cfg.Level)
}

func (l *StdLogger) log(level config.LogLevel, msg string, args ...interface{}) {
	if !l.shouldLog(level) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var b strings.Builder

	if l.cfg.TimeFormat != "" {
		b.WriteString(time.Now().Format(l.cfg.TimeFormat))
		b.WriteByte(' ')
	}

	fmt.Fprintf(&b, "[%s] ", level)

	if l.cfg.AddSource {
		if _, file, line, ok := runtime.Caller(2); ok {
			fmt.Fprintf(&b, "%s:%d ", file, line)
		}
	}

	if len(l.fields) > 0 {
		keys := make([]string, 0, len(l.fields))
		for k := range l.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteByte('[')
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, l.fields[k])
		}
		b.WriteString("] ")
	}

	if len(args) > 0 {
		fmt.Fprintf(&b, msg, args...)
	} else {
		b.WriteString(msg)
	}
	b.WriteByte('\n')

	fmt.Fprint(l.writer, b.String())
}

// Error logs an error message
func (l *StdLogger) Error(msg string, args ...interface{}) {
	l.log(config.LogLevelError, msg, args...)
}

// Warn logs a warning message
func (l *StdLogger) Warn(msg string, args ...interface{}) {
	l.log(config.LogLevelInfo, msg, args...)
}

// Info logs an informational message
func (l *StdLogger) Info(msg string, args ...interface{}) {
	l.log(config.LogLevelInfo, msg, args...)
}

// Debug logs a debug message
func (l *StdLogger) Debug(msg string, args ...interface{}) {
	l.log(config.LogLevelDebug, msg, args...)
}

// Verbose logs a verbose/trace message
func (l *StdLogger) Verbose(msg string, args ...interface{}) {
	l.log(config.LogLevelVerbose, msg, args...)
}

// With returns a new logger with an additional context field
func (l *StdLogger) With(key string, value interface{}) Logger {
	newFields := make(map[string]interface{}, len(l.fields)+1)
	for k, v := range l.fields {
		newFields[k] = v
	}
	newFields[key] = value

	return &StdLogger{
		cfg:    l.cfg,
		writer: l.writer,
		fields: newFields,
	}
}

// NoOpLogger is a logger that does nothing (useful for testing)
type NoOpLogger struct{}

// NewNoOpLogger creates a no-op logger
func NewNoOpLogger() Logger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) Error(msg string, args ...interface{})     {}
func (n *NoOpLogger) Warn(msg string, args ...interface{})      {}
func (n *NoOpLogger) Info(msg string, args ...interface{})      {}
func (n *NoOpLogger) Debug(msg string, args ...interface{})     {}
func (n *NoOpLogger) Verbose(msg string, args ...interface{})   {}
func (n *NoOpLogger) With(key string, value interface{}) Logger { return n }
