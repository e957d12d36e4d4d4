package common

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel represents logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelError:
		return "error"
	case LogLevelWarn:
		return "warn"
	case LogLevelInfo:
		return "info"
	case LogLevelDebug:
		return "debug"
	default:
		return "warn"
	}
}

// ToSlogLevel converts LogLevel to slog.Level
func (l LogLevel) ToSlogLevel() slog.Level {
	switch l {
	case LogLevelError:
		return slog.LevelError
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelDebug:
		return slog.LevelDebug
	default:
		return slog.LevelWarn
	}
}

// ParseLogLevel maps a config string onto a LogLevel. Empty means warn.
func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return LogLevelError, nil
	case "warn", "warning", "":
		return LogLevelWarn, nil
	case "info":
		return LogLevelInfo, nil
	case "debug":
		return LogLevelDebug, nil
	default:
		return LogLevelWarn, fmt.Errorf("invalid logging level: %s (valid: error, warn, info, debug)", s)
	}
}

// UnmarshalText lets config decoders fill a LogLevel from its name.
func (l *LogLevel) UnmarshalText(text []byte) error {
	level, err := ParseLogLevel(string(text))
	if err != nil {
		return err
	}
	*l = level
	return nil
}

// Supported log output formats
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatColor = "color"
)

// Logger wraps slog with the attributes restcli logs by.
// All output goes to stderr by default so stdout carries only command output.
type Logger struct {
	*slog.Logger
	level  LogLevel
	masker *Masker
}

func newLogger(h slog.Handler, level LogLevel, masker *Masker) *Logger {
	return &Logger{Logger: slog.New(h), level: level, masker: masker}
}

// NewLogger creates a text logger writing to w
func NewLogger(w io.Writer, level LogLevel) *Logger {
	opts := &slog.HandlerOptions{Level: level.ToSlogLevel()}
	return newLogger(slog.NewTextHandler(w, opts), level, NewMasker())
}

// NewJSONLogger creates a structured logger with JSON output
func NewJSONLogger(w io.Writer, level LogLevel) *Logger {
	opts := &slog.HandlerOptions{Level: level.ToSlogLevel()}
	return newLogger(slog.NewJSONHandler(w, opts), level, NewMasker())
}

// NewColorLogger creates a logger using ColorHandler. Colors are only
// emitted when w is a terminal.
func NewColorLogger(w io.Writer, level LogLevel) *Logger {
	masker := NewMasker()
	h := NewColorHandler(w, &slog.HandlerOptions{Level: level.ToSlogLevel()})
	h.SetMasker(masker)
	return newLogger(h, level, masker)
}

// New builds a logger for the named format.
func New(w io.Writer, level LogLevel, format string) (*Logger, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatText, "":
		return NewLogger(w, level), nil
	case FormatJSON:
		return NewJSONLogger(w, level), nil
	case FormatColor, "colour":
		return NewColorLogger(w, level), nil
	default:
		return nil, fmt.Errorf("invalid logging format: %s (valid: text, json, color)", format)
	}
}

// Level returns the current log level
func (l *Logger) Level() LogLevel {
	return l.level
}

func (l *Logger) with(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...), level: l.level, masker: l.masker}
}

// WithComponent returns a logger with component context
func (l *Logger) WithComponent(component string) *Logger {
	return l.with("component", component)
}

// WithRequest returns a logger with HTTP request context. Secrets in the
// query string are masked.
func (l *Logger) WithRequest(method, url string) *Logger {
	return l.with("method", method, "url", l.Mask(url))
}

// WithOutput returns a logger with the output target attached
func (l *Logger) WithOutput(path string) *Logger {
	return l.with("output", path)
}

// EnableMasking toggles masking of values passed through Mask.
func (l *Logger) EnableMasking(enabled bool) {
	if l.masker != nil {
		l.masker.SetEnabled(enabled)
	}
}

// Mask returns s with sensitive values replaced. Callers use it for
// request bodies before logging them.
func (l *Logger) Mask(s string) string {
	if l.masker == nil {
		return s
	}
	return l.masker.MaskString(s)
}

var defaultLogger = NewLogger(os.Stderr, LogLevelWarn)

// SetDefaultLogger sets the global default logger
func SetDefaultLogger(logger *Logger) {
	defaultLogger = logger
}

// GetLogger returns the default logger
func GetLogger() *Logger {
	return defaultLogger
}
