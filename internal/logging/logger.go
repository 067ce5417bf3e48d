// Package logging provides structured logging for the allocator packages.
//
// Output is discarded until a logger is configured, either explicitly with
// SetDefault or by setting POOLALLOC_LOG_ALLOC in the environment, which
// turns on debug-level console output on stderr.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// EnvLogAlloc enables allocator debug logging when set to a non-empty value.
const EnvLogAlloc = "POOLALLOC_LOG_ALLOC"

// Logger wraps zerolog.Logger with allocator-specific structured fields.
type Logger struct {
	zlog zerolog.Logger
}

var (
	defaultLogger *Logger
	mu            sync.RWMutex
)

// LogLevel represents the available log levels.
type LogLevel int

const (
	LevelDebug LogLevel = LogLevel(zerolog.DebugLevel)
	LevelInfo  LogLevel = LogLevel(zerolog.InfoLevel)
	LevelWarn  LogLevel = LogLevel(zerolog.WarnLevel)
	LevelError LogLevel = LogLevel(zerolog.ErrorLevel)
)

// Config holds logging configuration.
type Config struct {
	Level   LogLevel
	Format  string // "json" or "text"
	Output  io.Writer
	NoColor bool // If true, disables ANSI color codes (useful for testing)
}

// DefaultConfig returns the configuration used when POOLALLOC_LOG_ALLOC is set.
func DefaultConfig() *Config {
	return &Config{
		Level:  LevelDebug,
		Format: "text",
		Output: os.Stderr,
	}
}

// NewLogger creates a new structured logger.
func NewLogger(config *Config) *Logger {
	if config == nil {
		config = DefaultConfig()
	}
	output := config.Output
	if output == nil {
		output = os.Stderr
	}

	var zlog zerolog.Logger
	switch config.Format {
	case "json":
		zlog = zerolog.New(output).With().Timestamp().Logger()
	default:
		consoleWriter := zerolog.ConsoleWriter{Out: output, NoColor: config.NoColor}
		zlog = zerolog.New(consoleWriter).With().Timestamp().Logger()
	}

	return &Logger{zlog: zlog.Level(zerolog.Level(config.Level))}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// Default returns the process-wide logger, creating it on first use.
func Default() *Logger {
	mu.RLock()
	if defaultLogger != nil {
		defer mu.RUnlock()
		return defaultLogger
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		if os.Getenv(EnvLogAlloc) != "" {
			defaultLogger = NewLogger(nil)
		} else {
			defaultLogger = Nop()
		}
	}
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = logger
}

// With returns a child logger carrying an extra string field.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{zlog: l.zlog.With().Str(key, value).Logger()}
}

// Enabled reports whether events at level would be written.
func (l *Logger) Enabled(level LogLevel) bool {
	return l.zlog.GetLevel() <= zerolog.Level(level) && l.zlog.GetLevel() != zerolog.Disabled
}

// Zerolog exposes the underlying logger for call sites that build events
// with typed fields.
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zlog
}

func (l *Logger) Debug(msg string, args ...any) {
	event := l.zlog.Debug()
	for i := 0; i+1 < len(args); i += 2 {
		key, _ := args[i].(string)
		event = event.Interface(key, args[i+1])
	}
	event.Msg(msg)
}

func (l *Logger) Info(msg string, args ...any) {
	event := l.zlog.Info()
	for i := 0; i+1 < len(args); i += 2 {
		key, _ := args[i].(string)
		event = event.Interface(key, args[i+1])
	}
	event.Msg(msg)
}

func (l *Logger) Warn(msg string, args ...any) {
	event := l.zlog.Warn()
	for i := 0; i+1 < len(args); i += 2 {
		key, _ := args[i].(string)
		event = event.Interface(key, args[i+1])
	}
	event.Msg(msg)
}

func (l *Logger) Error(msg string, args ...any) {
	event := l.zlog.Error()
	for i := 0; i+1 < len(args); i += 2 {
		key, _ := args[i].(string)
		event = event.Interface(key, args[i+1])
	}
	event.Msg(msg)
}

// Wrap adopts an existing zerolog logger.
func Wrap(z zerolog.Logger) *Logger {
	return &Logger{zlog: z}
}
