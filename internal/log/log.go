// Package log provides structured logging for tagsearch.
// Entries carry a level, a category and key=value fields. Logging is off
// until Init is called, which happens when --debug or TAGSEARCH_DEBUG is set.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/zjrosen/tagsearch/internal/pubsub"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatStore    Category = "store"    // Persistence backends
	CatRegistry Category = "registry" // Tag index and registry mutations
	CatConfig   Category = "config"   // Configuration loading/saving
	CatWatcher  Category = "watcher"  // File watcher events
	CatUI       Category = "ui"       // UI component updates
	CatCache    Category = "cache"    // Preview cache
	CatTrace    Category = "trace"    // Tracing provider lifecycle
	CatCLI      Category = "cli"      // Non-interactive commands
)

// bufferSize is the number of recent entries kept for the log overlay.
const bufferSize = 500

// Logger provides structured logging.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	writer   io.Writer
	enabled  bool
	minLevel Level
	recent   []string
	broker   *pubsub.Broker[string]
}

var defaultLogger *Logger

// Init opens (or creates) the log file at path and enables logging.
// The returned cleanup function closes the file.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G304: path is the user's debug log path
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	defaultLogger = newLogger(f)
	defaultLogger.file = f
	return func() { _ = f.Close() }, nil
}

// InitWithWriter enables logging to an arbitrary writer. Used by tests.
func InitWithWriter(w io.Writer) {
	defaultLogger = newLogger(w)
}

func newLogger(w io.Writer) *Logger {
	return &Logger{
		writer:   w,
		enabled:  true,
		minLevel: LevelDebug,
		broker:   pubsub.NewBroker[string](),
	}
}

// Reset disables the global logger.
func Reset() {
	if defaultLogger != nil && defaultLogger.broker != nil {
		defaultLogger.broker.Close()
	}
	defaultLogger = nil
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if defaultLogger != nil {
		defaultLogger.mu.Lock()
		defaultLogger.enabled = enabled
		defaultLogger.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if defaultLogger != nil {
		defaultLogger.mu.Lock()
		defaultLogger.minLevel = level
		defaultLogger.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	log(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	log(LevelError, cat, msg, fields...)
}

// Format renders one entry the way it is written to the log file:
// 2025-12-06T10:45:00 [ERROR] [store] message key=value key2=value2
func Format(ts time.Time, level Level, cat Category, msg string, fields ...any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] [%s] %s", ts.Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	b.WriteString("\n")
	return b.String()
}

func log(level Level, cat Category, msg string, fields ...any) {
	l := defaultLogger
	if l == nil {
		return
	}

	l.mu.Lock()
	if !l.enabled || level < l.minLevel {
		l.mu.Unlock()
		return
	}

	entry := Format(time.Now(), level, cat, msg, fields...)
	if l.writer != nil {
		_, _ = io.WriteString(l.writer, entry)
	}
	l.recent = append(l.recent, entry)
	if len(l.recent) > bufferSize {
		l.recent = l.recent[len(l.recent)-bufferSize:]
	}
	broker := l.broker
	l.mu.Unlock()

	if broker != nil {
		broker.Publish(pubsub.CreatedEvent, entry)
	}
}

// GetRecentLogs returns up to n of the most recent entries, oldest first.
func GetRecentLogs(n int) []string {
	l := defaultLogger
	if l == nil || n <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	start := max(len(l.recent)-n, 0)
	out := make([]string, len(l.recent)-start)
	copy(out, l.recent[start:])
	return out
}

// ClearBuffer drops the in-memory entries shown by the log overlay.
// The log file is untouched.
func ClearBuffer() {
	l := defaultLogger
	if l == nil {
		return
	}
	l.mu.Lock()
	l.recent = nil
	l.mu.Unlock()
}

// LogEvent is a pubsub event containing a log entry.
type LogEvent = pubsub.Event[string]

// LogListener wraps a continuous listener for log events.
type LogListener = pubsub.ContinuousListener[string]

// NewListener creates a new log event listener, or nil when logging is off.
// The listener is cleaned up when ctx is cancelled.
func NewListener(ctx context.Context) *LogListener {
	if defaultLogger == nil || defaultLogger.broker == nil {
		return nil
	}
	return pubsub.NewContinuousListener(ctx, defaultLogger.broker)
}
