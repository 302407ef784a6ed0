// Package logging provides leveled logging for git-relnotes.
// Messages go to stderr, either as plain lines or as GitHub Actions workflow
// commands, and can additionally be copied to a log file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/runoshun/git-relnotes/internal/domain"
	"github.com/runoshun/git-relnotes/internal/infra/actions"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Format selects how log lines are written.
type Format string

// Supported formats.
const (
	FormatText    Format = "text"
	FormatActions Format = "actions"
)

// Logger writes leveled messages.
// Fields are ordered to minimize memory padding.
type Logger struct {
	out    io.Writer
	file   *os.File
	clock  domain.Clock
	format Format
	mu     sync.Mutex
	level  slog.Level
}

// New creates a new Logger writing to out.
func New(out io.Writer, level slog.Level, format Format, clock domain.Clock) *Logger {
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &Logger{
		out:    out,
		level:  level,
		format: format,
		clock:  clock,
	}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return New(io.Discard, slog.LevelError+1, FormatText, nil)
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseFormat parses a format string. Unknown values select FormatText.
func ParseFormat(s string) Format {
	if s == string(FormatActions) {
		return FormatActions
	}
	return FormatText
}

// OpenFile copies every message, in text format, to the file at path.
func (l *Logger) OpenFile(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	// G302: Log files are append-only and need read access by repository users
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	l.file = f
	return nil
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// formatLog formats a log entry in the text format.
// Format: [2025-12-30 09:32:51] [INFO] [issue-12] [category] message
func formatLog(t time.Time, level slog.Level, issue int, category, msg string) string {
	return fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		scope(issue),
		category,
		msg,
	)
}

func scope(issue int) string {
	if issue > 0 {
		return fmt.Sprintf("issue-%d", issue)
	}
	return "run"
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// writeActions writes an entry as a workflow command. Info lines are plain.
func writeActions(w io.Writer, level slog.Level, issue int, category, msg string) {
	switch level {
	case slog.LevelDebug:
		_ = actions.Command(w, "debug", fmt.Sprintf("[%s] [%s] %s", scope(issue), category, msg))
	case slog.LevelWarn:
		_ = actions.Command(w, "warning", msg)
	case slog.LevelError:
		_ = actions.Command(w, "error", msg)
	default:
		_, _ = io.WriteString(w, msg+"\n")
	}
}

func (l *Logger) log(level slog.Level, issue int, category, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := formatLog(l.clock.Now(), level, issue, category, msg)

	// The file receives everything, the console only what passes the level.
	if l.file != nil {
		_, _ = io.WriteString(l.file, entry)
	}
	if level < l.level {
		return
	}
	if l.format == FormatActions {
		writeActions(l.out, level, issue, category, msg)
		return
	}
	_, _ = io.WriteString(l.out, entry)
}

// Info logs an info message.
func (l *Logger) Info(issue int, category, msg string) {
	l.log(slog.LevelInfo, issue, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(issue int, category, msg string) {
	l.log(slog.LevelDebug, issue, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(issue int, category, msg string) {
	l.log(slog.LevelWarn, issue, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(issue int, category, msg string) {
	l.log(slog.LevelError, issue, category, msg)
}
