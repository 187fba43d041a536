// =============================================================================
// Master Data Converter - Logging
// =============================================================================
//
// Builds the structured logger used by every command. Output is configured
// through config.LoggingConfig:
//   - level:  debug | info | warn | error
//   - format: text | json
//   - output: stderr | stdout | file | both (stderr + file)
//
// Every logger carries a run_id attribute so the lines of one invocation can
// be grepped out of a shared log file.
//
// =============================================================================

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ginjaninja78/masterdata-converter/internal/config"
)

// Logger wraps a slog.Logger together with the log file it may own.
type Logger struct {
	*slog.Logger

	// RunID identifies this invocation in every log line.
	RunID string

	file *os.File
}

// New creates a logger from the configuration.
//
// PARAMETERS:
//   - cfg: The logging configuration.
//   - verbose: Forces debug level regardless of cfg.Level.
//
// RETURNS:
//   - The logger. Call Close when done to release the log file.
//   - An error if the log file cannot be opened.
func New(cfg config.LoggingConfig, verbose bool) (*Logger, error) {
	level := ParseLevel(cfg.Level)
	if verbose {
		level = slog.LevelDebug
	}

	l := &Logger{RunID: uuid.NewString()}

	var output io.Writer
	switch strings.ToLower(cfg.Output) {
	case "stdout":
		output = os.Stdout
	case "file":
		file, err := openLogFile(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.file = file
		output = file
	case "both":
		file, err := openLogFile(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.file = file
		output = io.MultiWriter(os.Stderr, file)
	default:
		output = os.Stderr
	}

	l.Logger = slog.New(newHandler(output, cfg.Format, level)).
		With(slog.String("run_id", l.RunID))

	return l, nil
}

// NewWriter creates a logger writing to w. Used by tests and by callers that
// want to capture log output.
func NewWriter(w io.Writer, format string, level slog.Level) *Logger {
	runID := uuid.NewString()
	return &Logger{
		Logger: slog.New(newHandler(w, format, level)).With(slog.String("run_id", runID)),
		RunID:  runID,
	}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(format) == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ParseLevel converts a string log level to slog.Level. Unknown values map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openLogFile opens or creates a log file in append mode.
func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}
