package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu      sync.Mutex
	logFile *os.File
	console io.Writer = os.Stdout
	level             = zerolog.InfoLevel
	logger            = newLogger(os.Stdout, nil)
)

// Init sends logs to stdout and, when logPath is set, appends JSON lines to
// logPath.
func Init(logPath string) error {
	return InitWithConsole(logPath, os.Stdout)
}

// InitWithConsole is Init with a custom console writer. A nil console
// disables console output; stdio servers pass os.Stderr.
func InitWithConsole(logPath string, out io.Writer) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
	}

	console = out
	logger = newLogger(console, logFile)
	return nil
}

func newLogger(out io.Writer, file *os.File) zerolog.Logger {
	var writers []io.Writer
	if out != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	}
	if file != nil {
		writers = append(writers, file)
	}
	if len(writers) == 0 {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Close flushes and closes the log file, leaving console output in place.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	logger = newLogger(console, nil)
	return err
}

// SetDebug toggles debug-level output.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	level = zerolog.InfoLevel
	if enabled {
		level = zerolog.DebugLevel
	}
	logger = logger.Level(level)
}

// Logger returns the current logger for callers that add structured fields.
func Logger() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

func LogEvent(format string, args ...any) {
	l := Logger()
	l.Info().Msgf(format, args...)
}

func LogDebug(format string, args ...any) {
	l := Logger()
	l.Debug().Msgf(format, args...)
}

func LogError(err error, format string, args ...any) {
	l := Logger()
	l.Error().Err(err).Msgf(format, args...)
}

// LogRequest records one served HTTP request.
func LogRequest(method, path string, status int, elapsed time.Duration) {
	l := Logger()
	lvl := zerolog.InfoLevel
	switch {
	case status >= 500:
		lvl = zerolog.ErrorLevel
	case status >= 400:
		lvl = zerolog.WarnLevel
	}
	l.WithLevel(lvl).Str("method", method).
		Str("path", path).
		Int("status", status).
		Dur("duration", elapsed).
		Msg("request")
}

// LogTool records a tool call or result crossing the stdio server.
func LogTool(direction, tool string, payload any) {
	l := Logger()
	l.Debug().Msg(buildToolMessage(direction, tool, payload))
}

func buildToolMessage(direction, tool string, payload any) string {
	dir := strings.TrimSpace(direction)
	if dir != "" {
		dir = strings.ToUpper(dir)
	}
	toolValue := strings.TrimSpace(tool)
	if toolValue == "" {
		toolValue = "unknown"
	}
	parts := []string{fmt.Sprintf("[%s]", dir)}
	parts = append(parts, fmt.Sprintf("tool=%s", toolValue))
	parts = append(parts, fmt.Sprintf("payload=%s", formatPayload(payload)))
	return strings.Join(parts, " ")
}

func formatPayload(payload any) string {
	switch v := payload.(type) {
	case nil:
		return "null"
	case string:
		if strings.TrimSpace(v) == "" {
			return `""`
		}
		return v
	case []byte:
		if len(v) == 0 {
			return "[]"
		}
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
