// Package logger wraps log/slog with environment- and config-driven setup.
// In TUI mode logs go to a file under the data directory so they never
// write over the terminal UI.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Config selects the level, format and destination of the global logger.
type Config struct {
	Level   string
	Format  string
	File    string
	TUIMode bool
}

var (
	mu        sync.RWMutex
	logger    *slog.Logger
	logLevel  slog.Level
	logFormat string
	logFile   string
	tuiMode   bool
	output    io.Closer
)

func init() {
	Initialize()
}

// Initialize configures the logger from LOG_LEVEL, QUIRE_DEBUG and
// LOG_FORMAT, writing to stderr.
func Initialize() {
	_ = InitializeWithConfig(ConfigFromEnv())
}

// ConfigFromEnv reads the logging environment variables.
func ConfigFromEnv() Config {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		if v := os.Getenv("QUIRE_DEBUG"); v == "1" || v == "true" {
			level = "DEBUG"
		}
	}
	return Config{Level: level, Format: os.Getenv("LOG_FORMAT")}
}

// InitializeWithConfig replaces the global logger. It is safe to call more
// than once; a previously opened log file is closed.
func InitializeWithConfig(cfg Config) error {
	level := parseLevel(cfg.Level)
	format := strings.ToLower(cfg.Format)
	if format == "" {
		format = "text"
	}

	file := cfg.File
	if file == "" && cfg.TUIMode {
		path, err := defaultLogFile()
		if err != nil {
			return err
		}
		file = path
	}

	var w io.Writer = os.Stderr
	var closer io.Closer
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = f, f
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	mu.Lock()
	defer mu.Unlock()
	if output != nil {
		output.Close()
	}
	logger = slog.New(handler)
	logLevel = level
	logFormat = format
	logFile = file
	tuiMode = cfg.TUIMode
	output = closer
	return nil
}

func defaultLogFile() (string, error) {
	dir := os.Getenv("QUIRE_DATA_DIR")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".quire")
	}
	return filepath.Join(dir, "logs", "quire.log"), nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func GetLogger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func GetLevel() slog.Level {
	mu.RLock()
	defer mu.RUnlock()
	return logLevel
}

func GetFormat() string {
	mu.RLock()
	defer mu.RUnlock()
	return logFormat
}

func GetLogFile() string {
	mu.RLock()
	defer mu.RUnlock()
	return logFile
}

func IsTUIMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return tuiMode
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}
