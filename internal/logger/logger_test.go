package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeWithConfig_TUIMode(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("QUIRE_DATA_DIR", dataDir)

	require.NoError(t, InitializeWithConfig(Config{Level: "DEBUG", Format: "text", TUIMode: true}))

	assert.Equal(t, slog.LevelDebug, GetLevel())
	assert.True(t, IsTUIMode())
	assert.Equal(t, filepath.Join(dataDir, "logs", "quire.log"), GetLogFile())
	assert.DirExists(t, filepath.Join(dataDir, "logs"))
}

func TestInitializeWithConfig_NonTUIMode(t *testing.T) {
	require.NoError(t, InitializeWithConfig(Config{Level: "INFO", Format: "json"}))

	assert.Equal(t, slog.LevelInfo, GetLevel())
	assert.Empty(t, GetLogFile(), "stderr is used outside the TUI")
	assert.False(t, IsTUIMode())
	assert.Equal(t, "json", GetFormat())
}

func TestInitializeWithConfig_ExplicitLogFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "custom.log")

	require.NoError(t, InitializeWithConfig(Config{Level: "WARN", File: file}))

	assert.Equal(t, slog.LevelWarn, GetLevel())
	assert.Equal(t, file, GetLogFile())
	assert.Equal(t, "text", GetFormat())
	assert.FileExists(t, file)
}

func TestLogLevelParsing(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"invalid", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("QUIRE_DEBUG", "1")
	t.Setenv("LOG_FORMAT", "json")

	cfg := ConfigFromEnv()
	assert.Equal(t, "DEBUG", cfg.Level)
	assert.Equal(t, "json", cfg.Format)

	t.Setenv("LOG_LEVEL", "error")
	assert.Equal(t, "error", ConfigFromEnv().Level)
}

func TestLoggingFunctions(t *testing.T) {
	file := filepath.Join(t.TempDir(), "test.log")
	require.NoError(t, InitializeWithConfig(Config{Level: "DEBUG", File: file}))

	Debug("test debug", "key", "value")
	Info("test info", "key", "value")
	Warn("test warn", "key", "value")
	Error("test error", "key", "value")

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	for _, msg := range []string{"test debug", "test info", "test warn", "test error"} {
		assert.Contains(t, string(content), msg)
	}
}

func TestConcurrentAccess(t *testing.T) {
	file := filepath.Join(t.TempDir(), "concurrent.log")
	require.NoError(t, InitializeWithConfig(Config{Level: "DEBUG", File: file}))

	const goroutines = 20
	const perGoroutine = 50

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				Info("concurrent info", "goroutine", id, "iteration", j)
				_ = GetLevel()
				_ = IsTUIMode()
			}
		}(i)
	}
	wg.Wait()

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	lines := strings.Count(string(content), "\n")
	assert.Equal(t, goroutines*perGoroutine, lines)
}

func TestConcurrentInitialization(t *testing.T) {
	dir := t.TempDir()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			cfg := Config{Level: "INFO", File: filepath.Join(dir, fmt.Sprintf("init-%d.log", id))}
			if err := InitializeWithConfig(cfg); err != nil {
				errs <- err
				return
			}
			Info("initialized", "id", id)
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
