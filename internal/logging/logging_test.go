package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/jsoninfer/internal/config"
)

func restoreDefault(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected slog.Level
	}{
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		level, err := ParseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, level)
	}

	_, err := ParseLevel("loud")
	assert.ErrorContains(t, err, "unknown log level")
}

func TestSetup_WritesToStderrSink(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer

	cfg := DefaultConfig()
	cfg.Level = "warn"
	cfg.Stderr = &buf

	cleanup, err := Setup(cfg)
	require.NoError(t, err)
	defer cleanup()

	slog.Info("hidden")
	slog.Warn("shown", slog.Int("samples", 3))

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "samples=3")
}

func TestSetup_RotatingFile(t *testing.T) {
	restoreDefault(t)
	path := filepath.Join(t.TempDir(), "logs", "jsoninfer.log")

	cfg := DefaultConfig()
	cfg.FilePath = path

	cleanup, err := Setup(cfg)
	require.NoError(t, err)

	slog.Info("written to file")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestSetup_InvalidLevel(t *testing.T) {
	restoreDefault(t)
	cfg := DefaultConfig()
	cfg.Level = "chatty"

	_, err := Setup(cfg)
	assert.Error(t, err)
}

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{
		LogLevel:      "debug",
		LogFile:       "/tmp/x.log",
		LogMaxSizeMB:  1,
		LogMaxBackups: 2,
		LogMaxAgeDays: 3,
		LogCompress:   true,
	}
	got := FromConfig(cfg)
	assert.Equal(t, Config{Level: "debug", FilePath: "/tmp/x.log", MaxSizeMB: 1, MaxBackups: 2, MaxAgeDays: 3, Compress: true}, got)
}

func TestFromConfig_Defaults(t *testing.T) {
	got := FromConfig(&config.Config{})

	want := DefaultConfig()
	want.Compress = false
	assert.Equal(t, want, got)
}
