package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	schema "github.com/usestring/jsoninfer/pkg/jsonschema"
)

var envKeys = []string{
	"JSONINFER_DRAFT", "JSONINFER_DETECT_FORMATS", "JSONINFER_REQUIRED_THRESHOLD",
	"JSONINFER_STRATEGY", "JSONINFER_INDENT", "JSONINFER_FORMAT_CACHE_SIZE",
	"JSONINFER_LOAD_WORKERS", EnvConfigFile,
	"LOG_LEVEL", "LOG_FILE", "LOG_MAX_SIZE_MB", "LOG_MAX_BACKUPS", "LOG_MAX_AGE_DAYS", "LOG_COMPRESS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jsoninfer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	assert.Equal(t, "2020-12", cfg.Draft)
	assert.True(t, cfg.DetectFormats)
	assert.Equal(t, 1.0, cfg.RequiredThreshold)
	assert.Equal(t, "batch", cfg.Strategy)
	assert.Equal(t, 2, cfg.Indent)
	assert.Equal(t, schema.DefaultFormatCacheSize, cfg.FormatCacheSize)
	assert.Equal(t, 8, cfg.LoadWorkers)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
	assert.True(t, cfg.LogCompress)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("JSONINFER_DRAFT", "7")
	t.Setenv("JSONINFER_DETECT_FORMATS", "off")
	t.Setenv("JSONINFER_REQUIRED_THRESHOLD", "0.75")
	t.Setenv("JSONINFER_STRATEGY", "pairwise")
	t.Setenv("JSONINFER_INDENT", "0")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "7", cfg.Draft)
	assert.False(t, cfg.DetectFormats)
	assert.Equal(t, 0.75, cfg.RequiredThreshold)
	assert.Equal(t, "pairwise", cfg.Strategy)
	assert.Equal(t, 0, cfg.Indent)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MalformedValuesKeepDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JSONINFER_INDENT", "two")
	t.Setenv("JSONINFER_REQUIRED_THRESHOLD", "most")
	t.Setenv("JSONINFER_DETECT_FORMATS", "maybe")

	cfg := Load()

	assert.Equal(t, 2, cfg.Indent)
	assert.Equal(t, 1.0, cfg.RequiredThreshold)
	assert.True(t, cfg.DetectFormats)
}

func TestLoadFile_Overlay(t *testing.T) {
	clearEnv(t)
	t.Setenv("JSONINFER_STRATEGY", "pairwise")
	path := writeFile(t, "draft: \"4\"\nrequired_threshold: 0.5\ndetect_formats: false\n")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "4", cfg.Draft)
	assert.Equal(t, 0.5, cfg.RequiredThreshold)
	assert.False(t, cfg.DetectFormats)
	assert.Equal(t, "pairwise", cfg.Strategy, "keys absent from the file keep the environment value")
	assert.Equal(t, 2, cfg.Indent)
}

func TestLoadFile_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfigFile, writeFile(t, "indent: 4\n"))

	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Indent)
}

func TestLoadFile_NoFile(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, Load(), cfg)
}

func TestLoadFile_Errors(t *testing.T) {
	clearEnv(t)

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadFile(writeFile(t, "indent: [1, 2\n"))
	assert.ErrorContains(t, err, "parsing config file")
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	cfg := Load()
	cfg.Draft = "6"
	cfg.Strategy = "greedy"
	cfg.RequiredThreshold = 1.5
	cfg.Indent = -1
	cfg.LoadWorkers = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, schema.ErrUnknownDraft)
	assert.ErrorIs(t, err, schema.ErrUnknownStrategy)
	assert.ErrorContains(t, err, "required threshold")
	assert.ErrorContains(t, err, "indent")
	assert.ErrorContains(t, err, "load workers")
}

func TestInferOptions(t *testing.T) {
	clearEnv(t)
	cfg := Load()
	cfg.Strategy = "pairwise"
	cfg.RequiredThreshold = 0.25
	cfg.DetectFormats = false

	opts := cfg.InferOptions(nil)

	assert.Equal(t, schema.StrategyPairwise, opts.Strategy)
	assert.Equal(t, 0.25, opts.RequiredThreshold)
	assert.False(t, opts.DetectFormats)
	assert.Nil(t, opts.Formats)
}

func TestJSONSchema(t *testing.T) {
	s := JSONSchema()
	require.NotNil(t, s)
	require.NotNil(t, s.Properties)

	assert.Equal(t, "jsoninfer configuration", s.Title)

	draft, ok := s.Properties.Get("draft")
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"2020-12", "7", "4"}, draft.Enum)

	_, ok = s.Properties.Get("required_threshold")
	assert.True(t, ok)
	_, ok = s.Properties.Get("log_level")
	assert.True(t, ok)
	_, ok = s.Properties.Get("RequiredThreshold")
	assert.False(t, ok, "field names come from yaml tags")
}
