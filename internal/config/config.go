// Package config provides configuration loading from environment variables
// and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	schema "github.com/usestring/jsoninfer/pkg/jsonschema"
)

// Inference defaults
const (
	DefaultIndentValue            = 2
	DefaultLoadWorkersValue       = 8
	DefaultRequiredThresholdValue = 1.0
)

// EnvConfigFile names the YAML file read when no --config flag is given.
const EnvConfigFile = "JSONINFER_CONFIG"

// Config holds all configuration for the CLI and the MCP server.
//
// Fields are tagged for the YAML config file; JSONSchema reflects the same
// tags.
type Config struct {
	// JSONINFER_DRAFT, default "2020-12"
	Draft string `yaml:"draft,omitempty" jsonschema:"enum=2020-12,enum=7,enum=4" jsonschema_description:"JSON Schema draft written to $schema"`
	// JSONINFER_DETECT_FORMATS, default true
	DetectFormats bool `yaml:"detect_formats" jsonschema_description:"Attach format hints to string schemas"`
	// JSONINFER_REQUIRED_THRESHOLD, default 1.0
	RequiredThreshold float64 `yaml:"required_threshold" jsonschema:"minimum=0,maximum=1" jsonschema_description:"Fraction of samples a property must appear in to be required"`
	// JSONINFER_STRATEGY, default "batch"
	Strategy string `yaml:"strategy,omitempty" jsonschema:"enum=batch,enum=pairwise" jsonschema_description:"Merge algebra used to fold samples"`
	// JSONINFER_INDENT, default 2 (0 writes compact JSON)
	Indent int `yaml:"indent" jsonschema:"minimum=0"`
	// JSONINFER_FORMAT_CACHE_SIZE, default 4096
	FormatCacheSize int `yaml:"format_cache_size,omitempty" jsonschema:"minimum=1"`
	// JSONINFER_LOAD_WORKERS, default 8
	LoadWorkers int `yaml:"load_workers,omitempty" jsonschema:"minimum=1" jsonschema_description:"Files read concurrently"`

	// Logging configuration
	LogLevel      string `yaml:"log_level,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"` // LOG_LEVEL, default "info"
	LogFile       string `yaml:"log_file,omitempty"`                                                         // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    `yaml:"log_max_size_mb,omitempty"`                                                  // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    `yaml:"log_max_backups,omitempty"`                                                  // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    `yaml:"log_max_age_days,omitempty"`                                                 // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   `yaml:"log_compress"`                                                               // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Draft:             getEnvString("JSONINFER_DRAFT", schema.DefaultDraft),
		DetectFormats:     getEnvBool("JSONINFER_DETECT_FORMATS", true),
		RequiredThreshold: getEnvFloat("JSONINFER_REQUIRED_THRESHOLD", DefaultRequiredThresholdValue),
		Strategy:          getEnvString("JSONINFER_STRATEGY", string(schema.StrategyBatch)),
		Indent:            getEnvInt("JSONINFER_INDENT", DefaultIndentValue),
		FormatCacheSize:   getEnvInt("JSONINFER_FORMAT_CACHE_SIZE", schema.DefaultFormatCacheSize),
		LoadWorkers:       getEnvInt("JSONINFER_LOAD_WORKERS", DefaultLoadWorkersValue),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// LoadFile reads the environment configuration and overlays the YAML file at
// path. Keys missing from the file keep their environment or default value.
// An empty path falls back to $JSONINFER_CONFIG, and to Load() when that is
// unset too.
func LoadFile(path string) (*Config, error) {
	cfg := Load()
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := schema.ParseDraft(c.Draft); err != nil {
		errs = append(errs, err)
	}
	if _, err := schema.ParseStrategy(c.Strategy); err != nil {
		errs = append(errs, err)
	}
	if c.RequiredThreshold < 0 || c.RequiredThreshold > 1 {
		errs = append(errs, fmt.Errorf("required threshold must be between 0 and 1, got %g", c.RequiredThreshold))
	}
	if c.Indent < 0 {
		errs = append(errs, fmt.Errorf("indent must not be negative, got %d", c.Indent))
	}
	if c.FormatCacheSize < 1 {
		errs = append(errs, fmt.Errorf("format cache size must be positive, got %d", c.FormatCacheSize))
	}
	if c.LoadWorkers < 1 {
		errs = append(errs, fmt.Errorf("load workers must be positive, got %d", c.LoadWorkers))
	}
	return errors.Join(errs...)
}

// InferOptions builds inference options from the configuration. The
// strategy must have passed Validate.
func (c *Config) InferOptions(formats *schema.FormatDetector) *schema.InferOptions {
	strategy, _ := schema.ParseStrategy(c.Strategy)
	return &schema.InferOptions{
		DetectFormats:     c.DetectFormats,
		RequiredThreshold: c.RequiredThreshold,
		Strategy:          strategy,
		Formats:           formats,
	}
}

// JSONSchema describes the configuration file format.
func JSONSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		FieldNameTag:               "yaml",
		DoNotReference:             true,
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
	}
	s := r.Reflect(&Config{})
	s.Title = "jsoninfer configuration"
	return s
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
