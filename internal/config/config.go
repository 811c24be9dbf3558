package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"gemdash/internal/errors"
)

// Data source kinds
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Data      DataConfig      `yaml:"data"`
	Charts    ChartConfig     `yaml:"charts"`
	Profiling ProfilingConfig `yaml:"profiling"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string        `yaml:"port" validate:"required,numeric"`
	GinMode         string        `yaml:"gin_mode" validate:"oneof=debug release test"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
	AllowedOrigins  []string      `yaml:"allowed_origins" validate:"dive,required"`
}

// DataConfig selects where the diamonds table is loaded from
type DataConfig struct {
	Source      string `yaml:"source" validate:"oneof=embedded file postgres"`
	File        string `yaml:"file" validate:"required_if=Source file"`
	DatabaseURL string `yaml:"database_url" validate:"required_if=Source postgres"`
	Table       string `yaml:"table" validate:"required"`
	SampleRows  int    `yaml:"sample_rows" validate:"gte=0,lte=100"`
}

// ChartConfig holds raster sizes for PNG charts
type ChartConfig struct {
	Width  int `yaml:"width" validate:"gte=200,lte=4000"`
	Height int `yaml:"height" validate:"gte=150,lte=4000"`
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string `yaml:"port" validate:"required_if=Enabled true"`
	Enabled bool   `yaml:"enabled"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=ERROR WARN INFO DEBUG TRACE"`
}

var validate = validator.New()

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			GinMode:         "debug",
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigins:  []string{"http://localhost:3000"},
		},
		Data: DataConfig{
			Source:     SourceEmbedded,
			Table:      "diamonds",
			SampleRows: 5,
		},
		Charts: ChartConfig{
			Width:  640,
			Height: 420,
		},
		Profiling: ProfilingConfig{
			Port:    "6060",
			Enabled: false,
		},
		Log: LogConfig{
			Level: "INFO",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables, and validates the result.
func Load() (*Config, error) {
	config := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, config); err != nil {
			return nil, errors.Wrap(err, "failed to load configuration file")
		}
	}

	applyEnv(config)

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadFile(path string, config *Config) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.ConfigInvalid(fmt.Sprintf("cannot read %s: %v", path, err))
	}
	if err := yaml.Unmarshal(content, config); err != nil {
		return errors.ConfigInvalid(fmt.Sprintf("cannot parse %s: %v", path, err))
	}
	return nil
}

func applyEnv(config *Config) {
	config.Server.Port = getEnvOrDefault("PORT", config.Server.Port)
	config.Server.GinMode = getEnvOrDefault("GIN_MODE", config.Server.GinMode)
	config.Server.ShutdownTimeout = getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", config.Server.ShutdownTimeout)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.Server.AllowedOrigins = splitList(origins)
	}

	config.Data.Source = strings.ToLower(getEnvOrDefault("DATA_SOURCE", config.Data.Source))
	config.Data.File = getEnvOrDefault("DATA_FILE", config.Data.File)
	config.Data.DatabaseURL = getEnvOrDefault("DATABASE_URL", config.Data.DatabaseURL)
	config.Data.Table = getEnvOrDefault("DATA_TABLE", config.Data.Table)
	config.Data.SampleRows = getEnvIntOrDefault("SAMPLE_ROWS", config.Data.SampleRows)

	config.Charts.Width = getEnvIntOrDefault("CHART_WIDTH", config.Charts.Width)
	config.Charts.Height = getEnvIntOrDefault("CHART_HEIGHT", config.Charts.Height)

	config.Profiling.Port = getEnvOrDefault("PPROF_PORT", config.Profiling.Port)
	config.Profiling.Enabled = getEnvBoolOrDefault("PPROF_ENABLED", config.Profiling.Enabled)

	config.Log.Level = strings.ToUpper(getEnvOrDefault("LOG_LEVEL", config.Log.Level))
}

// Validate checks struct tags and reports every failing field in one error.
func Validate(config *Config) error {
	err := validate.Struct(config)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.ConfigInvalid(err.Error())
	}
	problems := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		problems = append(problems, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return errors.ConfigInvalid(strings.Join(problems, "; "))
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
