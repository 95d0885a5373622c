package config

import (
	"os"
	"runtime"
	"strconv"

	"schemascope/internal/errors"
)

// Default evaluation parameters. They mirror what the report title and
// thresholds fall back to when neither flags nor environment override them.
const (
	DefaultTranslationTable = 11
	DefaultSizeThreshold    = 0.05
	DefaultTitle            = "My Analyzed wg/cg MLST Schema - Rate My Schema"
	DefaultOutputDir        = "schema_report"
)

// Config represents the complete application configuration
type Config struct {
	Schema     SchemaConfig
	Evaluation EvaluationConfig
	Report     ReportConfig
	Server     ServerConfig
}

// SchemaConfig locates and interprets the schema directory
type SchemaConfig struct {
	Dir              string
	TranslationTable int
	SizeThreshold    float64
	MinimumLength    int
}

// EvaluationConfig holds run-level evaluation settings
type EvaluationConfig struct {
	// Workers caps concurrent locus evaluations; zero means one per CPU.
	Workers int
	// Light skips tree building.
	Light bool
}

// ReportConfig holds report output settings
type ReportConfig struct {
	OutputDir string
	Title     string
	// DescriptionFile points at an optional markdown file rendered into
	// the overview page.
	DescriptionFile string
}

// ServerConfig holds preview server settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Schema: SchemaConfig{
			Dir:              getEnvOrDefault("SCHEMA_DIR", ""),
			TranslationTable: getEnvIntOrDefault("TRANSLATION_TABLE", DefaultTranslationTable),
			SizeThreshold:    getEnvFloatOrDefault("SIZE_THRESHOLD", DefaultSizeThreshold),
			MinimumLength:    getEnvIntOrDefault("MINIMUM_LENGTH", 0),
		},
		Evaluation: EvaluationConfig{
			Workers: getEnvIntOrDefault("WORKERS", 0),
			Light:   getEnvBoolOrDefault("LIGHT_MODE", false),
		},
		Report: ReportConfig{
			OutputDir:       getEnvOrDefault("OUTPUT_DIR", DefaultOutputDir),
			Title:           getEnvOrDefault("REPORT_TITLE", DefaultTitle),
			DescriptionFile: getEnvOrDefault("DESCRIPTION_FILE", ""),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// WorkerCount resolves the effective evaluation concurrency.
func (c *Config) WorkerCount() int {
	if c.Evaluation.Workers > 0 {
		return c.Evaluation.Workers
	}
	return runtime.NumCPU()
}

func validateConfig(config *Config) error {
	if config.Schema.SizeThreshold < 0 || config.Schema.SizeThreshold >= 1 {
		return errors.ConfigInvalid("size threshold must be in [0, 1)")
	}
	if config.Schema.TranslationTable <= 0 {
		return errors.ConfigInvalid("translation table must be positive")
	}
	if config.Schema.MinimumLength < 0 {
		return errors.ConfigInvalid("minimum length cannot be negative")
	}
	if config.Evaluation.Workers < 0 {
		return errors.ConfigInvalid("workers cannot be negative")
	}
	if config.Report.OutputDir == "" {
		return errors.ConfigInvalid("output directory is required")
	}
	return nil
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
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
