// Package config provides configuration management for the incident preprocessor.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output modes.
const (
	ModeCount = "count"
	ModePoint = "point"
)

// DefaultPath is where the CLI looks for a config file when none is given.
const DefaultPath = "configs/preprocess.yaml"

// Configuration validation errors.
var (
	ErrMissingInputPath   = errors.New("input.path is required")
	ErrMissingOutputPath  = errors.New("output.path is required")
	ErrMissingDateColumn  = errors.New("input.columns.reported_date is required")
	ErrMissingHoodColumn  = errors.New("input.columns.neighborhood is required")
	ErrUnsupportedInput   = errors.New("input.path must end in .xlsx or .csv")
	ErrInvalidMode        = errors.New("output.mode must be 'count' or 'point'")
	ErrInvalidIndent      = errors.New("output.indent must be between 0 and 8")
	ErrInvalidCleanExport = errors.New("output.clean_export_path must end in .parquet")
	ErrInvalidLogLevel    = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat   = errors.New("logging.format must be 'text' or 'json'")
)

// Config represents the complete preprocessor configuration.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
	Features FeaturesConfig `yaml:"features"`
}

// InputConfig describes the source table.
type InputConfig struct {
	Path    string        `yaml:"path"`
	Sheet   string        `yaml:"sheet"`
	Columns ColumnsConfig `yaml:"columns"`
}

// ColumnsConfig names the source header for each field. Coordinate headers are detected.
type ColumnsConfig struct {
	ReportedDate    string `yaml:"reported_date"`
	Neighborhood    string `yaml:"neighborhood"`
	OffenseCategory string `yaml:"offense_category"`
	OffenseType     string `yaml:"offense_type"`
}

// OutputConfig defines output behavior.
type OutputConfig struct {
	Path            string `yaml:"path"`
	Mode            string `yaml:"mode"`
	CleanExportPath string `yaml:"clean_export_path"`
	Indent          int    `yaml:"indent"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// FeaturesConfig contains feature flags.
type FeaturesConfig struct {
	EnrichSeverity bool `yaml:"enrich_severity"`
	PrintSummary   bool `yaml:"print_summary"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Path: "data/raw/crime_jan1_oct31_2025.xlsx",
			Columns: ColumnsConfig{
				ReportedDate:    "ReportedDate",
				Neighborhood:    "Neighborhood",
				OffenseCategory: "NIBRS_Offense_Category",
				OffenseType:     "NIBRS_Offense_Type",
			},
		},
		Output: OutputConfig{
			Path:   "data/processed/crime_monthly.json",
			Mode:   ModeCount,
			Indent: 2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Features: FeaturesConfig{
			EnrichSeverity: true,
			PrintSummary:   true,
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of Default.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input.Path) == "" {
		return ErrMissingInputPath
	}

	switch strings.ToLower(filepath.Ext(c.Input.Path)) {
	case ".xlsx", ".csv":
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedInput, c.Input.Path)
	}

	if strings.TrimSpace(c.Input.Columns.ReportedDate) == "" {
		return ErrMissingDateColumn
	}

	if strings.TrimSpace(c.Input.Columns.Neighborhood) == "" {
		return ErrMissingHoodColumn
	}

	if strings.TrimSpace(c.Output.Path) == "" {
		return ErrMissingOutputPath
	}

	if c.Output.Mode != ModeCount && c.Output.Mode != ModePoint {
		return fmt.Errorf("%w: got %q", ErrInvalidMode, c.Output.Mode)
	}

	if c.Output.Indent < 0 || c.Output.Indent > 8 {
		return ErrInvalidIndent
	}

	if c.Output.CleanExportPath != "" && !strings.EqualFold(filepath.Ext(c.Output.CleanExportPath), ".parquet") {
		return ErrInvalidCleanExport
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// IsPointMode reports whether point-level output is configured.
func (c *Config) IsPointMode() bool {
	return c.Output.Mode == ModePoint
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Input: %s, Output: %s, Mode: %s}",
		c.Input.Path,
		c.Output.Path,
		c.Output.Mode,
	)
}
