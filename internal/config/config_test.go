package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

// validConfigYAML overrides a handful of defaults.
const validConfigYAML = `
input:
  path: "data/raw/incidents.csv"
  columns:
    reported_date: "Date Reported"
    neighborhood: "Hood"
output:
  mode: point
  path: "out/points.json"
  indent: 0
  clean_export_path: "out/clean.parquet"
logging:
  level: debug
  format: json
features:
  enrich_severity: false
`

func TestLoadConfig_Valid(t *testing.T) {
	configPath := createTempConfigFile(t, validConfigYAML)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Input.Path != "data/raw/incidents.csv" {
		t.Errorf("Expected input path override, got '%s'", cfg.Input.Path)
	}

	if cfg.Input.Columns.ReportedDate != "Date Reported" || cfg.Input.Columns.Neighborhood != "Hood" {
		t.Errorf("Column overrides not applied: %+v", cfg.Input.Columns)
	}

	// Fields absent from the file keep their defaults
	if cfg.Input.Columns.OffenseCategory != "NIBRS_Offense_Category" {
		t.Errorf("Expected default category column, got '%s'", cfg.Input.Columns.OffenseCategory)
	}

	if !cfg.IsPointMode() {
		t.Error("Expected point mode")
	}

	if cfg.Output.Indent != 0 {
		t.Errorf("Expected indent 0, got %d", cfg.Output.Indent)
	}

	if cfg.Features.EnrichSeverity {
		t.Error("Expected enrich_severity to be disabled")
	}

	if !cfg.Features.PrintSummary {
		t.Error("Expected print_summary to keep its default")
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := createTempConfigFile(t, "invalid: yaml: content: [}")

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid YAML, got nil")
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	configPath := createTempConfigFile(t, "output:\n  mode: heatmap\n")

	_, err := LoadConfig(configPath)
	if !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("Expected ErrInvalidMode, got %v", err)
	}
}

func TestLoadConfig_ShippedConfigs(t *testing.T) {
	for _, name := range []string{"preprocess.yaml", "preprocess.point.yaml"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := LoadConfig(filepath.Join("..", "..", "configs", name))
			if err != nil {
				t.Fatalf("LoadConfig(%s) failed: %v", name, err)
			}

			if cfg.Input.Path == "" || cfg.Output.Path == "" {
				t.Errorf("Shipped config has empty paths: %s", cfg)
			}
		})
	}
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config is invalid: %v", err)
	}

	if cfg.Output.Mode != ModeCount {
		t.Errorf("Expected default mode count, got %s", cfg.Output.Mode)
	}

	if cfg.Output.Indent != 2 {
		t.Errorf("Expected default indent 2, got %d", cfg.Output.Indent)
	}
}

func TestConfig_Validate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"Missing input path", func(c *Config) { c.Input.Path = " " }, ErrMissingInputPath},
		{"Unsupported input", func(c *Config) { c.Input.Path = "data/raw/incidents.json" }, ErrUnsupportedInput},
		{"Missing date column", func(c *Config) { c.Input.Columns.ReportedDate = "" }, ErrMissingDateColumn},
		{"Missing neighborhood column", func(c *Config) { c.Input.Columns.Neighborhood = "" }, ErrMissingHoodColumn},
		{"Missing output path", func(c *Config) { c.Output.Path = "" }, ErrMissingOutputPath},
		{"Invalid mode", func(c *Config) { c.Output.Mode = "grid" }, ErrInvalidMode},
		{"Negative indent", func(c *Config) { c.Output.Indent = -1 }, ErrInvalidIndent},
		{"Indent too large", func(c *Config) { c.Output.Indent = 9 }, ErrInvalidIndent},
		{"Clean export not parquet", func(c *Config) { c.Output.CleanExportPath = "clean.csv" }, ErrInvalidCleanExport},
		{"Invalid logging level", func(c *Config) { c.Logging.Level = "verbose" }, ErrInvalidLogLevel},
		{"Invalid logging format", func(c *Config) { c.Logging.Format = "xml" }, ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_AcceptedVariants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"CSV input", func(c *Config) { c.Input.Path = "incidents.CSV" }},
		{"Point mode", func(c *Config) { c.Output.Mode = ModePoint }},
		{"Compact output", func(c *Config) { c.Output.Indent = 0 }},
		{"Parquet export", func(c *Config) { c.Output.CleanExportPath = "clean.PARQUET" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() returned unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")

	cfg := Default()
	cfg.Output.Mode = ModePoint
	cfg.Input.Sheet = "Incidents"

	if err := cfg.SaveConfig(path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if *loaded != *cfg {
		t.Errorf("Round trip mismatch:\n got  %+v\n want %+v", loaded, cfg)
	}
}

func TestConfig_String(t *testing.T) {
	want := "Config{Input: data/raw/crime_jan1_oct31_2025.xlsx, Output: data/processed/crime_monthly.json, Mode: count}"
	if got := Default().String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
