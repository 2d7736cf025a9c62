// Package main provides the preprocess command that turns a raw incident workbook into monthly JSON.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"crimeprep/internal/config"
	"crimeprep/internal/logger"
	"crimeprep/internal/pipeline"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file (default: "+config.DefaultPath+" if present)")
	inputPath := flag.String("input", "", "Path to input .xlsx or .csv file (overrides input.path)")
	outputPath := flag.String("output", "", "Path to output JSON file (overrides output.path)")
	mode := flag.String("mode", "", "Output mode: count or point (overrides output.mode)")
	cleanExport := flag.String("clean-export", "", "Optional .parquet path for cleaned records")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")

	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("Error loading config: %v\n", err)
	}

	applyOverride(&cfg.Input.Path, *inputPath)
	applyOverride(&cfg.Output.Path, *outputPath)
	applyOverride(&cfg.Output.Mode, *mode)
	applyOverride(&cfg.Output.CleanExportPath, *cleanExport)
	applyOverride(&cfg.Logging.Level, *logLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v\n", err)
	}

	lg := logger.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	lg.Debug("configuration loaded", "config", cfg.String())

	report, err := pipeline.NewRunner(cfg, lg, os.Stdout).Run()
	if errors.Is(err, pipeline.ErrInputNotFound) {
		fmt.Printf("ERROR: Could not find input file: %s\n", cfg.Input.Path)
		return
	}

	if err != nil {
		lg.Error("pipeline failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("\n✓ Data extraction complete in %v.\n", report.Duration.Round(time.Millisecond))
}

// loadConfig reads the explicit config file, then the default location, then falls back to defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfig(path)
	}

	if _, statErr := os.Stat(config.DefaultPath); statErr == nil {
		return config.LoadConfig(config.DefaultPath)
	}

	return config.Default(), nil
}

func applyOverride(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
