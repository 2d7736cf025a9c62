// Package pipeline runs the load, clean, aggregate and save stages in order.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"crimeprep/internal/aggregator"
	"crimeprep/internal/config"
	"crimeprep/internal/formatter"
	"crimeprep/internal/loader"
	"crimeprep/internal/logger"
	"crimeprep/internal/models"
	"crimeprep/internal/normalizer"
	"crimeprep/internal/output"
	"crimeprep/pkg/checksum"
)

// ErrInputNotFound is returned before any stage runs when the input file is absent.
var ErrInputNotFound = errors.New("input file not found")

// Report summarizes a completed run.
type Report struct {
	Output      output.Result
	InputSHA256 string
	Mode        string
	Totals      []aggregator.MonthTotal
	Stats       normalizer.Stats
	Duration    time.Duration
	Rows        int
	Entries     int
}

// Runner wires the stages for one configuration.
type Runner struct {
	cfg    *config.Config
	logger *logger.Logger
	out    io.Writer
}

// NewRunner creates a runner. Progress lines go to out; structured logs go to log.
func NewRunner(cfg *config.Config, log *logger.Logger, out io.Writer) *Runner {
	if log == nil {
		log = logger.Discard()
	}

	if out == nil {
		out = io.Discard
	}

	return &Runner{cfg: cfg, logger: log, out: out}
}

// Run executes the whole pipeline. Nothing is written unless every stage succeeds.
func (r *Runner) Run() (*Report, error) {
	start := time.Now()
	cfg := r.cfg

	if !loader.Exists(cfg.Input.Path) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, cfg.Input.Path)
	}

	report := &Report{Mode: cfg.Output.Mode}

	// 1. Load
	r.printf("📂 Loading: %s\n", cfg.Input.Path)

	table, err := loader.New(cfg.Input).Load()
	if err != nil {
		return nil, fmt.Errorf("load failed: %w", err)
	}

	report.Rows = len(table.Records)

	if digest, digestErr := checksum.File(cfg.Input.Path); digestErr == nil {
		report.InputSHA256 = digest
	}

	r.logger.Info("load complete",
		"path", cfg.Input.Path,
		"rows", report.Rows,
		"coordinates", string(table.CoordinateScheme),
		"sha256", checksum.Short(report.InputSHA256))
	r.printf("✅ Loaded %d rows.\n", report.Rows)

	// 2. Clean
	processor := normalizer.NewProcessor(normalizer.Options{
		PointMode:      cfg.IsPointMode(),
		EnrichSeverity: cfg.Features.EnrichSeverity,
	})

	records, stats, err := processor.Process(table)
	if err != nil {
		return nil, fmt.Errorf("clean failed: %w", err)
	}

	report.Stats = stats

	if r.logger.Enabled(slog.LevelDebug) {
		for category, n := range stats.UnmappedCategories {
			r.logger.Debug("category mapped to default severity", "category", category, "rows", n)
		}
	}

	if dropped := stats.Dropped(); dropped > 0 {
		r.logger.Warn("rows dropped during cleaning",
			"dropped", dropped,
			"invalid_dates", stats.InvalidDates,
			"missing_coordinates", stats.MissingCoordinates)
	}

	r.logger.Info("clean complete",
		"kept", stats.Kept,
		"invalid_dates", stats.InvalidDates,
		"missing_coordinates", stats.MissingCoordinates)
	r.printf("🧹 Finished cleaning data: kept %d, dropped %d.\n", stats.Kept, stats.Dropped())

	// 3. Aggregate
	doc, err := aggregator.Build(cfg.Output.Mode, records)
	if err != nil {
		return nil, fmt.Errorf("aggregate failed: %w", err)
	}

	report.Entries = countLeaves(doc)
	report.Totals = aggregator.Summarize(records)

	r.logger.Info("aggregate complete", "mode", cfg.Output.Mode, "entries", report.Entries)
	r.printf("📊 Built %s output with %d entries.\n", cfg.Output.Mode, report.Entries)

	// 4. Save. Both outputs are encoded before any file is touched.
	writer := output.NewWriter(cfg.Output.Indent, r.logger)

	data, err := writer.Encode(doc)
	if err != nil {
		return nil, fmt.Errorf("save failed: %w", err)
	}

	var export []byte
	if cfg.Output.CleanExportPath != "" {
		if export, err = output.EncodeCleanParquet(records); err != nil {
			return nil, fmt.Errorf("clean export failed: %w", err)
		}
	}

	if export != nil {
		if err := output.WriteFileAtomic(cfg.Output.CleanExportPath, export); err != nil {
			return nil, fmt.Errorf("clean export failed: %w", err)
		}

		r.logger.Info("clean export complete", "path", cfg.Output.CleanExportPath, "rows", len(records))
	}

	res, err := writer.WriteEncoded(cfg.Output.Path, data)
	if err != nil {
		if export != nil {
			_ = os.Remove(cfg.Output.CleanExportPath)
		}

		return nil, fmt.Errorf("save failed: %w", err)
	}

	report.Output = res

	r.logger.Info("save complete", "path", res.Path, "bytes", res.Bytes, "sha256", checksum.Short(res.SHA256))
	r.printf("💾 Saved output:\n  - %s\n", res.Path)

	if cfg.Output.CleanExportPath != "" {
		r.printf("  - %s\n", cfg.Output.CleanExportPath)
	}

	if cfg.Features.PrintSummary && len(report.Totals) > 0 {
		r.printf("\n%s\n", formatter.SummaryTable(report.Totals))
	}

	report.Duration = time.Since(start)

	return report, nil
}

func (r *Runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// countLeaves counts neighborhood entries in count mode and points in point mode.
func countLeaves(doc models.Document) int {
	n := 0

	for _, months := range doc {
		for _, leaf := range months {
			switch v := leaf.(type) {
			case models.NeighborhoodCounts:
				n += len(v)
			case []models.Point:
				n += len(v)
			}
		}
	}

	return n
}
