// Package normalizer validates raw incident tables and turns them into clean records.
package normalizer

import (
	"fmt"

	"crimeprep/internal/models"
)

// Options select how rows are cleaned.
type Options struct {
	// PointMode drops rows without both coordinates and tightens column checks.
	PointMode bool
	// EnrichSeverity fills CleanRecord.Severity from the offense category.
	EnrichSeverity bool
}

// Stats counts what happened to each input row.
type Stats struct {
	UnmappedCategories map[string]int
	Total              int
	Kept               int
	InvalidDates       int
	MissingCoordinates int
}

// Dropped returns the number of rows filtered out.
func (s Stats) Dropped() int {
	return s.InvalidDates + s.MissingCoordinates
}

// Processor handles table validation and row cleaning.
type Processor struct {
	validator   *Validator
	transformer *Transformer
	opts        Options
}

// NewProcessor creates a new processor instance.
func NewProcessor(opts Options) *Processor {
	return &Processor{
		validator:   NewValidator(opts.PointMode),
		transformer: NewTransformer(opts.PointMode, opts.EnrichSeverity),
		opts:        opts,
	}
}

// Process validates the table and cleans every row, preserving input order.
// Only structural problems are returned as errors; bad rows are dropped and counted.
func (p *Processor) Process(table *models.Table) ([]models.CleanRecord, Stats, error) {
	// 1. Validate the table shape
	if err := p.validator.Validate(table); err != nil {
		return nil, Stats{}, fmt.Errorf("validation failed: %w", err)
	}

	// 2. Clean rows
	stats := Stats{
		Total:              len(table.Records),
		UnmappedCategories: make(map[string]int),
	}
	records := make([]models.CleanRecord, 0, len(table.Records))

	for _, raw := range table.Records {
		rec, rejection := p.transformer.Transform(raw)

		switch rejection {
		case RejectInvalidDate:
			stats.InvalidDates++

			continue
		case RejectMissingCoordinates:
			stats.MissingCoordinates++

			continue
		}

		if p.opts.EnrichSeverity {
			if _, mapped := SeverityOf(rec.OffenseCategory); !mapped {
				stats.UnmappedCategories[rec.OffenseCategory]++
			}
		}

		records = append(records, rec)
	}

	stats.Kept = len(records)

	return records, stats, nil
}
