// Package loader reads raw incident tables from spreadsheet and CSV files.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"crimeprep/internal/config"
	"crimeprep/internal/models"
)

// Loader errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrSheetNotFound     = errors.New("sheet not found")
	ErrNoHeader          = errors.New("no header row found")
)

// coordinatePair is one accepted naming convention for the X/Y columns.
type coordinatePair struct {
	x, y   string
	scheme models.CoordinateScheme
}

// coordinatePairs are tried in order; the first pair fully present wins.
var coordinatePairs = []coordinatePair{
	{x: "xcoord", y: "ycoord", scheme: models.CoordinatesGeneric},
	{x: "x", y: "y", scheme: models.CoordinatesGeneric},
	{x: "longitude", y: "latitude", scheme: models.CoordinatesGeographic},
	{x: "lng", y: "lat", scheme: models.CoordinatesGeographic},
	{x: "lon", y: "lat", scheme: models.CoordinatesGeographic},
	{x: "long", y: "lat", scheme: models.CoordinatesGeographic},
}

// Loader reads the configured input table.
type Loader struct {
	input config.InputConfig
}

// New creates a loader for the given input settings.
func New(input config.InputConfig) *Loader {
	return &Loader{input: input}
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}

// Load reads the whole input file into memory.
func (l *Loader) Load() (*models.Table, error) {
	path := l.input.Path

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return l.loadXLSX(path)
	case ".csv":
		return l.loadCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// columnIndex holds header positions; -1 marks an absent column.
type columnIndex struct {
	scheme   models.CoordinateScheme
	date     int
	hood     int
	category int
	offense  int
	x        int
	y        int
}

func resolveColumns(header []string, cols config.ColumnsConfig) columnIndex {
	positions := make(map[string]int, len(header))

	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, seen := positions[key]; !seen && key != "" {
			positions[key] = i
		}
	}

	find := func(name string) int {
		if name == "" {
			return -1
		}

		if i, ok := positions[strings.ToLower(strings.TrimSpace(name))]; ok {
			return i
		}

		return -1
	}

	idx := columnIndex{
		date:     find(cols.ReportedDate),
		hood:     find(cols.Neighborhood),
		category: find(cols.OffenseCategory),
		offense:  find(cols.OffenseType),
		x:        -1,
		y:        -1,
	}

	for _, pair := range coordinatePairs {
		x, y := find(pair.x), find(pair.y)
		if x >= 0 && y >= 0 {
			idx.x, idx.y, idx.scheme = x, y, pair.scheme

			break
		}
	}

	return idx
}

func (idx columnIndex) apply(t *models.Table) {
	t.HasDate = idx.date >= 0
	t.HasNeighborhood = idx.hood >= 0
	t.HasCategory = idx.category >= 0
	t.HasType = idx.offense >= 0
	t.CoordinateScheme = idx.scheme
}

// headerRow returns the position of the first row with any non-blank cell.
func headerRow(rows [][]string) (int, error) {
	for i, row := range rows {
		if !blankRow(row) {
			return i, nil
		}
	}

	return -1, ErrNoHeader
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}

	return row[i]
}
