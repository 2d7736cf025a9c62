// Package aggregator groups clean incident records into the nested output document.
package aggregator

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"crimeprep/internal/config"
	"crimeprep/internal/models"
)

// ErrUnknownMode is returned for an output mode other than count or point.
var ErrUnknownMode = errors.New("unknown aggregation mode")

// CountRow is the incident count for one (year, month, neighborhood) group.
type CountRow struct {
	MonthName    string
	Neighborhood string
	Year         int
	Month        int
	Count        int
}

type countKey struct {
	monthName    string
	neighborhood string
	year         int
	month        int
}

// Counts groups records by year, month, month name and neighborhood.
// Rows are sorted by year, month, then neighborhood. Empty groups never appear.
func Counts(records []models.CleanRecord) []CountRow {
	groups := make(map[countKey]int)

	for i := range records {
		r := &records[i]
		groups[countKey{year: r.Year, month: r.Month, monthName: r.MonthName, neighborhood: r.Neighborhood}]++
	}

	rows := make([]CountRow, 0, len(groups))
	for k, n := range groups {
		rows = append(rows, CountRow{
			Year:         k.year,
			Month:        k.month,
			MonthName:    k.monthName,
			Neighborhood: k.neighborhood,
			Count:        n,
		})
	}

	slices.SortFunc(rows, func(a, b CountRow) int {
		return cmp.Or(
			cmp.Compare(a.Year, b.Year),
			cmp.Compare(a.Month, b.Month),
			cmp.Compare(a.Neighborhood, b.Neighborhood),
		)
	})

	return rows
}

// BuildCountDocument nests count rows as year -> month -> neighborhood -> count.
func BuildCountDocument(rows []CountRow) models.Document {
	doc := make(models.Document)

	for _, row := range rows {
		year, month := YearKey(row.Year), MonthKey(row.Month)

		leaf, ok := doc.Get(year, month)
		if !ok {
			leaf = make(models.NeighborhoodCounts)
			doc.Set(year, month, leaf)
		}

		leaf.(models.NeighborhoodCounts)[row.Neighborhood] += row.Count
	}

	return doc
}

// BuildPointDocument lists every record with coordinates as a point under its
// year and month, in input order. Records without both coordinates are skipped.
func BuildPointDocument(records []models.CleanRecord) models.Document {
	doc := make(models.Document)
	points := make(map[[2]int][]models.Point)

	var order [][2]int

	for i := range records {
		r := &records[i]
		if !r.HasCoordinates() {
			continue
		}

		key := [2]int{r.Year, r.Month}
		if _, seen := points[key]; !seen {
			order = append(order, key)
		}

		points[key] = append(points[key], models.Point{
			Lat:          *r.Latitude,
			Lng:          *r.Longitude,
			Neighborhood: r.Neighborhood,
			Category:     r.OffenseCategory,
			Type:         r.OffenseType,
			Severity:     r.Severity,
		})
	}

	for _, key := range order {
		doc.Set(YearKey(key[0]), MonthKey(key[1]), points[key])
	}

	return doc
}

// Build produces the document for the configured mode.
func Build(mode string, records []models.CleanRecord) (models.Document, error) {
	switch mode {
	case config.ModeCount:
		return BuildCountDocument(Counts(records)), nil
	case config.ModePoint:
		return BuildPointDocument(records), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// YearKey formats a year as a document key.
func YearKey(year int) string {
	return fmt.Sprintf("%d", year)
}

// MonthKey formats a month as a zero-padded document key.
func MonthKey(month int) string {
	return fmt.Sprintf("%02d", month)
}
