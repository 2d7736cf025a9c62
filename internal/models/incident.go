// Package models defines the record and document types shared by the preprocessing stages.
package models

import "time"

// Severity is the coarse bucket derived from a NIBRS offense category.
type Severity string

// Severity levels.
const (
	SeverityViolent  Severity = "Violent"
	SeveritySerious  Severity = "Serious"
	SeverityProperty Severity = "Property"
	SeverityMinor    Severity = "Minor"
)

// Unknown is the placeholder for missing neighborhood, category and type values.
const Unknown = "Unknown"

// CoordinateScheme names the coordinate column convention found in the source.
type CoordinateScheme string

// Coordinate column conventions.
const (
	CoordinatesNone       CoordinateScheme = ""
	CoordinatesGeneric    CoordinateScheme = "generic"
	CoordinatesGeographic CoordinateScheme = "geographic"
)

// RawRecord is one incident as read from the source table.
type RawRecord struct {
	ReportedDate    Cell
	Neighborhood    Cell
	OffenseCategory Cell
	OffenseType     Cell
	X               Cell
	Y               Cell
	Row             int
}

// Table is the in-memory source table.
type Table struct {
	Source           string
	CoordinateScheme CoordinateScheme
	Columns          []string
	Records          []RawRecord
	HasDate          bool
	HasNeighborhood  bool
	HasCategory      bool
	HasType          bool
}

// HasCoordinates reports whether a coordinate column pair was found.
func (t *Table) HasCoordinates() bool {
	return t.CoordinateScheme != CoordinatesNone
}

// CleanRecord is a validated incident ready for aggregation.
type CleanRecord struct {
	ReportedDate    time.Time `json:"reportedDate"`
	Latitude        *float64  `json:"lat,omitempty"`
	Longitude       *float64  `json:"lng,omitempty"`
	MonthName       string    `json:"monthName"`
	Neighborhood    string    `json:"neighborhood"`
	OffenseCategory string    `json:"category"`
	OffenseType     string    `json:"type"`
	Severity        Severity  `json:"severity,omitempty"`
	Year            int       `json:"year"`
	Month           int       `json:"month"`
}

// HasCoordinates reports whether both coordinates are present.
func (r *CleanRecord) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}
