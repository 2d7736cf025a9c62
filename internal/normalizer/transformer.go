package normalizer

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"crimeprep/internal/models"
	"crimeprep/pkg/utils"
)

// Rejection explains why a row was dropped.
type Rejection int

// Rejection reasons.
const (
	Accepted Rejection = iota
	RejectInvalidDate
	RejectMissingCoordinates
)

// dateLayouts are tried in order against upper-cased, trimmed text.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	time.RFC3339,
	time.RFC3339Nano,
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 3:04 PM",
	"1/2/2006 3:04:05 PM",
	"2006/01/02",
	"2006/01/02 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02-Jan-2006",
}

// Transformer cleans individual raw records.
type Transformer struct {
	requireCoordinates bool
	enrichSeverity     bool
}

// NewTransformer creates a transformer. requireCoordinates drops rows lacking either coordinate.
func NewTransformer(requireCoordinates, enrichSeverity bool) *Transformer {
	return &Transformer{
		requireCoordinates: requireCoordinates,
		enrichSeverity:     enrichSeverity,
	}
}

// Transform converts a raw record. A non-Accepted rejection means the row is dropped.
func (t *Transformer) Transform(raw models.RawRecord) (models.CleanRecord, Rejection) {
	reported, ok := ParseDate(raw.ReportedDate)
	if !ok {
		return models.CleanRecord{}, RejectInvalidDate
	}

	lat, lng := ParseCoordinate(raw.Y), ParseCoordinate(raw.X)
	if t.requireCoordinates && (lat == nil || lng == nil) {
		return models.CleanRecord{}, RejectMissingCoordinates
	}

	hood := raw.Neighborhood
	if hood.IsEmpty() {
		hood = models.TextCell(models.Unknown)
	}

	rec := models.CleanRecord{
		ReportedDate:    reported,
		Year:            reported.Year(),
		Month:           int(reported.Month()),
		MonthName:       reported.Format("Jan"),
		Neighborhood:    Normalize(hood).String(),
		OffenseCategory: textOrUnknown(raw.OffenseCategory),
		OffenseType:     textOrUnknown(raw.OffenseType),
		Latitude:        lat,
		Longitude:       lng,
	}

	if t.enrichSeverity {
		rec.Severity, _ = SeverityOf(rec.OffenseCategory)
	}

	return rec, Accepted
}

// ParseDate reads a calendar date from a native, serial or text cell.
func ParseDate(c models.Cell) (time.Time, bool) {
	switch c.Kind {
	case models.CellTime:
		return c.Time, validYear(c.Time)
	case models.CellNumber:
		t, err := excelize.ExcelDateToTime(c.Number, false)
		if err != nil {
			return time.Time{}, false
		}

		return t, validYear(t)
	case models.CellText:
		s := strings.ToUpper(strings.TrimSpace(c.Text))
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, validYear(t)
			}
		}
	}

	return time.Time{}, false
}

// ParseCoordinate coerces a cell to a finite float. Anything else yields nil.
func ParseCoordinate(c models.Cell) *float64 {
	var v float64

	switch c.Kind {
	case models.CellNumber:
		v = c.Number
	case models.CellText:
		s := strings.ReplaceAll(strings.TrimSpace(c.Text), ",", "")

		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}

		v = f
	default:
		return nil
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}

	return &v
}

func textOrUnknown(c models.Cell) string {
	return utils.FirstNonEmpty(c.String(), models.Unknown)
}

func validYear(t time.Time) bool {
	return !t.IsZero() && t.Year() >= 1 && t.Year() <= 9999
}
