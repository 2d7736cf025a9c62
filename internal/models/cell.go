package models

import (
	"strconv"
	"strings"
	"time"
)

// CellKind tags the native type of a value read from the source table.
type CellKind int

// Cell kinds.
const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellTime
)

// String returns the kind name.
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellText:
		return "text"
	case CellNumber:
		return "number"
	case CellTime:
		return "time"
	default:
		return "unknown"
	}
}

// Cell is one raw value from the source table. Only the field matching Kind is meaningful.
type Cell struct {
	Time   time.Time
	Text   string
	Number float64
	Kind   CellKind
}

// TextCell builds a text cell. Blank input yields an empty cell.
func TextCell(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Cell{Kind: CellEmpty}
	}

	return Cell{Kind: CellText, Text: s}
}

// StringCell builds a text cell that keeps whitespace-only values. Only the
// empty string yields an empty cell.
func StringCell(s string) Cell {
	if s == "" {
		return Cell{Kind: CellEmpty}
	}

	return Cell{Kind: CellText, Text: s}
}

// NumberCell builds a numeric cell.
func NumberCell(f float64) Cell {
	return Cell{Kind: CellNumber, Number: f}
}

// TimeCell builds a native date cell.
func TimeCell(t time.Time) Cell {
	return Cell{Kind: CellTime, Time: t}
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String renders the cell value the way it would appear in the source sheet.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellTime:
		return c.Time.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}
