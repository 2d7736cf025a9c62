package normalizer

import (
	"errors"

	"crimeprep/internal/models"
)

// Table precondition errors. These abort the run.
var (
	ErrNilTable                  = errors.New("input table is nil")
	ErrMissingDateColumn         = errors.New("input table has no reported-date column")
	ErrMissingNeighborhoodColumn = errors.New("input table has no neighborhood column")
	ErrMissingCategoryColumn     = errors.New("point mode requires an offense-category column")
	ErrMissingTypeColumn         = errors.New("point mode requires an offense-type column")
	ErrMissingCoordinateColumns  = errors.New("point mode requires an X/Y or longitude/latitude column pair")
)

// Validator checks table-wide preconditions before any row is cleaned.
type Validator struct {
	pointMode bool
}

// NewValidator creates a validator. Point mode adds category, type and coordinate requirements.
func NewValidator(pointMode bool) *Validator {
	return &Validator{pointMode: pointMode}
}

// Validate returns the first structural problem found in the table.
func (v *Validator) Validate(table *models.Table) error {
	if table == nil {
		return ErrNilTable
	}

	if !table.HasDate {
		return ErrMissingDateColumn
	}

	if !table.HasNeighborhood {
		return ErrMissingNeighborhoodColumn
	}

	if !v.pointMode {
		return nil
	}

	if !table.HasCategory {
		return ErrMissingCategoryColumn
	}

	if !table.HasType {
		return ErrMissingTypeColumn
	}

	if !table.HasCoordinates() {
		return ErrMissingCoordinateColumns
	}

	return nil
}
