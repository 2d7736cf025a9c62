package loader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"crimeprep/internal/models"
)

type workbook struct {
	f        *excelize.File
	sheet    string
	date1904 bool
}

func (l *Loader) loadXLSX(path string) (*models.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := l.input.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	} else if !slices.Contains(f.GetSheetList(), sheet) {
		return nil, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, sheet, path)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	hdr, err := headerRow(rows)
	if err != nil {
		return nil, fmt.Errorf("%w in sheet %q", err, sheet)
	}

	wb := workbook{f: f, sheet: sheet}
	if props, propsErr := f.GetWorkbookProps(); propsErr == nil && props.Date1904 != nil {
		wb.date1904 = *props.Date1904
	}

	idx := resolveColumns(rows[hdr], l.input.Columns)
	table := &models.Table{
		Source:  path,
		Columns: rows[hdr],
	}
	idx.apply(table)

	for i := hdr + 1; i < len(rows); i++ {
		row := rows[i]
		if blankRow(row) {
			continue
		}

		table.Records = append(table.Records, models.RawRecord{
			ReportedDate:    wb.dateCell(row, idx.date, i),
			Neighborhood:    wb.neighborhoodCell(row, idx.hood, i),
			OffenseCategory: models.TextCell(cellAt(row, idx.category)),
			OffenseType:     models.TextCell(cellAt(row, idx.offense)),
			X:               wb.typedCell(row, idx.x, i),
			Y:               wb.typedCell(row, idx.y, i),
			Row:             i + 1,
		})
	}

	return table, nil
}

// typedCell distinguishes stored strings from numeric cells. Raw values of
// numeric cells carry no type information on their own.
func (wb workbook) typedCell(row []string, col, rowIdx int) models.Cell {
	raw := cellAt(row, col)
	if strings.TrimSpace(raw) == "" {
		return models.Cell{Kind: models.CellEmpty}
	}

	name, err := excelize.CoordinatesToCellName(col+1, rowIdx+1)
	if err != nil {
		return models.TextCell(raw)
	}

	typ, err := wb.f.GetCellType(wb.sheet, name)
	if err != nil {
		return models.TextCell(raw)
	}

	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if v, parseErr := strconv.ParseFloat(strings.TrimSpace(raw), 64); parseErr == nil {
			return models.NumberCell(v)
		}
	}

	return models.TextCell(raw)
}

// neighborhoodCell is typedCell except that whitespace-only text is kept, so it
// normalizes to an empty name instead of defaulting to Unknown.
func (wb workbook) neighborhoodCell(row []string, col, rowIdx int) models.Cell {
	c := wb.typedCell(row, col, rowIdx)
	if c.IsEmpty() {
		return models.StringCell(cellAt(row, col))
	}

	return c
}

// dateCell turns numeric date cells into native times using the workbook epoch.
func (wb workbook) dateCell(row []string, col, rowIdx int) models.Cell {
	c := wb.typedCell(row, col, rowIdx)
	if c.Kind != models.CellNumber {
		return c
	}

	t, err := excelize.ExcelDateToTime(c.Number, wb.date1904)
	if err != nil {
		return c
	}

	return models.TimeCell(t)
}
