package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"crimeprep/internal/models"
)

func (l *Loader) loadCSV(path string) (*models.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer func() { _ = file.Close() }()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	// The reader skips empty lines, so source line numbers are tracked per record.
	var (
		rows  [][]string
		lines []int
	)

	for {
		row, readErr := r.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}

		if readErr != nil {
			return nil, fmt.Errorf("failed to read csv: %w", readErr)
		}

		line, _ := r.FieldPos(0)
		rows = append(rows, row)
		lines = append(lines, line)
	}

	hdr, err := headerRow(rows)
	if err != nil {
		return nil, fmt.Errorf("%w in %s", err, path)
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
			ReportedDate:    models.TextCell(cellAt(row, idx.date)),
			Neighborhood:    models.StringCell(cellAt(row, idx.hood)),
			OffenseCategory: models.TextCell(cellAt(row, idx.category)),
			OffenseType:     models.TextCell(cellAt(row, idx.offense)),
			X:               models.TextCell(cellAt(row, idx.x)),
			Y:               models.TextCell(cellAt(row, idx.y)),
			Row:             lines[i],
		})
	}

	return table, nil
}
