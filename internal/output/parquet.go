package output

import (
	"bytes"
	"fmt"
	"time"

	"github.com/parquet-go/parquet-go"

	"crimeprep/internal/models"
)

// CleanRow is the parquet schema for an exported clean record.
type CleanRow struct {
	// ReportedDate is the parsed incident date (TIMESTAMP)
	ReportedDate time.Time `parquet:"reported_date,snappy"`

	Year      int32  `parquet:"year,snappy"`
	Month     int32  `parquet:"month,snappy"`
	MonthName string `parquet:"month_name,snappy,dict"`

	// Neighborhood is the canonical display name
	Neighborhood string `parquet:"neighborhood,snappy,dict"`

	Category string `parquet:"category,snappy,dict"`
	Type     string `parquet:"type,snappy,dict"`

	// Severity is empty when enrichment is disabled (nullable)
	Severity *string `parquet:"severity,optional,snappy,dict"`

	Latitude  *float64 `parquet:"lat,optional,snappy"`
	Longitude *float64 `parquet:"lng,optional,snappy"`
}

// ToCleanRows converts records to their parquet form, preserving order.
func ToCleanRows(records []models.CleanRecord) []CleanRow {
	rows := make([]CleanRow, len(records))

	for i := range records {
		r := &records[i]
		rows[i] = CleanRow{
			ReportedDate: r.ReportedDate,
			Year:         int32(r.Year),
			Month:        int32(r.Month),
			MonthName:    r.MonthName,
			Neighborhood: r.Neighborhood,
			Category:     r.OffenseCategory,
			Type:         r.OffenseType,
			Latitude:     r.Latitude,
			Longitude:    r.Longitude,
		}

		if r.Severity != "" {
			sev := string(r.Severity)
			rows[i].Severity = &sev
		}
	}

	return rows
}

// EncodeCleanParquet renders clean records as a complete parquet file in memory.
func EncodeCleanParquet(records []models.CleanRecord) ([]byte, error) {
	var buf bytes.Buffer

	writer := parquet.NewGenericWriter[CleanRow](&buf)

	if _, err := writer.Write(ToCleanRows(records)); err != nil {
		_ = writer.Close()

		return nil, fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close parquet writer: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteCleanParquet exports clean records to a parquet file at path.
func WriteCleanParquet(path string, records []models.CleanRecord) error {
	data, err := EncodeCleanParquet(records)
	if err != nil {
		return err
	}

	return WriteFileAtomic(path, data)
}
