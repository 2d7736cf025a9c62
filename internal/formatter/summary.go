// Package formatter renders console reports as aligned markdown tables.
package formatter

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"crimeprep/internal/aggregator"
	"crimeprep/pkg/utils"
)

// maxNeighborhoodWidth caps the busiest-neighborhood column.
const maxNeighborhoodWidth = 28

var summaryHeader = []string{"Year", "Month", "Incidents", "Neighborhoods", "Busiest"}

// SummaryTable renders per-month totals as a markdown table, one row per month.
func SummaryTable(totals []aggregator.MonthTotal) string {
	rows := [][]string{summaryHeader}

	incidents := 0

	for _, t := range totals {
		busiest := ""
		if t.TopNeighborhood != "" {
			busiest = utils.TruncateString(t.TopNeighborhood, maxNeighborhoodWidth) +
				" (" + strconv.Itoa(t.TopNeighborhoodN) + ")"
		}

		rows = append(rows, []string{
			strconv.Itoa(t.Year),
			aggregator.MonthKey(t.Month) + " " + t.MonthName,
			strconv.Itoa(t.Incidents),
			strconv.Itoa(t.Neighborhoods),
			busiest,
		})
		incidents += t.Incidents
	}

	rows = append(rows, []string{"Total", "", strconv.Itoa(incidents), "", ""})

	return strings.Join(renderTable(rows), "\n")
}

// renderTable pads every cell to its column's display width and inserts a
// separator after the header row.
func renderTable(table [][]string) []string {
	colCount := 0
	for _, row := range table {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	colWidths := make([]int, colCount)

	for _, row := range table {
		for i, cell := range row {
			if width := runewidth.StringWidth(cell); width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	result := make([]string, 0, len(table)+1)

	for i, row := range table {
		result = append(result, renderRow(row, colWidths))

		if i == 0 {
			sep := make([]string, colCount)
			for j := range sep {
				sep[j] = strings.Repeat("-", colWidths[j])
			}

			result = append(result, renderRow(sep, colWidths))
		}
	}

	return result
}

func renderRow(row []string, colWidths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, width := range colWidths {
		content := ""
		if j < len(row) {
			content = row[j]
		}

		sb.WriteString(" ")
		sb.WriteString(content)

		if padding := width - runewidth.StringWidth(content); padding > 0 {
			sb.WriteString(strings.Repeat(" ", padding))
		}

		sb.WriteString(" |")
	}

	return sb.String()
}
