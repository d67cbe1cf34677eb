// Package report renders run summaries as aligned text tables.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"fashionetl/internal/load"
)

// Summary describes the outcome of one pipeline run.
type Summary struct {
	Extracted   int
	Transformed int
	Result      *load.Result
	Duration    time.Duration
}

// Render formats the summary as a pipe-delimited table with columns padded
// to their display width.
func Render(s Summary) string {
	rows := [][]string{
		{"Stage / Destination", "Outcome"},
		{"Extracted records", fmt.Sprintf("%d", s.Extracted)},
		{"Transformed records", fmt.Sprintf("%d", s.Transformed)},
	}

	if s.Result != nil {
		rows = append(rows,
			destinationRow("CSV", s.Result.CSVPath, s.Result.CSVError),
			destinationRow("Google Sheets", s.Result.SheetsID, s.Result.SheetsError),
			destinationRow("PostgreSQL", boolOutcome(s.Result.PostgresOK), s.Result.PostgresError),
		)
	}

	rows = append(rows, []string{"Total duration", s.Duration.Round(time.Millisecond).String()})

	return renderTable(rows)
}

func destinationRow(name, value, errMsg string) []string {
	switch {
	case errMsg != "":
		return []string{name, "FAILED: " + errMsg}
	case value != "":
		return []string{name, value}
	default:
		return []string{name, "skipped"}
	}
}

func boolOutcome(ok bool) string {
	if ok {
		return "written"
	}

	return ""
}

// renderTable pads each column to the widest cell, measured in display
// width so wide runes stay aligned, and inserts a separator under the
// header row.
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	colWidths := make([]int, colCount)

	for _, row := range rows {
		for i := 0; i < len(row) && i < colCount; i++ {
			width := runewidth.StringWidth(row[i])
			if width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	var b strings.Builder

	for rowIdx, row := range rows {
		b.WriteString("|")

		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			padding := colWidths[i] - runewidth.StringWidth(cell)
			b.WriteString(" ")
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", padding))
			b.WriteString(" |")
		}

		b.WriteString("\n")

		if rowIdx == 0 {
			b.WriteString("|")

			for i := 0; i < colCount; i++ {
				b.WriteString(strings.Repeat("-", colWidths[i]+2))
				b.WriteString("|")
			}

			b.WriteString("\n")
		}
	}

	return b.String()
}
