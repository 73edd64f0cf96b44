// Package export writes practice sets to CSV and JSON files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/swimlog/internal/practice"
)

var csvHeader = []string{"ID", "Date", "Stroke", "Duration (min)", "Duration", "Distance", "Unit", "Notes", "Created"}

func ToCSV(records []practice.Record, unit, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, records, unit); err != nil {
		return err
	}
	return f.Close()
}

// WriteCSV writes records as CSV to w, header first.
func WriteCSV(w io.Writer, records []practice.Record, unit string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range records {
		notes := ""
		if r.Notes != nil {
			notes = *r.Notes
		}
		row := []string{
			strconv.FormatInt(r.ID, 10),
			practice.FormatDate(r.Date),
			r.MainStroke.String(),
			strconv.Itoa(r.DurationMinutes),
			formatMinutes(r.DurationMinutes),
			strconv.FormatFloat(r.TotalDistance, 'f', -1, 64),
			unit,
			notes,
			r.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatMinutes renders a duration in minutes as H:MM.
func formatMinutes(minutes int) string {
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
