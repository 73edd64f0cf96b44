package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sadopc/swimlog/internal/practice"
)

type jsonExport struct {
	ExportedAt string              `json:"exported_at"`
	Unit       string              `json:"unit"`
	Count      int                 `json:"count"`
	Statistics practice.Statistics `json:"statistics"`
	Practices  []jsonPractice      `json:"practices"`
}

type jsonPractice struct {
	ID              int64   `json:"id"`
	Date            string  `json:"date"`
	MainStroke      string  `json:"main_stroke"`
	DurationMinutes int     `json:"duration_minutes"`
	Duration        string  `json:"duration"`
	TotalDistance   float64 `json:"total_distance"`
	Notes           string  `json:"notes,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func ToJSON(records []practice.Record, unit, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	defer f.Close()

	if err := WriteJSON(f, records, unit); err != nil {
		return err
	}
	return f.Close()
}

// WriteJSON writes records and their aggregate statistics to w as indented
// JSON.
func WriteJSON(w io.Writer, records []practice.Record, unit string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Unit:       unit,
		Count:      len(records),
		Statistics: practice.Aggregate(records),
	}

	for _, r := range records {
		notes := ""
		if r.Notes != nil {
			notes = *r.Notes
		}
		export.Practices = append(export.Practices, jsonPractice{
			ID:              r.ID,
			Date:            practice.FormatDate(r.Date),
			MainStroke:      r.MainStroke.String(),
			DurationMinutes: r.DurationMinutes,
			Duration:        formatMinutes(r.DurationMinutes),
			TotalDistance:   r.TotalDistance,
			Notes:           notes,
			CreatedAt:       r.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
