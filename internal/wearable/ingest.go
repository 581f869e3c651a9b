// ABOUTME: Best-effort ingestion of tabular rows into wearable samples.
// ABOUTME: Bad timestamps drop the row, bad cells drop only that field.
package wearable

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/healthtwin/internal/models"
)

// timestampFormats are tried in order when parsing timestamp cells.
var timestampFormats = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses a timestamp cell in any of the accepted formats.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, f := range timestampFormats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", s)
}

// Report summarizes one ingestion batch. Dropped counts make the
// best-effort behavior visible instead of silently discarding input.
type Report struct {
	BatchID       uuid.UUID
	Imported      int
	DroppedRows   int
	DroppedFields int
}

// BackupFileName names the per-batch backup export for a patient.
func (r *Report) BackupFileName(patientID string) string {
	return fmt.Sprintf("%s_%s_wearable.csv", patientID, r.BatchID.String()[:8])
}

// Ingest converts table rows into wearable samples for a patient using
// the given column mapping. Rows whose timestamp cell fails to parse are
// dropped; cells that fail numeric coercion drop only that field, keeping
// the rest of the row. Output order matches input row order; nothing is
// sorted here. The batch never fails as a whole on bad data.
func Ingest(table *Table, tsColumn string, mapping Mapping, patientID string) ([]models.WearableSample, *Report, error) {
	tsIdx := table.columnIndex(tsColumn)
	if tsIdx < 0 {
		return nil, nil, fmt.Errorf("timestamp column %q not found", tsColumn)
	}

	colIdx := make(map[models.Parameter]int, len(mapping))
	for p, col := range mapping {
		if col == "" {
			continue
		}
		if idx := table.columnIndex(col); idx >= 0 {
			colIdx[p] = idx
		}
	}

	report := &Report{BatchID: uuid.New()}
	var samples []models.WearableSample

	for _, row := range table.Rows {
		ts, err := ParseTimestamp(cell(row, tsIdx))
		if err != nil {
			report.DroppedRows++
			continue
		}

		sample := models.WearableSample{Timestamp: ts, PatientID: patientID}
		for _, p := range models.AllParameters {
			idx, ok := colIdx[p]
			if !ok {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(cell(row, idx)), 64)
			if err != nil {
				report.DroppedFields++
				continue
			}
			sample.SetValue(p, v)
		}

		samples = append(samples, sample)
		report.Imported++
	}

	return samples, report, nil
}
