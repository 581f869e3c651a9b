// ABOUTME: CSV reading for wearable imports and per-batch backup export.
// ABOUTME: Backup files carry timestamp, patient_id, and the batch's fields.
package wearable

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/harperreed/healthtwin/internal/models"
)

// Table holds a parsed tabular file: a header row plus data rows.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ReadCSV parses a CSV stream with a header row. Rows with a different
// field count than the header are accepted; missing cells read as empty.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty CSV file")
		}
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	var rows [][]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row: %w", err)
		}
		rows = append(rows, row)
	}

	return &Table{Columns: header, Rows: rows}, nil
}

// columnIndex returns the index of a named column, or -1.
func (t *Table) columnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// cell returns the value at (row, column index), tolerating short rows.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// WriteBackup writes a flat CSV export of one ingested batch. Columns are
// timestamp, patient_id, then whichever parameters appear in at least one
// sample of the batch, in canonical order. Row order matches the batch.
func WriteBackup(w io.Writer, samples []models.WearableSample) error {
	var present []models.Parameter
	for _, p := range models.AllParameters {
		for i := range samples {
			if _, ok := samples[i].Value(p); ok {
				present = append(present, p)
				break
			}
		}
	}

	cw := csv.NewWriter(w)
	header := []string{"timestamp", "patient_id"}
	for _, p := range present {
		header = append(header, string(p))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write backup header: %w", err)
	}

	for i := range samples {
		row := []string{
			samples[i].Timestamp.Format("2006-01-02 15:04:05"),
			samples[i].PatientID,
		}
		for _, p := range present {
			if v, ok := samples[i].Value(p); ok {
				row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write backup row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
