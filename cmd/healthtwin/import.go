// ABOUTME: CLI command for importing wearable CSV data.
// ABOUTME: Auto-maps columns, ingests best-effort, and writes a batch backup.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/healthtwin/internal/models"
	"github.com/harperreed/healthtwin/internal/storage"
	"github.com/harperreed/healthtwin/internal/wearable"
	"github.com/spf13/cobra"
)

var (
	importTimestampColumn string
	importMapOverrides    []string
)

var importCmd = &cobra.Command{
	Use:   "import <patient-id> <file.csv>",
	Short: "Import wearable data from a CSV file",
	Long: `Import wearable device data from a CSV export.

COLUMN MAPPING:

  Device parameters (blood_glucose, systolic_bp, diastolic_bp, heart_rate,
  steps, sleep, calories, oxygen_level) are matched to CSV columns
  automatically: an exact column name wins, otherwise the first column
  containing the parameter name (case-insensitive) is used. Unmatched
  parameters are skipped.

  Use --map to override any single mapping, or --timestamp-column when
  the time column isn't named "timestamp".

BEST-EFFORT INGESTION:

  Rows with unparseable timestamps are dropped. Non-numeric cells drop
  just that field, the rest of the row is kept. The import never aborts
  over individual bad rows.

  A flat CSV backup of each imported batch is written under the data
  directory's wearable_data folder.

EXAMPLES:

  healthtwin import P001 tracker.csv
  healthtwin import P001 fitbit.csv --timestamp-column recorded_at
  healthtwin import P001 watch.csv --map heart_rate=hr_bpm --map steps=step_count`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		patientID, filename := args[0], args[1]

		f, err := os.Open(filename)
		if err != nil {
			return fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close()

		table, err := wearable.ReadCSV(f)
		if err != nil {
			return fmt.Errorf("error processing the uploaded file: %w\nPlease check your data format and try again", err)
		}

		tsColumn := importTimestampColumn
		if tsColumn == "" {
			tsColumn = wearable.DetectTimestampColumn(table.Columns)
			if tsColumn == "" {
				tsColumn = wearable.TimestampColumn
			}
		}

		mapping := wearable.AutoMap(table.Columns)
		if err := applyMapOverrides(mapping, table.Columns, importMapOverrides); err != nil {
			return err
		}

		samples, report, err := wearable.Ingest(table, tsColumn, mapping, patientID)
		if err != nil {
			return fmt.Errorf("error processing the uploaded file: %w\nPlease check your data format and try again", err)
		}

		err = storage.Update(store, patientID, func(p *models.PatientRecord) error {
			p.AddWearableSamples(samples)
			return nil
		})
		if err != nil {
			if err == storage.ErrNotFound {
				return fmt.Errorf("patient not found: %s", patientID)
			}
			return fmt.Errorf("failed to save wearable data: %w", err)
		}

		backupPath := filepath.Join(cfg.WearableDir(), report.BackupFileName(patientID))
		if err := writeBatchBackup(backupPath, samples); err != nil {
			// Data is already merged and saved, a failed backup is not fatal
			fmt.Fprintf(os.Stderr, "warning: failed to write backup: %v\n", err)
		}

		color.Green("✓ Imported %d wearable records for %s", report.Imported, patientID)
		faint := color.New(color.Faint)
		if report.DroppedRows > 0 || report.DroppedFields > 0 {
			fmt.Printf("  %s\n", faint.Sprintf("dropped %d rows (bad timestamps), %d fields (bad values)",
				report.DroppedRows, report.DroppedFields))
		}
		fmt.Printf("  %s\n", faint.Sprintf("backup: %s", backupPath))

		return nil
	},
}

// applyMapOverrides applies param=column pairs on top of the auto mapping.
func applyMapOverrides(mapping wearable.Mapping, columns []string, overrides []string) error {
	for _, o := range overrides {
		parts := strings.SplitN(o, "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return fmt.Errorf("invalid --map value: %s (use parameter=column)", o)
		}
		param := models.Parameter(parts[0])
		valid := false
		for _, p := range models.AllParameters {
			if p == param {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown parameter: %s", parts[0])
		}
		found := false
		for _, c := range columns {
			if c == parts[1] {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("column not in file: %s", parts[1])
		}
		mapping[param] = parts[1]
	}
	return nil
}

func writeBatchBackup(path string, samples []models.WearableSample) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return wearable.WriteBackup(f, samples)
}

func init() {
	importCmd.Flags().StringVar(&importTimestampColumn, "timestamp-column", "", "CSV column holding the sample timestamp")
	importCmd.Flags().StringArrayVar(&importMapOverrides, "map", nil, "override a column mapping (parameter=column)")

	rootCmd.AddCommand(importCmd)
}
