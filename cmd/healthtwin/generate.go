// ABOUTME: CLI command for generating sample wearable data.
// ABOUTME: Produces a 7-day synthetic series and imports it like a CSV batch.
package main

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harperreed/healthtwin/internal/models"
	"github.com/harperreed/healthtwin/internal/storage"
	"github.com/harperreed/healthtwin/internal/wearable"
	"github.com/spf13/cobra"
)

var generateSeed int64

var generateCmd = &cobra.Command{
	Use:   "generate <patient-id>",
	Short: "Generate sample wearable data",
	Long: `Generate 7 days of synthetic wearable data for a patient.

Produces 56 samples at 3-hour spacing ending now, covering heart rate,
blood glucose, blood pressure, oxygen level, and steps. The series
randomly leans healthy or unhealthy, so repeated runs exercise different
risk outcomes. This exists to try out the import and scoring pipeline
without a real device export.

EXAMPLES:

  healthtwin generate P001
  healthtwin generate P001 --seed 42    # Reproducible series`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patientID := args[0]

		seed := generateSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))

		samples := wearable.Generate(patientID, time.Now(), rng)

		err := storage.Update(store, patientID, func(p *models.PatientRecord) error {
			p.AddWearableSamples(samples)
			return nil
		})
		if err != nil {
			if err == storage.ErrNotFound {
				return fmt.Errorf("patient not found: %s", patientID)
			}
			return fmt.Errorf("failed to save wearable data: %w", err)
		}

		report := &wearable.Report{BatchID: uuid.New(), Imported: len(samples)}
		backupPath := filepath.Join(cfg.WearableDir(), report.BackupFileName(patientID))
		if err := writeBatchBackup(backupPath, samples); err != nil {
			fmt.Printf("warning: failed to write backup: %v\n", err)
		}

		color.Green("✓ Generated %d sample records for %s", len(samples), patientID)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprintf("backup: %s", backupPath))

		return nil
	},
}

func init() {
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "random seed (0 = time-based)")
	rootCmd.AddCommand(generateCmd)
}
