// ABOUTME: CLI command for recording new clinical measurements.
// ABOUTME: Unset flags default to the patient's most recent values.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/healthtwin/internal/models"
	"github.com/harperreed/healthtwin/internal/storage"
	"github.com/spf13/cobra"
)

var (
	updateGlucose   float64
	updateSystolic  float64
	updateDiastolic float64
	updateChol      float64
	updateHDL       float64
	updateTrig      float64
	updateWeight    float64
)

var updateCmd = &cobra.Command{
	Use:     "update <patient-id>",
	Aliases: []string{"u"},
	Short:   "Record new health measurements",
	Long: `Record a new measurement snapshot for a patient.

Any value you don't pass carries over from the patient's most recent
snapshot, so you only need to supply what changed. Weight updates
recompute BMI on both the snapshot and the profile.

Examples:
  healthtwin update P001 --glucose 128
  healthtwin update P001 --systolic 142 --diastolic 92
  healthtwin update P001 --weight 68.5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patientID := args[0]

		var recorded models.MeasurementSnapshot
		err := storage.Update(store, patientID, func(p *models.PatientRecord) error {
			m := models.Measurements{WeightKG: p.WeightKG}
			if prev, ok := p.LatestSnapshot(); ok {
				m = models.Measurements{
					BloodGlucose:  prev.BloodGlucose,
					SystolicBP:    prev.SystolicBP,
					DiastolicBP:   prev.DiastolicBP,
					Cholesterol:   prev.Cholesterol,
					HDL:           prev.HDL,
					Triglycerides: prev.Triglycerides,
					WeightKG:      prev.WeightKG,
				}
			}

			if cmd.Flags().Changed("glucose") {
				m.BloodGlucose = updateGlucose
			}
			if cmd.Flags().Changed("systolic") {
				m.SystolicBP = updateSystolic
			}
			if cmd.Flags().Changed("diastolic") {
				m.DiastolicBP = updateDiastolic
			}
			if cmd.Flags().Changed("cholesterol") {
				m.Cholesterol = updateChol
			}
			if cmd.Flags().Changed("hdl") {
				m.HDL = updateHDL
			}
			if cmd.Flags().Changed("triglycerides") {
				m.Triglycerides = updateTrig
			}
			if cmd.Flags().Changed("weight") {
				m.WeightKG = updateWeight
			}

			recorded = p.RecordMeasurement(time.Now(), m)
			return nil
		})
		if err != nil {
			if err == storage.ErrNotFound {
				return fmt.Errorf("patient not found: %s", patientID)
			}
			return fmt.Errorf("failed to record measurement: %w", err)
		}

		color.Green("✓ Recorded measurement for %s", patientID)
		fmt.Printf("  %s glucose %.0f, BP %.0f/%.0f, BMI %.1f\n",
			color.New(color.Faint).Sprint(recorded.Date.Format("2006-01-02")),
			recorded.BloodGlucose, recorded.SystolicBP, recorded.DiastolicBP, recorded.BMI)

		return nil
	},
}

func init() {
	updateCmd.Flags().Float64Var(&updateGlucose, "glucose", 0, "blood glucose (mg/dL)")
	updateCmd.Flags().Float64Var(&updateSystolic, "systolic", 0, "systolic blood pressure (mmHg)")
	updateCmd.Flags().Float64Var(&updateDiastolic, "diastolic", 0, "diastolic blood pressure (mmHg)")
	updateCmd.Flags().Float64Var(&updateChol, "cholesterol", 0, "total cholesterol (mg/dL)")
	updateCmd.Flags().Float64Var(&updateHDL, "hdl", 0, "HDL cholesterol (mg/dL)")
	updateCmd.Flags().Float64Var(&updateTrig, "triglycerides", 0, "triglycerides (mg/dL)")
	updateCmd.Flags().Float64Var(&updateWeight, "weight", 0, "weight in kg")

	rootCmd.AddCommand(updateCmd)
}
