// ABOUTME: CLI command for creating patient profiles.
// ABOUTME: Records an optional initial measurement snapshot on creation.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/healthtwin/internal/models"
	"github.com/spf13/cobra"
)

var (
	addAge      float64
	addGender   string
	addHeight   float64
	addWeight   float64
	addActivity string

	addFamilyDiabetes bool
	addFamilyHeart    bool
	addSmoking        bool

	addGlucose   float64
	addSystolic  float64
	addDiastolic float64
	addChol      float64
	addHDL       float64
	addTrig      float64
)

var addCmd = &cobra.Command{
	Use:     "add <patient-id> <name>",
	Aliases: []string{"a"},
	Short:   "Add a patient profile",
	Long: `Add a patient profile with demographics and medical history.

An initial measurement snapshot is recorded from the clinical flags, so a
freshly added patient already has one history entry. BMI is computed from
height and weight.

Examples:
  healthtwin add P001 "Jane Doe" --age 52 --gender Female --height 165 --weight 70
  healthtwin add P002 "Alex Smith" --age 48 --gender Male --height 180 --weight 95 \
      --family-diabetes --smoking --activity Low
  healthtwin add P003 "Sam Lee" --glucose 132 --systolic 142 --diastolic 92`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		patientID, name := args[0], args[1]

		if !models.IsValidGender(addGender) {
			return fmt.Errorf("invalid gender: %s (use Male, Female, or Other)", addGender)
		}
		if !models.IsValidActivityLevel(addActivity) {
			return fmt.Errorf("invalid activity level: %s (use Low, Moderate, or High)", addActivity)
		}

		if _, err := store.Get(patientID); err == nil {
			return fmt.Errorf("patient %s already exists", patientID)
		}

		p, err := models.NewPatientRecord(patientID, name, addAge, models.Gender(addGender),
			addHeight, addWeight, models.MedicalHistory{
				FamilyDiabetes:   addFamilyDiabetes,
				FamilyHeart:      addFamilyHeart,
				Smoking:          addSmoking,
				PhysicalActivity: models.ActivityLevel(addActivity),
			})
		if err != nil {
			return err
		}

		p.RecordMeasurement(time.Now(), models.Measurements{
			BloodGlucose:  addGlucose,
			SystolicBP:    addSystolic,
			DiastolicBP:   addDiastolic,
			Cholesterol:   addChol,
			HDL:           addHDL,
			Triglycerides: addTrig,
			WeightKG:      addWeight,
		})

		if err := store.Save(p); err != nil {
			return fmt.Errorf("failed to save patient: %w", err)
		}

		color.Green("✓ Added patient %s", name)
		fmt.Printf("  %s BMI %.1f\n",
			color.New(color.Faint).Sprint(patientID),
			p.BMI)

		return nil
	},
}

func init() {
	addCmd.Flags().Float64Var(&addAge, "age", 30, "age in years")
	addCmd.Flags().StringVar(&addGender, "gender", "Other", "gender (Male, Female, Other)")
	addCmd.Flags().Float64Var(&addHeight, "height", 170, "height in cm")
	addCmd.Flags().Float64Var(&addWeight, "weight", 70, "weight in kg")
	addCmd.Flags().StringVar(&addActivity, "activity", "Moderate", "physical activity level (Low, Moderate, High)")

	addCmd.Flags().BoolVar(&addFamilyDiabetes, "family-diabetes", false, "family history of diabetes")
	addCmd.Flags().BoolVar(&addFamilyHeart, "family-heart", false, "family history of heart disease")
	addCmd.Flags().BoolVar(&addSmoking, "smoking", false, "current smoker")

	addCmd.Flags().Float64Var(&addGlucose, "glucose", 90, "blood glucose (mg/dL)")
	addCmd.Flags().Float64Var(&addSystolic, "systolic", 120, "systolic blood pressure (mmHg)")
	addCmd.Flags().Float64Var(&addDiastolic, "diastolic", 80, "diastolic blood pressure (mmHg)")
	addCmd.Flags().Float64Var(&addChol, "cholesterol", 180, "total cholesterol (mg/dL)")
	addCmd.Flags().Float64Var(&addHDL, "hdl", 50, "HDL cholesterol (mg/dL)")
	addCmd.Flags().Float64Var(&addTrig, "triglycerides", 150, "triglycerides (mg/dL)")

	rootCmd.AddCommand(addCmd)
}
