// ABOUTME: CLI command for showing a patient profile with risk assessment.
// ABOUTME: Renders status classification, risk meters, factors, and trends.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/healthtwin/internal/models"
	"github.com/harperreed/healthtwin/internal/risk"
	"github.com/spf13/cobra"
)

var showTrend bool

var showCmd = &cobra.Command{
	Use:     "show <patient-id>",
	Aliases: []string{"s"},
	Short:   "Show a patient profile and risk assessment",
	Long: `Show a patient's profile, current health status, and risk assessment.

The assessment always includes clinical-history scoring. When the patient
has imported wearable data, a second wearable-based assessment is shown
using the latest value of each device parameter.

EXAMPLES:

  healthtwin show P001
  healthtwin show P001 --trend    # Include measurement history table`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := store.Get(args[0])
		if err != nil {
			return fmt.Errorf("patient not found: %s", args[0])
		}

		printProfile(p)

		if snap, ok := p.LatestSnapshot(); ok {
			printStatus(snap)
		}

		printClinicalAssessment(p)

		if len(p.WearableSeries) > 0 {
			printWearableAssessment(p)
		}

		if showTrend {
			printTrend(p)
		}

		return nil
	},
}

func printProfile(p *models.PatientRecord) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Printf("%s\n", p.Name)
	fmt.Printf("  %s  %.0f years, %s\n", faint.Sprint(p.PatientID), p.Age, p.Gender)
	fmt.Printf("  Height %.0f cm, Weight %.1f kg, BMI %.1f\n", p.HeightCM, p.WeightKG, p.BMI)

	h := p.MedicalHistory
	var flags []string
	if h.FamilyDiabetes {
		flags = append(flags, "family diabetes")
	}
	if h.FamilyHeart {
		flags = append(flags, "family heart disease")
	}
	if h.Smoking {
		flags = append(flags, "smoker")
	}
	flags = append(flags, fmt.Sprintf("%s activity", h.PhysicalActivity))
	fmt.Printf("  History: %s\n", joinComma(flags))
	fmt.Printf("  %d measurements, %d wearable samples\n", len(p.History), len(p.WearableSeries))
}

func printStatus(snap models.MeasurementSnapshot) {
	fmt.Println()
	color.New(color.Bold).Printf("Current Status (%s)\n", snap.Date.Format("2006-01-02"))

	for _, ms := range risk.SnapshotStatus(snap) {
		status := color.GreenString(ms.Status)
		if ms.Elevated {
			status = color.RedString(ms.Status)
		}
		unit := ms.Unit
		if unit != "" {
			unit = " " + unit
		}
		fmt.Printf("  %s %.1f%s  %s\n", padRight(ms.Name, 16), ms.Value, unit, status)
	}
}

func printClinicalAssessment(p *models.PatientRecord) {
	diabetes := risk.DiabetesFromHistory(p)
	heart := risk.HeartFromHistory(p)

	fmt.Println()
	color.New(color.Bold).Println("Risk Assessment (clinical history)")
	printRiskMeter("Diabetes", diabetes)
	printFactors(risk.KeyFactors(risk.Diabetes, diabetes))
	printRiskMeter("Heart Disease", heart)
	printFactors(risk.KeyFactors(risk.HeartDisease, heart))

	if recs := risk.GeneralRecommendations(diabetes, heart); len(recs) > 0 {
		fmt.Println()
		color.New(color.Bold).Println("Recommendations")
		for _, r := range recs {
			fmt.Printf("  • %s\n", r)
		}
	}
}

func printWearableAssessment(p *models.PatientRecord) {
	summary := risk.Summarize(p)
	diabetes := risk.DiabetesFromWearable(p, summary)
	heart := risk.HeartFromWearable(p, summary)

	fmt.Println()
	color.New(color.Bold).Printf("Risk Assessment (wearable, %d samples)\n", summary.SampleCount)
	printRiskMeter("Diabetes", diabetes)
	printRiskMeter("Heart Disease", heart)

	if recs := risk.WearableRecommendations(diabetes, heart, summary); len(recs) > 0 {
		fmt.Println()
		color.New(color.Bold).Println("Wearable Insights")
		for _, r := range recs {
			fmt.Printf("  • %s\n", r)
		}
	}
}

// printRiskMeter renders a 20-segment bar, colored by risk category.
func printRiskMeter(label string, score int) {
	category := risk.Categorize(score)
	filled := score / 5
	bar := ""
	for i := 0; i < 20; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	fmt.Printf("  %s %s %3d  %s\n",
		padRight(label, 14),
		riskColor(category).Sprint(bar),
		score,
		riskColor(category).Sprint(string(category)))
}

func printFactors(factors []string) {
	faint := color.New(color.Faint)
	for _, f := range factors {
		fmt.Printf("    %s\n", faint.Sprintf("- %s", f))
	}
}

func printTrend(p *models.PatientRecord) {
	if len(p.History) == 0 {
		return
	}

	fmt.Println()
	color.New(color.Bold).Println("Measurement History")
	faint := color.New(color.Faint)
	fmt.Printf("  %s\n", faint.Sprint("DATE        GLUCOSE  SYS/DIA  CHOL  HDL  TRIG  WEIGHT  BMI"))
	for _, snap := range p.History {
		fmt.Printf("  %s  %7.0f  %3.0f/%3.0f  %4.0f  %3.0f  %4.0f  %6.1f  %4.1f\n",
			snap.Date.Format("2006-01-02"),
			snap.BloodGlucose,
			snap.SystolicBP, snap.DiastolicBP,
			snap.Cholesterol, snap.HDL, snap.Triglycerides,
			snap.WeightKG, snap.BMI)
	}
}

func joinComma(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

func init() {
	showCmd.Flags().BoolVar(&showTrend, "trend", false, "include measurement history table")
	rootCmd.AddCommand(showCmd)
}
