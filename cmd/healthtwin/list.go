// ABOUTME: CLI command for listing patient profiles.
// ABOUTME: One line per patient with demographics and risk categories.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/healthtwin/internal/models"
	"github.com/harperreed/healthtwin/internal/risk"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List patient profiles",
	Long: `List all patient profiles.

OUTPUT FORMAT:

  Each line shows: ID  NAME  AGE/GENDER  BMI  DIABETES-RISK  HEART-RISK

  Risk categories come from clinical history scoring. Patients with no
  recorded measurements show the neutral Moderate Risk default.

EXAMPLES:

  healthtwin list
  healthtwin ls`,
	RunE: func(cmd *cobra.Command, args []string) error {
		patients, err := store.LoadAll()
		if err != nil {
			return fmt.Errorf("failed to list patients: %w", err)
		}

		if len(patients) == 0 {
			fmt.Println("No patients found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, p := range patients {
			diabetes := risk.Categorize(risk.DiabetesFromHistory(p))
			heart := risk.Categorize(risk.HeartFromHistory(p))
			fmt.Printf("%s %s %s BMI %.1f  %s  %s\n",
				faint.Sprint(padRight(p.PatientID, 10)),
				padRight(truncate(p.Name, 24), 24),
				faint.Sprintf("%.0f/%s", p.Age, genderAbbrev(p.Gender)),
				p.BMI,
				riskColor(diabetes).Sprintf("D:%s", diabetes),
				riskColor(heart).Sprintf("H:%s", heart))
		}

		return nil
	},
}

func riskColor(c risk.Category) *color.Color {
	switch c {
	case risk.HighRisk:
		return color.New(color.FgRed)
	case risk.ModerateRisk:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func genderAbbrev(g models.Gender) string {
	if g == "" {
		return "?"
	}
	return string(g)[:1]
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	rootCmd.AddCommand(listCmd)
}
