// ABOUTME: Fixed explanation and recommendation text per condition and band.
// ABOUTME: Lookup by risk band, not by which rules actually fired.
package risk

import (
	"fmt"

	"github.com/harperreed/healthtwin/internal/models"
)

// KeyFactors returns the canned risk factor text for a condition at the
// given score. The text is a fixed lookup by risk band rather than being
// derived from the rules that fired; scores under 40 have no factor list.
func KeyFactors(condition Condition, score int) []string {
	if score < 40 {
		return nil
	}

	high := score >= 70
	switch condition {
	case Diabetes:
		if high {
			return []string{
				"High blood glucose",
				"Elevated BMI",
				"Family history",
				"Insufficient physical activity",
			}
		}
		return []string{
			"Slightly elevated blood glucose",
			"Above optimal BMI",
			"Age factor",
		}
	case HeartDisease:
		if high {
			return []string{
				"High blood pressure",
				"Elevated cholesterol",
				"Smoking",
				"Family history",
			}
		}
		return []string{
			"Slightly elevated blood pressure",
			"Borderline cholesterol levels",
			"Age factor",
		}
	}
	return nil
}

// GeneralRecommendations returns lifestyle advice for a clinical
// assessment. Scores over 50 for either condition trigger targeted
// advice; otherwise generic healthy-habit suggestions.
func GeneralRecommendations(diabetesScore, heartScore int) []string {
	if diabetesScore <= 50 && heartScore <= 50 {
		return []string{
			"Regular exercise (150 minutes per week)",
			"Balanced diet rich in fruits and vegetables",
			"Regular health check-ups",
		}
	}

	var recs []string
	if diabetesScore > 50 {
		recs = append(recs,
			"Monitor blood glucose levels regularly",
			"Reduce sugar and refined carbohydrate intake",
			"Maintain regular physical activity (30 minutes, 5 days a week)",
		)
	}
	if heartScore > 50 {
		recs = append(recs,
			"Monitor blood pressure regularly",
			"Reduce sodium intake",
			"Consider consulting with a cardiologist",
		)
	}
	return recs
}

// WearableRecommendations returns advice for a wearable-based assessment,
// combining band-based text with data-driven lines from the summary.
func WearableRecommendations(diabetesScore, heartScore int, s Summary) []string {
	var recs []string

	switch {
	case diabetesScore >= 70:
		recs = append(recs,
			"Your wearable data indicates high risk for diabetes. Consider consulting with an endocrinologist.",
			"Monitor your blood glucose levels carefully and maintain a consistent meal schedule.",
			"Consider adopting a low-glycemic diet with limited processed carbohydrates.",
		)
	case diabetesScore >= 40:
		recs = append(recs,
			"Your wearable data shows moderate risk for diabetes. Consider increasing physical activity.",
			"Try to reduce intake of sugary foods and beverages.",
		)
	}

	switch {
	case heartScore >= 70:
		recs = append(recs,
			"Your wearable data indicates high risk for heart disease. Consider consulting with a cardiologist.",
			"Monitor your blood pressure regularly and consider stress reduction techniques.",
		)
	case heartScore >= 40:
		recs = append(recs,
			"Your wearable data shows moderate risk for heart disease. Consider adding cardiovascular exercise to your routine.",
			"Focus on a heart-healthy diet with reduced sodium and saturated fats.",
		)
	}

	if s.HasSteps && s.MeanSteps < 5000 {
		recs = append(recs, fmt.Sprintf(
			"Your average daily step count (%.0f) is lower than recommended. Aim for at least 10,000 steps daily.", s.MeanSteps))
	}
	if glucose, ok := s.Latest[models.ParamBloodGlucose]; ok && glucose > 140 {
		recs = append(recs, fmt.Sprintf(
			"Your blood glucose level (%.1f mg/dL) is elevated. Consider dietary changes to reduce sugar intake.", glucose))
	}
	sys, hasSys := s.Latest[models.ParamSystolicBP]
	dia, hasDia := s.Latest[models.ParamDiastolicBP]
	if hasSys && hasDia && (sys > 130 || dia > 80) {
		recs = append(recs, fmt.Sprintf(
			"Your blood pressure (%.0f/%.0f mmHg) is higher than optimal. Consider reducing sodium intake.", sys, dia))
	}

	return recs
}
