// ABOUTME: Deterministic additive risk scoring for diabetes and heart disease.
// ABOUTME: Scores from clinical history or wearable-derived latest values.
package risk

import (
	"github.com/harperreed/healthtwin/internal/models"
)

// Condition names a scored health condition.
type Condition string

const (
	Diabetes     Condition = "Diabetes"
	HeartDisease Condition = "Heart Disease"
)

// Category is the display band for a risk score.
type Category string

const (
	HighRisk     Category = "High Risk"
	ModerateRisk Category = "Moderate Risk"
	LowRisk      Category = "Low Risk"
)

// DefaultScore is returned when a patient has no clinical history.
const DefaultScore = 50

// Categorize maps a 0-100 score to its display band.
func Categorize(score int) Category {
	switch {
	case score >= 70:
		return HighRisk
	case score >= 40:
		return ModerateRisk
	default:
		return LowRisk
	}
}

func capped(score int) int {
	if score > 100 {
		return 100
	}
	return score
}

// DiabetesFromHistory scores diabetes risk from the most recent clinical
// snapshot plus the profile's age and medical history. Each factor adds a
// fixed number of points, so the score is monotonic in every factor and
// degrades gracefully when values are unmeasured (read as 0).
func DiabetesFromHistory(p *models.PatientRecord) int {
	latest, ok := p.LatestSnapshot()
	if !ok {
		return DefaultScore
	}

	score := 0

	switch {
	case latest.BMI >= 30:
		score += 30
	case latest.BMI >= 25:
		score += 20
	}

	switch {
	case latest.BloodGlucose >= 126:
		score += 40
	case latest.BloodGlucose >= 100:
		score += 20
	}

	if p.Age >= 45 {
		score += 15
	}
	if p.MedicalHistory.FamilyDiabetes {
		score += 15
	}
	if p.MedicalHistory.PhysicalActivity == models.ActivityLow {
		score += 10
	}

	return capped(score)
}

// HeartFromHistory scores heart disease risk from the most recent
// clinical snapshot plus the profile's age, gender and medical history.
func HeartFromHistory(p *models.PatientRecord) int {
	latest, ok := p.LatestSnapshot()
	if !ok {
		return DefaultScore
	}

	score := 0

	switch {
	case latest.SystolicBP >= 140 || latest.DiastolicBP >= 90:
		score += 30
	case latest.SystolicBP >= 130 || latest.DiastolicBP >= 80:
		score += 20
	}

	switch {
	case latest.Cholesterol >= 240:
		score += 20
	case latest.Cholesterol >= 200:
		score += 10
	}

	if latest.HDL < 40 {
		score += 15
	}
	if latest.Triglycerides >= 200 {
		score += 15
	}
	if ageGenderFactor(p) {
		score += 15
	}
	if p.MedicalHistory.Smoking {
		score += 20
	}
	if p.MedicalHistory.FamilyHeart {
		score += 15
	}

	return capped(score)
}

// ageGenderFactor reports the shared age/gender heart risk rule:
// male 45+, female 55+.
func ageGenderFactor(p *models.PatientRecord) bool {
	switch p.Gender {
	case models.GenderMale:
		return p.Age >= 45
	case models.GenderFemale:
		return p.Age >= 55
	default:
		return false
	}
}

// DiabetesFromWearable scores diabetes risk from wearable-derived values.
// Unlike the clinical scorer, an absent metric contributes nothing at all
// rather than being read as 0; partial data yields a partial score.
func DiabetesFromWearable(p *models.PatientRecord, s Summary) int {
	score := 0

	if glucose, ok := s.Latest[models.ParamBloodGlucose]; ok {
		switch {
		case glucose >= 126:
			score += 40
		case glucose >= 100:
			score += 20
		}
	}

	switch {
	case p.BMI >= 30:
		score += 30
	case p.BMI >= 25:
		score += 20
	}

	if s.HasSteps && s.MeanSteps < 5000 {
		score += 10
	}

	if p.Age >= 45 {
		score += 15
	}

	return capped(score)
}

// HeartFromWearable scores heart disease risk from wearable-derived
// values. The blood pressure term requires both systolic and diastolic
// readings to be present.
func HeartFromWearable(p *models.PatientRecord, s Summary) int {
	score := 0

	sys, hasSys := s.Latest[models.ParamSystolicBP]
	dia, hasDia := s.Latest[models.ParamDiastolicBP]
	if hasSys && hasDia {
		switch {
		case sys >= 140 || dia >= 90:
			score += 30
		case sys >= 130 || dia >= 80:
			score += 20
		}
	}

	if hr, ok := s.Latest[models.ParamHeartRate]; ok && hr > 100 {
		score += 15
	}
	if oxygen, ok := s.Latest[models.ParamOxygenLevel]; ok && oxygen < 95 {
		score += 20
	}
	if ageGenderFactor(p) {
		score += 15
	}

	return capped(score)
}
