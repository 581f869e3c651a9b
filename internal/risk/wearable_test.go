// ABOUTME: Tests for wearable-based scoring and series summarization.
// ABOUTME: Verifies absent-field skipping and latest-value aggregation.
package risk

import (
	"testing"
	"time"

	"github.com/harperreed/healthtwin/internal/models"
)

func sampleAt(t time.Time, set func(*models.WearableSample)) models.WearableSample {
	s := models.WearableSample{Timestamp: t, PatientID: "P001"}
	set(&s)
	return s
}

func TestSummarizePicksLatestPerField(t *testing.T) {
	p := patientWith(t, 30, models.GenderOther, models.MedicalHistory{})
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	// Appended out of chronological order; latest by timestamp must win.
	p.AddWearableSamples([]models.WearableSample{
		sampleAt(base.Add(6*time.Hour), func(s *models.WearableSample) {
			s.SetValue(models.ParamHeartRate, 90)
		}),
		sampleAt(base, func(s *models.WearableSample) {
			s.SetValue(models.ParamHeartRate, 70)
			s.SetValue(models.ParamBloodGlucose, 100)
		}),
		sampleAt(base.Add(3*time.Hour), func(s *models.WearableSample) {
			s.SetValue(models.ParamSteps, 4000)
		}),
	})

	s := Summarize(p)
	if s.SampleCount != 3 {
		t.Errorf("SampleCount = %d, want 3", s.SampleCount)
	}
	if s.Latest[models.ParamHeartRate] != 90 {
		t.Errorf("latest heart_rate = %v, want 90 (from latest sample)", s.Latest[models.ParamHeartRate])
	}
	// Glucose only appears in the earliest sample; its value still surfaces.
	if s.Latest[models.ParamBloodGlucose] != 100 {
		t.Errorf("latest blood_glucose = %v, want 100", s.Latest[models.ParamBloodGlucose])
	}
	if !s.HasSteps || s.MeanSteps != 4000 {
		t.Errorf("MeanSteps = %v (has=%v), want 4000", s.MeanSteps, s.HasSteps)
	}
	if _, ok := s.Latest[models.ParamOxygenLevel]; ok {
		t.Error("oxygen_level should be absent from summary")
	}
}

func TestSummarizeMeanSteps(t *testing.T) {
	p := patientWith(t, 30, models.GenderOther, models.MedicalHistory{})
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	for i, steps := range []float64{1000, 2000, 6000} {
		p.AddWearableSamples([]models.WearableSample{
			sampleAt(base.Add(time.Duration(i)*time.Hour), func(s *models.WearableSample) {
				s.SetValue(models.ParamSteps, steps)
			}),
		})
	}
	// One sample without steps must not dilute the mean.
	p.AddWearableSamples([]models.WearableSample{
		sampleAt(base.Add(4*time.Hour), func(s *models.WearableSample) {
			s.SetValue(models.ParamHeartRate, 70)
		}),
	})

	s := Summarize(p)
	if s.MeanSteps != 3000 {
		t.Errorf("MeanSteps = %v, want 3000", s.MeanSteps)
	}
}

func TestDiabetesFromWearableSkipsAbsentFields(t *testing.T) {
	// Patient profile BMI 70/(1.7^2) ~ 24.2: below the +20 threshold.
	p := patientWith(t, 30, models.GenderOther, models.MedicalHistory{})

	// Empty wearable series: nothing contributes, unlike the clinical
	// scorer which would read missing values as 0 but still return a
	// default of 50 for missing history. The wearable score is a plain 0.
	if got := DiabetesFromWearable(p, Summarize(p)); got != 0 {
		t.Errorf("score = %d, want 0 for empty series", got)
	}

	// Glucose alone contributes; steps absence contributes nothing.
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	p.AddWearableSamples([]models.WearableSample{
		sampleAt(base, func(s *models.WearableSample) {
			s.SetValue(models.ParamBloodGlucose, 130)
		}),
	})
	if got := DiabetesFromWearable(p, Summarize(p)); got != 40 {
		t.Errorf("score = %d, want 40 (glucose 130 only)", got)
	}
}

func TestDiabetesFromWearableFullInputs(t *testing.T) {
	p := patientWith(t, 50, models.GenderOther, models.MedicalHistory{})
	p.BMI = 31
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	p.AddWearableSamples([]models.WearableSample{
		sampleAt(base, func(s *models.WearableSample) {
			s.SetValue(models.ParamBloodGlucose, 110)
			s.SetValue(models.ParamSteps, 3000)
		}),
	})

	// 20 (glucose 110) + 30 (bmi 31) + 10 (steps < 5000) + 15 (age 50) = 75
	if got := DiabetesFromWearable(p, Summarize(p)); got != 75 {
		t.Errorf("score = %d, want 75", got)
	}
}

func TestHeartFromWearableRequiresBothBPReadings(t *testing.T) {
	p := patientWith(t, 30, models.GenderOther, models.MedicalHistory{})
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	// Systolic alone: the BP term must not evaluate.
	p.AddWearableSamples([]models.WearableSample{
		sampleAt(base, func(s *models.WearableSample) {
			s.SetValue(models.ParamSystolicBP, 150)
		}),
	})
	if got := HeartFromWearable(p, Summarize(p)); got != 0 {
		t.Errorf("score = %d, want 0 with only systolic present", got)
	}

	// Adding diastolic enables the term.
	p.AddWearableSamples([]models.WearableSample{
		sampleAt(base.Add(time.Hour), func(s *models.WearableSample) {
			s.SetValue(models.ParamDiastolicBP, 95)
		}),
	})
	if got := HeartFromWearable(p, Summarize(p)); got != 30 {
		t.Errorf("score = %d, want 30 with both BP readings", got)
	}
}

func TestHeartFromWearableVitalsFactors(t *testing.T) {
	p := patientWith(t, 46, models.GenderMale, models.MedicalHistory{})
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	p.AddWearableSamples([]models.WearableSample{
		sampleAt(base, func(s *models.WearableSample) {
			s.SetValue(models.ParamHeartRate, 105)
			s.SetValue(models.ParamOxygenLevel, 93)
		}),
	})

	// 15 (hr > 100) + 20 (oxygen < 95) + 15 (male 46) = 50
	if got := HeartFromWearable(p, Summarize(p)); got != 50 {
		t.Errorf("score = %d, want 50", got)
	}
}

func TestWearableScoresClampAt100(t *testing.T) {
	p := patientWith(t, 50, models.GenderMale, models.MedicalHistory{})
	p.BMI = 35
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	p.AddWearableSamples([]models.WearableSample{
		sampleAt(base, func(s *models.WearableSample) {
			s.SetValue(models.ParamBloodGlucose, 180)
			s.SetValue(models.ParamSteps, 100)
		}),
	})

	// 40 + 30 + 10 + 15 = 95, still within range.
	got := DiabetesFromWearable(p, Summarize(p))
	if got < 0 || got > 100 {
		t.Errorf("score %d out of [0,100]", got)
	}
}
