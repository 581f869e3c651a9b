// ABOUTME: Tests for fixed factor text, recommendations, and status bands.
// ABOUTME: Text is looked up by band, never by which rules fired.
package risk

import (
	"strings"
	"testing"

	"github.com/harperreed/healthtwin/internal/models"
)

func TestKeyFactorsByBand(t *testing.T) {
	if got := KeyFactors(Diabetes, 39); got != nil {
		t.Errorf("factors below 40 should be nil, got %v", got)
	}

	moderate := KeyFactors(Diabetes, 40)
	high := KeyFactors(Diabetes, 70)
	if len(moderate) != 3 || len(high) != 4 {
		t.Errorf("diabetes factor counts = %d/%d, want 3/4", len(moderate), len(high))
	}

	// Same band gives identical text regardless of which rules fired.
	if strings.Join(KeyFactors(HeartDisease, 70), "|") != strings.Join(KeyFactors(HeartDisease, 100), "|") {
		t.Error("factor text should be identical within a band")
	}
}

func TestGeneralRecommendations(t *testing.T) {
	healthy := GeneralRecommendations(30, 40)
	if len(healthy) != 3 {
		t.Errorf("healthy recommendations = %d entries, want 3", len(healthy))
	}

	both := GeneralRecommendations(60, 60)
	if len(both) != 6 {
		t.Errorf("both-elevated recommendations = %d entries, want 6", len(both))
	}
}

func TestWearableRecommendationsDataLines(t *testing.T) {
	s := Summary{
		Latest: map[models.Parameter]float64{
			models.ParamBloodGlucose: 150,
			models.ParamSystolicBP:   135,
			models.ParamDiastolicBP:  85,
		},
		MeanSteps: 3200,
		HasSteps:  true,
	}

	recs := WearableRecommendations(20, 20, s)
	joined := strings.Join(recs, "\n")
	if !strings.Contains(joined, "step count (3200)") {
		t.Errorf("missing step recommendation: %v", recs)
	}
	if !strings.Contains(joined, "150.0 mg/dL") {
		t.Errorf("missing glucose recommendation: %v", recs)
	}
	if !strings.Contains(joined, "135/85 mmHg") {
		t.Errorf("missing blood pressure recommendation: %v", recs)
	}
}

func TestSnapshotStatus(t *testing.T) {
	snap := models.MeasurementSnapshot{
		BMI:           27,
		BloodGlucose:  120,
		SystolicBP:    135,
		DiastolicBP:   75,
		Cholesterol:   180,
		HDL:           35,
		Triglycerides: 140,
	}

	statuses := SnapshotStatus(snap)
	byName := make(map[string]MetricStatus, len(statuses))
	for _, st := range statuses {
		byName[st.Name] = st
	}

	if st := byName["BMI"]; st.Status != "High" || !st.Elevated {
		t.Errorf("BMI status = %+v, want High", st)
	}
	if st := byName["Blood Glucose"]; st.Status != "Normal" {
		t.Errorf("glucose status = %+v, want Normal (display cutoff is 140)", st)
	}
	if st := byName["Systolic BP"]; st.Status != "High" {
		t.Errorf("BP status = %+v, want High (systolic 135 > 130)", st)
	}
	if st := byName["HDL"]; st.Status != "Low" || !st.Elevated {
		t.Errorf("HDL status = %+v, want Low", st)
	}
	if st := byName["Cholesterol"]; st.Status != "Normal" {
		t.Errorf("cholesterol status = %+v, want Normal", st)
	}
}
