// ABOUTME: Classification of a snapshot's metrics against clinical cutoffs.
// ABOUTME: Drives the current-health-status section of the profile view.
package risk

import "github.com/harperreed/healthtwin/internal/models"

// MetricStatus classifies one clinical metric for display.
type MetricStatus struct {
	Name     string
	Value    float64
	Unit     string
	Status   string
	Elevated bool // true when outside the normal band
}

// SnapshotStatus classifies the metrics of a clinical snapshot. The
// cutoffs here are display thresholds, deliberately looser than the
// scoring thresholds (glucose 140 vs 126, BP 130/80 vs 140/90).
func SnapshotStatus(snap models.MeasurementSnapshot) []MetricStatus {
	bmiStatus := "Normal"
	if snap.BMI >= 25 {
		bmiStatus = "High"
	} else if snap.BMI < 18.5 {
		bmiStatus = "Low"
	}

	glucoseStatus := "Normal"
	if snap.BloodGlucose > 140 {
		glucoseStatus = "High"
	} else if snap.BloodGlucose < 70 {
		glucoseStatus = "Low"
	}

	bpStatus := "Normal"
	if snap.SystolicBP > 130 || snap.DiastolicBP > 80 {
		bpStatus = "High"
	}

	cholStatus := "Normal"
	if snap.Cholesterol > 200 {
		cholStatus = "High"
	}

	hdlStatus := "Normal"
	if snap.HDL < 40 {
		hdlStatus = "Low"
	}

	trigStatus := "Normal"
	if snap.Triglycerides > 150 {
		trigStatus = "High"
	}

	return []MetricStatus{
		{Name: "BMI", Value: snap.BMI, Unit: "", Status: bmiStatus, Elevated: bmiStatus != "Normal"},
		{Name: "Blood Glucose", Value: snap.BloodGlucose, Unit: "mg/dL", Status: glucoseStatus, Elevated: glucoseStatus != "Normal"},
		{Name: "Systolic BP", Value: snap.SystolicBP, Unit: "mmHg", Status: bpStatus, Elevated: bpStatus != "Normal"},
		{Name: "Diastolic BP", Value: snap.DiastolicBP, Unit: "mmHg", Status: bpStatus, Elevated: bpStatus != "Normal"},
		{Name: "Cholesterol", Value: snap.Cholesterol, Unit: "mg/dL", Status: cholStatus, Elevated: cholStatus != "Normal"},
		{Name: "HDL", Value: snap.HDL, Unit: "mg/dL", Status: hdlStatus, Elevated: hdlStatus != "Normal"},
		{Name: "Triglycerides", Value: snap.Triglycerides, Unit: "mg/dL", Status: trigStatus, Elevated: trigStatus != "Normal"},
	}
}
