// ABOUTME: PatientRecord model with measurement history and wearable series.
// ABOUTME: Defines enums for gender and activity level, plus BMI derivation.
package models

import (
	"fmt"
	"sort"
	"time"
)

// Gender is the recorded gender of a patient.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// AllGenders returns all valid gender values.
var AllGenders = []Gender{GenderMale, GenderFemale, GenderOther}

// IsValidGender checks if a string is a valid gender value.
func IsValidGender(s string) bool {
	for _, g := range AllGenders {
		if string(g) == s {
			return true
		}
	}
	return false
}

// ActivityLevel is a patient's self-reported physical activity level.
type ActivityLevel string

const (
	ActivityLow      ActivityLevel = "Low"
	ActivityModerate ActivityLevel = "Moderate"
	ActivityHigh     ActivityLevel = "High"
)

// AllActivityLevels returns all valid activity levels.
var AllActivityLevels = []ActivityLevel{ActivityLow, ActivityModerate, ActivityHigh}

// IsValidActivityLevel checks if a string is a valid activity level.
func IsValidActivityLevel(s string) bool {
	for _, a := range AllActivityLevels {
		if string(a) == s {
			return true
		}
	}
	return false
}

// MedicalHistory holds a patient's baseline risk factors.
type MedicalHistory struct {
	FamilyDiabetes   bool          `json:"family_diabetes"`
	FamilyHeart      bool          `json:"family_heart"`
	Smoking          bool          `json:"smoking"`
	PhysicalActivity ActivityLevel `json:"physical_activity"`
}

// MeasurementSnapshot is a single dated clinical measurement entry.
// Fields left at zero are treated as "not measured" by consumers; the
// risk rules deliberately read an absent value as 0.
type MeasurementSnapshot struct {
	Date          time.Time `json:"date"`
	PatientID     string    `json:"patient_id"`
	BloodGlucose  float64   `json:"blood_glucose"`
	SystolicBP    float64   `json:"systolic_bp"`
	DiastolicBP   float64   `json:"diastolic_bp"`
	Cholesterol   float64   `json:"cholesterol"`
	HDL           float64   `json:"hdl"`
	Triglycerides float64   `json:"triglycerides"`
	WeightKG      float64   `json:"weight_kg"`
	BMI           float64   `json:"bmi"`
}

// PatientRecord is the full per-patient profile: identity, current
// vitals, clinical measurement history and imported wearable series.
type PatientRecord struct {
	PatientID      string                `json:"patient_id"`
	Name           string                `json:"name"`
	Age            float64               `json:"age"`
	Gender         Gender                `json:"gender"`
	HeightCM       float64               `json:"height_cm"`
	WeightKG       float64               `json:"weight_kg"`
	BMI            float64               `json:"bmi"`
	MedicalHistory MedicalHistory        `json:"medical_history"`
	History        []MeasurementSnapshot `json:"history"`
	WearableSeries []WearableSample      `json:"wearable_series,omitempty"`
}

// ComputeBMI derives BMI from weight in kg and height in cm.
// Returns 0 for non-positive height rather than dividing by zero.
func ComputeBMI(weightKG, heightCM float64) float64 {
	if heightCM <= 0 {
		return 0
	}
	h := heightCM / 100
	return weightKG / (h * h)
}

// NewPatientRecord creates a patient profile. PatientID and Name are
// required; BMI is derived from the given height and weight.
func NewPatientRecord(patientID, name string, age float64, gender Gender, heightCM, weightKG float64, history MedicalHistory) (*PatientRecord, error) {
	if patientID == "" {
		return nil, fmt.Errorf("patient ID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("patient name is required")
	}
	if age < 0 {
		return nil, fmt.Errorf("age must be non-negative")
	}
	if heightCM <= 0 || weightKG <= 0 {
		return nil, fmt.Errorf("height and weight must be positive")
	}
	return &PatientRecord{
		PatientID:      patientID,
		Name:           name,
		Age:            age,
		Gender:         gender,
		HeightCM:       heightCM,
		WeightKG:       weightKG,
		BMI:            ComputeBMI(weightKG, heightCM),
		MedicalHistory: history,
	}, nil
}

// Measurements carries the clinical values for one health data update.
type Measurements struct {
	BloodGlucose  float64
	SystolicBP    float64
	DiastolicBP   float64
	Cholesterol   float64
	HDL           float64
	Triglycerides float64
	WeightKG      float64
}

// RecordMeasurement appends a dated snapshot to the patient's history and
// updates the profile's current weight and BMI. BMI is always recomputed
// from the current height and the new weight, never carried forward.
func (p *PatientRecord) RecordMeasurement(date time.Time, m Measurements) MeasurementSnapshot {
	bmi := ComputeBMI(m.WeightKG, p.HeightCM)
	snap := MeasurementSnapshot{
		Date:          date,
		PatientID:     p.PatientID,
		BloodGlucose:  m.BloodGlucose,
		SystolicBP:    m.SystolicBP,
		DiastolicBP:   m.DiastolicBP,
		Cholesterol:   m.Cholesterol,
		HDL:           m.HDL,
		Triglycerides: m.Triglycerides,
		WeightKG:      m.WeightKG,
		BMI:           bmi,
	}
	p.History = append(p.History, snap)
	p.WeightKG = m.WeightKG
	p.BMI = bmi
	return snap
}

// LatestSnapshot returns the most recently appended clinical snapshot.
// History is append-only and appended at measurement time, so insertion
// order is chronological order.
func (p *PatientRecord) LatestSnapshot() (MeasurementSnapshot, bool) {
	if len(p.History) == 0 {
		return MeasurementSnapshot{}, false
	}
	return p.History[len(p.History)-1], true
}

// AddWearableSamples appends imported samples to the wearable series.
// The stored series keeps import order; consumers sort transiently.
func (p *PatientRecord) AddWearableSamples(samples []WearableSample) {
	p.WearableSeries = append(p.WearableSeries, samples...)
}

// SortedWearableSeries returns a copy of the wearable series sorted by
// timestamp ascending. The stored slice is never reordered.
func (p *PatientRecord) SortedWearableSeries() []WearableSample {
	sorted := make([]WearableSample, len(p.WearableSeries))
	copy(sorted, p.WearableSeries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}
