// ABOUTME: Export and import functionality for patient data.
// ABOUTME: Supports JSON and YAML export formats for backup and sharing.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/healthtwin/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for patient data.
type ExportData struct {
	Version    string                  `json:"version" yaml:"version"`
	ExportedAt time.Time               `json:"exported_at" yaml:"exported_at"`
	Tool       string                  `json:"tool" yaml:"tool"`
	Patients   []*models.PatientRecord `json:"patients" yaml:"patients"`
}

// GetAllData retrieves all patient records for export.
func GetAllData(st Store) (*ExportData, error) {
	patients, err := st.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load patients: %w", err)
	}

	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "healthtwin",
		Patients:   patients,
	}, nil
}

// ImportData saves every patient in an export file, overwriting
// existing records with the same ID.
func ImportData(st Store, data *ExportData) error {
	for _, p := range data.Patients {
		if p.PatientID == "" {
			return fmt.Errorf("import patient: missing patient_id")
		}
		if err := st.Save(p); err != nil {
			return fmt.Errorf("import patient %s: %w", p.PatientID, err)
		}
	}
	return nil
}

// ExportJSON exports all patient data as JSON.
func ExportJSON(st Store) ([]byte, error) {
	data, err := GetAllData(st)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all patient data as YAML.
func ExportYAML(st Store) ([]byte, error) {
	data, err := GetAllData(st)
	if err != nil {
		return nil, err
	}

	// Flatten to a YAML-friendly shape with compact per-patient summaries
	yamlData := struct {
		Version    string        `yaml:"version"`
		ExportedAt string        `yaml:"exported_at"`
		Tool       string        `yaml:"tool"`
		Patients   []yamlPatient `yaml:"patients"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Patients:   make([]yamlPatient, 0, len(data.Patients)),
	}

	for _, p := range data.Patients {
		yp := yamlPatient{
			PatientID: p.PatientID,
			Name:      p.Name,
			Age:       p.Age,
			Gender:    string(p.Gender),
			HeightCM:  p.HeightCM,
			WeightKG:  p.WeightKG,
			BMI:       p.BMI,
			History: yamlHistory{
				FamilyDiabetes:   p.MedicalHistory.FamilyDiabetes,
				FamilyHeart:      p.MedicalHistory.FamilyHeart,
				Smoking:          p.MedicalHistory.Smoking,
				PhysicalActivity: string(p.MedicalHistory.PhysicalActivity),
			},
		}
		for _, snap := range p.History {
			yp.Measurements = append(yp.Measurements, yamlSnapshot{
				Date:          snap.Date.Format(time.RFC3339),
				BloodGlucose:  snap.BloodGlucose,
				SystolicBP:    snap.SystolicBP,
				DiastolicBP:   snap.DiastolicBP,
				Cholesterol:   snap.Cholesterol,
				HDL:           snap.HDL,
				Triglycerides: snap.Triglycerides,
				WeightKG:      snap.WeightKG,
				BMI:           snap.BMI,
			})
		}
		yp.WearableSamples = len(p.WearableSeries)
		yamlData.Patients = append(yamlData.Patients, yp)
	}

	return yaml.Marshal(yamlData)
}

// ImportJSON imports patient data from a JSON export.
func ImportJSON(st Store, raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parse export file: %w", err)
	}
	return ImportData(st, &data)
}

type yamlPatient struct {
	PatientID       string         `yaml:"patient_id"`
	Name            string         `yaml:"name"`
	Age             float64        `yaml:"age"`
	Gender          string         `yaml:"gender"`
	HeightCM        float64        `yaml:"height_cm"`
	WeightKG        float64        `yaml:"weight_kg"`
	BMI             float64        `yaml:"bmi"`
	History         yamlHistory    `yaml:"medical_history"`
	Measurements    []yamlSnapshot `yaml:"measurements,omitempty"`
	WearableSamples int            `yaml:"wearable_samples"`
}

type yamlHistory struct {
	FamilyDiabetes   bool   `yaml:"family_diabetes"`
	FamilyHeart      bool   `yaml:"family_heart"`
	Smoking          bool   `yaml:"smoking"`
	PhysicalActivity string `yaml:"physical_activity"`
}

type yamlSnapshot struct {
	Date          string  `yaml:"date"`
	BloodGlucose  float64 `yaml:"blood_glucose,omitempty"`
	SystolicBP    float64 `yaml:"systolic_bp,omitempty"`
	DiastolicBP   float64 `yaml:"diastolic_bp,omitempty"`
	Cholesterol   float64 `yaml:"cholesterol,omitempty"`
	HDL           float64 `yaml:"hdl,omitempty"`
	Triglycerides float64 `yaml:"triglycerides,omitempty"`
	WeightKG      float64 `yaml:"weight_kg,omitempty"`
	BMI           float64 `yaml:"bmi,omitempty"`
}
