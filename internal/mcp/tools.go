// ABOUTME: MCP tool implementations for patient profiles and risk scoring.
// ABOUTME: Covers patient CRUD, measurements, assessment, and sample imports.
package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/harperreed/healthtwin/internal/models"
	"github.com/harperreed/healthtwin/internal/risk"
	"github.com/harperreed/healthtwin/internal/storage"
	"github.com/harperreed/healthtwin/internal/wearable"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// list_patients
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_patients",
		Description: "List all patient profiles with basic info",
	}, s.handleListPatients)

	// get_patient
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_patient",
		Description: "Get a patient profile with history and wearable series sizes",
	}, s.handleGetPatient)

	// add_patient
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_patient",
		Description: "Create a new patient profile",
	}, s.handleAddPatient)

	// record_measurement
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_measurement",
		Description: "Append a clinical measurement snapshot to a patient's history",
	}, s.handleRecordMeasurement)

	// assess_risk
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "assess_risk",
		Description: "Compute diabetes and heart disease risk scores for a patient",
	}, s.handleAssessRisk)

	// import_sample_data
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "import_sample_data",
		Description: "Generate and import 7 days of synthetic wearable data for a patient",
	}, s.handleImportSampleData)
}

// Tool input/output types

type patientSummary struct {
	PatientID       string  `json:"patient_id"`
	Name            string  `json:"name"`
	Age             float64 `json:"age"`
	Gender          string  `json:"gender"`
	BMI             float64 `json:"bmi"`
	Snapshots       int     `json:"snapshots"`
	WearableSamples int     `json:"wearable_samples"`
}

type getPatientInput struct {
	PatientID string `json:"patient_id" jsonschema:"Patient ID"`
}

type addPatientInput struct {
	PatientID        string  `json:"patient_id" jsonschema:"Unique patient ID"`
	Name             string  `json:"name" jsonschema:"Full name"`
	Age              float64 `json:"age" jsonschema:"Age in years"`
	Gender           string  `json:"gender" jsonschema:"Gender (Male, Female, Other)"`
	HeightCM         float64 `json:"height_cm" jsonschema:"Height in centimeters"`
	WeightKG         float64 `json:"weight_kg" jsonschema:"Weight in kilograms"`
	FamilyDiabetes   bool    `json:"family_diabetes,omitempty" jsonschema:"Family history of diabetes"`
	FamilyHeart      bool    `json:"family_heart,omitempty" jsonschema:"Family history of heart disease"`
	Smoking          bool    `json:"smoking,omitempty" jsonschema:"Smoker"`
	PhysicalActivity string  `json:"physical_activity,omitempty" jsonschema:"Activity level (Low, Moderate, High), defaults to Moderate"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type recordMeasurementInput struct {
	PatientID     string  `json:"patient_id" jsonschema:"Patient ID"`
	BloodGlucose  float64 `json:"blood_glucose,omitempty" jsonschema:"Blood glucose (mg/dL)"`
	SystolicBP    float64 `json:"systolic_bp,omitempty" jsonschema:"Systolic blood pressure (mmHg)"`
	DiastolicBP   float64 `json:"diastolic_bp,omitempty" jsonschema:"Diastolic blood pressure (mmHg)"`
	Cholesterol   float64 `json:"cholesterol,omitempty" jsonschema:"Total cholesterol (mg/dL)"`
	HDL           float64 `json:"hdl,omitempty" jsonschema:"HDL cholesterol (mg/dL)"`
	Triglycerides float64 `json:"triglycerides,omitempty" jsonschema:"Triglycerides (mg/dL)"`
	WeightKG      float64 `json:"weight_kg,omitempty" jsonschema:"Weight in kilograms, defaults to current weight"`
}

type assessRiskInput struct {
	PatientID string `json:"patient_id" jsonschema:"Patient ID"`
	Source    string `json:"source,omitempty" jsonschema:"Data source: history (default) or wearable"`
}

type conditionAssessment struct {
	Score    int      `json:"score"`
	Category string   `json:"category"`
	Factors  []string `json:"factors,omitempty"`
}

type assessRiskOutput struct {
	PatientID       string              `json:"patient_id"`
	Source          string              `json:"source"`
	Diabetes        conditionAssessment `json:"diabetes"`
	HeartDisease    conditionAssessment `json:"heart_disease"`
	Recommendations []string            `json:"recommendations,omitempty"`
}

type importSampleOutput struct {
	PatientID  string `json:"patient_id"`
	Imported   int    `json:"imported"`
	BackupFile string `json:"backup_file,omitempty"`
	Message    string `json:"message"`
}

// Tool handlers

func (s *Server) handleListPatients(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	records, err := s.store.LoadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list patients: %w", err)
	}

	if len(records) == 0 {
		return nil, map[string]any{"message": "No patient profiles found."}, nil
	}

	summaries := make([]patientSummary, 0, len(records))
	for _, p := range records {
		summaries = append(summaries, patientSummary{
			PatientID:       p.PatientID,
			Name:            p.Name,
			Age:             p.Age,
			Gender:          string(p.Gender),
			BMI:             p.BMI,
			Snapshots:       len(p.History),
			WearableSamples: len(p.WearableSeries),
		})
	}
	return nil, summaries, nil
}

func (s *Server) handleGetPatient(ctx context.Context, req *mcp.CallToolRequest, input getPatientInput) (*mcp.CallToolResult, any, error) {
	p, err := s.store.Get(input.PatientID)
	if err != nil {
		return nil, nil, fmt.Errorf("patient not found: %s", input.PatientID)
	}
	return nil, p, nil
}

func (s *Server) handleAddPatient(ctx context.Context, req *mcp.CallToolRequest, input addPatientInput) (*mcp.CallToolResult, simpleOutput, error) {
	if input.Gender != "" && !models.IsValidGender(input.Gender) {
		return nil, simpleOutput{}, fmt.Errorf("invalid gender: %s (use Male, Female, or Other)", input.Gender)
	}
	activity := models.ActivityModerate
	if input.PhysicalActivity != "" {
		if !models.IsValidActivityLevel(input.PhysicalActivity) {
			return nil, simpleOutput{}, fmt.Errorf("invalid activity level: %s (use Low, Moderate, or High)", input.PhysicalActivity)
		}
		activity = models.ActivityLevel(input.PhysicalActivity)
	}

	if _, err := s.store.Get(input.PatientID); err == nil {
		return nil, simpleOutput{}, fmt.Errorf("patient %s already exists", input.PatientID)
	}

	p, err := models.NewPatientRecord(input.PatientID, input.Name, input.Age,
		models.Gender(input.Gender), input.HeightCM, input.WeightKG,
		models.MedicalHistory{
			FamilyDiabetes:   input.FamilyDiabetes,
			FamilyHeart:      input.FamilyHeart,
			Smoking:          input.Smoking,
			PhysicalActivity: activity,
		})
	if err != nil {
		return nil, simpleOutput{}, err
	}

	if err := s.store.Save(p); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to save patient: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Added patient %s (%s), BMI %.1f", p.Name, p.PatientID, p.BMI),
	}, nil
}

func (s *Server) handleRecordMeasurement(ctx context.Context, req *mcp.CallToolRequest, input recordMeasurementInput) (*mcp.CallToolResult, simpleOutput, error) {
	var recorded models.MeasurementSnapshot
	err := storage.Update(s.store, input.PatientID, func(p *models.PatientRecord) error {
		weight := input.WeightKG
		if weight == 0 {
			weight = p.WeightKG
		}
		recorded = p.RecordMeasurement(s.now(), models.Measurements{
			BloodGlucose:  input.BloodGlucose,
			SystolicBP:    input.SystolicBP,
			DiastolicBP:   input.DiastolicBP,
			Cholesterol:   input.Cholesterol,
			HDL:           input.HDL,
			Triglycerides: input.Triglycerides,
			WeightKG:      weight,
		})
		return nil
	})
	if err != nil {
		if err == storage.ErrNotFound {
			return nil, simpleOutput{}, fmt.Errorf("patient not found: %s", input.PatientID)
		}
		return nil, simpleOutput{}, fmt.Errorf("failed to record measurement: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Recorded measurement for %s on %s (BMI %.1f)",
			input.PatientID, recorded.Date.Format("2006-01-02"), recorded.BMI),
	}, nil
}

func (s *Server) handleAssessRisk(ctx context.Context, req *mcp.CallToolRequest, input assessRiskInput) (*mcp.CallToolResult, assessRiskOutput, error) {
	p, err := s.store.Get(input.PatientID)
	if err != nil {
		return nil, assessRiskOutput{}, fmt.Errorf("patient not found: %s", input.PatientID)
	}

	source := input.Source
	if source == "" {
		source = "history"
	}

	var diabetes, heart int
	var recs []string
	switch source {
	case "history":
		diabetes = risk.DiabetesFromHistory(p)
		heart = risk.HeartFromHistory(p)
		recs = risk.GeneralRecommendations(diabetes, heart)
	case "wearable":
		if len(p.WearableSeries) == 0 {
			return nil, assessRiskOutput{}, fmt.Errorf("patient %s has no wearable data", input.PatientID)
		}
		summary := risk.Summarize(p)
		diabetes = risk.DiabetesFromWearable(p, summary)
		heart = risk.HeartFromWearable(p, summary)
		recs = risk.WearableRecommendations(diabetes, heart, summary)
	default:
		return nil, assessRiskOutput{}, fmt.Errorf("unknown source: %s (use history or wearable)", source)
	}

	return nil, assessRiskOutput{
		PatientID: input.PatientID,
		Source:    source,
		Diabetes: conditionAssessment{
			Score:    diabetes,
			Category: string(risk.Categorize(diabetes)),
			Factors:  risk.KeyFactors(risk.Diabetes, diabetes),
		},
		HeartDisease: conditionAssessment{
			Score:    heart,
			Category: string(risk.Categorize(heart)),
			Factors:  risk.KeyFactors(risk.HeartDisease, heart),
		},
		Recommendations: recs,
	}, nil
}

func (s *Server) handleImportSampleData(ctx context.Context, req *mcp.CallToolRequest, input getPatientInput) (*mcp.CallToolResult, importSampleOutput, error) {
	samples := wearable.Generate(input.PatientID, s.now(), s.rng)

	err := storage.Update(s.store, input.PatientID, func(p *models.PatientRecord) error {
		p.AddWearableSamples(samples)
		return nil
	})
	if err != nil {
		if err == storage.ErrNotFound {
			return nil, importSampleOutput{}, fmt.Errorf("patient not found: %s", input.PatientID)
		}
		return nil, importSampleOutput{}, fmt.Errorf("failed to import sample data: %w", err)
	}

	out := importSampleOutput{
		PatientID: input.PatientID,
		Imported:  len(samples),
		Message:   fmt.Sprintf("Imported %d sample wearable records for %s", len(samples), input.PatientID),
	}

	// Backup export is best-effort; the merged record is already saved.
	if s.wearableDir != "" {
		report := &wearable.Report{BatchID: uuid.New(), Imported: len(samples)}
		path := filepath.Join(s.wearableDir, report.BackupFileName(input.PatientID))
		if err := writeBackupFile(path, samples); err == nil {
			out.BackupFile = path
		}
	}

	return nil, out, nil
}

func writeBackupFile(path string, samples []models.WearableSample) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return wearable.WriteBackup(f, samples)
}
