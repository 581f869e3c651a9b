// ABOUTME: MCP resource implementations for patient data.
// ABOUTME: Provides healthtwin://patients and healthtwin://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/healthtwin/internal/risk"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// healthtwin://patients - All patient profiles
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "healthtwin://patients",
		Name:        "Patient Profiles",
		Description: "All stored patient profiles with history and wearable series",
		MIMEType:    "application/json",
	}, s.handlePatientsResource)

	// healthtwin://summary - Risk overview for every patient
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "healthtwin://summary",
		Name:        "Risk Summary Dashboard",
		Description: "Diabetes and heart disease risk categories for all patients",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handlePatientsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	records, err := s.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load patients: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "healthtwin://patients",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	records, err := s.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load patients: %w", err)
	}

	summaries := make([]map[string]interface{}, 0, len(records))
	for _, p := range records {
		diabetes := risk.DiabetesFromHistory(p)
		heart := risk.HeartFromHistory(p)
		summaries = append(summaries, map[string]interface{}{
			"patient_id":     p.PatientID,
			"name":           p.Name,
			"bmi":            p.BMI,
			"diabetes_score": diabetes,
			"diabetes_risk":  string(risk.Categorize(diabetes)),
			"heart_score":    heart,
			"heart_risk":     string(risk.Categorize(heart)),
		})
	}

	result := map[string]interface{}{
		"generated_at": s.now().Format(time.RFC3339),
		"patients":     summaries,
		"count":        len(summaries),
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "healthtwin://summary",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
