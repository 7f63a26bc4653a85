package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "go-vastu-analyzer/internal/errors"
)

// VastuDosha is a single defect identified in the floor plan.
type VastuDosha struct {
	Location string `json:"location"`
	Problem  string `json:"problem"`
	Impact   string `json:"impact"`
	Remedy   string `json:"remedy"`
}

// VastuReport is the structured analysis result relayed to the client.
// Error carries the model's explanation when it rejects the image; it is
// never populated on a successful report.
type VastuReport struct {
	IsFloorPlan    bool         `json:"is_floor_plan"`
	OverallSummary string       `json:"overall_summary"`
	Doshas         []VastuDosha `json:"doshas"`
	Error          string       `json:"error,omitempty"`
}

// NormalizeReport parses the model's raw text output into a validated
// VastuReport. The model is instructed to return JSON but nothing guarantees
// it did; this is the only defense against that boundary.
func NormalizeReport(raw string, propertyType PropertyType) (*VastuReport, error) {
	cleaned := stripCodeFences(raw)
	if cleaned == "" {
		return nil, apperrors.NewResponseError("Failed to generate Vastu analysis.",
			fmt.Errorf("model returned empty response"))
	}

	var report VastuReport
	if err := json.Unmarshal([]byte(cleaned), &report); err != nil {
		return nil, apperrors.NewResponseError("Failed to generate Vastu analysis.",
			fmt.Errorf("model returned non-JSON output: %w", err))
	}

	if !report.IsFloorPlan {
		message := strings.TrimSpace(report.Error)
		if message == "" {
			message = fmt.Sprintf("The uploaded file does not appear to be a %s floor plan.", propertyType)
		}
		return nil, apperrors.NewValidationError(message, fmt.Errorf("model rejected image as floor plan"))
	}

	if strings.TrimSpace(report.OverallSummary) == "" {
		return nil, apperrors.NewResponseError("Failed to generate Vastu analysis.",
			fmt.Errorf("model omitted overall summary"))
	}
	for i, dosha := range report.Doshas {
		if strings.TrimSpace(dosha.Location) == "" ||
			strings.TrimSpace(dosha.Problem) == "" ||
			strings.TrimSpace(dosha.Impact) == "" ||
			strings.TrimSpace(dosha.Remedy) == "" {
			return nil, apperrors.NewResponseError("Failed to generate Vastu analysis.",
				fmt.Errorf("dosha %d is missing required fields", i))
		}
	}

	// Dosha order from the model reflects presentation priority; keep it.
	report.Error = ""
	return &report, nil
}

// stripCodeFences removes a markdown fence the model sometimes wraps around
// its JSON despite instructions.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
