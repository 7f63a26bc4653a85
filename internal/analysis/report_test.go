package analysis

import (
	"testing"

	apperrors "go-vastu-analyzer/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormedResponse = `{
	"is_floor_plan": true,
	"overall_summary": "Good layout overall.",
	"doshas": [
		{"location": "Kitchen", "problem": "SW placement", "impact": "Health issues", "remedy": "Relocate stove to SE corner"},
		{"location": "Toilet", "problem": "NE placement", "impact": "Financial strain", "remedy": "Keep the door closed and use sea salt"}
	]
}`

func TestNormalizeReportSuccess(t *testing.T) {
	report, err := NormalizeReport(wellFormedResponse, PropertyResidential)
	require.NoError(t, err)

	assert.True(t, report.IsFloorPlan)
	assert.Equal(t, "Good layout overall.", report.OverallSummary)
	require.Len(t, report.Doshas, 2)
	// Order from the model is presentation priority and must survive intact.
	assert.Equal(t, "Kitchen", report.Doshas[0].Location)
	assert.Equal(t, "Toilet", report.Doshas[1].Location)
	assert.Equal(t, "Relocate stove to SE corner", report.Doshas[0].Remedy)
	assert.Empty(t, report.Error)
}

func TestNormalizeReportStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + wellFormedResponse + "\n```"
	report, err := NormalizeReport(fenced, PropertyResidential)
	require.NoError(t, err)
	assert.Equal(t, "Good layout overall.", report.OverallSummary)
}

func TestNormalizeReportZeroDoshas(t *testing.T) {
	report, err := NormalizeReport(`{"is_floor_plan": true, "overall_summary": "Excellent Vastu compliance.", "doshas": []}`, PropertyResidential)
	require.NoError(t, err)
	assert.Empty(t, report.Doshas)
}

func TestNormalizeReportNotAFloorPlan(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		propertyType PropertyType
		wantMessage  string
	}{
		{
			name:        "model explanation is forwarded",
			raw:         `{"is_floor_plan": false, "error": "This looks like a photograph of a garden."}`,
			wantMessage: "This looks like a photograph of a garden.",
		},
		{
			name:        "fallback message names the property type",
			raw:         `{"is_floor_plan": false}`,
			wantMessage: "The uploaded file does not appear to be a residential floor plan.",
		},
		{
			name:         "fallback for commercial",
			raw:          `{"is_floor_plan": false, "error": "  "}`,
			propertyType: PropertyCommercial,
			wantMessage:  "The uploaded file does not appear to be a commercial floor plan.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			propertyType := tt.propertyType
			if propertyType == "" {
				propertyType = PropertyResidential
			}
			_, err := NormalizeReport(tt.raw, propertyType)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation),
				"a rejected image is a client error, got %v", err)
			assert.Equal(t, tt.wantMessage, apperrors.ClientMessage(err))
		})
	}
}

func TestNormalizeReportShapeViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty response", raw: ""},
		{name: "whitespace response", raw: "   \n  "},
		{name: "plain prose", raw: "I'm sorry, I cannot analyze this image."},
		{name: "truncated json", raw: `{"is_floor_plan": true, "overall_summary": "Go`},
		{name: "missing summary", raw: `{"is_floor_plan": true, "doshas": []}`},
		{name: "blank summary", raw: `{"is_floor_plan": true, "overall_summary": "  ", "doshas": []}`},
		{
			name: "dosha missing remedy",
			raw:  `{"is_floor_plan": true, "overall_summary": "ok", "doshas": [{"location": "Kitchen", "problem": "SW placement", "impact": "Health issues", "remedy": ""}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeReport(tt.raw, PropertyResidential)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeResponse),
				"malformed upstream output is a response error, got %v", err)
			// The raw parse failure must never be the client message.
			assert.NotContains(t, apperrors.ClientMessage(err), "unexpected end")
			assert.NotContains(t, apperrors.ClientMessage(err), "invalid character")
		})
	}
}
