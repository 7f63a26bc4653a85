package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAnalysisPromptResidential(t *testing.T) {
	req := validRequest()
	prompt := BuildAnalysisPrompt(req)

	assert.Contains(t, prompt, "Vastu Shastra for a residential property")
	assert.Contains(t, prompt, "Is the image a residential floor plan?")
	assert.Contains(t, prompt, "The main entrance faces: North-East.")
	assert.Contains(t, prompt, "master bedroom")
	assert.Contains(t, prompt, "Brahmasthan")
	assert.Contains(t, prompt, `"is_floor_plan"`)
	assert.Contains(t, prompt, "Language for response: English.")
	assert.NotContains(t, prompt, "owner's/MD's cabin")
}

func TestBuildAnalysisPromptCommercial(t *testing.T) {
	req := validRequest()
	req.PropertyType = PropertyCommercial
	req.Language = "Hindi"
	prompt := BuildAnalysisPrompt(req)

	assert.Contains(t, prompt, "Vastu Shastra for a commercial property")
	assert.Contains(t, prompt, "owner's/MD's cabin")
	assert.Contains(t, prompt, "accounts department")
	assert.Contains(t, prompt, "Language for response: Hindi.")
	assert.NotContains(t, prompt, "master bedroom")
}

func TestBuildAnalysisPromptRoomLocations(t *testing.T) {
	req := validRequest()
	req.EntranceDirection = ""
	req.RoomLocations = map[string]string{
		"kitchen":    "South-East",
		"pooja room": "North-East",
		"staircase":  "", // empty locations are dropped
	}
	prompt := BuildAnalysisPrompt(req)

	assert.Contains(t, prompt, "The kitchen is located at: South-East.")
	assert.Contains(t, prompt, "The pooja room is located at: North-East.")
	assert.NotContains(t, prompt, "staircase")
	assert.NotContains(t, prompt, "The main entrance faces")
}

// The prompt is part of the request's determinism guarantee: map-backed room
// locations must not introduce iteration-order jitter.
func TestBuildAnalysisPromptDeterministic(t *testing.T) {
	req := validRequest()
	req.RoomLocations = map[string]string{
		"kitchen":        "South-East",
		"master bedroom": "South-West",
		"pooja room":     "North-East",
		"toilets":        "North-West",
		"staircase":      "South",
	}

	first := BuildAnalysisPrompt(req)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, BuildAnalysisPrompt(req))
	}
}

func TestBuildTranslationPrompt(t *testing.T) {
	report := &VastuReport{
		IsFloorPlan:    true,
		OverallSummary: "Good layout overall.",
		Doshas: []VastuDosha{
			{Location: "Kitchen", Problem: "SW placement", Impact: "Health issues", Remedy: "Relocate stove to SE corner"},
		},
	}

	prompt := BuildTranslationPrompt(report, "Hindi")
	assert.Contains(t, prompt, "into Hindi")
	assert.Contains(t, prompt, "Good layout overall.")
	assert.Contains(t, prompt, "Relocate stove to SE corner")
	assert.True(t, strings.Contains(prompt, `"is_floor_plan":true`), "serialized report must be embedded")
	assert.Equal(t, prompt, BuildTranslationPrompt(report, "Hindi"))
}
