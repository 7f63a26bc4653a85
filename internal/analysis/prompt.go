package analysis

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const residentialPromptDetails = `- Prioritize critical doshas for a residential space (main entrance, kitchen, master bedroom, toilets, Brahmasthan). Identify at least 5-7 significant Vastu doshas if they exist.`

const commercialPromptDetails = `- Prioritize critical doshas for a commercial space (main entrance, owner's/MD's cabin, staff work area, reception, pantry, accounts department, Brahmasthan). Identify at least 5-7 significant Vastu doshas if they exist.`

// BuildAnalysisPrompt renders the instruction sent to the model alongside the
// image. The output is deterministic: the same request always produces the
// same prompt, byte for byte.
func BuildAnalysisPrompt(req AnalysisRequest) string {
	details := residentialPromptDetails
	if req.PropertyType == PropertyCommercial {
		details = commercialPromptDetails
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Task: Analyze the provided image based on Vastu Shastra for a %s property.\n", req.PropertyType)
	fmt.Fprintf(&b, "Language for response: %s.\n\n", req.Language)

	b.WriteString("Step 1: Validate the image.\n")
	fmt.Fprintf(&b, "- Is the image a %s floor plan?\n", req.PropertyType)
	b.WriteString("- If NO: Return a JSON object with \"is_floor_plan\" set to false and an \"error\" message.\n")
	b.WriteString("- If YES: Set \"is_floor_plan\" to true and proceed.\n\n")

	b.WriteString("Step 2: Vastu Analysis.\n")
	if dir := strings.TrimSpace(req.EntranceDirection); dir != "" {
		fmt.Fprintf(&b, "- The main entrance faces: %s.\n", dir)
	}
	for _, room := range sortedRoomNames(req.RoomLocations) {
		fmt.Fprintf(&b, "- The %s is located at: %s.\n", room, req.RoomLocations[room])
	}
	fmt.Fprintf(&b, "- Analyze the floor plan based on Vastu Shastra principles for a %s property.\n", req.PropertyType)
	b.WriteString(details)
	b.WriteString("\n- For each dosha, identify its location, the problem, its impact, and a simple, practical remedy.\n")
	b.WriteString("- Provide an encouraging and constructive overall summary in the \"overall_summary\" field.\n")
	fmt.Fprintf(&b, "- Ensure the entire analysis is in %s.\n", req.Language)
	b.WriteString("- Your response MUST be a valid JSON object with the fields \"is_floor_plan\", \"overall_summary\" and \"doshas\" (an array of objects with \"location\", \"problem\", \"impact\" and \"remedy\").\n")
	return b.String()
}

// BuildTranslationPrompt renders the instruction for translating an existing
// report. The model must return the same JSON shape, translated.
func BuildTranslationPrompt(report *VastuReport, language string) string {
	// Marshal of a struct is deterministic, so the prompt is too.
	serialized, _ := json.Marshal(report)

	var b strings.Builder
	fmt.Fprintf(&b, "Task: Translate the following Vastu analysis report into %s.\n", language)
	b.WriteString("- Translate every \"overall_summary\", \"location\", \"problem\", \"impact\" and \"remedy\" value.\n")
	b.WriteString("- Keep the JSON structure, field names, field order and \"is_floor_plan\" value exactly as given.\n")
	b.WriteString("- Do not add, remove or reorder doshas.\n")
	b.WriteString("- Your response MUST be a valid JSON object of the same shape.\n\n")
	b.WriteString("Report:\n")
	b.Write(serialized)
	b.WriteString("\n")
	return b.String()
}

// sortedRoomNames fixes the iteration order so the prompt stays
// deterministic across runs.
func sortedRoomNames(rooms map[string]string) []string {
	names := make([]string, 0, len(rooms))
	for name, location := range rooms {
		if strings.TrimSpace(location) == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
