// Package settings stores the editable instruction strings used by the
// draft service as key/value rows with compiled-in fallbacks.
package settings

import (
	"slices"
	"time"
)

// Keys of the two editable settings.
const (
	KeySystemInstruction        = "system_instruction"
	KeyImageAnalysisInstruction = "image_analysis_instruction"
)

// Keys lists every editable setting key.
var Keys = []string{
	KeySystemInstruction,
	KeyImageAnalysisInstruction,
}

// Defaults used when a setting row is absent or unreadable.
var defaults = map[string]string{
	KeySystemInstruction: "You are an assistant that drafts structured image-generation " +
		"prompts. Respond with a single JSON object matching the requested schema; " +
		"fill every attribute field, leaving unknown ones as empty strings.",
	KeyImageAnalysisInstruction: "Analyze the supplied image and describe its subject, " +
		"styling, pose, lighting, and background as structured prompt attributes. " +
		"Respond with a single JSON object matching the requested schema.",
}

// Setting is one editable instruction string.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateCommand carries a new value for a setting.
type UpdateCommand struct {
	Value string `json:"value"`
}

// ValidKey reports whether key names an editable setting.
func ValidKey(key string) bool {
	return slices.Contains(Keys, key)
}

// Default returns the compiled-in fallback for key, empty for unknown
// keys.
func Default(key string) string {
	return defaults[key]
}
