// Package prompts implements the prompt lifecycle domain: versioned
// prompt records with history snapshots, rollback, duplication, and
// merge export.
package prompts

import (
	"time"

	"github.com/google/uuid"
)

// AspectRatios is the fixed set of accepted aspect_ratio values.
var AspectRatios = []string{"9:16", "1:1", "4:3", "3:4", "2:3", "3:2"}

// Attributes holds the structured content fields of a prompt. These are
// the fields that flow across table boundaries (history, favorites,
// trash), so copies are always field-by-field through this struct.
type Attributes struct {
	CoreTheme   string `json:"core_theme"`
	Hair        string `json:"hair"`
	Pose        string `json:"pose"`
	Outfit      string `json:"outfit"`
	Atmosphere  string `json:"atmosphere"`
	Gaze        string `json:"gaze"`
	Makeup      string `json:"makeup"`
	Background  string `json:"background"`
	Details     string `json:"details"`
	AspectRatio string `json:"aspect_ratio"`
}

// Prompt is an active, current prompt record. Version starts at 1 and
// increases by exactly 1 on every content-changing update.
type Prompt struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Attributes
	FinalPrompt string    `json:"final_prompt"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
}

// Snapshot is an archived pre-update state of a prompt, keyed by
// (prompt_id, version). Snapshots are never renumbered or rewritten.
type Snapshot struct {
	ID       uuid.UUID `json:"id"`
	PromptID uuid.UUID `json:"prompt_id"`
	Attributes
	FinalPrompt string    `json:"final_prompt"`
	Version     int       `json:"version"`
	ArchivedAt  time.Time `json:"archived_at"`
}

// CreateCommand carries the data needed to create a new prompt. An
// empty or whitespace-only FinalPrompt is assembled from the attributes.
type CreateCommand struct {
	Attributes
	FinalPrompt string `json:"final_prompt"`
}

// UpdateCommand carries a full replacement of a prompt's content
// fields. An empty or whitespace-only FinalPrompt is assembled from the
// attributes.
type UpdateCommand struct {
	Attributes
	FinalPrompt string `json:"final_prompt"`
}

// RollbackCommand selects the history snapshot to restore.
type RollbackCommand struct {
	Version int `json:"version"`
}

// MergeCommand selects the prompts to merge, in output order.
type MergeCommand struct {
	IDs []uuid.UUID `json:"ids"`
}

// MergeResult is the merged export text.
type MergeResult struct {
	Merged string `json:"merged"`
}
