// Package favorites implements detached snapshot copies of prompts.
// A favorite captures a prompt's content at the moment it is added;
// later edits to either side never propagate.
package favorites

import (
	"time"

	"github.com/google/uuid"

	"promptvault/internal/prompts"
)

// Favorite is an independent copy of a prompt's content with its own
// identity. PromptID records the originating prompt but carries no
// lifecycle coupling; favorites recovered from trash have none.
type Favorite struct {
	ID       uuid.UUID  `json:"id"`
	UserID   uuid.UUID  `json:"user_id"`
	PromptID *uuid.UUID `json:"prompt_id"`
	prompts.Attributes
	FinalPrompt string    `json:"final_prompt"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
}
