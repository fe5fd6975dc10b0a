package prompts

import (
	"net/url"

	"github.com/google/uuid"

	"promptvault/pkg/query"
	"promptvault/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "prompts", "p").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("core_theme", "CoreTheme").
	Project("hair", "Hair").
	Project("pose", "Pose").
	Project("outfit", "Outfit").
	Project("atmosphere", "Atmosphere").
	Project("gaze", "Gaze").
	Project("makeup", "Makeup").
	Project("background", "Background").
	Project("details", "Details").
	Project("aspect_ratio", "AspectRatio").
	Project("final_prompt", "FinalPrompt").
	Project("version", "Version").
	Project("created_at", "CreatedAt")

var historyProjection = query.
	NewProjectionMap("public", "prompt_histories", "h").
	Project("id", "ID").
	Project("prompt_id", "PromptID").
	Project("core_theme", "CoreTheme").
	Project("hair", "Hair").
	Project("pose", "Pose").
	Project("outfit", "Outfit").
	Project("atmosphere", "Atmosphere").
	Project("gaze", "Gaze").
	Project("makeup", "Makeup").
	Project("background", "Background").
	Project("details", "Details").
	Project("aspect_ratio", "AspectRatio").
	Project("final_prompt", "FinalPrompt").
	Project("version", "Version").
	Project("archived_at", "ArchivedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for prompt queries.
// Nil fields are ignored. CoreTheme uses case-insensitive contains
// matching; UserID and AspectRatio use exact matching.
type Filters struct {
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	CoreTheme   *string    `json:"core_theme,omitempty"`
	AspectRatio *string    `json:"aspect_ratio,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("UserID", f.UserID).
		WhereContains("CoreTheme", f.CoreTheme).
		WhereEquals("AspectRatio", f.AspectRatio)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if t := values.Get("core_theme"); t != "" {
		f.CoreTheme = &t
	}

	if a := values.Get("aspect_ratio"); a != "" {
		f.AspectRatio = &a
	}

	return f
}

func scanPrompt(s repository.Scanner) (Prompt, error) {
	var p Prompt
	err := s.Scan(
		&p.ID,
		&p.UserID,
		&p.CoreTheme,
		&p.Hair,
		&p.Pose,
		&p.Outfit,
		&p.Atmosphere,
		&p.Gaze,
		&p.Makeup,
		&p.Background,
		&p.Details,
		&p.AspectRatio,
		&p.FinalPrompt,
		&p.Version,
		&p.CreatedAt,
	)
	return p, err
}

func scanSnapshot(s repository.Scanner) (Snapshot, error) {
	var h Snapshot
	err := s.Scan(
		&h.ID,
		&h.PromptID,
		&h.CoreTheme,
		&h.Hair,
		&h.Pose,
		&h.Outfit,
		&h.Atmosphere,
		&h.Gaze,
		&h.Makeup,
		&h.Background,
		&h.Details,
		&h.AspectRatio,
		&h.FinalPrompt,
		&h.Version,
		&h.ArchivedAt,
	)
	return h, err
}
