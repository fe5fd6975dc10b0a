package favorites

import (
	"github.com/google/uuid"

	"promptvault/pkg/query"
	"promptvault/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "favorite_prompts", "f").
	Project("id", "ID").
	Project("user_id", "UserID").
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
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

func scanFavorite(s repository.Scanner) (Favorite, error) {
	var (
		f        Favorite
		promptID uuid.NullUUID
	)
	err := s.Scan(
		&f.ID,
		&f.UserID,
		&promptID,
		&f.CoreTheme,
		&f.Hair,
		&f.Pose,
		&f.Outfit,
		&f.Atmosphere,
		&f.Gaze,
		&f.Makeup,
		&f.Background,
		&f.Details,
		&f.AspectRatio,
		&f.FinalPrompt,
		&f.Version,
		&f.CreatedAt,
	)
	if promptID.Valid {
		f.PromptID = &promptID.UUID
	}
	return f, err
}
