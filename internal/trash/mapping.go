package trash

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"promptvault/pkg/query"
	"promptvault/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "trash", "t").
	Project("id", "ID").
	Project("origin_type", "OriginType").
	Project("item_uid", "ItemUID").
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
	Project("created_at", "CreatedAt").
	Project("deleted_at", "DeletedAt")

// newest deletions first
var defaultSort = query.SortField{
	Field:      "DeletedAt",
	Descending: true,
}

func scanEntry(s repository.Scanner) (Entry, error) {
	var (
		e       Entry
		itemUID uuid.NullUUID
	)
	err := s.Scan(
		&e.ID,
		&e.OriginType,
		&itemUID,
		&e.UserID,
		&e.CoreTheme,
		&e.Hair,
		&e.Pose,
		&e.Outfit,
		&e.Atmosphere,
		&e.Gaze,
		&e.Makeup,
		&e.Background,
		&e.Details,
		&e.AspectRatio,
		&e.FinalPrompt,
		&e.Version,
		&e.CreatedAt,
		&e.DeletedAt,
	)
	if itemUID.Valid {
		e.ItemUID = &itemUID.UUID
	}
	return e, err
}

// inClause builds a "$start, $start+1, ..." placeholder list of size n.
func inClause(n, start int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ", ")
}
