// Package trash implements soft deletion for prompts and favorites.
// Deleting either moves a content copy into the trash table with origin
// tracking; restore reverses the move and only trash deletion is
// destructive.
package trash

import (
	"time"

	"github.com/google/uuid"

	"promptvault/internal/prompts"
)

// OriginType identifies which table a trash entry came from.
type OriginType string

const (
	OriginPrompt   OriginType = "PROMPT"
	OriginFavorite OriginType = "FAVORITE"
)

// Entry is a soft-deleted record. ItemUID is the id the item had in its
// source table; CreatedAt is copied from the source row so restoring
// preserves the original creation time.
type Entry struct {
	ID         int64      `json:"id"`
	OriginType OriginType `json:"origin_type"`
	ItemUID    *uuid.UUID `json:"item_uid"`
	UserID     uuid.UUID  `json:"user_id"`
	prompts.Attributes
	FinalPrompt string    `json:"final_prompt"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	DeletedAt   time.Time `json:"deleted_at"`
}

// BatchCommand selects trash entries for batch restore or purge.
type BatchCommand struct {
	IDs []int64 `json:"ids"`
}

// SoftDeleteBatchCommand selects source rows for batch soft deletion.
type SoftDeleteBatchCommand struct {
	IDs []uuid.UUID `json:"ids"`
}

// BatchResult reports how many entries an operation affected.
type BatchResult struct {
	Affected int `json:"affected"`
}
