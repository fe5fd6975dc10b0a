package trash

import (
	"context"

	"github.com/google/uuid"

	"promptvault/pkg/pagination"
)

// System defines the public contract for trash domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		userID *uuid.UUID,
	) (*pagination.PageResult[Entry], error)

	SoftDeletePrompt(ctx context.Context, id uuid.UUID) (*Entry, error)
	SoftDeleteFavorite(ctx context.Context, id uuid.UUID) (*Entry, error)
	SoftDeletePrompts(ctx context.Context, ids []uuid.UUID) (int, error)
	SoftDeleteFavorites(ctx context.Context, ids []uuid.UUID) (int, error)

	Restore(ctx context.Context, id int64) error
	RestoreBatch(ctx context.Context, ids []int64) (int, error)

	PermanentDelete(ctx context.Context, id int64) error
	PermanentDeleteBatch(ctx context.Context, ids []int64) (int, error)
}
