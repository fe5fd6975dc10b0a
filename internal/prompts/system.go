package prompts

import (
	"context"

	"github.com/google/uuid"

	"promptvault/pkg/pagination"
)

// System defines the public contract for prompt domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Prompt], error)

	Find(ctx context.Context, id uuid.UUID) (*Prompt, error)
	Create(ctx context.Context, userID uuid.UUID, cmd CreateCommand) (*Prompt, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Prompt, error)
	Duplicate(ctx context.Context, userID, id uuid.UUID) (*Prompt, error)
	Rollback(ctx context.Context, id uuid.UUID, version int) (*Prompt, error)
	History(ctx context.Context, id uuid.UUID) ([]Snapshot, error)
	FindVersion(ctx context.Context, id uuid.UUID, version int) (*Snapshot, error)
	Merge(ctx context.Context, ids []uuid.UUID) (string, error)
}
