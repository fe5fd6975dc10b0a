package favorites

import (
	"context"

	"github.com/google/uuid"

	"promptvault/pkg/pagination"
)

// System defines the public contract for favorite domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		userID *uuid.UUID,
	) (*pagination.PageResult[Favorite], error)

	Find(ctx context.Context, id uuid.UUID) (*Favorite, error)
	Add(ctx context.Context, userID, promptID uuid.UUID) (*Favorite, error)
}
