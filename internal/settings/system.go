package settings

import "context"

// System defines the public contract for settings operations.
type System interface {
	Handler() *Handler

	// Get returns the stored value for key, falling back to the
	// compiled-in default when the row is absent or the store read
	// fails. A fallback read is never an error.
	Get(ctx context.Context, key string) (*Setting, error)

	// Set upserts the value for key.
	Set(ctx context.Context, key, value string) (*Setting, error)
}
