package scheduler

import (
	"context"
	"errors"

	"socialbot/types"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Get when no record exists under the requested id.
var ErrNotFound = errors.New("scheduled post not found")

// Store is durable key-value persistence for scheduled posts. Implementations
// must not log or print; failures of the backing medium propagate as errors
// and an unknown id is always ErrNotFound, never an empty payload.
//
// Records are whole-record append/delete only: a post is written once by
// Create and leaves the store through Delete, either on explicit request or
// after a successful publish.
type Store interface {
	// Create persists the payload under a freshly generated identifier and
	// returns it. The write is visible to List and Get once Create returns.
	Create(ctx context.Context, payload types.PostPayload) (string, error)

	// List returns every stored record. Order is unspecified. An empty or
	// not-yet-created backing namespace yields an empty slice, not an error.
	List(ctx context.Context) ([]types.ScheduledPost, error)

	// Get is a point lookup; it returns ErrNotFound for an absent id.
	Get(ctx context.Context, id string) (types.PostPayload, error)

	// Delete removes the record if present and reports whether anything was
	// removed. Deleting an absent id returns (false, nil).
	Delete(ctx context.Context, id string) (bool, error)
}

// newPostID generates a store-unique post identifier.
//
// An earlier scheme derived ids from epoch seconds (post_1700000000), which
// collides when two posts are created within the same second and silently
// overwrites the first record. Random UUIDs keep ids unique regardless of
// call timing.
func newPostID() string {
	return "post_" + uuid.NewString()
}
