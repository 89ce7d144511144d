package secondary

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LockManager provides distributed mutual exclusion keyed by submission
// identity. Not a queue or scheduling primitive.
type LockManager interface {
	// Acquire takes the lock for submissionID with the given TTL,
	// returning true only when this call created the lock entry. A store
	// failure reports false: a false positive would break the
	// at-most-one-execution guarantee.
	Acquire(ctx context.Context, submissionID uuid.UUID, ttl time.Duration) (bool, error)

	// Release deletes the lock unconditionally. Best effort: a stale
	// lock self-expires via its TTL.
	Release(ctx context.Context, submissionID uuid.UUID)
}
