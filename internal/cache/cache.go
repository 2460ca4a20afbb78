// Package cache provides time-bounded memoization of resolved playtime
// estimates, keyed by the strict title normalization from the titles package.
// Supports both in-memory and Redis backends for multi-instance deployments.
package cache

import (
	"context"
	"time"

	"gamelength/internal/core"
)

// DefaultTTL is how long a resolved estimate stays valid. Expiry is checked
// lazily on read; there is no background sweep.
const DefaultTTL = 7 * 24 * time.Hour

// Store defines the interface for playtime result caching.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get retrieves the cached estimate for a raw title.
	// Returns nil, nil on a miss (including expiry).
	Get(ctx context.Context, rawTitle string) (*core.PlaytimeEstimate, error)

	// Set stores the estimate for a raw title, overwriting any prior entry.
	Set(ctx context.Context, rawTitle string, value *core.PlaytimeEstimate) error

	// Close releases any resources held by the store.
	Close() error
}
