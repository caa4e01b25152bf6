// Package cache provides caching of analysis results keyed by plan content
// and scoring options. Re-running a batch over an unchanged directory
// becomes a read-through instead of a recomputation.
package cache

import (
	"context"
	"time"
)

// TTL values for cached results. Scores are pure functions of file content
// and options, so entries never go stale; the TTL only bounds disk growth.
const (
	// TTLResult is how long analysis results stay cached.
	TTLResult = 30 * 24 * time.Hour

	// TTLNever disables expiration.
	TTLNever = time.Duration(0)
)

// Cache is the storage interface for analysis results.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any underlying resources.
	Close() error
}

// Keyer generates cache keys for analysis results.
type Keyer interface {
	// PlanKey generates a key from the plan file's content hash and the
	// scoring options in effect. Same content and options, same key,
	// regardless of where the file lives.
	PlanKey(contentHash string, opts PlanKeyOpts) string
}

// PlanKeyOpts are the option fields that change the score and therefore the
// key. Kept as a flat struct so the key survives refactors of the options
// type.
type PlanKeyOpts struct {
	XWeight       float64 `json:"xw"`
	YWeight       float64 `json:"yw"`
	MaxFieldSizeX float64 `json:"xs"`
	MaxFieldSizeY float64 `json:"ys"`
	Version       string  `json:"v"` // scoring algorithm revision
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PlanKey generates a key of the form plan:<sha256(...)>.
func (k *DefaultKeyer) PlanKey(contentHash string, opts PlanKeyOpts) string {
	return hashKey("plan", contentHash, opts)
}
