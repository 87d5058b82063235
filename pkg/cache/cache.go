// Package cache provides pluggable caching for layout results.
//
// Computing a layout is deterministic for a given input document and engine
// configuration, so identical requests can be served from cache. The package
// defines a small Cache interface with several backends:
//
//   - FileCache: file-based cache for CLI usage
//   - MemoryCache: in-process cache for tests and the embedded API server
//   - RedisCache: Redis-backed cache for multi-instance deployments
//   - NullCache: no-op cache when caching is disabled
//
// Cache keys are derived from SHA-256 content hashes via a Keyer, so two
// requests with the same containers and options share an entry regardless of
// where they originate.
package cache

import (
	"context"
	"time"
)

// =============================================================================
// Cache Interface
// =============================================================================

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get returns the cached data for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key with a TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key from the cache. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs per entry category.
const (
	// TTLLayout applies to computed layout results. Layouts are pure
	// functions of their input, so the TTL mainly bounds cache growth.
	TTLLayout = 7 * 24 * time.Hour

	// TTLInput applies to parsed input documents mirrored into the cache.
	TTLInput = 24 * time.Hour
)

// =============================================================================
// Keyer - Cache Key Construction
// =============================================================================

// LayoutKeyOpts are the engine options that shape a layout result and must
// therefore participate in its cache key.
type LayoutKeyOpts struct {
	MaxIterations     int
	WhiteSpaceMin     float64
	WhiteSpaceMax     float64
	Margin            int
	Gutter            int
	BalanceTarget     float64
	MaxBalanceRetries int
}

// Keyer generates cache keys for the different entry categories.
type Keyer interface {
	// LayoutKey generates a key for a computed layout, from the content
	// hash of the input document and the options that shaped the run.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string

	// InputKey generates a key for a stored input document.
	InputKey(slideID string) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key of the form "layout:<sha256>".
func (k *DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

// InputKey generates a key of the form "input:<sha256>".
func (k *DefaultKeyer) InputKey(slideID string) string {
	return hashKey("input", slideID)
}
