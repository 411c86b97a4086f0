// Package cache stores derived analysis results keyed by the input graph.
//
// Pareto fronts are deterministic given a graph and a weight grid, and the
// 3D sweep in particular is expensive, so fronts are cached as JSON cost
// vectors. Trees themselves are never cached.
//
// Backends:
//   - [FileCache]: JSON files under a directory, for the CLI
//   - [BoltCache]: one bbolt database file, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DefaultFrontTTL is how long cached fronts live.
const DefaultFrontTTL = 7 * 24 * time.Hour

// Key types reported to observability hooks.
const (
	KeyTypeFront   = "front"
	KeyTypeFront3D = "front3d"
)

// FrontKeyOpts holds every parameter that changes a front.
type FrontKeyOpts struct {
	Dim       int `json:"dim"`
	Steps     int `json:"steps"`
	Midpoints int `json:"midpoints"`
}

// Keyer builds cache keys.
type Keyer interface {
	// FrontKey returns the key of the front computed for the graph with
	// the given content hash.
	FrontKey(graphHash string, opts FrontKeyOpts) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// FrontKey hashes the graph hash and options into "front:<sha256>".
func (DefaultKeyer) FrontKey(graphHash string, opts FrontKeyOpts) string {
	return hashKey("front", graphHash, opts)
}

// Clearer is implemented by local backends that can drop all entries at
// once. It reports how many entries were removed.
type Clearer interface {
	Clear() (int, error)
}
