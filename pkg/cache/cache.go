// Package cache provides content-addressed caching for pipeline stages.
//
// Keys are derived from input hashes plus the options that influence a
// stage's output, so a cache entry can never be served for inputs it was
// not computed from. Three backends are provided: FileCache for CLI
// usage, RedisCache for multi-instance server deployments, and NullCache
// to disable caching entirely.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry family. Dataset normalization is cheap but
// stable; rendered artifacts are larger and invalidated by option
// changes anyway, so they keep a longer TTL.
const (
	TTLDataset  = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys with optional TTL.
type Cache interface {
	// Get returns the cached value and whether the key was present.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores a value. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts are the render options that participate in artifact
// cache keys.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Style       string  `json:"style"`
	Gradient    string  `json:"gradient"`
	Orientation string  `json:"orientation"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Labels      bool    `json:"labels"`
}

// Keyer generates cache keys for the pipeline's entry families.
type Keyer interface {
	// DatasetKey keys a normalized dataset by its source content hash.
	DatasetKey(sourceHash string) string

	// ArtifactKey keys a rendered artifact by dataset hash and render
	// options.
	ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer implements the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DatasetKey returns "dataset:" + hash(sourceHash).
func (DefaultKeyer) DatasetKey(sourceHash string) string {
	return hashKey("dataset", sourceHash)
}

// ArtifactKey returns "artifact:" + hash(datasetHash, opts).
func (DefaultKeyer) ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", datasetHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, e.g.
// per-tenant caches behind a shared Redis.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer whose keys all carry the given prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// DatasetKey returns the prefixed dataset key.
func (k *ScopedKeyer) DatasetKey(sourceHash string) string {
	return k.prefix + k.inner.DatasetKey(sourceHash)
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(datasetHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(datasetHash, opts)
}
