// Package cache stores computed layouts and exported artifacts.
//
// A [Cache] is a byte store with per-entry TTLs. The CLI uses [FileCache]
// under the user cache directory, the HTTP server can share a [RedisCache]
// between replicas, and [NullCache] disables caching entirely.
//
// Keys are produced by a [Keyer] so that every entry point derives the same
// key for the same inputs:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.LayoutKey(cache.Hash(weightsJSON), cache.LayoutKeyOpts{Width: 800, Height: 600})
package cache

import (
	"context"
	"time"
)

// TTLs for cached entries. Layouts are a pure function of their key, so they
// only expire to bound cache growth.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a key/value store for serialized pipeline results.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// Keyer derives cache keys for pipeline stages.
type Keyer interface {
	LayoutKey(inputHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every option that changes a computed layout.
type LayoutKeyOpts struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Epsilon float64 `json:"epsilon"`
}

// ArtifactKeyOpts holds every option that changes an exported artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// DefaultKeyer produces keys of the form "<stage>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns the key for a layout of the input with the given hash.
func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

// ArtifactKey returns the key for an export of the layout with the given hash.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
