// Package storage persists computed layouts for the HTTP API.
//
// [MemoryStore] keeps layouts in process and is the default for local use.
// [MongoStore] stores them in a MongoDB collection, using the BSON tags of
// [layout.Layout] as the document schema.
//
// Stores assign a random UUID and a creation time to every layout they save.
// Lookups of unknown IDs fail with a NOT_FOUND error from pkg/errors.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	errs "github.com/matzehuels/squarify/pkg/errors"
	"github.com/matzehuels/squarify/pkg/layout"
)

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Store persists layouts. Implementations must be safe for concurrent use.
type Store interface {
	// Save assigns l an ID and creation time and stores it.
	Save(ctx context.Context, l *layout.Layout) error
	// Get returns the layout with the given ID.
	Get(ctx context.Context, id string) (layout.Layout, error)
	// List returns up to limit layouts, newest first.
	List(ctx context.Context, limit int) ([]layout.Layout, error)
	// Delete removes the layout with the given ID.
	Delete(ctx context.Context, id string) error
	// Close releases the store's resources.
	Close(ctx context.Context) error
}

// stamp assigns a fresh ID and creation time.
func stamp(l *layout.Layout, now time.Time) {
	l.ID = uuid.NewString()
	l.CreatedAt = now.UTC().Truncate(time.Millisecond)
}

// ValidateID reports an INVALID_INPUT error unless id is a UUID.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid layout id %q", id)
	}
	return nil
}

func notFound(id string) error {
	return errs.New(errs.ErrCodeNotFound, "layout %s not found", id)
}
