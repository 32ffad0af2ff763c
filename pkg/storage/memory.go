package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/matzehuels/squarify/pkg/layout"
)

// MemoryStore keeps layouts in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	layouts map[string]layout.Layout
	now     func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{layouts: make(map[string]layout.Layout), now: time.Now}
}

func (s *MemoryStore) Save(_ context.Context, l *layout.Layout) error {
	stamp(l, s.now())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layouts[l.ID] = clone(*l)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (layout.Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.layouts[id]
	if !ok {
		return layout.Layout{}, notFound(id)
	}
	return clone(l), nil
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]layout.Layout, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	s.mu.RLock()
	out := make([]layout.Layout, 0, len(s.layouts))
	for _, l := range s.layouts {
		out = append(out, clone(l))
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.layouts[id]; !ok {
		return notFound(id)
	}
	delete(s.layouts, id)
	return nil
}

func (s *MemoryStore) Close(context.Context) error { return nil }

// clone copies l so callers cannot mutate stored rectangles.
func clone(l layout.Layout) layout.Layout {
	l.Rects = append([]layout.Rect(nil), l.Rects...)
	return l
}

var _ Store = (*MemoryStore)(nil)
