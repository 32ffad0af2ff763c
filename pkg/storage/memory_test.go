package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	errs "github.com/matzehuels/squarify/pkg/errors"
	"github.com/matzehuels/squarify/pkg/layout"
)

func sampleLayout() layout.Layout {
	rects := []layout.Rect{{ID: 0, Value: 1, Width: 2, Height: 1}}
	return layout.Layout{
		Canvas: layout.Canvas{Width: 2, Height: 1},
		Rects:  rects,
		Stats:  layout.ComputeStats(rects),
	}
}

func TestMemoryStoreSaveGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	l := sampleLayout()
	if err := s.Save(ctx, &l); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := ValidateID(l.ID); err != nil {
		t.Errorf("Save assigned invalid id %q: %v", l.ID, err)
	}
	if !l.CreatedAt.Equal(fixed) {
		t.Errorf("CreatedAt = %v, want %v", l.CreatedAt, fixed)
	}

	got, err := s.Get(ctx, l.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != l.ID || len(got.Rects) != 1 {
		t.Errorf("Get = %+v", got)
	}

	// Mutating the result must not change the stored copy
	got.Rects[0].Value = 99
	again, _ := s.Get(ctx, l.ID)
	if again.Rects[0].Value != 1 {
		t.Error("Get returned shared rect storage")
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if _, err := s.Get(ctx, "missing"); !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("Get(missing) error = %v, want NOT_FOUND", err)
	}
	if err := s.Delete(ctx, "missing"); !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("Delete(missing) error = %v, want NOT_FOUND", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	l := sampleLayout()
	if err := s.Save(ctx, &l); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete(ctx, l.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, l.ID); !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("Get after Delete error = %v, want NOT_FOUND", err)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var tick int
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	var ids []string
	for i := 0; i < 5; i++ {
		l := sampleLayout()
		if err := s.Save(ctx, &l); err != nil {
			t.Fatalf("Save: %v", err)
		}
		ids = append(ids, l.ID)
	}

	got, err := s.List(ctx, 3)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len(List) = %d, want 3", len(got))
	}
	for i, l := range got {
		if want := ids[len(ids)-1-i]; l.ID != want {
			t.Errorf("List[%d].ID = %s, want %s", i, l.ID, want)
		}
	}

	all, _ := s.List(ctx, 0)
	if len(all) != 5 {
		t.Errorf("List(0) returned %d layouts, want 5", len(all))
	}
}

func TestMemoryStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	errCh := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l := sampleLayout()
			if err := s.Save(ctx, &l); err != nil {
				errCh <- err
				return
			}
			if _, err := s.Get(ctx, l.ID); err != nil {
				errCh <- fmt.Errorf("get %s: %w", l.ID, err)
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Error(err)
	}

	all, _ := s.List(ctx, 100)
	if len(all) != 20 {
		t.Errorf("stored %d layouts, want 20", len(all))
	}
}

func TestValidateID(t *testing.T) {
	if err := ValidateID("not-a-uuid"); !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("ValidateID(bad) error = %v, want INVALID_INPUT", err)
	}
	if err := ValidateID("3b241101-e2bb-4255-8caf-4136c566a962"); err != nil {
		t.Errorf("ValidateID(good) error = %v", err)
	}
}
