package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if data, hit, err := c.Get(ctx, "key"); hit || data != nil || err != nil {
		t.Errorf("Get after Set = %q, %v, %v; want clean miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	const helloSHA256 = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got := Hash([]byte("hello")); got != helloSHA256 {
		t.Errorf("Hash(hello) = %s, want %s", got, helloSHA256)
	}
	if Hash([]byte("hello")) == Hash([]byte("hello ")) {
		t.Error("different inputs should produce different hashes")
	}
}

func TestLayoutKeyCoversEveryOption(t *testing.T) {
	k := NewDefaultKeyer()
	base := LayoutKeyOpts{X: 0, Y: 0, Width: 800, Height: 600, Epsilon: 1e-9}
	baseKey := k.LayoutKey("input", base)

	if !strings.HasPrefix(baseKey, "layout:v1:") {
		t.Errorf("LayoutKey = %s, want layout:v1: prefix", baseKey)
	}
	if k.LayoutKey("input", base) != baseKey {
		t.Error("equal options should produce equal keys")
	}
	if k.LayoutKey("other", base) == baseKey {
		t.Error("different input hashes should produce different keys")
	}

	tests := []struct {
		name   string
		modify func(*LayoutKeyOpts)
	}{
		{"x", func(o *LayoutKeyOpts) { o.X = 1 }},
		{"y", func(o *LayoutKeyOpts) { o.Y = 1 }},
		{"width", func(o *LayoutKeyOpts) { o.Width = 801 }},
		{"height", func(o *LayoutKeyOpts) { o.Height = 601 }},
		{"epsilon", func(o *LayoutKeyOpts) { o.Epsilon = 1e-6 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := base
			tt.modify(&opts)
			if k.LayoutKey("input", opts) == baseKey {
				t.Errorf("changing %s did not change the key", tt.name)
			}
		})
	}
}

func TestArtifactKey(t *testing.T) {
	k := NewDefaultKeyer()
	jsonKey := k.ArtifactKey("layout", ArtifactKeyOpts{Format: "json"})

	if !strings.HasPrefix(jsonKey, "artifact:v1:") {
		t.Errorf("ArtifactKey = %s, want artifact:v1: prefix", jsonKey)
	}
	if jsonKey == k.ArtifactKey("layout", ArtifactKeyOpts{Format: "csv"}) {
		t.Error("formats should produce different keys")
	}
	if jsonKey == k.ArtifactKey("other", ArtifactKeyOpts{Format: "json"}) {
		t.Error("layouts should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	opts := LayoutKeyOpts{Width: 1, Height: 1}
	tests := []struct {
		name  string
		inner Keyer
	}{
		{"explicit inner", NewDefaultKeyer()},
		{"nil inner", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scoped := NewScopedKeyer(tt.inner, "squarify:")
			def := NewDefaultKeyer()

			if got, want := scoped.LayoutKey("h", opts), "squarify:"+def.LayoutKey("h", opts); got != want {
				t.Errorf("LayoutKey = %s, want %s", got, want)
			}
			art := ArtifactKeyOpts{Format: "csv"}
			if got, want := scoped.ArtifactKey("h", art), "squarify:"+def.ArtifactKey("h", art); got != want {
				t.Errorf("ArtifactKey = %s, want %s", got, want)
			}
		})
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("Retryable should keep the cause reachable")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), ErrNetwork.Error())
	}
	if IsRetryable(errors.New("boom")) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	defer func(d time.Duration) { retryDelay = d }(retryDelay)
	retryDelay = time.Millisecond

	boom := errors.New("boom")
	tests := []struct {
		name      string
		failures  int   // calls that fail before success
		err       error // error of failing calls
		wantCalls int
		wantErr   error
	}{
		{"first try", 0, nil, 1, nil},
		{"not retryable", 5, boom, 1, boom},
		{"recovers", 1, Retryable(ErrNetwork), 2, nil},
		{"recovers on last attempt", 2, Retryable(ErrNetwork), 3, nil},
		{"gives up", 5, Retryable(ErrNetwork), retryAttempts, ErrNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(context.Background(), func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("RetryWithBackoff() = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("RetryWithBackoff() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(ErrNetwork)
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RetryWithBackoff() = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
