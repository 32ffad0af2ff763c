package cache

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis is an in-memory RedisClient.
type fakeRedis struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttls    map[string]time.Duration
	pingErr []error
	pings   int
	closed  bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = append([]byte(nil), value.([]byte)...)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Ping(ctx context.Context) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	if len(f.pingErr) > 0 {
		err := f.pingErr[0]
		f.pingErr = f.pingErr[1:]
		return redis.NewStatusResult("", err)
	}
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	c, err := NewRedisCacheWithClient(ctx, client)
	if err != nil {
		t.Fatalf("NewRedisCacheWithClient: %v", err)
	}

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Errorf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("layout"), TTLLayout); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if client.ttls["k"] != TTLLayout {
		t.Errorf("ttl = %v, want %v", client.ttls["k"], TTLLayout)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || !bytes.Equal(data, []byte("layout")) {
		t.Errorf("Get(k) = %q, %v, %v", data, hit, err)
	}

	if err := c.Set(ctx, "neg", []byte("x"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if client.ttls["neg"] != 0 {
		t.Errorf("negative ttl stored as %v, want 0", client.ttls["neg"])
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}

	if err := c.Close(); err != nil || !client.closed {
		t.Errorf("Close() = %v, closed %v", err, client.closed)
	}
}

func TestRedisCachePingRetries(t *testing.T) {
	defer func(d time.Duration) { retryDelay = d }(retryDelay)
	retryDelay = time.Millisecond

	client := newFakeRedis()
	client.pingErr = []error{errors.New("connection refused")}
	if _, err := NewRedisCacheWithClient(context.Background(), client); err != nil {
		t.Fatalf("NewRedisCacheWithClient: %v", err)
	}
	if client.pings != 2 {
		t.Errorf("pings = %d, want 2", client.pings)
	}

	down := newFakeRedis()
	refused := errors.New("connection refused")
	down.pingErr = []error{refused, refused, refused}
	_, err := NewRedisCacheWithClient(context.Background(), down)
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("NewRedisCacheWithClient(down) error = %v, want ErrNetwork", err)
	}
}
