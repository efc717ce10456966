package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, "ea:", time.Minute), mr
}

func TestRedisGetSet(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	if _, ok, err := r.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("miss: ok=%v err=%v", ok, err)
	}

	if err := r.Set(ctx, "vehicle:e46", []byte("m3"), 10*time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := r.Get(ctx, "vehicle:e46")
	if err != nil || !ok || string(got) != "m3" {
		t.Fatalf("get = %q %v %v", got, ok, err)
	}

	if raw, err := mr.Get("ea:vehicle:e46"); err != nil || raw != "m3" {
		t.Fatalf("stored key not prefixed: %q %v", raw, err)
	}
	if ttl := mr.TTL("ea:vehicle:e46"); ttl != 10*time.Second {
		t.Fatalf("ttl = %v", ttl)
	}

	mr.FastForward(11 * time.Second)
	if _, ok, _ := r.Get(ctx, "vehicle:e46"); ok {
		t.Fatal("entry survived its ttl")
	}
}

func TestRedisDefaultTTL(t *testing.T) {
	r, mr := newTestRedis(t)

	if err := r.Set(context.Background(), "k", []byte("v"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL("ea:k"); ttl != time.Minute {
		t.Fatalf("ttl = %v, want the default", ttl)
	}
}

func TestRedisDelete(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	_ = r.Set(ctx, "k", []byte("v"), 0)
	if err := r.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("ea:k") {
		t.Fatal("key still present")
	}
	if err := r.Delete(ctx, "never-set"); err != nil {
		t.Fatalf("deleting a missing key: %v", err)
	}
}

func TestRedisIncrFixedWindow(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()
	window := time.Minute

	before := time.Now()
	w, err := r.Incr(ctx, "ratelimit:api:ip", window)
	if err != nil {
		t.Fatalf("incr: %v", err)
	}
	if w.Count != 1 {
		t.Fatalf("count = %d", w.Count)
	}
	if w.ResetAt.Sub(w.Start) != window {
		t.Fatalf("window span = %v", w.ResetAt.Sub(w.Start))
	}
	if w.ResetAt.Before(before.Add(window)) {
		t.Fatalf("reset at %v is earlier than a full window", w.ResetAt)
	}

	// Later hits keep the expiry set by the first one.
	mr.FastForward(20 * time.Second)
	w, err = r.Incr(ctx, "ratelimit:api:ip", window)
	if err != nil {
		t.Fatalf("incr: %v", err)
	}
	if w.Count != 2 {
		t.Fatalf("count = %d", w.Count)
	}
	if ttl := mr.TTL("ea:ratelimit:api:ip"); ttl != 40*time.Second {
		t.Fatalf("ttl = %v, want the window anchored at the first hit", ttl)
	}
	if left := time.Until(w.ResetAt); left > 41*time.Second || left < 39*time.Second {
		t.Fatalf("reset in %v", left)
	}

	mr.FastForward(40 * time.Second)
	w, err = r.Incr(ctx, "ratelimit:api:ip", window)
	if err != nil {
		t.Fatalf("incr: %v", err)
	}
	if w.Count != 1 {
		t.Fatalf("count after the window = %d", w.Count)
	}
	if ttl := mr.TTL("ea:ratelimit:api:ip"); ttl != window {
		t.Fatalf("new window ttl = %v", ttl)
	}
}

func TestRedisReportsErrors(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()
	mr.Close()

	if _, _, err := r.Get(ctx, "k"); err == nil {
		t.Fatal("expected get error")
	}
	if _, err := r.Incr(ctx, "k", time.Minute); err == nil {
		t.Fatal("expected incr error")
	}
}
