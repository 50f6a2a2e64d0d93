package cache

import (
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	c := New[string]()
	c.Set("masters", "v1", time.Minute)

	got, ok := c.Get("masters")
	if !ok || got != "v1" {
		t.Fatalf("expected v1, got %q (ok=%v)", got, ok)
	}
	if !c.Has("masters") {
		t.Fatal("Has should report true for a live entry")
	}
}

func TestCacheExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewWithClock[int](func() time.Time { return now })

	c.Set("k", 42, time.Minute)

	now = now.Add(59 * time.Second)
	if v, ok := c.Get("k"); !ok || v != 42 {
		t.Fatalf("entry expired too early: %d (ok=%v)", v, ok)
	}

	now = now.Add(2 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatal("entry should be absent after ttl elapsed")
	}
	// повторное чтение после ленивой очистки
	if c.Has("k") {
		t.Fatal("expired entry must stay absent")
	}
}

func TestCacheDefaultTTL(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := NewWithClock[int](func() time.Time { return now })

	c.Set("k", 1, 0)

	now = now.Add(DefaultTTL - time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("entry should live for the default ttl")
	}
	now = now.Add(2 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatal("entry should expire after the default ttl")
	}
}

func TestCacheClear(t *testing.T) {
	c := New[string]()
	c.Set("a", "1", time.Minute)
	c.Set("b", "2", time.Minute)

	c.Clear()

	if c.Has("a") || c.Has("b") {
		t.Fatal("Clear must drop every key")
	}
}
