package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/safecheck/safecheck/internal/core"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	t.Cleanup(c.Stop)
	return c
}

func testEntry(sender string, ttl time.Duration) *core.CacheEntry {
	return &core.CacheEntry{
		SenderEmail: sender,
		Verdict:     core.VerdictPredictedFraud,
		ThreatScore: 55,
		Confidence:  0.84,
		LastSeen:    time.Now(),
		ExpiresAt:   time.Now().Add(ttl),
	}
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, testEntry("a@example.com", time.Hour)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := c.Get(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Verdict != core.VerdictPredictedFraud || got.ThreatScore != 55 {
		t.Errorf("Get returned %+v", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := newTestCache(t)

	if _, err := c.Get(context.Background(), "missing@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get error = %v, want ErrNotFound", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, testEntry("stale@example.com", -time.Minute)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, err := c.Get(ctx, "stale@example.com"); !errors.Is(err, ErrExpired) {
		t.Errorf("Get error = %v, want ErrExpired", err)
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, testEntry("a@example.com", time.Hour)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := c.Delete(ctx, "a@example.com"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := c.Get(ctx, "a@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryCacheCleanup(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, testEntry("stale@example.com", -time.Minute)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := c.Set(ctx, testEntry("fresh@example.com", time.Hour)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := c.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}

	if _, err := c.Get(ctx, "fresh@example.com"); err != nil {
		t.Errorf("fresh entry should survive cleanup, got %v", err)
	}
	c.mu.RLock()
	_, staleRemains := c.entries["stale@example.com"]
	c.mu.RUnlock()
	if staleRemains {
		t.Error("expired entry should be removed by cleanup")
	}
}

// Mutating a stored entry after Set must not affect the cached copy.
func TestMemoryCacheCopiesEntries(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	entry := testEntry("a@example.com", time.Hour)
	if err := c.Set(ctx, entry); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	entry.ThreatScore = 0

	got, err := c.Get(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ThreatScore != 55 {
		t.Errorf("cached entry was mutated through the caller's pointer: score = %d", got.ThreatScore)
	}
}
