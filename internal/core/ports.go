package core

import (
	"context"
	"time"
)

// CacheEntry is a cached per-sender verdict.
type CacheEntry struct {
	SenderEmail string
	Verdict     Verdict
	ThreatScore int
	Confidence  float64
	LastSeen    time.Time
	ExpiresAt   time.Time
}

// TrustedChecker reports whether a sender address belongs to a trusted
// domain, short-circuiting triage entirely.
type TrustedChecker interface {
	IsWhitelisted(from string) bool
}

// VerdictCache caches triage verdicts per sender address.
type VerdictCache interface {
	// Get retrieves a cached entry for a sender
	Get(ctx context.Context, senderEmail string) (*CacheEntry, error)

	// Set stores a cache entry
	Set(ctx context.Context, entry *CacheEntry) error

	// Delete removes a cache entry
	Delete(ctx context.Context, senderEmail string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}
