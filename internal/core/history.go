package core

import (
	"sync"
)

// DefaultHistorySize caps the triage result window at the last 100 results.
const DefaultHistorySize = 100

// History is a bounded ring buffer of triage results, newest first in
// snapshots. It is owned by whoever constructs it; separate pipelines get
// separate buffers and never interfere.
type History struct {
	mu      sync.RWMutex
	results []ScoreResult
	next    int
	full    bool
}

// NewHistory creates a history window holding at most size results. A size
// of zero or less falls back to DefaultHistorySize.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{results: make([]ScoreResult, size)}
}

// Add appends a result, evicting the oldest once the cap is exceeded.
func (h *History) Add(result ScoreResult) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.results[h.next] = result
	h.next++
	if h.next == len(h.results) {
		h.next = 0
		h.full = true
	}
}

// Len reports how many results the window currently holds.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.full {
		return len(h.results)
	}
	return h.next
}

// Snapshot returns the current window ordered newest first.
func (h *History) Snapshot() []ScoreResult {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := h.next
	if h.full {
		n = len(h.results)
	}
	out := make([]ScoreResult, 0, n)
	for i := 0; i < n; i++ {
		idx := h.next - 1 - i
		if idx < 0 {
			idx += len(h.results)
		}
		out = append(out, h.results[idx])
	}
	return out
}
