// Package indicator tracks which quality indicators are already bound to
// a non-draft plan, so a second plan cannot claim the same one before the
// server has had a chance to reject it.
package indicator

import (
	"strings"
	"sync"
)

// Tracker maintains the set of used indicators. Adds are optimistic
// (local, ahead of network confirmation); removals only ever happen by
// re-fetching from the backend, since other plans may share an indicator.
type Tracker struct {
	mu   sync.Mutex
	used map[string]bool
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{used: make(map[string]bool)}
}

// Replace swaps the whole set for a fresh backend snapshot. Blank entries
// are dropped.
func (t *Tracker) Replace(indicators []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.used = make(map[string]bool, len(indicators))
	for _, in := range indicators {
		if v := strings.TrimSpace(in); v != "" {
			t.used[v] = true
		}
	}
}

// MarkUsed optimistically claims an indicator the moment a plan carrying
// it is created or updated, independent of network confirmation.
func (t *Tracker) MarkUsed(indicator string) {
	v := strings.TrimSpace(indicator)
	if v == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.used[v] = true
}

// IsAvailable reports whether no non-draft plan claims the indicator yet.
func (t *Tracker) IsAvailable(indicator string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.used[strings.TrimSpace(indicator)]
}

// Used returns a copy of the claimed set, for display.
func (t *Tracker) Used() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.used))
	for v := range t.used {
		out = append(out, v)
	}
	return out
}

// DefaultFor picks the default indicator for a plan. A persisted plan
// keeps whatever it has: the indicator is immutable after persistence,
// dedup state notwithstanding. A fresh plan gets the first candidate not
// yet claimed, or blank when every candidate is taken.
func (t *Tracker) DefaultFor(current string, persisted bool, candidates []string) string {
	if persisted {
		return current
	}
	if v := strings.TrimSpace(current); v != "" {
		return current
	}
	for _, c := range candidates {
		v := strings.TrimSpace(c)
		if v == "" {
			continue
		}
		if t.IsAvailable(v) {
			return v
		}
	}
	return ""
}
