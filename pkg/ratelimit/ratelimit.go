// Package ratelimit implements per-user sliding-window admission control.
// State lives only in memory and resets on restart; this is an
// abuse-mitigation heuristic, not an accounting system.
package ratelimit

import (
	"sync"
	"time"
)

const window = 60 * time.Second

// Governor admits at most maxRequests calls per user within the trailing
// 60-second window.
type Governor struct {
	mu          sync.Mutex
	maxRequests int
	requests    map[int64][]time.Time

	now func() time.Time
}

func New(maxRequestsPerMinute int) *Governor {
	return &Governor{
		maxRequests: maxRequestsPerMinute,
		requests:    make(map[int64][]time.Time),
		now:         time.Now,
	}
}

// Allowed prunes expired timestamps for the user, and when the user is still
// under the limit records this call and admits it.
func (g *Governor) Allowed(userID int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	kept := g.prune(userID, now)

	if len(kept) >= g.maxRequests {
		return false
	}

	g.requests[userID] = append(kept, now)
	return true
}

// WaitSeconds reports how long until the oldest timestamp in the current
// window expires, floored at zero.
func (g *Governor) WaitSeconds(userID int64) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	kept := g.prune(userID, now)
	if len(kept) == 0 {
		return 0
	}
	g.requests[userID] = kept

	oldest := kept[0]
	for _, t := range kept[1:] {
		if t.Before(oldest) {
			oldest = t
		}
	}

	wait := window - now.Sub(oldest)
	if wait < 0 {
		return 0
	}
	return int(wait / time.Second)
}

// prune drops timestamps older than the window. Entries that empty out are
// deleted so the map does not grow without bound.
func (g *Governor) prune(userID int64, now time.Time) []time.Time {
	kept := g.requests[userID][:0]
	for _, t := range g.requests[userID] {
		if now.Sub(t) < window {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(g.requests, userID)
		return nil
	}
	return kept
}
