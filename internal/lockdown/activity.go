package lockdown

import (
	"sync"
	"time"
)

// ActivityTracker remembers when members holding moderation permissions
// were last seen doing something (message or command). In-memory only.
type ActivityTracker struct {
	mu   sync.RWMutex
	last map[string]map[string]time.Time // guildID -> userID -> last seen
}

func NewActivityTracker() *ActivityTracker {
	return &ActivityTracker{
		last: make(map[string]map[string]time.Time),
	}
}

// Touch records activity for a user now.
func (t *ActivityTracker) Touch(guildID, userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	guild, ok := t.last[guildID]
	if !ok {
		guild = make(map[string]time.Time)
		t.last[guildID] = guild
	}
	guild[userID] = time.Now()
}

// ActiveSince reports whether the user has been seen after the cutoff.
func (t *ActivityTracker) ActiveSince(guildID, userID string, cutoff time.Time) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	guild, ok := t.last[guildID]
	if !ok {
		return false
	}
	seen, ok := guild[userID]
	return ok && seen.After(cutoff)
}

// Prune drops entries older than the horizon to keep the map bounded.
func (t *ActivityTracker) Prune(horizon time.Duration) {
	cutoff := time.Now().Add(-horizon)

	t.mu.Lock()
	defer t.mu.Unlock()

	for guildID, guild := range t.last {
		for userID, seen := range guild {
			if seen.Before(cutoff) {
				delete(guild, userID)
			}
		}
		if len(guild) == 0 {
			delete(t.last, guildID)
		}
	}
}
