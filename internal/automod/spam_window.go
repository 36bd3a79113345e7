package automod

import (
	"sync"
	"time"
)

// spamHorizon is the sliding window over which message timestamps count
// toward the spam threshold.
const spamHorizon = 10 * time.Second

// SpamTracker keeps a per-user window of recent message timestamps. State is
// in-memory only; losing it on restart costs at most one window's worth of
// detection.
type SpamTracker struct {
	mu      sync.Mutex
	windows map[string][]time.Time
}

func NewSpamTracker() *SpamTracker {
	return &SpamTracker{
		windows: make(map[string][]time.Time),
	}
}

func windowKey(guildID, userID string) string {
	return guildID + ":" + userID
}

// Record appends a message timestamp to the user's window, prunes entries
// older than the horizon, and reports the window size and whether the
// threshold was reached. On a violation the window is cleared outright so
// the very next message cannot immediately re-trigger.
func (t *SpamTracker) Record(guildID, userID string, now time.Time, threshold int) (int, bool) {
	key := windowKey(guildID, userID)

	t.mu.Lock()
	defer t.mu.Unlock()

	window := append(t.windows[key], now)

	cutoff := now.Add(-spamHorizon)
	pruned := window[:0]
	for _, ts := range window {
		if ts.After(cutoff) {
			pruned = append(pruned, ts)
		}
	}

	count := len(pruned)
	if threshold > 0 && count >= threshold {
		delete(t.windows, key)
		return count, true
	}

	t.windows[key] = pruned
	return count, false
}

// Reset drops a user's window.
func (t *SpamTracker) Reset(guildID, userID string) {
	t.mu.Lock()
	delete(t.windows, windowKey(guildID, userID))
	t.mu.Unlock()
}
