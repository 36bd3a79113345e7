package lockdown

import (
	"time"

	"github.com/mnaljm/Project-bonk/internal/models"
)

// Signal is one weak availability indicator for a moderator. Signals are
// checked in order and OR-combined, short-circuiting on the first positive:
// a moderator wrongly counted available is cheaper than a guild wrongly
// locked down.
type Signal interface {
	Name() string
	Available(guildID string, mod models.ModeratorInfo, now time.Time) bool
}

// StatusSignal trusts the platform's top-level presence status.
type StatusSignal struct{}

func (StatusSignal) Name() string { return "presence_status" }

func (StatusSignal) Available(_ string, mod models.ModeratorInfo, _ time.Time) bool {
	return mod.Status != "" && mod.Status != "offline"
}

// ClientStatusSignal checks the per-client (desktop/mobile/web) presence
// indicators; any one online counts.
type ClientStatusSignal struct{}

func (ClientStatusSignal) Name() string { return "client_status" }

func (ClientStatusSignal) Available(_ string, mod models.ModeratorInfo, _ time.Time) bool {
	for _, s := range []string{mod.DesktopStatus, mod.MobileStatus, mod.WebStatus} {
		if s != "" && s != "offline" {
			return true
		}
	}
	return false
}

// RecentActivitySignal counts a moderator as available if they sent a
// message or ran a command within the recency window.
type RecentActivitySignal struct {
	Tracker *ActivityTracker
	Recency time.Duration
}

func (RecentActivitySignal) Name() string { return "recent_activity" }

func (s RecentActivitySignal) Available(guildID string, mod models.ModeratorInfo, now time.Time) bool {
	return s.Tracker.ActiveSince(guildID, mod.UserID, now.Add(-s.Recency))
}

// DefaultSignals is the production signal chain.
func DefaultSignals(tracker *ActivityTracker) []Signal {
	return []Signal{
		StatusSignal{},
		ClientStatusSignal{},
		RecentActivitySignal{Tracker: tracker, Recency: 30 * time.Minute},
	}
}
