package scheduler

import (
	"time"

	"github.com/mnaljm/Project-bonk/internal/database"
	"github.com/mnaljm/Project-bonk/internal/logging"
	"github.com/mnaljm/Project-bonk/internal/metrics"
	"github.com/mnaljm/Project-bonk/internal/models"
)

// ExpiryStore is the slice of the ledger the expiry sweep needs.
type ExpiryStore interface {
	GetExpiredPunishments(now time.Time) ([]*database.TempPunishment, error)
	DeactivateTempPunishment(punishmentID int64) error
	DeactivateCase(caseID int64) error
}

// Reverser undoes platform-side sanctions.
type Reverser interface {
	RemoveTimeout(guildID, userID string) error
	UnbanMember(guildID, userID string) error
}

// ExpirySweeper periodically reverses sanctions past their expiry. A failed
// reversal (member gone, permission lost) is logged and the row is retired
// anyway: the ledger stays consistent, and a missed reversal is never
// re-attempted.
type ExpirySweeper struct {
	store     ExpiryStore
	client    Reverser
	interval  time.Duration
	heartbeat func()
	now       func() time.Time

	stopCh chan struct{}
	done   chan struct{}
}

func NewExpirySweeper(store ExpiryStore, client Reverser, interval time.Duration) *ExpirySweeper {
	return &ExpirySweeper{
		store:     store,
		client:    client,
		interval:  interval,
		heartbeat: func() {},
		now:       time.Now,
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// SetHeartbeat wires the watchdog callback invoked once per sweep.
func (s *ExpirySweeper) SetHeartbeat(fn func()) {
	if fn != nil {
		s.heartbeat = fn
	}
}

func (s *ExpirySweeper) Start() {
	go s.run()
}

func (s *ExpirySweeper) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
			s.heartbeat()
		case <-s.stopCh:
			return
		}
	}
}

func (s *ExpirySweeper) Stop() {
	close(s.stopCh)
	<-s.done
}

// Sweep runs one pass over expired punishments. One punishment's failure
// never aborts the rest of the pass.
func (s *ExpirySweeper) Sweep() {
	expired, err := s.store.GetExpiredPunishments(s.now())
	if err != nil {
		logging.Error("Expiry sweep query failed: %v", err)
		return
	}

	for _, p := range expired {
		s.reverse(p)

		if err := s.store.DeactivateTempPunishment(p.ID); err != nil {
			logging.Error("Failed to retire punishment %d: %v", p.ID, err)
			continue
		}
		if p.CaseID != 0 {
			if err := s.store.DeactivateCase(p.CaseID); err != nil {
				logging.Warn("Failed to deactivate case %d for punishment %d: %v", p.CaseID, p.ID, err)
			}
		}
	}

	if len(expired) > 0 {
		metrics.Get().AddPunishmentsSwept(len(expired))
		logging.Info("Expiry sweep retired %d punishment(s)", len(expired))
	}
}

func (s *ExpirySweeper) reverse(p *database.TempPunishment) {
	var err error
	switch p.PunishmentType {
	case models.PunishmentTimeout:
		err = s.client.RemoveTimeout(p.GuildID, p.UserID)
	case models.PunishmentBan:
		err = s.client.UnbanMember(p.GuildID, p.UserID)
	default:
		logging.Warn("Punishment %d has unknown type %q, retiring without reversal", p.ID, p.PunishmentType)
		return
	}

	if err != nil {
		// Target may have left or permissions changed; retire the row anyway.
		logging.Error("Failed to reverse %s for user %s in guild %s: %v",
			p.PunishmentType, p.UserID, p.GuildID, err)
	} else {
		logging.Info("Reversed expired %s for user %s in guild %s", p.PunishmentType, p.UserID, p.GuildID)
	}
}
