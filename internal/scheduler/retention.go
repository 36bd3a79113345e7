package scheduler

import (
	"time"

	"github.com/mnaljm/Project-bonk/internal/logging"
)

// RetentionStore is the slice of the ledger the retention sweep needs.
type RetentionStore interface {
	CleanupOldActivity(days int) (int64, error)
}

// RetentionSweeper deletes per-day activity rows past the retention window.
type RetentionSweeper struct {
	store         RetentionStore
	interval      time.Duration
	retentionDays int
	heartbeat     func()

	stopCh chan struct{}
	done   chan struct{}
}

func NewRetentionSweeper(store RetentionStore, interval time.Duration, retentionDays int) *RetentionSweeper {
	return &RetentionSweeper{
		store:         store,
		interval:      interval,
		retentionDays: retentionDays,
		heartbeat:     func() {},
		stopCh:        make(chan struct{}),
		done:          make(chan struct{}),
	}
}

func (s *RetentionSweeper) SetHeartbeat(fn func()) {
	if fn != nil {
		s.heartbeat = fn
	}
}

func (s *RetentionSweeper) Start() {
	go s.run()
}

func (s *RetentionSweeper) run() {
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

func (s *RetentionSweeper) Stop() {
	close(s.stopCh)
	<-s.done
}

// Sweep runs one retention pass.
func (s *RetentionSweeper) Sweep() {
	deleted, err := s.store.CleanupOldActivity(s.retentionDays)
	if err != nil {
		logging.Error("Activity retention sweep failed: %v", err)
		return
	}
	if deleted > 0 {
		logging.Info("Cleaned up %d old activity record(s)", deleted)
	}
}
