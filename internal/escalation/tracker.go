package escalation

import (
	"fmt"
	"strings"
	"time"

	"github.com/mnaljm/Project-bonk/internal/database"
	"github.com/mnaljm/Project-bonk/internal/logging"
	"github.com/mnaljm/Project-bonk/internal/metrics"
	"github.com/mnaljm/Project-bonk/internal/models"
	"github.com/mnaljm/Project-bonk/internal/notifier"
	"github.com/mnaljm/Project-bonk/internal/platform"
)

const (
	// Three automated-policy cases within the window trigger a timeout.
	violationThreshold = 3
	window             = time.Hour
	// Repeat escalations always get the same duration; there is no back-off.
	timeoutSeconds = 600
)

// Store is the slice of the ledger the tracker needs.
type Store interface {
	GetUserCasesSince(guildID, userID string, since time.Time) ([]*database.ModerationCase, error)
	CreateModerationCase(guildID, caseType, userID, moderatorID, reason string, duration int64) (int64, error)
	AddTempPunishment(guildID, userID, punishmentType string, expiresAt time.Time, caseID int64) (int64, error)
	GetGuildConfig(guildID string) (*database.GuildConfig, error)
}

// Tracker counts a user's recent automated-policy cases and issues an
// automatic timeout once the threshold is crossed.
type Tracker struct {
	store  Store
	client platform.Client
	now    func() time.Time
}

func NewTracker(store Store, client platform.Client) *Tracker {
	return &Tracker{
		store:  store,
		client: client,
		now:    time.Now,
	}
}

// OnViolation re-evaluates a user after a new automated enforcement. It
// counts automod cases in the rolling window that are newer than the most
// recent escalation, so one burst of violations escalates once and cannot
// re-trigger until enough new violations accumulate. Only escalation cases
// end the scan: the per-violation lockdown timeout writes its own
// auto_timeout case, and violations under lockdown must still accumulate.
func (t *Tracker) OnViolation(guildID, userID string) {
	now := t.now()

	cases, err := t.store.GetUserCasesSince(guildID, userID, now.Add(-window))
	if err != nil {
		// Read failure degrades to no escalation rather than crashing the path.
		logging.Error("Escalation check failed for user %s in guild %s: %v", userID, guildID, err)
		return
	}

	count := 0
	for _, c := range cases { // newest first
		if c.CaseType == models.CaseEscalationTimeout {
			break
		}
		if strings.HasPrefix(c.CaseType, models.AutomodCasePrefix) {
			count++
		}
	}

	if count < violationThreshold {
		return
	}

	reason := fmt.Sprintf("Automatic timeout for %d auto-moderation violations", count)
	caseID, err := t.store.CreateModerationCase(
		guildID, models.CaseEscalationTimeout, userID, t.client.BotUserID(), reason, timeoutSeconds)
	if err != nil {
		// No sanction without a ledger record.
		logging.Error("Failed to record escalation case for user %s: %v", userID, err)
		return
	}

	expiresAt := now.Add(timeoutSeconds * time.Second)
	if _, err := t.store.AddTempPunishment(guildID, userID, models.PunishmentTimeout, expiresAt, caseID); err != nil {
		logging.Error("Failed to register temp punishment for case %d: %v", caseID, err)
		return
	}

	if err := t.client.TimeoutMember(guildID, userID, expiresAt,
		fmt.Sprintf("Auto-moderation: %d violations in 1 hour", count)); err != nil {
		// Recorded but not applied; the expiry sweep will still retire the row.
		logging.Error("Failed to timeout user %s for repeated violations: %v", userID, err)
	}

	metrics.Get().IncrementEscalations()
	logging.Info("Escalation: user %s in guild %s timed out for %d violations (case #%d)",
		userID, guildID, count, caseID)

	t.notifyLogChannel(guildID, userID, count, caseID)
}

func (t *Tracker) notifyLogChannel(guildID, userID string, count int, caseID int64) {
	cfg, err := t.store.GetGuildConfig(guildID)
	if err != nil || cfg.LogChannelID == "" {
		return
	}
	embed := notifier.Escalation(userID, count, caseID, timeoutSeconds)
	if err := t.client.SendChannelEmbed(cfg.LogChannelID, embed); err != nil {
		logging.Warn("Failed to send escalation notice for guild %s: %v", guildID, err)
	}
}
