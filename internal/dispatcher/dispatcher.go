package dispatcher

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mnaljm/Project-bonk/internal/database"
	"github.com/mnaljm/Project-bonk/internal/logging"
	"github.com/mnaljm/Project-bonk/internal/metrics"
	"github.com/mnaljm/Project-bonk/internal/models"
	"github.com/mnaljm/Project-bonk/internal/notifier"
	"github.com/mnaljm/Project-bonk/internal/platform"
)

// Store is the slice of the ledger the dispatcher needs.
type Store interface {
	GetGuildConfig(guildID string) (*database.GuildConfig, error)
	CreateModerationCase(guildID, caseType, userID, moderatorID, reason string, duration int64) (int64, error)
}

// Escalator is fed after every completed enforcement.
type Escalator interface {
	OnViolation(guildID, userID string)
}

// Dispatcher executes the policy action for a matched violation: record,
// remove content, sanction under lockdown, then notify asynchronously and
// feed the escalation tracker. Side effects are not transactional.
type Dispatcher struct {
	store     Store
	client    platform.Client
	escalator Escalator
	now       func() time.Time

	notifyCh chan notifyJob
	wg       sync.WaitGroup
}

type notifyJob struct {
	userID       string
	dmEmbed      *discordgo.MessageEmbed
	logChannelID string
	auditEmbed   *discordgo.MessageEmbed
}

const notifyQueueSize = 256

func New(store Store, client platform.Client, escalator Escalator) *Dispatcher {
	d := &Dispatcher{
		store:     store,
		client:    client,
		escalator: escalator,
		now:       time.Now,
		notifyCh:  make(chan notifyJob, notifyQueueSize),
	}
	d.wg.Add(1)
	go d.notifyWorker()
	return d
}

// Dispatch runs the enforcement sequence for one violation.
//
// Ordering matters: the violation case is written first (no sanction without
// a record), then the offending content is removed. A removal failure
// aborts the remaining steps and is reported. The lockdown timeout, user
// notification, and audit log are each best-effort after that point.
func (d *Dispatcher) Dispatch(msg models.Message, v models.Violation, settings *database.AutomodSettings, lockdown bool) (models.EnforcementResult, error) {
	start := d.now()
	var res models.EnforcementResult

	metrics.Get().IncrementViolation(v.Kind)

	caseID, err := d.store.CreateModerationCase(
		msg.GuildID, models.AutomodCasePrefix+v.Kind, msg.UserID, d.client.BotUserID(), v.Reason, 0)
	if err != nil {
		metrics.Get().IncrementEnforcementFailures()
		return res, fmt.Errorf("failed to record violation: %w", err)
	}
	res.CaseID = caseID

	if err := d.client.DeleteMessage(msg.ChannelID, msg.MessageID); err != nil {
		metrics.Get().IncrementEnforcementFailures()
		return res, fmt.Errorf("failed to remove offending content: %w", err)
	}
	res.ContentRemoved = true

	if lockdown {
		res.SanctionApplied = d.applyLockdownTimeout(msg, v, settings)
	}

	d.enqueueNotify(msg, v, lockdown)

	d.escalator.OnViolation(msg.GuildID, msg.UserID)

	metrics.Get().IncrementEnforcements()
	metrics.Get().RecordDispatchLatency(d.now().Sub(start))
	return res, nil
}

// applyLockdownTimeout records and applies the automatic lockdown sanction.
// Failures here are non-fatal; the rest of the sequence continues.
func (d *Dispatcher) applyLockdownTimeout(msg models.Message, v models.Violation, settings *database.AutomodSettings) bool {
	duration := int64(settings.LockdownTimeoutDuration)
	if duration <= 0 {
		duration = 300
	}
	reason := fmt.Sprintf("Auto-moderation lockdown: %s", v.Reason)

	if _, err := d.store.CreateModerationCase(
		msg.GuildID, models.CaseAutoTimeout, msg.UserID, d.client.BotUserID(), reason, duration); err != nil {
		// No record, no sanction.
		logging.Error("Failed to record lockdown timeout case for %s: %v", msg.UserID, err)
		return false
	}

	until := d.now().Add(time.Duration(duration) * time.Second)
	if err := d.client.TimeoutMember(msg.GuildID, msg.UserID, until, reason); err != nil {
		logging.Warn("Failed to apply lockdown timeout to %s: %v", msg.UserID, err)
		return false
	}
	return true
}

// enqueueNotify hands DM and audit delivery to the background worker so
// notification latency never affects the enforcement path. A full queue
// drops the notification, not the enforcement.
func (d *Dispatcher) enqueueNotify(msg models.Message, v models.Violation, lockdown bool) {
	job := notifyJob{
		userID:     msg.UserID,
		dmEmbed:    notifier.ViolationDM(v.Kind, v.Reason, lockdown),
		auditEmbed: notifier.AutomodAudit(msg, v.Kind, v.Reason, lockdown),
	}

	if cfg, err := d.store.GetGuildConfig(msg.GuildID); err == nil {
		job.logChannelID = cfg.LogChannelID
	} else {
		logging.Warn("Failed to load guild config for audit log of %s: %v", msg.GuildID, err)
	}

	select {
	case d.notifyCh <- job:
	default:
		logging.Warn("Notify queue full, dropping notification for user %s", msg.UserID)
	}
}

func (d *Dispatcher) notifyWorker() {
	defer d.wg.Done()
	for job := range d.notifyCh {
		d.deliver(job)
	}
}

func (d *Dispatcher) deliver(job notifyJob) {
	if err := d.client.SendDirectEmbed(job.userID, job.dmEmbed); err != nil {
		// Users with closed DMs are routine.
		logging.Debug("Could not DM user %s: %v", job.userID, err)
	}
	if job.logChannelID != "" {
		if err := d.client.SendChannelEmbed(job.logChannelID, job.auditEmbed); err != nil {
			logging.Warn("Could not write audit log to channel %s: %v", job.logChannelID, err)
		}
	}
}

// Close drains and stops the notify worker.
func (d *Dispatcher) Close() {
	close(d.notifyCh)
	d.wg.Wait()
}
