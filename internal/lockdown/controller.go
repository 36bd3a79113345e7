package lockdown

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mnaljm/Project-bonk/internal/database"
	"github.com/mnaljm/Project-bonk/internal/logging"
	"github.com/mnaljm/Project-bonk/internal/metrics"
	"github.com/mnaljm/Project-bonk/internal/models"
	"github.com/mnaljm/Project-bonk/internal/notifier"
)

// Audit reasons for automatic transitions.
const (
	reasonAutoEnabled  = "Auto-enabled: No moderators online"
	reasonAutoDisabled = "Auto-disabled: Moderators are online"
)

// Store is the slice of persistence the controller needs.
type Store interface {
	GetAutomodSettings(guildID string) (*database.AutomodSettings, error)
	GetGuildConfig(guildID string) (*database.GuildConfig, error)
	EnableLockdown(guildID string, manual bool) error
	DisableLockdown(guildID string, manual bool) error
	ClearLockdownOverride(guildID string) error
}

// Platform is the slice of the platform client the controller needs.
type Platform interface {
	ListModerators(guildID string) ([]models.ModeratorInfo, error)
	GuildIDs() []string
	SendChannelEmbed(channelID string, embed *discordgo.MessageEmbed) error
}

// Controller runs the periodic moderator-availability check and toggles
// lockdown per guild, honoring the manual-override latch.
type Controller struct {
	store     Store
	client    Platform
	signals   []Signal
	interval  time.Duration
	grace     time.Duration
	heartbeat func()
	now       func() time.Time

	stopCh chan struct{}
	done   chan struct{}
}

func NewController(store Store, client Platform, signals []Signal, interval, grace time.Duration) *Controller {
	return &Controller{
		store:     store,
		client:    client,
		signals:   signals,
		interval:  interval,
		grace:     grace,
		heartbeat: func() {},
		now:       time.Now,
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// SetHeartbeat wires the watchdog callback invoked once per completed pass.
func (c *Controller) SetHeartbeat(fn func()) {
	if fn != nil {
		c.heartbeat = fn
	}
}

// Start launches the check loop. The grace delay lets the gateway
// connection warm up so a reconnect never reads as "no moderators".
func (c *Controller) Start() {
	go c.run()
}

func (c *Controller) run() {
	defer close(c.done)

	select {
	case <-time.After(c.grace):
	case <-c.stopCh:
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.CheckAll()
			c.heartbeat()
		case <-c.stopCh:
			return
		}
	}
}

// Stop halts the loop and waits for an in-flight pass to finish.
func (c *Controller) Stop() {
	close(c.stopCh)
	<-c.done
}

// CheckAll runs one availability pass over every guild. A failure for one
// guild never aborts the rest of the pass.
func (c *Controller) CheckAll() {
	for _, guildID := range c.client.GuildIDs() {
		if err := c.CheckGuild(guildID); err != nil {
			logging.Error("Lockdown check failed for guild %s: %v", guildID, err)
		}
	}
}

// CheckGuild evaluates one guild and applies the automatic transition, if any.
func (c *Controller) CheckGuild(guildID string) error {
	settings, err := c.store.GetAutomodSettings(guildID)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	st := StatusOf(settings)
	if st.Latched {
		logging.Debug("Skipping auto-lockdown for guild %s: manual override active", guildID)
		return nil
	}
	if !settings.LockdownAutoEnable {
		return nil
	}

	available, err := c.AvailableModerators(guildID)
	if err != nil {
		// Without a member list we cannot distinguish "nobody online" from
		// "state not ready"; do nothing rather than over-trigger.
		return fmt.Errorf("failed to list moderators: %w", err)
	}

	switch NextTransition(st, settings.LockdownAutoEnable, len(available) > 0) {
	case TransitionEnable:
		logging.Info("Auto-enabling lockdown for guild %s", guildID)
		if err := c.store.EnableLockdown(guildID, false); err != nil {
			return fmt.Errorf("failed to enable lockdown: %w", err)
		}
		metrics.Get().IncrementLockdownToggles()
		c.auditChange(guildID, true, reasonAutoEnabled)
	case TransitionDisable:
		logging.Info("Auto-disabling lockdown for guild %s", guildID)
		if err := c.store.DisableLockdown(guildID, false); err != nil {
			return fmt.Errorf("failed to disable lockdown: %w", err)
		}
		metrics.Get().IncrementLockdownToggles()
		c.auditChange(guildID, false, reasonAutoDisabled)
	}
	return nil
}

// AvailableModerators returns the IDs of moderators any signal marks
// available right now.
func (c *Controller) AvailableModerators(guildID string) ([]string, error) {
	mods, err := c.client.ListModerators(guildID)
	if err != nil {
		return nil, err
	}

	now := c.now()
	var available []string
	for _, mod := range mods {
		for _, signal := range c.signals {
			if signal.Available(guildID, mod, now) {
				available = append(available, mod.UserID)
				break
			}
		}
	}
	return available, nil
}

// ManualEnable turns lockdown on and sets the override latch.
func (c *Controller) ManualEnable(guildID, actorID, reason string) error {
	if err := c.store.EnableLockdown(guildID, true); err != nil {
		return err
	}
	metrics.Get().IncrementLockdownToggles()
	c.auditChange(guildID, true, fmt.Sprintf("Manual enable by <@%s>: %s", actorID, reason))
	return nil
}

// ManualDisable turns lockdown off and sets the override latch.
func (c *Controller) ManualDisable(guildID, actorID, reason string) error {
	if err := c.store.DisableLockdown(guildID, true); err != nil {
		return err
	}
	metrics.Get().IncrementLockdownToggles()
	c.auditChange(guildID, false, fmt.Sprintf("Manual disable by <@%s>: %s", actorID, reason))
	return nil
}

// ClearOverride resets the latch so automatic transitions resume.
func (c *Controller) ClearOverride(guildID string) error {
	return c.store.ClearLockdownOverride(guildID)
}

func (c *Controller) auditChange(guildID string, enabled bool, reason string) {
	cfg, err := c.store.GetGuildConfig(guildID)
	if err != nil || cfg.LogChannelID == "" {
		return
	}
	if err := c.client.SendChannelEmbed(cfg.LogChannelID, notifier.LockdownChange(enabled, reason)); err != nil {
		logging.Warn("Failed to log lockdown change for guild %s: %v", guildID, err)
	}
}
