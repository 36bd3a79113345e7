package bot

import (
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mnaljm/Project-bonk/internal/automod"
	"github.com/mnaljm/Project-bonk/internal/database"
	"github.com/mnaljm/Project-bonk/internal/dispatcher"
	"github.com/mnaljm/Project-bonk/internal/lockdown"
	"github.com/mnaljm/Project-bonk/internal/logging"
	"github.com/mnaljm/Project-bonk/internal/metrics"
	"github.com/mnaljm/Project-bonk/internal/models"
	"github.com/mnaljm/Project-bonk/internal/platform"
)

// Handlers routes gateway events into the moderation pipeline and the
// activity trackers.
type Handlers struct {
	db         *database.Database
	engine     *automod.Engine
	dispatcher *dispatcher.Dispatcher
	modTracker *lockdown.ActivityTracker

	mu         sync.Mutex
	voiceJoins map[string]time.Time // guildID:userID -> join time
}

func NewHandlers(db *database.Database, engine *automod.Engine, disp *dispatcher.Dispatcher, modTracker *lockdown.ActivityTracker) *Handlers {
	return &Handlers{
		db:         db,
		engine:     engine,
		dispatcher: disp,
		modTracker: modTracker,
		voiceJoins: make(map[string]time.Time),
	}
}

// Register attaches all gateway handlers to the session.
func (h *Handlers) Register(s *Session) {
	s.AddHandler(func(sess *discordgo.Session, r *discordgo.Ready) {
		logging.Info("Gateway ready: %d guild(s)", len(r.Guilds))
	})

	s.AddHandler(func(sess *discordgo.Session, g *discordgo.GuildCreate) {
		logging.Info("Joined/loaded guild: %s (ID: %s)", g.Name, g.ID)
		if err := h.db.EnsureGuildConfigExists(g.ID); err != nil {
			logging.Warn("Failed to ensure config for guild %s: %v", g.ID, err)
		}
	})

	s.AddHandler(func(sess *discordgo.Session, m *discordgo.MessageCreate) {
		h.handleMessage(sess, m.Message)
	})

	// Edited messages re-enter the pipeline: editing clean content into a
	// violation is not a loophole.
	s.AddHandler(func(sess *discordgo.Session, m *discordgo.MessageUpdate) {
		if m.Author == nil || m.Content == "" {
			return
		}
		h.handleMessage(sess, m.Message)
	})

	s.AddHandler(func(sess *discordgo.Session, v *discordgo.VoiceStateUpdate) {
		h.handleVoiceState(v)
	})
}

func (h *Handlers) handleMessage(sess *discordgo.Session, m *discordgo.Message) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	metrics.Get().IncrementMessages()

	hasModPerms := h.authorHasModPerms(sess, m)
	if hasModPerms {
		h.modTracker.Touch(m.GuildID, m.Author.ID)
	}

	if err := h.db.UpdateUserActivity(m.GuildID, m.Author.ID, 1, 0); err != nil {
		logging.Warn("Failed to record activity for user %s: %v", m.Author.ID, err)
	}

	cfg, err := h.db.GetGuildConfig(m.GuildID)
	if err != nil {
		logging.Error("Failed to load guild config for %s: %v", m.GuildID, err)
		return
	}
	if !cfg.AutomodEnabled {
		return
	}

	settings, err := h.db.GetAutomodSettings(m.GuildID)
	if err != nil {
		logging.Error("Failed to load automod settings for %s: %v", m.GuildID, err)
		return
	}

	inLockdown := settings.LockdownMode
	// Moderators bypass automod, except under lockdown where every message
	// is held to the stricter thresholds.
	if hasModPerms && !inLockdown {
		return
	}

	msg := models.Message{
		GuildID:     m.GuildID,
		ChannelID:   m.ChannelID,
		MessageID:   m.ID,
		UserID:      m.Author.ID,
		Content:     m.Content,
		FromBot:     m.Author.Bot,
		HasModPerms: hasModPerms,
		Timestamp:   time.Now(),
	}

	violations := h.engine.Evaluate(msg, settings, inLockdown)
	if len(violations) == 0 {
		return
	}

	// One enforcement per message; the first matched rule wins.
	if _, err := h.dispatcher.Dispatch(msg, violations[0], settings, inLockdown); err != nil {
		logging.Error("Enforcement failed for message %s: %v", m.ID, err)
	}
}

func (h *Handlers) authorHasModPerms(sess *discordgo.Session, m *discordgo.Message) bool {
	guild, err := sess.State.Guild(m.GuildID)
	if err != nil {
		return false
	}

	member := m.Member
	if member == nil {
		member, err = sess.State.Member(m.GuildID, m.Author.ID)
		if err != nil {
			return false
		}
	}
	if member.User == nil {
		member.User = m.Author
	}

	return platform.MemberHasModPerms(guild, member)
}

// handleVoiceState accumulates voice minutes: a join starts the clock, a
// disconnect flushes the elapsed time into the activity ledger.
func (h *Handlers) handleVoiceState(v *discordgo.VoiceStateUpdate) {
	if v.GuildID == "" || v.UserID == "" {
		return
	}

	key := v.GuildID + ":" + v.UserID

	h.mu.Lock()
	defer h.mu.Unlock()

	if v.ChannelID != "" {
		if _, ok := h.voiceJoins[key]; !ok {
			h.voiceJoins[key] = time.Now()
		}
		return
	}

	joined, ok := h.voiceJoins[key]
	if !ok {
		return
	}
	delete(h.voiceJoins, key)

	minutes := int64(time.Since(joined) / time.Minute)
	if minutes <= 0 {
		return
	}
	if err := h.db.UpdateUserActivity(v.GuildID, v.UserID, 0, minutes); err != nil {
		logging.Warn("Failed to record voice activity for user %s: %v", v.UserID, err)
	}
}
