package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/mnaljm/Project-bonk/internal/bot"
	"github.com/mnaljm/Project-bonk/internal/database"
	"github.com/mnaljm/Project-bonk/internal/lockdown"
	"github.com/mnaljm/Project-bonk/internal/logging"
	"github.com/mnaljm/Project-bonk/internal/notifier"
	"github.com/mnaljm/Project-bonk/internal/platform"
)

// Handler routes slash-command interactions to their implementations.
type Handler struct {
	session    *bot.Session
	db         *database.Database
	client     platform.Client
	controller *lockdown.Controller
	modTracker *lockdown.ActivityTracker
}

var globalHandler *Handler

// Initialize wires the command handler and registers all slash commands.
func Initialize(session *bot.Session, db *database.Database, client platform.Client, controller *lockdown.Controller, modTracker *lockdown.ActivityTracker, guildID string) error {
	globalHandler = &Handler{
		session:    session,
		db:         db,
		client:     client,
		controller: controller,
		modTracker: modTracker,
	}

	session.AddHandler(globalHandler.handleInteraction)

	commands := GetAllCommands()
	if err := session.RegisterCommands(commands, guildID); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	logging.Info("Command handler initialized with %d commands", len(commands))
	return nil
}

// GetHandler returns the global command handler
func GetHandler() *Handler {
	return globalHandler
}

func (h *Handler) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	h.handleCommand(s, i)
}

// handleCommand routes slash commands to their handlers
func (h *Handler) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" || i.Member == nil || i.Member.User == nil {
		respondError(s, i, "This command only works in a server.")
		return
	}

	// Any command invocation counts as moderator activity for the
	// lockdown availability check.
	h.modTracker.Touch(i.GuildID, i.Member.User.ID)

	data := i.ApplicationCommandData()

	var err error
	switch data.Name {
	case "automod":
		err = h.handleAutomod(s, i, data)
	case "lockdown":
		err = h.handleLockdown(s, i, data)
	case "lockdownconfig":
		err = h.handleLockdownConfig(s, i, data)
	case "warn":
		err = h.handleWarn(s, i, data)
	case "warnings":
		err = h.handleWarnings(s, i, data)
	case "removewarning":
		err = h.handleRemoveWarning(s, i, data)
	case "clearwarnings":
		err = h.handleClearWarnings(s, i, data)
	case "timeout":
		err = h.handleTimeout(s, i, data)
	case "untimeout":
		err = h.handleUntimeout(s, i, data)
	case "ban":
		err = h.handleBan(s, i, data)
	case "unban":
		err = h.handleUnban(s, i, data)
	case "kick":
		err = h.handleKick(s, i, data)
	case "case":
		err = h.handleCase(s, i, data)
	case "history":
		err = h.handleHistory(s, i, data)
	case "recent":
		err = h.handleRecent(s, i, data)
	case "config":
		err = h.handleConfig(s, i, data)
	case "activity":
		err = h.handleActivity(s, i, data)
	case "ping":
		err = h.handlePing(s, i)
	case "stats":
		err = h.handleStats(s, i)
	default:
		err = fmt.Errorf("unknown command: %s", data.Name)
	}

	if err != nil {
		logging.Error("Command error [%s]: %v", data.Name, err)
		respondError(s, i, err.Error())
	}
}

// requirePerms checks the invoking member's resolved permissions.
func requirePerms(i *discordgo.InteractionCreate, perms int64) error {
	if i.Member.Permissions&(perms|discordgo.PermissionAdministrator) == 0 {
		return fmt.Errorf("you do not have permission to use this command")
	}
	return nil
}

// optionMap flattens a command's options for lookup by name.
func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

// respondError sends an ephemeral error message
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{notifier.Error(message)},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

// logToModChannel posts an embed to the guild's configured log channel, if any.
func (h *Handler) logToModChannel(guildID string, embed *discordgo.MessageEmbed) {
	cfg, err := h.db.GetGuildConfig(guildID)
	if err != nil || cfg.LogChannelID == "" {
		return
	}
	if err := h.client.SendChannelEmbed(cfg.LogChannelID, embed); err != nil {
		logging.Warn("Failed to post to log channel for guild %s: %v", guildID, err)
	}
}
