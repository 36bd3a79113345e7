package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/mnaljm/Project-bonk/internal/logging"
)

type Session struct {
	discord *discordgo.Session
	token   string
}

var globalSession *Session

// Initialize creates the Discord session with the intents the moderation
// pipeline needs: guilds, members, messages with content, presences, and
// voice states.
func Initialize(token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent |
		discordgo.IntentsGuildPresences |
		discordgo.IntentsGuildVoiceStates

	dg.State.TrackPresences = true
	dg.State.TrackMembers = true

	globalSession = &Session{
		discord: dg,
		token:   token,
	}

	return nil
}

// GetSession returns the global Discord session
func GetSession() *Session {
	return globalSession
}

// GetDiscord returns the underlying discordgo session
func (s *Session) GetDiscord() *discordgo.Session {
	return s.discord
}

// Connect opens the Discord websocket connection
func (s *Session) Connect() error {
	if err := s.discord.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if s.discord.State.User != nil {
		logging.Info("Connected as %s (ID: %s)", s.discord.State.User.Username, s.discord.State.User.ID)
	}

	return nil
}

// Close closes the Discord connection
func (s *Session) Close() error {
	if s.discord != nil {
		return s.discord.Close()
	}
	return nil
}

// RegisterCommands registers all slash commands with Discord. When guildID
// is set, commands are registered to that guild only (instant propagation);
// otherwise they are registered globally.
func (s *Session) RegisterCommands(commands []*discordgo.ApplicationCommand, guildID string) error {
	logging.Info("Registering %d slash commands...", len(commands))

	for _, cmd := range commands {
		_, err := s.discord.ApplicationCommandCreate(s.discord.State.User.ID, guildID, cmd)
		if err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
		logging.Info("Registered command: /%s", cmd.Name)
	}

	return nil
}

// AddHandler adds an event handler to the Discord session
func (s *Session) AddHandler(handler interface{}) {
	s.discord.AddHandler(handler)
}

// SyncGuilds makes sure every guild the bot can see has config rows.
func (s *Session) SyncGuilds(db interface {
	EnsureGuildConfigExists(guildID string) error
}) {
	for _, guild := range s.discord.State.Guilds {
		if err := db.EnsureGuildConfigExists(guild.ID); err != nil {
			logging.Warn("Failed to ensure config for guild %s: %v", guild.ID, err)
		}
	}
}
