package platform

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mnaljm/Project-bonk/internal/models"
)

// Client is the engine's view of the chat platform. Every outbound call may
// fail with permission-denied or not-found; callers treat both as
// recoverable, logged failures. Implementations must bound each call with a
// timeout.
type Client interface {
	DeleteMessage(channelID, messageID string) error
	SendDirectEmbed(userID string, embed *discordgo.MessageEmbed) error
	SendChannelEmbed(channelID string, embed *discordgo.MessageEmbed) error
	TimeoutMember(guildID, userID string, until time.Time, reason string) error
	RemoveTimeout(guildID, userID string) error
	BanMember(guildID, userID, reason string) error
	UnbanMember(guildID, userID string) error
	KickMember(guildID, userID, reason string) error

	// ListModerators returns presence snapshots for every non-bot member
	// holding moderation permissions in the guild.
	ListModerators(guildID string) ([]models.ModeratorInfo, error)

	// GuildIDs lists the guilds currently served.
	GuildIDs() []string

	// BotUserID identifies the engine itself as a case actor.
	BotUserID() string
}
