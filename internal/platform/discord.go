package platform

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mnaljm/Project-bonk/internal/models"
)

const modPermissions = discordgo.PermissionKickMembers |
	discordgo.PermissionBanMembers |
	discordgo.PermissionManageMessages |
	discordgo.PermissionAdministrator

// Discord implements Client on top of a discordgo session. Every REST call
// carries a context deadline so no platform call blocks indefinitely.
type Discord struct {
	session *discordgo.Session
	timeout time.Duration
}

func NewDiscord(session *discordgo.Session, timeout time.Duration) *Discord {
	return &Discord{
		session: session,
		timeout: timeout,
	}
}

func (d *Discord) reqOpts(reason string) ([]discordgo.RequestOption, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	opts := []discordgo.RequestOption{discordgo.WithContext(ctx)}
	if reason != "" {
		opts = append(opts, discordgo.WithAuditLogReason(reason))
	}
	return opts, cancel
}

func (d *Discord) DeleteMessage(channelID, messageID string) error {
	opts, cancel := d.reqOpts("")
	defer cancel()
	if err := d.session.ChannelMessageDelete(channelID, messageID, opts...); err != nil {
		return fmt.Errorf("failed to delete message %s: %w", messageID, err)
	}
	return nil
}

func (d *Discord) SendDirectEmbed(userID string, embed *discordgo.MessageEmbed) error {
	opts, cancel := d.reqOpts("")
	defer cancel()

	channel, err := d.session.UserChannelCreate(userID, opts...)
	if err != nil {
		return fmt.Errorf("failed to open DM channel for %s: %w", userID, err)
	}
	if _, err := d.session.ChannelMessageSendEmbed(channel.ID, embed, opts...); err != nil {
		return fmt.Errorf("failed to DM user %s: %w", userID, err)
	}
	return nil
}

func (d *Discord) SendChannelEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	opts, cancel := d.reqOpts("")
	defer cancel()
	if _, err := d.session.ChannelMessageSendEmbed(channelID, embed, opts...); err != nil {
		return fmt.Errorf("failed to send to channel %s: %w", channelID, err)
	}
	return nil
}

func (d *Discord) TimeoutMember(guildID, userID string, until time.Time, reason string) error {
	opts, cancel := d.reqOpts(reason)
	defer cancel()
	if err := d.session.GuildMemberTimeout(guildID, userID, &until, opts...); err != nil {
		return fmt.Errorf("failed to timeout member %s: %w", userID, err)
	}
	return nil
}

func (d *Discord) RemoveTimeout(guildID, userID string) error {
	opts, cancel := d.reqOpts("Automatic timeout removal")
	defer cancel()
	if err := d.session.GuildMemberTimeout(guildID, userID, nil, opts...); err != nil {
		return fmt.Errorf("failed to remove timeout for %s: %w", userID, err)
	}
	return nil
}

func (d *Discord) BanMember(guildID, userID, reason string) error {
	opts, cancel := d.reqOpts("")
	defer cancel()
	if err := d.session.GuildBanCreateWithReason(guildID, userID, reason, 0, opts...); err != nil {
		return fmt.Errorf("failed to ban member %s: %w", userID, err)
	}
	return nil
}

func (d *Discord) UnbanMember(guildID, userID string) error {
	opts, cancel := d.reqOpts("Automatic temporary ban removal")
	defer cancel()
	if err := d.session.GuildBanDelete(guildID, userID, opts...); err != nil {
		return fmt.Errorf("failed to unban member %s: %w", userID, err)
	}
	return nil
}

func (d *Discord) KickMember(guildID, userID, reason string) error {
	opts, cancel := d.reqOpts(reason)
	defer cancel()
	if err := d.session.GuildMemberDelete(guildID, userID, opts...); err != nil {
		return fmt.Errorf("failed to kick member %s: %w", userID, err)
	}
	return nil
}

// ListModerators scans the state cache for members with moderation
// permissions and pairs them with their presence snapshots.
func (d *Discord) ListModerators(guildID string) ([]models.ModeratorInfo, error) {
	guild, err := d.session.State.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("guild %s not in state: %w", guildID, err)
	}

	presences := make(map[string]*discordgo.Presence, len(guild.Presences))
	for _, p := range guild.Presences {
		if p.User != nil {
			presences[p.User.ID] = p
		}
	}

	var mods []models.ModeratorInfo
	for _, member := range guild.Members {
		if member.User == nil || member.User.Bot {
			continue
		}
		if !d.hasModPerms(guild, member) {
			continue
		}

		info := models.ModeratorInfo{UserID: member.User.ID}
		if p, ok := presences[member.User.ID]; ok {
			info.Status = string(p.Status)
			info.DesktopStatus = string(p.ClientStatus.Desktop)
			info.MobileStatus = string(p.ClientStatus.Mobile)
			info.WebStatus = string(p.ClientStatus.Web)
		}
		mods = append(mods, info)
	}
	return mods, nil
}

func (d *Discord) hasModPerms(guild *discordgo.Guild, member *discordgo.Member) bool {
	return MemberHasModPerms(guild, member)
}

// MemberHasModPerms reports whether a member holds any moderation
// permission (kick, ban, manage messages, or administrator) via their
// roles, or owns the guild.
func MemberHasModPerms(guild *discordgo.Guild, member *discordgo.Member) bool {
	if member.User.ID == guild.OwnerID {
		return true
	}

	roles := make(map[string]*discordgo.Role, len(guild.Roles))
	for _, role := range guild.Roles {
		roles[role.ID] = role
	}

	var perms int64
	// The @everyone role shares its ID with the guild.
	if everyone, ok := roles[guild.ID]; ok {
		perms |= everyone.Permissions
	}
	for _, roleID := range member.Roles {
		if role, ok := roles[roleID]; ok {
			perms |= role.Permissions
		}
	}

	return perms&modPermissions != 0
}

func (d *Discord) GuildIDs() []string {
	ids := make([]string, 0, len(d.session.State.Guilds))
	for _, g := range d.session.State.Guilds {
		ids = append(ids, g.ID)
	}
	return ids
}

func (d *Discord) BotUserID() string {
	if d.session.State.User != nil {
		return d.session.State.User.ID
	}
	return ""
}
