package commands

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mnaljm/Project-bonk/internal/logging"
	"github.com/mnaljm/Project-bonk/internal/models"
	"github.com/mnaljm/Project-bonk/internal/notifier"
	"github.com/mnaljm/Project-bonk/pkg/util"
)

// Discord rejects timeouts longer than 28 days.
const maxTimeoutSeconds = 28 * 24 * 3600

// Timeout applied when a user reaches the guild's warning limit.
const maxWarningsTimeoutSeconds = 3600

func (h *Handler) handleWarn(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	if err := requirePerms(i, discordgo.PermissionModerateMembers); err != nil {
		return err
	}
	opts := optionMap(data.Options)
	target := opts["user"].UserValue(s)
	reason := opts["reason"].StringValue()

	if _, err := h.db.AddWarning(i.GuildID, target.ID, i.Member.User.ID, reason); err != nil {
		return fmt.Errorf("failed to add warning: %w", err)
	}
	caseID, err := h.db.CreateModerationCase(i.GuildID, models.CaseWarn, target.ID, i.Member.User.ID, reason, 0)
	if err != nil {
		return fmt.Errorf("failed to record case: %w", err)
	}

	count, err := h.db.GetWarningCount(i.GuildID, target.ID)
	if err != nil {
		return fmt.Errorf("failed to count warnings: %w", err)
	}
	cfg, err := h.db.GetGuildConfig(i.GuildID)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	desc := fmt.Sprintf("<@%s> has been warned (case #%d).\nWarnings: **%d/%d**", target.ID, caseID, count, cfg.MaxWarnings)

	if count >= cfg.MaxWarnings {
		if err := h.applyWarningLimitTimeout(i.GuildID, target.ID, count); err != nil {
			logging.Error("Failed to apply warning-limit timeout for user %s: %v", target.ID, err)
		} else {
			desc += fmt.Sprintf("\n\n⚠️ Warning limit reached: timed out for %s.", util.FormatDuration(maxWarningsTimeoutSeconds))
		}
	}

	if err := h.client.SendDirectEmbed(target.ID, notifier.ViolationDM(models.CaseWarn, reason, false)); err != nil {
		logging.Debug("Could not DM warned user %s: %v", target.ID, err)
	}

	embed := notifier.Success("User Warned", desc)
	h.logToModChannel(i.GuildID, embed)
	return respondEmbed(s, i, embed)
}

// applyWarningLimitTimeout records and applies the automatic timeout issued
// when a user reaches the warning limit.
func (h *Handler) applyWarningLimitTimeout(guildID, userID string, count int) error {
	reason := fmt.Sprintf("Reached maximum warnings (%d)", count)
	caseID, err := h.db.CreateModerationCase(guildID, models.CaseAutoTimeout, userID, "automod", reason, maxWarningsTimeoutSeconds)
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(maxWarningsTimeoutSeconds * time.Second)
	if _, err := h.db.AddTempPunishment(guildID, userID, models.PunishmentTimeout, expiresAt, caseID); err != nil {
		return err
	}
	return h.client.TimeoutMember(guildID, userID, expiresAt, reason)
}

func (h *Handler) handleWarnings(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	if err := requirePerms(i, discordgo.PermissionModerateMembers); err != nil {
		return err
	}
	opts := optionMap(data.Options)
	target := opts["user"].UserValue(s)

	warnings, err := h.db.GetWarnings(i.GuildID, target.ID)
	if err != nil {
		return fmt.Errorf("failed to load warnings: %w", err)
	}

	if len(warnings) == 0 {
		return respondEmbed(s, i, notifier.Info("Warnings", fmt.Sprintf("<@%s> has no active warnings.", target.ID)))
	}

	embed := notifier.Info("⚠️ Warnings", fmt.Sprintf("<@%s> has **%d** active warning(s).", target.ID, len(warnings)))
	for n, w := range warnings {
		if n >= 10 {
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Warning #%d", w.ID),
			Value: fmt.Sprintf("%s\nBy <@%s> on <t:%d:f>", w.Reason, w.ModeratorID, w.CreatedAt),
		})
	}
	return respondEmbed(s, i, embed)
}

func (h *Handler) handleRemoveWarning(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	if err := requirePerms(i, discordgo.PermissionModerateMembers); err != nil {
		return err
	}
	opts := optionMap(data.Options)
	warningID := opts["id"].IntValue()

	if err := h.db.RemoveWarning(warningID); err != nil {
		return fmt.Errorf("failed to remove warning: %w", err)
	}
	return respondEmbed(s, i, notifier.Success("Warning Removed", fmt.Sprintf("Warning #%d has been removed.", warningID)))
}

func (h *Handler) handleClearWarnings(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	if err := requirePerms(i, discordgo.PermissionModerateMembers); err != nil {
		return err
	}
	opts := optionMap(data.Options)
	target := opts["user"].UserValue(s)

	cleared, err := h.db.ClearWarnings(i.GuildID, target.ID)
	if err != nil {
		return fmt.Errorf("failed to clear warnings: %w", err)
	}
	if _, err := h.db.CreateModerationCase(i.GuildID, models.CaseClearWarns, target.ID, i.Member.User.ID, "Warnings cleared", 0); err != nil {
		logging.Warn("Failed to record clear-warnings case: %v", err)
	}
	return respondEmbed(s, i, notifier.Success("Warnings Cleared",
		fmt.Sprintf("Cleared **%d** warning(s) for <@%s>.", cleared, target.ID)))
}

func (h *Handler) handleTimeout(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	if err := requirePerms(i, discordgo.PermissionModerateMembers); err != nil {
		return err
	}
	opts := optionMap(data.Options)
	target := opts["user"].UserValue(s)
	reason := "No reason provided"
	if opt, ok := opts["reason"]; ok {
		reason = opt.StringValue()
	}

	seconds, err := util.ParseDuration(opts["duration"].StringValue())
	if err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}
	if seconds > maxTimeoutSeconds {
		return fmt.Errorf("timeout cannot exceed 28 days")
	}

	caseID, err := h.db.CreateModerationCase(i.GuildID, models.CaseTimeout, target.ID, i.Member.User.ID, reason, seconds)
	if err != nil {
		return fmt.Errorf("failed to record case: %w", err)
	}
	expiresAt := time.Now().Add(time.Duration(seconds) * time.Second)
	if _, err := h.db.AddTempPunishment(i.GuildID, target.ID, models.PunishmentTimeout, expiresAt, caseID); err != nil {
		return fmt.Errorf("failed to register punishment: %w", err)
	}
	if err := h.client.TimeoutMember(i.GuildID, target.ID, expiresAt, reason); err != nil {
		return fmt.Errorf("failed to time out user: %w", err)
	}

	embed := notifier.Success("User Timed Out",
		fmt.Sprintf("<@%s> has been timed out for **%s** (case #%d).\nReason: %s",
			target.ID, util.FormatDuration(seconds), caseID, reason))
	h.logToModChannel(i.GuildID, embed)
	return respondEmbed(s, i, embed)
}

func (h *Handler) handleUntimeout(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	if err := requirePerms(i, discordgo.PermissionModerateMembers); err != nil {
		return err
	}
	opts := optionMap(data.Options)
	target := opts["user"].UserValue(s)

	if err := h.client.RemoveTimeout(i.GuildID, target.ID); err != nil {
		return fmt.Errorf("failed to remove timeout: %w", err)
	}
	if _, err := h.db.DeactivateUserPunishments(i.GuildID, target.ID, models.PunishmentTimeout); err != nil {
		logging.Warn("Failed to deactivate timeout punishments for %s: %v", target.ID, err)
	}
	if _, err := h.db.CreateModerationCase(i.GuildID, models.CaseUntimeout, target.ID, i.Member.User.ID, "Timeout removed", 0); err != nil {
		logging.Warn("Failed to record untimeout case: %v", err)
	}
	return respondEmbed(s, i, notifier.Success("Timeout Removed",
		fmt.Sprintf("<@%s> is no longer timed out.", target.ID)))
}

func (h *Handler) handleBan(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	if err := requirePerms(i, discordgo.PermissionBanMembers); err != nil {
		return err
	}
	opts := optionMap(data.Options)
	target := opts["user"].UserValue(s)
	reason := "No reason provided"
	if opt, ok := opts["reason"]; ok {
		reason = opt.StringValue()
	}

	var seconds int64
	if opt, ok := opts["duration"]; ok {
		var err error
		seconds, err = util.ParseDuration(opt.StringValue())
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
	}

	caseID, err := h.db.CreateModerationCase(i.GuildID, models.CaseBan, target.ID, i.Member.User.ID, reason, seconds)
	if err != nil {
		return fmt.Errorf("failed to record case: %w", err)
	}
	if seconds > 0 {
		expiresAt := time.Now().Add(time.Duration(seconds) * time.Second)
		if _, err := h.db.AddTempPunishment(i.GuildID, target.ID, models.PunishmentBan, expiresAt, caseID); err != nil {
			return fmt.Errorf("failed to register punishment: %w", err)
		}
	}
	if err := h.client.BanMember(i.GuildID, target.ID, reason); err != nil {
		return fmt.Errorf("failed to ban user: %w", err)
	}

	desc := fmt.Sprintf("<@%s> has been banned (case #%d).\nReason: %s", target.ID, caseID, reason)
	if seconds > 0 {
		desc += fmt.Sprintf("\nDuration: %s", util.FormatDuration(seconds))
	}
	embed := notifier.Success("User Banned", desc)
	h.logToModChannel(i.GuildID, embed)
	return respondEmbed(s, i, embed)
}

func (h *Handler) handleUnban(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	if err := requirePerms(i, discordgo.PermissionBanMembers); err != nil {
		return err
	}
	opts := optionMap(data.Options)
	userID := opts["user_id"].StringValue()

	if err := h.client.UnbanMember(i.GuildID, userID); err != nil {
		return fmt.Errorf("failed to unban user: %w", err)
	}
	if _, err := h.db.DeactivateUserPunishments(i.GuildID, userID, models.PunishmentBan); err != nil {
		logging.Warn("Failed to deactivate ban punishments for %s: %v", userID, err)
	}
	return respondEmbed(s, i, notifier.Success("User Unbanned",
		fmt.Sprintf("<@%s> has been unbanned.", userID)))
}

func (h *Handler) handleKick(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	if err := requirePerms(i, discordgo.PermissionKickMembers); err != nil {
		return err
	}
	opts := optionMap(data.Options)
	target := opts["user"].UserValue(s)
	reason := "No reason provided"
	if opt, ok := opts["reason"]; ok {
		reason = opt.StringValue()
	}

	caseID, err := h.db.CreateModerationCase(i.GuildID, models.CaseKick, target.ID, i.Member.User.ID, reason, 0)
	if err != nil {
		return fmt.Errorf("failed to record case: %w", err)
	}
	if err := h.client.KickMember(i.GuildID, target.ID, reason); err != nil {
		return fmt.Errorf("failed to kick user: %w", err)
	}

	embed := notifier.Success("User Kicked",
		fmt.Sprintf("<@%s> has been kicked (case #%d).\nReason: %s", target.ID, caseID, reason))
	h.logToModChannel(i.GuildID, embed)
	return respondEmbed(s, i, embed)
}
