package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/mnaljm/Project-bonk/internal/notifier"
)

func (h *Handler) handleAutomod(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	if err := requirePerms(i, discordgo.PermissionManageServer); err != nil {
		return err
	}
	if len(data.Options) == 0 {
		return fmt.Errorf("missing subcommand")
	}

	sub := data.Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "toggle":
		enabled := opts["enabled"].BoolValue()
		if err := h.db.SetAutomodEnabled(i.GuildID, enabled); err != nil {
			return fmt.Errorf("failed to update setting: %w", err)
		}
		verb := "disabled"
		if enabled {
			verb = "enabled"
		}
		return respondEmbed(s, i, notifier.Success("Auto-Moderation Updated",
			fmt.Sprintf("Auto-moderation is now **%s** for this server.", verb)))

	case "rule":
		rule := opts["rule"].StringValue()
		enabled := opts["enabled"].BoolValue()
		if err := h.db.UpdateAutomodSetting(i.GuildID, rule, enabled); err != nil {
			return fmt.Errorf("failed to update rule: %w", err)
		}
		verb := "disabled"
		if enabled {
			verb = "enabled"
		}
		return respondEmbed(s, i, notifier.Success("Rule Updated",
			fmt.Sprintf("`%s` is now **%s**.", rule, verb)))

	case "threshold":
		setting := opts["setting"].StringValue()
		value := int(opts["value"].IntValue())
		switch setting {
		case "caps_threshold":
			if value < 1 || value > 100 {
				return fmt.Errorf("caps threshold must be between 1 and 100, got %d", value)
			}
		case "spam_threshold":
			if value < 1 || value > 20 {
				return fmt.Errorf("spam threshold must be between 1 and 20, got %d", value)
			}
		}
		if err := h.db.UpdateAutomodSetting(i.GuildID, setting, value); err != nil {
			return fmt.Errorf("failed to update threshold: %w", err)
		}
		return respondEmbed(s, i, notifier.Success("Threshold Updated",
			fmt.Sprintf("`%s` is now **%d**.", setting, value)))

	case "settings":
		return h.respondSettings(s, i)
	}
	return fmt.Errorf("unknown subcommand: %s", sub.Name)
}

func (h *Handler) respondSettings(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	cfg, err := h.db.GetGuildConfig(i.GuildID)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	settings, err := h.db.GetAutomodSettings(i.GuildID)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	onOff := func(b bool) string {
		if b {
			return "✅ Enabled"
		}
		return "❌ Disabled"
	}

	embed := notifier.Info("🛡️ Auto-Moderation Settings", "")
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Auto-Moderation", Value: onOff(cfg.AutomodEnabled), Inline: true},
		{Name: "Spam Detection", Value: onOff(settings.SpamDetection), Inline: true},
		{Name: "Profanity Filter", Value: onOff(settings.ProfanityFilter), Inline: true},
		{Name: "Link Filter", Value: onOff(settings.LinkFilter), Inline: true},
		{Name: "Invite Filter", Value: onOff(settings.InviteFilter), Inline: true},
		{Name: "Caps Filter", Value: onOff(settings.CapsFilter), Inline: true},
		{Name: "Caps Threshold", Value: fmt.Sprintf("%d%%", settings.CapsThreshold), Inline: true},
		{Name: "Spam Threshold", Value: fmt.Sprintf("%d msgs / 10s", settings.SpamThreshold), Inline: true},
		{Name: "Max Warnings", Value: fmt.Sprintf("%d", cfg.MaxWarnings), Inline: true},
	}
	return respondEmbed(s, i, embed)
}
