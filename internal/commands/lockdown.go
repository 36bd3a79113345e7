package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/mnaljm/Project-bonk/internal/notifier"
)

func (h *Handler) handleLockdown(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	if err := requirePerms(i, discordgo.PermissionManageServer); err != nil {
		return err
	}
	if len(data.Options) == 0 {
		return fmt.Errorf("missing subcommand")
	}

	sub := data.Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "enable":
		reason := "No reason provided"
		if opt, ok := opts["reason"]; ok {
			reason = opt.StringValue()
		}
		if err := h.controller.ManualEnable(i.GuildID, i.Member.User.ID, reason); err != nil {
			return fmt.Errorf("failed to enable lockdown: %w", err)
		}
		return respondEmbed(s, i, notifier.Success("Lockdown Enabled",
			"Lockdown mode is now active. Automatic toggling is paused until you run `/lockdown clearoverride`."))

	case "disable":
		reason := "No reason provided"
		if opt, ok := opts["reason"]; ok {
			reason = opt.StringValue()
		}
		if err := h.controller.ManualDisable(i.GuildID, i.Member.User.ID, reason); err != nil {
			return fmt.Errorf("failed to disable lockdown: %w", err)
		}
		return respondEmbed(s, i, notifier.Success("Lockdown Disabled",
			"Lockdown mode is now inactive. Automatic toggling is paused until you run `/lockdown clearoverride`."))

	case "status":
		return h.respondLockdownStatus(s, i)

	case "auto":
		enabled := opts["enabled"].BoolValue()
		if err := h.db.UpdateAutomodSetting(i.GuildID, "lockdown_auto_enable", enabled); err != nil {
			return fmt.Errorf("failed to update setting: %w", err)
		}
		verb := "disabled"
		if enabled {
			verb = "enabled"
		}
		return respondEmbed(s, i, notifier.Success("Automatic Lockdown Updated",
			fmt.Sprintf("Automatic lockdown is now **%s**.", verb)))

	case "clearoverride":
		if err := h.controller.ClearOverride(i.GuildID); err != nil {
			return fmt.Errorf("failed to clear override: %w", err)
		}
		return respondEmbed(s, i, notifier.Success("Override Cleared",
			"Automatic lockdown toggling has resumed."))
	}
	return fmt.Errorf("unknown subcommand: %s", sub.Name)
}

func (h *Handler) respondLockdownStatus(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	settings, err := h.db.GetAutomodSettings(i.GuildID)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	mode := "🔓 Inactive"
	if settings.LockdownMode {
		mode = "🔒 Active"
	}
	auto := "❌ Disabled"
	if settings.LockdownAutoEnable {
		auto = "✅ Enabled"
	}
	override := "No"
	if settings.LockdownManualOverride {
		override = "Yes (automatic toggling paused)"
	}

	available, err := h.controller.AvailableModerators(i.GuildID)
	modsLine := "unknown"
	if err == nil {
		modsLine = fmt.Sprintf("%d available", len(available))
	}

	embed := notifier.Info("🔒 Lockdown Status", "")
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Mode", Value: mode, Inline: true},
		{Name: "Automatic", Value: auto, Inline: true},
		{Name: "Manual Override", Value: override, Inline: true},
		{Name: "Moderators", Value: modsLine, Inline: true},
		{Name: "Caps Threshold", Value: fmt.Sprintf("%d%%", settings.LockdownCapsThreshold), Inline: true},
		{Name: "Spam Threshold", Value: fmt.Sprintf("%d msgs / 10s", settings.LockdownSpamThreshold), Inline: true},
		{Name: "Violation Timeout", Value: fmt.Sprintf("%ds", settings.LockdownTimeoutDuration), Inline: true},
	}
	return respondEmbed(s, i, embed)
}

func (h *Handler) handleLockdownConfig(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	if err := requirePerms(i, discordgo.PermissionManageServer); err != nil {
		return err
	}
	if len(data.Options) == 0 {
		return fmt.Errorf("provide at least one setting to change")
	}

	var changed []string
	for _, opt := range data.Options {
		value := int(opt.IntValue())
		switch opt.Name {
		case "caps_threshold":
			if value < 1 || value > 100 {
				return fmt.Errorf("caps_threshold must be between 1 and 100, got %d", value)
			}
			if err := h.db.UpdateAutomodSetting(i.GuildID, "lockdown_caps_threshold", value); err != nil {
				return fmt.Errorf("failed to update caps_threshold: %w", err)
			}
		case "spam_threshold":
			if value < 1 || value > 10 {
				return fmt.Errorf("spam_threshold must be between 1 and 10, got %d", value)
			}
			if err := h.db.UpdateAutomodSetting(i.GuildID, "lockdown_spam_threshold", value); err != nil {
				return fmt.Errorf("failed to update spam_threshold: %w", err)
			}
		case "timeout_duration":
			if value < 60 || value > 3600 {
				return fmt.Errorf("timeout_duration must be between 60 and 3600 seconds, got %d", value)
			}
			if err := h.db.UpdateAutomodSetting(i.GuildID, "lockdown_timeout_duration", value); err != nil {
				return fmt.Errorf("failed to update timeout_duration: %w", err)
			}
		default:
			return fmt.Errorf("unknown setting: %s", opt.Name)
		}
		changed = append(changed, fmt.Sprintf("`%s` → **%d**", opt.Name, value))
	}

	desc := "Updated:"
	for _, c := range changed {
		desc += "\n• " + c
	}
	return respondEmbed(s, i, notifier.Success("Lockdown Configuration Updated", desc))
}
