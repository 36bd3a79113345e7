package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/mnaljm/Project-bonk/internal/notifier"
)

func (h *Handler) handleConfig(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	if err := requirePerms(i, discordgo.PermissionManageServer); err != nil {
		return err
	}
	if len(data.Options) == 0 {
		return fmt.Errorf("missing subcommand")
	}

	sub := data.Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "logchannel":
		channel := opts["channel"].ChannelValue(s)
		if channel.Type != discordgo.ChannelTypeGuildText {
			return fmt.Errorf("log channel must be a text channel")
		}
		if err := h.db.SetLogChannel(i.GuildID, channel.ID); err != nil {
			return fmt.Errorf("failed to set log channel: %w", err)
		}
		return respondEmbed(s, i, notifier.Success("Log Channel Set",
			fmt.Sprintf("Moderation logs will be posted in <#%s>.", channel.ID)))

	case "maxwarnings":
		count := int(opts["count"].IntValue())
		if count < 1 || count > 20 {
			return fmt.Errorf("maxwarnings must be between 1 and 20, got %d", count)
		}
		if err := h.db.SetMaxWarnings(i.GuildID, count); err != nil {
			return fmt.Errorf("failed to set max warnings: %w", err)
		}
		return respondEmbed(s, i, notifier.Success("Max Warnings Set",
			fmt.Sprintf("Users are now timed out after **%d** warnings.", count)))
	}
	return fmt.Errorf("unknown subcommand: %s", sub.Name)
}
