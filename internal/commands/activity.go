package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mnaljm/Project-bonk/internal/notifier"
)

func (h *Handler) handleActivity(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	if len(data.Options) == 0 {
		return fmt.Errorf("missing subcommand")
	}

	sub := data.Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "top":
		days := 7
		if opt, ok := opts["days"]; ok {
			days = int(opt.IntValue())
			if days < 1 || days > 90 {
				return fmt.Errorf("days must be between 1 and 90")
			}
		}

		top, err := h.db.GetTopActiveUsers(i.GuildID, days, 10)
		if err != nil {
			return fmt.Errorf("failed to load activity: %w", err)
		}
		if len(top) == 0 {
			return respondEmbed(s, i, notifier.Info("Activity", "No activity recorded yet."))
		}

		var b strings.Builder
		for n, u := range top {
			fmt.Fprintf(&b, "**%d.** <@%s> — %d messages, %d voice minutes\n",
				n+1, u.UserID, u.MessageCount, u.VoiceMinutes)
		}
		return respondEmbed(s, i, notifier.Info(
			fmt.Sprintf("📊 Most Active Users (last %d days)", days), b.String()))

	case "user":
		target := opts["user"].UserValue(s)
		activity, err := h.db.GetUserActivity(i.GuildID, target.ID, 30)
		if err != nil {
			return fmt.Errorf("failed to load activity: %w", err)
		}

		embed := notifier.Info("📊 User Activity",
			fmt.Sprintf("Activity for <@%s> over the last 30 days.", target.ID))
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Messages", Value: fmt.Sprintf("%d", activity.MessageCount), Inline: true},
			{Name: "Voice Minutes", Value: fmt.Sprintf("%d", activity.VoiceMinutes), Inline: true},
		}
		return respondEmbed(s, i, embed)
	}
	return fmt.Errorf("unknown subcommand: %s", sub.Name)
}
