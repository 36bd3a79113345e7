package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mnaljm/Project-bonk/internal/database"
	"github.com/mnaljm/Project-bonk/internal/notifier"
	"github.com/mnaljm/Project-bonk/pkg/util"
)

func (h *Handler) handleCase(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	if err := requirePerms(i, discordgo.PermissionModerateMembers); err != nil {
		return err
	}
	opts := optionMap(data.Options)
	caseID := opts["id"].IntValue()

	c, err := h.db.GetModerationCase(caseID)
	if err != nil {
		return fmt.Errorf("failed to load case: %w", err)
	}
	if c == nil || c.GuildID != i.GuildID {
		return fmt.Errorf("case #%d not found", caseID)
	}

	status := "Inactive"
	if c.Active {
		status = "Active"
	}
	embed := notifier.Info(fmt.Sprintf("📋 Case #%d", c.ID), "")
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Type", Value: c.CaseType, Inline: true},
		{Name: "User", Value: fmt.Sprintf("<@%s>", c.UserID), Inline: true},
		{Name: "Moderator", Value: formatModerator(c.ModeratorID), Inline: true},
		{Name: "Status", Value: status, Inline: true},
		{Name: "Created", Value: fmt.Sprintf("<t:%d:f>", c.CreatedAt), Inline: true},
		{Name: "Reason", Value: c.Reason},
	}
	if c.Duration > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Duration", Value: util.FormatDuration(c.Duration), Inline: true,
		})
	}
	return respondEmbed(s, i, embed)
}

func (h *Handler) handleHistory(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	if err := requirePerms(i, discordgo.PermissionModerateMembers); err != nil {
		return err
	}
	opts := optionMap(data.Options)
	target := opts["user"].UserValue(s)

	cases, err := h.db.GetUserCases(i.GuildID, target.ID)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if len(cases) == 0 {
		return respondEmbed(s, i, notifier.Info("Moderation History",
			fmt.Sprintf("<@%s> has no moderation history.", target.ID)))
	}

	embed := notifier.Info("📋 Moderation History",
		fmt.Sprintf("<@%s> has **%d** case(s).", target.ID, len(cases)))
	embed.Fields = append(embed.Fields, caseListField("Recent Cases", cases, 10))
	return respondEmbed(s, i, embed)
}

func (h *Handler) handleRecent(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	if err := requirePerms(i, discordgo.PermissionModerateMembers); err != nil {
		return err
	}
	limit := 10
	if opt, ok := optionMap(data.Options)["limit"]; ok {
		limit = int(opt.IntValue())
		if limit < 1 || limit > 25 {
			return fmt.Errorf("limit must be between 1 and 25")
		}
	}

	cases, err := h.db.GetRecentGuildCases(i.GuildID, limit)
	if err != nil {
		return fmt.Errorf("failed to load cases: %w", err)
	}
	if len(cases) == 0 {
		return respondEmbed(s, i, notifier.Info("Recent Cases", "No moderation cases yet."))
	}

	embed := notifier.Info("📋 Recent Moderation Cases", "")
	embed.Fields = append(embed.Fields, caseListField(fmt.Sprintf("Last %d", len(cases)), cases, limit))
	return respondEmbed(s, i, embed)
}

func caseListField(name string, cases []*database.ModerationCase, limit int) *discordgo.MessageEmbedField {
	var b strings.Builder
	for n, c := range cases {
		if n >= limit {
			break
		}
		fmt.Fprintf(&b, "`#%d` **%s** <@%s> — %s\n", c.ID, c.CaseType, c.UserID, util.Truncate(c.Reason, 60))
	}
	return &discordgo.MessageEmbedField{Name: name, Value: b.String()}
}

func formatModerator(moderatorID string) string {
	if moderatorID == "automod" {
		return "🤖 Automod"
	}
	return fmt.Sprintf("<@%s>", moderatorID)
}
