package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mnaljm/Project-bonk/internal/models"
	"github.com/mnaljm/Project-bonk/pkg/util"
)

const (
	colorRed    = 0xED4245
	colorOrange = 0xE67E22
	colorGreen  = 0x57F287
	colorBlue   = 0x3498DB
	colorYellow = 0xFEE75C
)

func titleize(kind string) string {
	words := strings.Split(kind, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func baseEmbed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Timestamp:   time.Now().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Project Bonk | Moderation Bot",
		},
	}
}

// ViolationDM is the private notice sent to a user whose message was removed.
func ViolationDM(kind, reason string, lockdown bool) *discordgo.MessageEmbed {
	title := fmt.Sprintf("⚠️ Auto-Moderation - %s", titleize(kind))
	if lockdown {
		title += " (Lockdown Mode)"
	}

	embed := baseEmbed(title, fmt.Sprintf("Your message was deleted for: %s", reason), colorYellow)
	if lockdown {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "⚠️ Lockdown Mode Active",
			Value: "Stricter rules are currently in effect. You have been temporarily timed out.",
		})
	}
	return embed
}

// AutomodAudit is the log-channel record of one automated enforcement.
func AutomodAudit(msg models.Message, kind, reason string, lockdown bool) *discordgo.MessageEmbed {
	title := "🤖 Auto-Moderation Action"
	color := colorOrange
	if lockdown {
		title = "🔒 Lockdown Auto-Moderation Action"
		color = colorRed
	}

	embed := baseEmbed(title, fmt.Sprintf("Message deleted in <#%s>", msg.ChannelID), color)
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "User", Value: fmt.Sprintf("<@%s> (`%s`)", msg.UserID, msg.UserID), Inline: true},
		{Name: "Channel", Value: fmt.Sprintf("<#%s>", msg.ChannelID), Inline: true},
		{Name: "Violation", Value: titleize(kind), Inline: true},
		{Name: "Reason", Value: reason},
		{Name: "Original Message", Value: util.Truncate(msg.Content, 1000)},
	}
	if lockdown {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Action Taken",
			Value: "User has been timed out due to lockdown mode",
		})
	}
	return embed
}

// Escalation is the log-channel notice for an automatic repeat-offender timeout.
func Escalation(userID string, violationCount int, caseID int64, duration int64) *discordgo.MessageEmbed {
	embed := baseEmbed("🔒 Auto-Moderation Escalation",
		fmt.Sprintf("<@%s> has been automatically timed out", userID), colorRed)
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "User", Value: fmt.Sprintf("<@%s> (`%s`)", userID, userID), Inline: true},
		{Name: "Reason", Value: fmt.Sprintf("%d violations in 1 hour", violationCount), Inline: true},
		{Name: "Duration", Value: util.FormatDuration(duration), Inline: true},
		{Name: "Case ID", Value: fmt.Sprintf("#%d", caseID), Inline: true},
	}
	return embed
}

// LockdownChange announces a lockdown toggle in the log channel.
func LockdownChange(enabled bool, reason string) *discordgo.MessageEmbed {
	title := "🔓 Lockdown Mode Disabled"
	status := "🔓 INACTIVE"
	rules := "Normal rules active"
	color := colorGreen
	if enabled {
		title = "🔒 Lockdown Mode Enabled"
		status = "🔒 ACTIVE"
		rules = "Stricter rules active"
		color = colorRed
	}

	verb := "disabled"
	if enabled {
		verb = "enabled"
	}
	embed := baseEmbed(title, fmt.Sprintf("Lockdown mode has been %s", verb), color)
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Reason", Value: reason},
		{Name: "Status", Value: status, Inline: true},
		{Name: "Auto-Moderation", Value: rules, Inline: true},
	}
	return embed
}

// Success is the standard confirmation response for admin commands.
func Success(title, description string) *discordgo.MessageEmbed {
	return baseEmbed("✅ "+title, description, colorGreen)
}

// Error is the standard failure response for admin commands.
func Error(description string) *discordgo.MessageEmbed {
	return baseEmbed("❌ Error", description, colorRed)
}

// Info is the standard informational response for admin commands.
func Info(title, description string) *discordgo.MessageEmbed {
	return baseEmbed(title, description, colorBlue)
}
