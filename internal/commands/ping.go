package commands

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// handlePing shows gateway and REST latency.
func (h *Handler) handlePing(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	startTime := time.Now()

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		return err
	}

	apiStart := time.Now()
	_, err = s.Channel(i.ChannelID)
	apiLatency := time.Since(apiStart)
	if err != nil {
		apiLatency = 0
	}

	responseLatency := time.Since(startTime)
	wsLatency := s.HeartbeatLatency()

	avgLatency := (wsLatency.Milliseconds() + apiLatency.Milliseconds()) / 2
	var statusColor int
	switch {
	case avgLatency < 30:
		statusColor = 0x00FF00
	case avgLatency < 60:
		statusColor = 0xFFFF00
	case avgLatency < 120:
		statusColor = 0xFFA500
	default:
		statusColor = 0xFF0000
	}

	embed := &discordgo.MessageEmbed{
		Title: "🏓 Pong!",
		Color: statusColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "⚡ WebSocket", Value: fmt.Sprintf("`%dms`", wsLatency.Milliseconds()), Inline: true},
			{Name: "📡 API", Value: fmt.Sprintf("`%dms`", apiLatency.Milliseconds()), Inline: true},
			{Name: "🔄 Response", Value: fmt.Sprintf("`%dms`", responseLatency.Milliseconds()), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	_, err = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	return err
}
