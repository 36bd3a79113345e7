package commands

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

var botStartTime = time.Now()

// handleStats shows bot, runtime, and host statistics.
func (h *Handler) handleStats(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		return err
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	embed := &discordgo.MessageEmbed{
		Title: "📈 Bot Statistics",
		Color: 0x3498DB,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Uptime", Value: formatUptime(time.Since(botStartTime)), Inline: true},
			{Name: "Guilds", Value: fmt.Sprintf("%d", len(s.State.Guilds)), Inline: true},
			{Name: "Latency", Value: fmt.Sprintf("%dms", s.HeartbeatLatency().Milliseconds()), Inline: true},
			{Name: "Go Version", Value: runtime.Version(), Inline: true},
			{Name: "Goroutines", Value: fmt.Sprintf("%d", runtime.NumGoroutine()), Inline: true},
			{Name: "Heap", Value: fmt.Sprintf("%.1f MB", float64(memStats.Alloc)/1024/1024), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if hostInfo, err := host.Info(); err == nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Host",
			Value:  fmt.Sprintf("%s (%s)", hostInfo.Platform, hostInfo.KernelArch),
			Inline: true,
		})
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Host Uptime",
			Value:  formatUptime(time.Duration(hostInfo.Uptime) * time.Second),
			Inline: true,
		})
	}
	if cpuPercent, err := cpu.Percent(time.Second, false); err == nil && len(cpuPercent) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "CPU",
			Value:  fmt.Sprintf("%.1f%%", cpuPercent[0]),
			Inline: true,
		})
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "System Memory",
			Value:  fmt.Sprintf("%.1f / %.1f GB (%.0f%%)", float64(vm.Used)/1e9, float64(vm.Total)/1e9, vm.UsedPercent),
			Inline: true,
		})
	}

	_, err = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	return err
}

func formatUptime(d time.Duration) string {
	d = d.Round(time.Second)
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm %ds", minutes, int(d.Seconds())%60)
}
