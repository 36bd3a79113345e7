package commands

import "github.com/bwmarrin/discordgo"

func minInt(v int) *float64 {
	f := float64(v)
	return &f
}

// GetAllCommands returns all application commands
func GetAllCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "automod",
			Description: "Manage auto-moderation",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "toggle",
					Description: "Enable or disable auto-moderation for this server",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "enabled",
							Description: "Whether auto-moderation is active",
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Required:    true,
						},
					},
				},
				{
					Name:        "rule",
					Description: "Enable or disable a single rule",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "rule",
							Description: "The rule to configure",
							Type:        discordgo.ApplicationCommandOptionString,
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "Spam Detection", Value: "spam_detection"},
								{Name: "Profanity Filter", Value: "profanity_filter"},
								{Name: "Link Filter", Value: "link_filter"},
								{Name: "Invite Filter", Value: "invite_filter"},
								{Name: "Caps Filter", Value: "caps_filter"},
							},
						},
						{
							Name:        "enabled",
							Description: "Whether the rule is active",
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Required:    true,
						},
					},
				},
				{
					Name:        "threshold",
					Description: "Set a rule threshold",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "setting",
							Description: "The threshold to set",
							Type:        discordgo.ApplicationCommandOptionString,
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "Caps percentage", Value: "caps_threshold"},
								{Name: "Spam messages per 10s", Value: "spam_threshold"},
							},
						},
						{
							Name:        "value",
							Description: "New threshold value",
							Type:        discordgo.ApplicationCommandOptionInteger,
							Required:    true,
							MinValue:    minInt(1),
						},
					},
				},
				{
					Name:        "settings",
					Description: "View current auto-moderation settings",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
			},
		},
		{
			Name:        "lockdown",
			Description: "Manage lockdown mode",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "enable",
					Description: "Manually enable lockdown mode",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "reason",
							Description: "Why lockdown is being enabled",
							Type:        discordgo.ApplicationCommandOptionString,
							Required:    false,
						},
					},
				},
				{
					Name:        "disable",
					Description: "Manually disable lockdown mode",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "reason",
							Description: "Why lockdown is being disabled",
							Type:        discordgo.ApplicationCommandOptionString,
							Required:    false,
						},
					},
				},
				{
					Name:        "status",
					Description: "Show current lockdown state",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "auto",
					Description: "Enable or disable automatic lockdown",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "enabled",
							Description: "Whether lockdown toggles automatically",
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Required:    true,
						},
					},
				},
				{
					Name:        "clearoverride",
					Description: "Resume automatic lockdown after a manual toggle",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
			},
		},
		{
			Name:        "lockdownconfig",
			Description: "Configure lockdown-mode thresholds",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "caps_threshold",
					Description: "Caps percentage limit under lockdown (1-100)",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    false,
				},
				{
					Name:        "spam_threshold",
					Description: "Messages per 10s under lockdown (1-10)",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    false,
				},
				{
					Name:        "timeout_duration",
					Description: "Lockdown violation timeout in seconds (60-3600)",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    false,
				},
			},
		},
		{
			Name:        "warn",
			Description: "Warn a user",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "User to warn",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
				{
					Name:        "reason",
					Description: "Reason for the warning",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
			},
		},
		{
			Name:        "warnings",
			Description: "List a user's warnings",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "User to inspect",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
			},
		},
		{
			Name:        "removewarning",
			Description: "Remove a single warning by ID",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "id",
					Description: "Warning ID",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
			},
		},
		{
			Name:        "clearwarnings",
			Description: "Clear all warnings for a user",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "User to clear",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
			},
		},
		{
			Name:        "timeout",
			Description: "Time out a user",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "User to time out",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
				{
					Name:        "duration",
					Description: "Duration (e.g. 10m, 2h, 1d)",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
				{
					Name:        "reason",
					Description: "Reason for the timeout",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    false,
				},
			},
		},
		{
			Name:        "untimeout",
			Description: "Remove a user's timeout",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "User to release",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
			},
		},
		{
			Name:        "ban",
			Description: "Ban a user, optionally temporarily",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "User to ban",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
				{
					Name:        "reason",
					Description: "Reason for the ban",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    false,
				},
				{
					Name:        "duration",
					Description: "Temp-ban duration (e.g. 7d); permanent if omitted",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    false,
				},
			},
		},
		{
			Name:        "unban",
			Description: "Unban a user by ID",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user_id",
					Description: "ID of the user to unban",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
			},
		},
		{
			Name:        "kick",
			Description: "Kick a user",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "User to kick",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
				{
					Name:        "reason",
					Description: "Reason for the kick",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    false,
				},
			},
		},
		{
			Name:        "case",
			Description: "Show a moderation case",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "id",
					Description: "Case ID",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
			},
		},
		{
			Name:        "history",
			Description: "Show a user's moderation history",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "User to inspect",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
			},
		},
		{
			Name:        "recent",
			Description: "Show the most recent moderation cases",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "limit",
					Description: "How many cases to show (default 10)",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    false,
				},
			},
		},
		{
			Name:        "config",
			Description: "Configure the bot for this server",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "logchannel",
					Description: "Set the moderation log channel",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "channel",
							Description: "Channel for moderation logs",
							Type:        discordgo.ApplicationCommandOptionChannel,
							Required:    true,
						},
					},
				},
				{
					Name:        "maxwarnings",
					Description: "Set the warning count that triggers a timeout",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "count",
							Description: "Warnings before automatic timeout",
							Type:        discordgo.ApplicationCommandOptionInteger,
							Required:    true,
							MinValue:    minInt(1),
						},
					},
				},
			},
		},
		{
			Name:        "activity",
			Description: "Server activity statistics",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "top",
					Description: "Most active users",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "days",
							Description: "Window in days (default 7)",
							Type:        discordgo.ApplicationCommandOptionInteger,
							Required:    false,
						},
					},
				},
				{
					Name:        "user",
					Description: "One user's activity",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "user",
							Description: "User to inspect",
							Type:        discordgo.ApplicationCommandOptionUser,
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:        "ping",
			Description: "Check Discord API latency and connection quality",
		},
		{
			Name:        "stats",
			Description: "Show bot and system statistics",
		},
	}
}
