package config

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Bot      BotConfig      `json:"bot"`
	Database DatabaseConfig `json:"database"`
	Engine   EngineConfig   `json:"engine"`
	Metrics  MetricsConfig  `json:"metrics"`
	Logging  LoggingConfig  `json:"logging"`
}

type BotConfig struct {
	Token   string `json:"token"`
	GuildID string `json:"guild_id"` // optional: register commands to one guild for faster iteration
}

type DatabaseConfig struct {
	Path string `json:"path"`
}

type EngineConfig struct {
	LockdownCheckSeconds  int `json:"lockdown_check_seconds"`
	LockdownGraceSeconds  int `json:"lockdown_grace_seconds"`
	ExpirySweepSeconds    int `json:"expiry_sweep_seconds"`
	ActivitySweepHours    int `json:"activity_sweep_hours"`
	ActivityRetentionDays int `json:"activity_retention_days"`
	PlatformTimeoutMs     int `json:"platform_timeout_ms"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr"`
}

type LoggingConfig struct {
	Level string `json:"level"`
	Path  string `json:"path"`
}

var GlobalConfig *Config

// Load reads the JSON config file, then applies environment overrides. A
// missing .env file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if token := os.Getenv("DISCORD_TOKEN"); token != "" {
		cfg.Bot.Token = token
	}
	if guildID := os.Getenv("GUILD_ID"); guildID != "" {
		cfg.Bot.GuildID = guildID
	}
	if dbPath := os.Getenv("DATABASE_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if addr := os.Getenv("METRICS_ADDR"); addr != "" {
		cfg.Metrics.Addr = addr
		cfg.Metrics.Enabled = true
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if v := os.Getenv("ACTIVITY_RETENTION_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			cfg.Engine.ActivityRetentionDays = days
		}
	}

	GlobalConfig = cfg
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "data/bonk.db",
		},
		Engine: EngineConfig{
			LockdownCheckSeconds:  300,
			LockdownGraceSeconds:  10,
			ExpirySweepSeconds:    60,
			ActivitySweepHours:    24,
			ActivityRetentionDays: 90,
			PlatformTimeoutMs:     5000,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9120",
		},
		Logging: LoggingConfig{
			Level: "info",
			Path:  "bonk.log",
		},
	}
}

func Get() *Config {
	if GlobalConfig == nil {
		return DefaultConfig()
	}
	return GlobalConfig
}
