package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GetGuildConfig returns the guild configuration, creating the default row
// on first reference.
func (d *Database) GetGuildConfig(guildID string) (*GuildConfig, error) {
	cfg, err := d.loadGuildConfig(guildID)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if err := d.EnsureGuildConfigExists(guildID); err != nil {
		return nil, err
	}
	return d.loadGuildConfig(guildID)
}

func (d *Database) loadGuildConfig(guildID string) (*GuildConfig, error) {
	row := d.db.QueryRow(
		`SELECT guild_id, log_channel_id, auto_mod_enabled, max_warnings, created_at, updated_at
		 FROM guild_config WHERE guild_id = ?`, guildID)

	var cfg GuildConfig
	var enabled int
	if err := row.Scan(&cfg.GuildID, &cfg.LogChannelID, &enabled, &cfg.MaxWarnings,
		&cfg.CreatedAt, &cfg.UpdatedAt); err != nil {
		return nil, err
	}
	cfg.AutomodEnabled = enabled != 0
	return &cfg, nil
}

// EnsureGuildConfigExists inserts the default configuration if missing.
func (d *Database) EnsureGuildConfigExists(guildID string) error {
	now := time.Now().Unix()
	_, err := d.db.Exec(
		`INSERT OR IGNORE INTO guild_config (guild_id, created_at, updated_at) VALUES (?, ?, ?)`,
		guildID, now, now)
	if err != nil {
		return fmt.Errorf("failed to create guild config for %s: %w", guildID, err)
	}
	return nil
}

// SetLogChannel updates the audit destination channel.
func (d *Database) SetLogChannel(guildID, channelID string) error {
	return d.updateGuildConfig(guildID, "log_channel_id", channelID)
}

// SetAutomodEnabled toggles the whole automation pipeline for a guild.
func (d *Database) SetAutomodEnabled(guildID string, enabled bool) error {
	return d.updateGuildConfig(guildID, "auto_mod_enabled", boolInt(enabled))
}

// SetMaxWarnings updates the warning ceiling.
func (d *Database) SetMaxWarnings(guildID string, max int) error {
	return d.updateGuildConfig(guildID, "max_warnings", max)
}

func (d *Database) updateGuildConfig(guildID, column string, value interface{}) error {
	if err := d.EnsureGuildConfigExists(guildID); err != nil {
		return err
	}
	_, err := d.db.Exec(
		fmt.Sprintf("UPDATE guild_config SET %s = ?, updated_at = ? WHERE guild_id = ?", column),
		value, time.Now().Unix(), guildID)
	if err != nil {
		return fmt.Errorf("failed to update guild config %s for %s: %w", column, guildID, err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
