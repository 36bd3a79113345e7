package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GetAutomodSettings returns the automod settings for a guild, creating the
// default row on first reference. Results are served from the read cache
// when fresh.
func (d *Database) GetAutomodSettings(guildID string) (*AutomodSettings, error) {
	if cached, ok := d.settingsCache.Get(guildID); ok {
		return cached, nil
	}

	settings, err := d.loadAutomodSettings(guildID)
	if err == nil {
		d.settingsCache.Add(guildID, settings)
		return settings, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// Guild config must exist first for the foreign key.
	if err := d.EnsureGuildConfigExists(guildID); err != nil {
		return nil, err
	}
	now := time.Now().Unix()
	if _, err := d.db.Exec(
		`INSERT OR IGNORE INTO automod_settings (guild_id, created_at, updated_at) VALUES (?, ?, ?)`,
		guildID, now, now); err != nil {
		return nil, fmt.Errorf("failed to create automod settings for %s: %w", guildID, err)
	}

	settings, err = d.loadAutomodSettings(guildID)
	if err != nil {
		return nil, err
	}
	d.settingsCache.Add(guildID, settings)
	return settings, nil
}

func (d *Database) loadAutomodSettings(guildID string) (*AutomodSettings, error) {
	row := d.db.QueryRow(
		`SELECT guild_id, spam_detection, profanity_filter, link_filter, invite_filter,
		        caps_filter, caps_threshold, spam_threshold, lockdown_mode,
		        lockdown_auto_enable, lockdown_manual_override, lockdown_caps_threshold,
		        lockdown_spam_threshold, lockdown_timeout_duration, created_at, updated_at
		 FROM automod_settings WHERE guild_id = ?`, guildID)

	var s AutomodSettings
	var spam, profanity, link, invite, caps, mode, auto, override int
	if err := row.Scan(&s.GuildID, &spam, &profanity, &link, &invite, &caps,
		&s.CapsThreshold, &s.SpamThreshold, &mode, &auto, &override,
		&s.LockdownCapsThreshold, &s.LockdownSpamThreshold, &s.LockdownTimeoutDuration,
		&s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}

	s.SpamDetection = spam != 0
	s.ProfanityFilter = profanity != 0
	s.LinkFilter = link != 0
	s.InviteFilter = invite != 0
	s.CapsFilter = caps != 0
	s.LockdownMode = mode != 0
	s.LockdownAutoEnable = auto != 0
	s.LockdownManualOverride = override != 0
	return &s, nil
}

// UpdateAutomodSetting writes a single settings column. The column name is
// validated against a fixed set; values come from the admin boundary already
// range-checked.
func (d *Database) UpdateAutomodSetting(guildID, column string, value interface{}) error {
	if !automodColumns[column] {
		return fmt.Errorf("unknown automod setting %q", column)
	}
	if _, err := d.GetAutomodSettings(guildID); err != nil {
		return err
	}
	_, err := d.db.Exec(
		fmt.Sprintf("UPDATE automod_settings SET %s = ?, updated_at = ? WHERE guild_id = ?", column),
		value, time.Now().Unix(), guildID)
	if err != nil {
		return fmt.Errorf("failed to update automod setting %s for %s: %w", column, guildID, err)
	}
	d.settingsCache.Remove(guildID)
	return nil
}

var automodColumns = map[string]bool{
	"spam_detection":            true,
	"profanity_filter":          true,
	"link_filter":               true,
	"invite_filter":             true,
	"caps_filter":               true,
	"caps_threshold":            true,
	"spam_threshold":            true,
	"lockdown_auto_enable":      true,
	"lockdown_caps_threshold":   true,
	"lockdown_spam_threshold":   true,
	"lockdown_timeout_duration": true,
}

// IsLockdownActive reports whether lockdown mode is on for a guild.
func (d *Database) IsLockdownActive(guildID string) (bool, error) {
	settings, err := d.GetAutomodSettings(guildID)
	if err != nil {
		return false, err
	}
	return settings.LockdownMode, nil
}

// IsManualLockdownOverride reports whether the manual-override latch is set.
func (d *Database) IsManualLockdownOverride(guildID string) (bool, error) {
	settings, err := d.GetAutomodSettings(guildID)
	if err != nil {
		return false, err
	}
	return settings.LockdownManualOverride, nil
}

// EnableLockdown turns lockdown on. A manual enable also sets the override
// latch, freezing automatic transitions until ClearLockdownOverride.
func (d *Database) EnableLockdown(guildID string, manual bool) error {
	return d.setLockdown(guildID, true, manual)
}

// DisableLockdown turns lockdown off. A manual disable sets the override
// latch; an automatic disable leaves any existing latch untouched.
func (d *Database) DisableLockdown(guildID string, manual bool) error {
	return d.setLockdown(guildID, false, manual)
}

func (d *Database) setLockdown(guildID string, active, manual bool) error {
	if _, err := d.GetAutomodSettings(guildID); err != nil {
		return err
	}

	var err error
	if manual {
		_, err = d.db.Exec(
			`UPDATE automod_settings
			 SET lockdown_mode = ?, lockdown_manual_override = 1, updated_at = ?
			 WHERE guild_id = ?`,
			boolInt(active), time.Now().Unix(), guildID)
	} else {
		// Automatic toggles are conditional on the latch being clear so a
		// concurrent manual command always wins.
		_, err = d.db.Exec(
			`UPDATE automod_settings
			 SET lockdown_mode = ?, updated_at = ?
			 WHERE guild_id = ? AND lockdown_manual_override = 0`,
			boolInt(active), time.Now().Unix(), guildID)
	}
	if err != nil {
		return fmt.Errorf("failed to set lockdown for %s: %w", guildID, err)
	}
	d.settingsCache.Remove(guildID)
	return nil
}

// ClearLockdownOverride resets the manual-override latch so automatic
// transitions resume.
func (d *Database) ClearLockdownOverride(guildID string) error {
	if _, err := d.GetAutomodSettings(guildID); err != nil {
		return err
	}
	_, err := d.db.Exec(
		`UPDATE automod_settings SET lockdown_manual_override = 0, updated_at = ? WHERE guild_id = ?`,
		time.Now().Unix(), guildID)
	if err != nil {
		return fmt.Errorf("failed to clear lockdown override for %s: %w", guildID, err)
	}
	d.settingsCache.Remove(guildID)
	return nil
}
