package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateModerationCase writes one enforcement decision to the ledger and
// returns its case ID. duration is in seconds; 0 means no expiry.
func (d *Database) CreateModerationCase(guildID, caseType, userID, moderatorID, reason string, duration int64) (int64, error) {
	if err := d.EnsureGuildConfigExists(guildID); err != nil {
		return 0, err
	}

	now := time.Now().Unix()
	var expiresAt int64
	if duration > 0 {
		expiresAt = now + duration
	}

	res, err := d.db.Exec(
		`INSERT INTO moderation_cases
		 (guild_id, case_type, user_id, moderator_id, reason, duration, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		guildID, caseType, userID, moderatorID, reason, duration, expiresAt, now)
	if err != nil {
		return 0, fmt.Errorf("failed to create moderation case: %w", err)
	}
	return res.LastInsertId()
}

// GetModerationCase returns one case by ID, or nil if it does not exist.
func (d *Database) GetModerationCase(caseID int64) (*ModerationCase, error) {
	row := d.db.QueryRow(
		`SELECT id, guild_id, case_type, user_id, moderator_id, reason, duration, expires_at, active, created_at
		 FROM moderation_cases WHERE id = ?`, caseID)

	c, err := scanCase(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

// GetUserCases returns all cases for a user, newest first.
func (d *Database) GetUserCases(guildID, userID string) ([]*ModerationCase, error) {
	rows, err := d.db.Query(
		`SELECT id, guild_id, case_type, user_id, moderator_id, reason, duration, expires_at, active, created_at
		 FROM moderation_cases
		 WHERE guild_id = ? AND user_id = ?
		 ORDER BY created_at DESC, id DESC`, guildID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCases(rows)
}

// GetUserCasesSince returns a user's cases created at or after the cutoff,
// newest first. Feeds the escalation tracker's rolling window.
func (d *Database) GetUserCasesSince(guildID, userID string, since time.Time) ([]*ModerationCase, error) {
	rows, err := d.db.Query(
		`SELECT id, guild_id, case_type, user_id, moderator_id, reason, duration, expires_at, active, created_at
		 FROM moderation_cases
		 WHERE guild_id = ? AND user_id = ? AND created_at >= ?
		 ORDER BY created_at DESC, id DESC`, guildID, userID, since.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCases(rows)
}

// GetRecentGuildCases returns the latest cases for a guild.
func (d *Database) GetRecentGuildCases(guildID string, limit int) ([]*ModerationCase, error) {
	rows, err := d.db.Query(
		`SELECT id, guild_id, case_type, user_id, moderator_id, reason, duration, expires_at, active, created_at
		 FROM moderation_cases
		 WHERE guild_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, guildID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCases(rows)
}

// DeactivateCase flips the active flag when a sanction is reversed.
func (d *Database) DeactivateCase(caseID int64) error {
	_, err := d.db.Exec(`UPDATE moderation_cases SET active = 0 WHERE id = ?`, caseID)
	if err != nil {
		return fmt.Errorf("failed to deactivate case %d: %w", caseID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCase(row rowScanner) (*ModerationCase, error) {
	var c ModerationCase
	var active int
	if err := row.Scan(&c.ID, &c.GuildID, &c.CaseType, &c.UserID, &c.ModeratorID,
		&c.Reason, &c.Duration, &c.ExpiresAt, &active, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Active = active != 0
	return &c, nil
}

func scanCases(rows *sql.Rows) ([]*ModerationCase, error) {
	var cases []*ModerationCase
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}
