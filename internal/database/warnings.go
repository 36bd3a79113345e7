package database

import (
	"database/sql"
	"fmt"
	"time"
)

// AddWarning records a warning and returns its ID.
func (d *Database) AddWarning(guildID, userID, moderatorID, reason string) (int64, error) {
	if err := d.EnsureGuildConfigExists(guildID); err != nil {
		return 0, err
	}
	res, err := d.db.Exec(
		`INSERT INTO warnings (guild_id, user_id, moderator_id, reason, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		guildID, userID, moderatorID, reason, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to add warning: %w", err)
	}
	return res.LastInsertId()
}

// GetWarnings returns a user's active warnings, newest first.
func (d *Database) GetWarnings(guildID, userID string) ([]*Warning, error) {
	rows, err := d.db.Query(
		`SELECT id, guild_id, user_id, moderator_id, reason, active, created_at
		 FROM warnings
		 WHERE guild_id = ? AND user_id = ? AND active = 1
		 ORDER BY created_at DESC, id DESC`, guildID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWarnings(rows)
}

// GetWarningCount returns the number of active warnings for a user.
func (d *Database) GetWarningCount(guildID, userID string) (int, error) {
	row := d.db.QueryRow(
		`SELECT COUNT(*) FROM warnings WHERE guild_id = ? AND user_id = ? AND active = 1`,
		guildID, userID)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// RemoveWarning soft-deletes one warning.
func (d *Database) RemoveWarning(warningID int64) error {
	_, err := d.db.Exec(`UPDATE warnings SET active = 0 WHERE id = ?`, warningID)
	if err != nil {
		return fmt.Errorf("failed to remove warning %d: %w", warningID, err)
	}
	return nil
}

// ClearWarnings soft-deletes all active warnings for a user and reports how
// many were cleared. Clearing a clean slate is a no-op returning zero.
func (d *Database) ClearWarnings(guildID, userID string) (int64, error) {
	res, err := d.db.Exec(
		`UPDATE warnings SET active = 0 WHERE guild_id = ? AND user_id = ? AND active = 1`,
		guildID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear warnings: %w", err)
	}
	return res.RowsAffected()
}

func scanWarnings(rows *sql.Rows) ([]*Warning, error) {
	var warnings []*Warning
	for rows.Next() {
		var w Warning
		var active int
		if err := rows.Scan(&w.ID, &w.GuildID, &w.UserID, &w.ModeratorID,
			&w.Reason, &active, &w.CreatedAt); err != nil {
			return nil, err
		}
		w.Active = active != 0
		warnings = append(warnings, &w)
	}
	return warnings, rows.Err()
}
