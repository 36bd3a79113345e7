package database

import (
	"fmt"
	"time"
)

// AddTempPunishment registers a sanction with a scheduled reversal.
func (d *Database) AddTempPunishment(guildID, userID, punishmentType string, expiresAt time.Time, caseID int64) (int64, error) {
	if err := d.EnsureGuildConfigExists(guildID); err != nil {
		return 0, err
	}
	res, err := d.db.Exec(
		`INSERT INTO temp_punishments (guild_id, user_id, punishment_type, expires_at, case_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		guildID, userID, punishmentType, expiresAt.Unix(), caseID, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to add temp punishment: %w", err)
	}
	return res.LastInsertId()
}

// GetExpiredPunishments returns every still-active punishment whose expiry
// has passed. The expiry scheduler sweeps these each tick.
func (d *Database) GetExpiredPunishments(now time.Time) ([]*TempPunishment, error) {
	rows, err := d.db.Query(
		`SELECT id, guild_id, user_id, punishment_type, expires_at, case_id, active, created_at
		 FROM temp_punishments
		 WHERE expires_at <= ? AND active = 1`, now.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var punishments []*TempPunishment
	for rows.Next() {
		var p TempPunishment
		var active int
		if err := rows.Scan(&p.ID, &p.GuildID, &p.UserID, &p.PunishmentType,
			&p.ExpiresAt, &p.CaseID, &active, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Active = active != 0
		punishments = append(punishments, &p)
	}
	return punishments, rows.Err()
}

// DeactivateTempPunishment flips a punishment inactive. This happens exactly
// once per row, by the scheduler or by a manual reversal.
func (d *Database) DeactivateTempPunishment(punishmentID int64) error {
	_, err := d.db.Exec(`UPDATE temp_punishments SET active = 0 WHERE id = ?`, punishmentID)
	if err != nil {
		return fmt.Errorf("failed to deactivate punishment %d: %w", punishmentID, err)
	}
	return nil
}

// DeactivateUserPunishments deactivates all active punishments of one kind
// for a user, for manual reversals (untimeout, unban).
func (d *Database) DeactivateUserPunishments(guildID, userID, punishmentType string) (int64, error) {
	res, err := d.db.Exec(
		`UPDATE temp_punishments SET active = 0
		 WHERE guild_id = ? AND user_id = ? AND punishment_type = ? AND active = 1`,
		guildID, userID, punishmentType)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate punishments for %s: %w", userID, err)
	}
	return res.RowsAffected()
}
