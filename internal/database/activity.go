package database

import (
	"fmt"
	"time"
)

const activityDateFormat = "2006-01-02"

// UpdateUserActivity increments today's activity counters for a user,
// creating the row on first activity of the day.
func (d *Database) UpdateUserActivity(guildID, userID string, messageCount, voiceMinutes int64) error {
	if err := d.EnsureGuildConfigExists(guildID); err != nil {
		return err
	}

	now := time.Now()
	today := now.Format(activityDateFormat)

	res, err := d.db.Exec(
		`UPDATE user_activity
		 SET message_count = message_count + ?, voice_minutes = voice_minutes + ?, updated_at = ?
		 WHERE guild_id = ? AND user_id = ? AND date = ?`,
		messageCount, voiceMinutes, now.Unix(), guildID, userID, today)
	if err != nil {
		return fmt.Errorf("failed to update user activity: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		_, err = d.db.Exec(
			`INSERT INTO user_activity (guild_id, user_id, date, message_count, voice_minutes, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			guildID, userID, today, messageCount, voiceMinutes, now.Unix(), now.Unix())
		if err != nil {
			return fmt.Errorf("failed to insert user activity: %w", err)
		}
	}
	return nil
}

// GetUserActivity sums a user's counters over the last N days.
func (d *Database) GetUserActivity(guildID, userID string, days int) (*UserActivity, error) {
	cutoff := time.Now().AddDate(0, 0, -days).Format(activityDateFormat)

	row := d.db.QueryRow(
		`SELECT COALESCE(SUM(message_count), 0), COALESCE(SUM(voice_minutes), 0)
		 FROM user_activity
		 WHERE guild_id = ? AND user_id = ? AND date >= ?`,
		guildID, userID, cutoff)

	activity := &UserActivity{UserID: userID}
	if err := row.Scan(&activity.MessageCount, &activity.VoiceMinutes); err != nil {
		return nil, err
	}
	return activity, nil
}

// GetTopActiveUsers ranks users by messages plus voice time over the last N
// days. Voice minutes are down-weighted 10:1 against messages.
func (d *Database) GetTopActiveUsers(guildID string, days, limit int) ([]*UserActivity, error) {
	cutoff := time.Now().AddDate(0, 0, -days).Format(activityDateFormat)

	rows, err := d.db.Query(
		`SELECT user_id, SUM(message_count), SUM(voice_minutes)
		 FROM user_activity
		 WHERE guild_id = ? AND date >= ?
		 GROUP BY user_id
		 ORDER BY (SUM(message_count) + SUM(voice_minutes)/10) DESC
		 LIMIT ?`,
		guildID, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*UserActivity
	for rows.Next() {
		var u UserActivity
		if err := rows.Scan(&u.UserID, &u.MessageCount, &u.VoiceMinutes); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

// CleanupOldActivity deletes activity rows older than the retention window
// and returns how many were removed.
func (d *Database) CleanupOldActivity(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days).Format(activityDateFormat)

	res, err := d.db.Exec(`DELETE FROM user_activity WHERE date < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up old activity: %w", err)
	}
	return res.RowsAffected()
}
