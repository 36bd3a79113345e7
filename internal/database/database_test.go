package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	require.NoError(t, Initialize(filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() { Close() })
	return GetDB()
}

func TestGuildConfigLazyCreate(t *testing.T) {
	db := openTestDB(t)

	cfg, err := db.GetGuildConfig("g1")
	require.NoError(t, err)
	assert.Equal(t, "g1", cfg.GuildID)
	assert.False(t, cfg.AutomodEnabled)
	assert.Equal(t, 3, cfg.MaxWarnings)

	require.NoError(t, db.SetAutomodEnabled("g1", true))
	require.NoError(t, db.SetLogChannel("g1", "chan1"))
	require.NoError(t, db.SetMaxWarnings("g1", 5))

	cfg, err = db.GetGuildConfig("g1")
	require.NoError(t, err)
	assert.True(t, cfg.AutomodEnabled)
	assert.Equal(t, "chan1", cfg.LogChannelID)
	assert.Equal(t, 5, cfg.MaxWarnings)
}

func TestAutomodSettingsDefaultsAndUpdate(t *testing.T) {
	db := openTestDB(t)

	s, err := db.GetAutomodSettings("g1")
	require.NoError(t, err)
	assert.True(t, s.SpamDetection)
	assert.False(t, s.LinkFilter)
	assert.Equal(t, 70, s.CapsThreshold)
	assert.Equal(t, 5, s.SpamThreshold)
	assert.Equal(t, 50, s.LockdownCapsThreshold)
	assert.Equal(t, 3, s.LockdownSpamThreshold)
	assert.Equal(t, 300, s.LockdownTimeoutDuration)

	require.NoError(t, db.UpdateAutomodSetting("g1", "caps_threshold", 80))
	require.NoError(t, db.UpdateAutomodSetting("g1", "link_filter", true))

	s, err = db.GetAutomodSettings("g1")
	require.NoError(t, err)
	assert.Equal(t, 80, s.CapsThreshold)
	assert.True(t, s.LinkFilter)
}

func TestAutomodSettingsRejectsUnknownColumn(t *testing.T) {
	db := openTestDB(t)

	err := db.UpdateAutomodSetting("g1", "evil; DROP TABLE automod_settings", 1)
	assert.Error(t, err)
}

func TestLockdownLatchSemantics(t *testing.T) {
	db := openTestDB(t)

	// Automatic enable works while unlatched.
	require.NoError(t, db.EnableLockdown("g1", false))
	active, err := db.IsLockdownActive("g1")
	require.NoError(t, err)
	assert.True(t, active)

	// Manual disable sets the latch.
	require.NoError(t, db.DisableLockdown("g1", true))
	override, err := db.IsManualLockdownOverride("g1")
	require.NoError(t, err)
	assert.True(t, override)

	// Automatic enable is a no-op while latched.
	require.NoError(t, db.EnableLockdown("g1", false))
	active, err = db.IsLockdownActive("g1")
	require.NoError(t, err)
	assert.False(t, active, "automatic toggle must not win against the latch")

	// Clearing the override restores automatic control.
	require.NoError(t, db.ClearLockdownOverride("g1"))
	require.NoError(t, db.EnableLockdown("g1", false))
	active, err = db.IsLockdownActive("g1")
	require.NoError(t, err)
	assert.True(t, active)
}

func TestWarningsLifecycle(t *testing.T) {
	db := openTestDB(t)

	id1, err := db.AddWarning("g1", "u1", "mod1", "first")
	require.NoError(t, err)
	_, err = db.AddWarning("g1", "u1", "mod1", "second")
	require.NoError(t, err)

	count, err := db.GetWarningCount("g1", "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, db.RemoveWarning(id1))
	count, err = db.GetWarningCount("g1", "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	cleared, err := db.ClearWarnings("g1", "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared)

	// Clearing again is idempotent.
	cleared, err = db.ClearWarnings("g1", "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), cleared)
}

func TestModerationCasesNewestFirst(t *testing.T) {
	db := openTestDB(t)

	first, err := db.CreateModerationCase("g1", "warn", "u1", "mod1", "r1", 0)
	require.NoError(t, err)
	second, err := db.CreateModerationCase("g1", "auto_mod_spam", "u1", "bot", "r2", 0)
	require.NoError(t, err)

	cases, err := db.GetUserCases("g1", "u1")
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, second, cases[0].ID)
	assert.Equal(t, first, cases[1].ID)

	since, err := db.GetUserCasesSince("g1", "u1", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.Len(t, since, 2)

	since, err = db.GetUserCasesSince("g1", "u1", time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Empty(t, since)
}

func TestModerationCaseGetAndDeactivate(t *testing.T) {
	db := openTestDB(t)

	id, err := db.CreateModerationCase("g1", "timeout", "u1", "mod1", "spamming", 600)
	require.NoError(t, err)

	c, err := db.GetModerationCase(id)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "timeout", c.CaseType)
	assert.Equal(t, int64(600), c.Duration)
	assert.True(t, c.Active)
	assert.Greater(t, c.ExpiresAt, int64(0))

	require.NoError(t, db.DeactivateCase(id))
	c, err = db.GetModerationCase(id)
	require.NoError(t, err)
	assert.False(t, c.Active)

	missing, err := db.GetModerationCase(99999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTempPunishmentExpiry(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()

	expired, err := db.AddTempPunishment("g1", "u1", "timeout", now.Add(-time.Minute), 1)
	require.NoError(t, err)
	_, err = db.AddTempPunishment("g1", "u2", "ban", now.Add(time.Hour), 2)
	require.NoError(t, err)

	rows, err := db.GetExpiredPunishments(now)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, expired, rows[0].ID)
	assert.Equal(t, "u1", rows[0].UserID)

	require.NoError(t, db.DeactivateTempPunishment(expired))
	rows, err = db.GetExpiredPunishments(now)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDeactivateUserPunishments(t *testing.T) {
	db := openTestDB(t)
	later := time.Now().Add(time.Hour)

	_, err := db.AddTempPunishment("g1", "u1", "timeout", later, 1)
	require.NoError(t, err)
	_, err = db.AddTempPunishment("g1", "u1", "timeout", later, 2)
	require.NoError(t, err)
	_, err = db.AddTempPunishment("g1", "u1", "ban", later, 3)
	require.NoError(t, err)

	n, err := db.DeactivateUserPunishments("g1", "u1", "timeout")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestUserActivityAccumulates(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.UpdateUserActivity("g1", "u1", 3, 0))
	require.NoError(t, db.UpdateUserActivity("g1", "u1", 2, 10))
	require.NoError(t, db.UpdateUserActivity("g1", "u2", 1, 0))

	a, err := db.GetUserActivity("g1", "u1", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(5), a.MessageCount)
	assert.Equal(t, int64(10), a.VoiceMinutes)

	top, err := db.GetTopActiveUsers("g1", 7, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "u1", top[0].UserID)
}

func TestCleanupOldActivityKeepsRecentRows(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.UpdateUserActivity("g1", "u1", 1, 0))

	deleted, err := db.CleanupOldActivity(90)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)

	a, err := db.GetUserActivity("g1", "u1", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.MessageCount)
}
