package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	expirable "github.com/hashicorp/golang-lru/v2/expirable"
	_ "modernc.org/sqlite"
)

type Database struct {
	db *sql.DB

	// Read cache for automod settings; they sit on the hot message path and
	// change rarely. Invalidated on every settings write.
	settingsCache *expirable.LRU[string, *AutomodSettings]
}

var globalDB *Database

const settingsCacheTTL = 30 * time.Second

// Initialize creates and initializes the SQLite database
func Initialize(dbPath string) error {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return fmt.Errorf("failed to set synchronous mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	globalDB = &Database{
		db:            db,
		settingsCache: expirable.NewLRU[string, *AutomodSettings](1024, nil, settingsCacheTTL),
	}

	if err := globalDB.createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// GetDB returns the global database instance
func GetDB() *Database {
	return globalDB
}

// Close closes the database connection
func Close() error {
	if globalDB != nil && globalDB.db != nil {
		return globalDB.db.Close()
	}
	return nil
}

// createTables creates all necessary database tables
func (d *Database) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS guild_config (
		guild_id TEXT PRIMARY KEY,
		log_channel_id TEXT DEFAULT '',
		auto_mod_enabled INTEGER DEFAULT 0,
		max_warnings INTEGER DEFAULT 3,
		created_at INTEGER DEFAULT 0,
		updated_at INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS automod_settings (
		guild_id TEXT PRIMARY KEY,
		spam_detection INTEGER DEFAULT 1,
		profanity_filter INTEGER DEFAULT 1,
		link_filter INTEGER DEFAULT 0,
		invite_filter INTEGER DEFAULT 1,
		caps_filter INTEGER DEFAULT 1,
		caps_threshold INTEGER DEFAULT 70,
		spam_threshold INTEGER DEFAULT 5,
		lockdown_mode INTEGER DEFAULT 0,
		lockdown_auto_enable INTEGER DEFAULT 1,
		lockdown_manual_override INTEGER DEFAULT 0,
		lockdown_caps_threshold INTEGER DEFAULT 50,
		lockdown_spam_threshold INTEGER DEFAULT 3,
		lockdown_timeout_duration INTEGER DEFAULT 300,
		created_at INTEGER DEFAULT 0,
		updated_at INTEGER DEFAULT 0,
		FOREIGN KEY (guild_id) REFERENCES guild_config(guild_id)
	);

	CREATE TABLE IF NOT EXISTS moderation_cases (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guild_id TEXT NOT NULL,
		case_type TEXT NOT NULL,
		user_id TEXT NOT NULL,
		moderator_id TEXT NOT NULL,
		reason TEXT DEFAULT '',
		duration INTEGER DEFAULT 0,
		expires_at INTEGER DEFAULT 0,
		active INTEGER DEFAULT 1,
		created_at INTEGER NOT NULL,
		FOREIGN KEY (guild_id) REFERENCES guild_config(guild_id)
	);

	CREATE INDEX IF NOT EXISTS idx_moderation_cases_guild_user
		ON moderation_cases(guild_id, user_id);
	CREATE INDEX IF NOT EXISTS idx_moderation_cases_created
		ON moderation_cases(created_at);

	CREATE TABLE IF NOT EXISTS warnings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		moderator_id TEXT NOT NULL,
		reason TEXT NOT NULL,
		active INTEGER DEFAULT 1,
		created_at INTEGER NOT NULL,
		FOREIGN KEY (guild_id) REFERENCES guild_config(guild_id)
	);

	CREATE INDEX IF NOT EXISTS idx_warnings_guild_user
		ON warnings(guild_id, user_id);

	CREATE TABLE IF NOT EXISTS temp_punishments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		punishment_type TEXT NOT NULL,
		expires_at INTEGER NOT NULL,
		case_id INTEGER DEFAULT 0,
		active INTEGER DEFAULT 1,
		created_at INTEGER NOT NULL,
		FOREIGN KEY (guild_id) REFERENCES guild_config(guild_id)
	);

	CREATE INDEX IF NOT EXISTS idx_temp_punishments_expires
		ON temp_punishments(expires_at, active);

	CREATE TABLE IF NOT EXISTS user_activity (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		message_count INTEGER DEFAULT 0,
		voice_minutes INTEGER DEFAULT 0,
		created_at INTEGER DEFAULT 0,
		updated_at INTEGER DEFAULT 0,
		UNIQUE(guild_id, user_id, date),
		FOREIGN KEY (guild_id) REFERENCES guild_config(guild_id)
	);

	CREATE INDEX IF NOT EXISTS idx_user_activity_guild_user_date
		ON user_activity(guild_id, user_id, date);
	`

	_, err := d.db.Exec(schema)
	return err
}
