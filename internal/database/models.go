package database

// GuildConfig is the per-guild policy configuration. Created lazily on first
// reference, never deleted.
type GuildConfig struct {
	GuildID        string
	LogChannelID   string
	AutomodEnabled bool
	MaxWarnings    int
	CreatedAt      int64
	UpdatedAt      int64
}

// AutomodSettings holds per-rule toggles and thresholds, plus the stricter
// lockdown-mode threshold set. Lockdown thresholds are not validated against
// the normal ones; ordering them is the admin's job.
type AutomodSettings struct {
	GuildID                 string
	SpamDetection           bool
	ProfanityFilter         bool
	LinkFilter              bool
	InviteFilter            bool
	CapsFilter              bool
	CapsThreshold           int
	SpamThreshold           int
	LockdownMode            bool
	LockdownAutoEnable      bool
	LockdownManualOverride  bool
	LockdownCapsThreshold   int
	LockdownSpamThreshold   int
	LockdownTimeoutDuration int
	CreatedAt               int64
	UpdatedAt               int64
}

// ModerationCase is one immutable enforcement decision. Only the active flag
// ever changes, when a sanction is reversed.
type ModerationCase struct {
	ID          int64
	GuildID     string
	CaseType    string
	UserID      string
	ModeratorID string
	Reason      string
	Duration    int64 // seconds, 0 when not applicable
	ExpiresAt   int64 // unix seconds, 0 when not applicable
	Active      bool
	CreatedAt   int64
}

// Warning is a per-user warning entry. Soft-deleted via active=0 to keep the
// audit trail.
type Warning struct {
	ID          int64
	GuildID     string
	UserID      string
	ModeratorID string
	Reason      string
	Active      bool
	CreatedAt   int64
}

// TempPunishment links a case to an expiry. The expiry scheduler flips
// active exactly once.
type TempPunishment struct {
	ID             int64
	GuildID        string
	UserID         string
	PunishmentType string
	ExpiresAt      int64
	CaseID         int64
	Active         bool
	CreatedAt      int64
}

// UserActivity aggregates a user's activity over a queried range.
type UserActivity struct {
	UserID       string
	MessageCount int64
	VoiceMinutes int64
}
