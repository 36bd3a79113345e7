package models

import "time"

// Message is the engine's view of an inbound chat message. Gateway payloads
// are converted to this form before they reach the rule evaluators so the
// pipeline never depends on the transport.
type Message struct {
	GuildID     string
	ChannelID   string
	MessageID   string
	UserID      string
	Content     string
	FromBot     bool
	HasModPerms bool
	Timestamp   time.Time
}

// Violation is the output of a rule evaluator: which rule matched and a
// human-readable reason that goes into DMs and the audit channel.
type Violation struct {
	Kind   string
	Reason string
}

// Rule kind identifiers. Lockdown variants carry the "_lockdown" suffix so
// the audit trail records which threshold set was in effect.
const (
	ViolationSpam    = "spam"
	ViolationProfane = "profanity"
	ViolationCaps    = "excessive_caps"
	ViolationLink    = "unauthorized_link"
	ViolationInvite  = "discord_invite"
)

// AutomodCasePrefix prefixes the case type of every automated enforcement
// record. The escalation tracker counts cases carrying this prefix.
const AutomodCasePrefix = "auto_mod_"

// Case types written by the engine itself. CaseAutoTimeout marks a single
// automatic sanction (the per-violation lockdown timeout, the warning-limit
// timeout); CaseEscalationTimeout marks a repeat-offender escalation and is
// the only kind the escalation tracker treats as "already escalated".
const (
	CaseAutoTimeout       = "auto_timeout"
	CaseEscalationTimeout = "auto_timeout_escalation"
	CaseWarn              = "warn"
	CaseTimeout           = "timeout"
	CaseUntimeout         = "untimeout"
	CaseBan               = "ban"
	CaseKick              = "kick"
	CaseClearWarns        = "clear_warnings"
)

// Punishment kinds for temporary sanctions.
const (
	PunishmentTimeout = "timeout"
	PunishmentBan     = "ban"
)

// EnforcementResult reports how far a dispatch got. Side effects are not
// transactional; partial success is normal and logged.
type EnforcementResult struct {
	CaseID          int64
	ContentRemoved  bool
	SanctionApplied bool
}

// ModeratorInfo is a presence snapshot for one member holding moderation
// permissions, fed to the lockdown availability signals.
type ModeratorInfo struct {
	UserID        string
	Status        string
	DesktopStatus string
	MobileStatus  string
	WebStatus     string
}
