package automod

import (
	"github.com/mnaljm/Project-bonk/internal/database"
	"github.com/mnaljm/Project-bonk/internal/models"
)

// lockdownSuffix annotates violation kinds and audit reasons produced while
// lockdown thresholds were in effect.
const (
	lockdownKindSuffix   = "_lockdown"
	lockdownReasonSuffix = " (Lockdown mode)"
)

// Engine evaluates one message against every enabled rule. Rules are pure
// over the provided settings except for spam, which records into the
// tracker.
type Engine struct {
	tracker *SpamTracker
}

func NewEngine() *Engine {
	return &Engine{
		tracker: NewSpamTracker(),
	}
}

// Tracker exposes the spam window store, mainly for tests.
func (e *Engine) Tracker() *SpamTracker {
	return e.tracker
}

// Evaluate runs all enabled rules against a message and returns every
// violation found. Under lockdown the stricter threshold set applies and
// reasons carry the lockdown annotation.
func (e *Engine) Evaluate(msg models.Message, settings *database.AutomodSettings, lockdown bool) []models.Violation {
	var violations []models.Violation

	if settings.SpamDetection {
		if v, ok := e.checkSpam(msg, settings, lockdown); ok {
			violations = append(violations, v)
		}
	}
	if settings.ProfanityFilter {
		if v, ok := checkProfanity(msg.Content); ok {
			violations = append(violations, v)
		}
	}
	if settings.CapsFilter {
		if v, ok := checkCaps(msg.Content, settings, lockdown); ok {
			violations = append(violations, v)
		}
	}
	if settings.LinkFilter {
		if v, ok := checkLink(msg.Content); ok {
			violations = append(violations, v)
		}
	}
	if settings.InviteFilter {
		if v, ok := checkInvite(msg.Content); ok {
			violations = append(violations, v)
		}
	}

	if lockdown {
		for i := range violations {
			violations[i].Kind += lockdownKindSuffix
			violations[i].Reason += lockdownReasonSuffix
		}
	}
	return violations
}
