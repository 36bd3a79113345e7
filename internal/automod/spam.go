package automod

import (
	"fmt"

	"github.com/mnaljm/Project-bonk/internal/database"
	"github.com/mnaljm/Project-bonk/internal/models"
)

func (e *Engine) checkSpam(msg models.Message, settings *database.AutomodSettings, lockdown bool) (models.Violation, bool) {
	threshold := settings.SpamThreshold
	if lockdown {
		threshold = settings.LockdownSpamThreshold
	}

	count, violated := e.tracker.Record(msg.GuildID, msg.UserID, msg.Timestamp, threshold)
	if !violated {
		return models.Violation{}, false
	}

	return models.Violation{
		Kind:   models.ViolationSpam,
		Reason: fmt.Sprintf("Sending %d messages in 10 seconds", count),
	}, true
}
