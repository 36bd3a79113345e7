package automod

import (
	"fmt"
	"unicode"

	"github.com/mnaljm/Project-bonk/internal/database"
	"github.com/mnaljm/Project-bonk/internal/models"
)

// Messages shorter than this never trip the caps rule.
const capsMinLength = 10

func checkCaps(content string, settings *database.AutomodSettings, lockdown bool) (models.Violation, bool) {
	runes := []rune(content)
	if len(runes) < capsMinLength {
		return models.Violation{}, false
	}

	threshold := settings.CapsThreshold
	if lockdown {
		threshold = settings.LockdownCapsThreshold
	}

	upper := 0
	for _, r := range runes {
		if unicode.IsUpper(r) {
			upper++
		}
	}

	// Ratio over total length, not just letters.
	percentage := float64(upper) / float64(len(runes)) * 100
	if percentage < float64(threshold) {
		return models.Violation{}, false
	}

	return models.Violation{
		Kind:   models.ViolationCaps,
		Reason: fmt.Sprintf("Message is %.1f%% caps (limit: %d%%)", percentage, threshold),
	}, true
}
