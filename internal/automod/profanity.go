package automod

import (
	"fmt"
	"strings"

	"github.com/mnaljm/Project-bonk/internal/models"
)

// Fixed lexical blocklist; matched case-insensitively as substrings.
var profanityWords = []string{
	"shit", "fuck", "damn", "bitch", "ass", "bastard", "crap",
}

func checkProfanity(content string) (models.Violation, bool) {
	lower := strings.ToLower(content)

	var found []string
	for _, word := range profanityWords {
		if strings.Contains(lower, word) {
			found = append(found, word)
		}
	}
	if len(found) == 0 {
		return models.Violation{}, false
	}

	return models.Violation{
		Kind:   models.ViolationProfane,
		Reason: fmt.Sprintf("Message contains profanity: %s", strings.Join(found, ", ")),
	}, true
}
