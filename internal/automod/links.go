package automod

import (
	"regexp"

	"github.com/mnaljm/Project-bonk/internal/models"
)

var (
	linkPattern = regexp.MustCompile(
		`(?i)http[s]?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\\(\\),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`)
	invitePattern = regexp.MustCompile(
		`(?i)(?:https?://)?(?:www\.)?(?:discord\.(?:gg|io|me|li)|discordapp\.com/invite)/[a-zA-Z0-9]+`)
)

func checkLink(content string) (models.Violation, bool) {
	if !linkPattern.MatchString(content) {
		return models.Violation{}, false
	}
	return models.Violation{
		Kind:   models.ViolationLink,
		Reason: "Message contains unauthorized links",
	}, true
}

func checkInvite(content string) (models.Violation, bool) {
	if !invitePattern.MatchString(content) {
		return models.Violation{}, false
	}
	return models.Violation{
		Kind:   models.ViolationInvite,
		Reason: "Message contains Discord invite links",
	}, true
}
