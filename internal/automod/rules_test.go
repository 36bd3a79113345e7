package automod

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnaljm/Project-bonk/internal/database"
	"github.com/mnaljm/Project-bonk/internal/models"
)

func testSettings() *database.AutomodSettings {
	return &database.AutomodSettings{
		SpamDetection:           true,
		ProfanityFilter:         true,
		LinkFilter:              true,
		InviteFilter:            true,
		CapsFilter:              true,
		CapsThreshold:           70,
		SpamThreshold:           5,
		LockdownCapsThreshold:   50,
		LockdownSpamThreshold:   3,
		LockdownTimeoutDuration: 300,
	}
}

func testMessage(content string) models.Message {
	return models.Message{
		GuildID:   "guild1",
		ChannelID: "chan1",
		MessageID: "msg1",
		UserID:    "user1",
		Content:   content,
		Timestamp: time.Now(),
	}
}

func TestCapsViolation(t *testing.T) {
	engine := NewEngine()
	settings := testSettings()

	violations := engine.Evaluate(testMessage("HELLOWORLDX"), settings, false)
	require.Len(t, violations, 1)
	assert.Equal(t, models.ViolationCaps, violations[0].Kind)
	assert.Equal(t, "Message is 100.0% caps (limit: 70%)", violations[0].Reason)
}

func TestCapsShortMessageNeverFires(t *testing.T) {
	engine := NewEngine()

	// 9 runes of pure caps, below the minimum length.
	violations := engine.Evaluate(testMessage("AAAAAAAAA"), testSettings(), false)
	assert.Empty(t, violations)
}

func TestCapsRatioCountsAllRunes(t *testing.T) {
	engine := NewEngine()

	// 5 upper of 11 runes is 45.5%, below the 70% limit even though every
	// letter in the first word is uppercase.
	violations := engine.Evaluate(testMessage("AAAAA aaaaa"), testSettings(), false)
	assert.Empty(t, violations)
}

func TestCapsLockdownThreshold(t *testing.T) {
	engine := NewEngine()
	settings := testSettings()
	settings.SpamDetection = false

	// 12 upper + 1 space of 20 runes = 60%: clean normally, violation under
	// lockdown's 50% limit.
	content := "HELLOWORLDAB cdefghi"
	violations := engine.Evaluate(testMessage(content), settings, false)
	require.Empty(t, violations)

	violations = engine.Evaluate(testMessage(content), settings, true)
	require.Len(t, violations, 1)
	assert.Equal(t, "excessive_caps_lockdown", violations[0].Kind)
	assert.Equal(t, "Message is 60.0% caps (limit: 50%) (Lockdown mode)", violations[0].Reason)
}

func TestProfanityViolation(t *testing.T) {
	engine := NewEngine()

	violations := engine.Evaluate(testMessage("well shit, that went badly"), testSettings(), false)
	require.Len(t, violations, 1)
	assert.Equal(t, models.ViolationProfane, violations[0].Kind)
	assert.Equal(t, "Message contains profanity: shit", violations[0].Reason)
}

func TestProfanityMatchesSubstringsCaseInsensitive(t *testing.T) {
	_, found := checkProfanity("what a CRAPshoot")
	assert.True(t, found)

	_, found = checkProfanity("perfectly polite message")
	assert.False(t, found)
}

func TestLinkViolation(t *testing.T) {
	engine := NewEngine()

	violations := engine.Evaluate(testMessage("look at https://example.com/page"), testSettings(), false)
	require.Len(t, violations, 1)
	assert.Equal(t, models.ViolationLink, violations[0].Kind)
	assert.Equal(t, "Message contains unauthorized links", violations[0].Reason)
}

func TestInviteViolation(t *testing.T) {
	engine := NewEngine()

	violations := engine.Evaluate(testMessage("join discord.gg/abc123"), testSettings(), false)
	require.Len(t, violations, 1)
	assert.Equal(t, models.ViolationInvite, violations[0].Kind)
	assert.Equal(t, "Message contains Discord invite links", violations[0].Reason)
}

func TestInviteWithSchemeAlsoTripsLinkFilter(t *testing.T) {
	engine := NewEngine()

	violations := engine.Evaluate(testMessage("join https://discord.gg/abc123"), testSettings(), false)
	require.Len(t, violations, 2)
	assert.Equal(t, models.ViolationLink, violations[0].Kind)
	assert.Equal(t, models.ViolationInvite, violations[1].Kind)
}

func TestDisabledRulesSkipped(t *testing.T) {
	engine := NewEngine()
	settings := testSettings()
	settings.LinkFilter = false
	settings.InviteFilter = false
	settings.ProfanityFilter = false
	settings.CapsFilter = false

	violations := engine.Evaluate(testMessage("shit https://example.com DAMN CAPS EVERYWHERE"), settings, false)
	assert.Empty(t, violations)
}

func TestSpamViolationClearsWindow(t *testing.T) {
	engine := NewEngine()
	settings := testSettings()
	now := time.Now()

	var violations []models.Violation
	for n := 0; n < 5; n++ {
		msg := testMessage("hello there friend")
		msg.MessageID = fmt.Sprintf("msg%d", n)
		msg.Timestamp = now.Add(time.Duration(n) * 100 * time.Millisecond)
		violations = engine.Evaluate(msg, settings, false)
		if n < 4 {
			require.Empty(t, violations, "message %d should not violate", n)
		}
	}

	require.Len(t, violations, 1)
	assert.Equal(t, models.ViolationSpam, violations[0].Kind)
	assert.Equal(t, "Sending 5 messages in 10 seconds", violations[0].Reason)

	// The window was cleared on the violation: the next message starts over.
	msg := testMessage("hello again")
	msg.Timestamp = now.Add(time.Second)
	violations = engine.Evaluate(msg, settings, false)
	assert.Empty(t, violations)
}

func TestSpamLockdownThreshold(t *testing.T) {
	engine := NewEngine()
	settings := testSettings()
	now := time.Now()

	var violations []models.Violation
	for n := 0; n < 3; n++ {
		msg := testMessage("hi")
		msg.Timestamp = now.Add(time.Duration(n) * 100 * time.Millisecond)
		violations = engine.Evaluate(msg, settings, true)
	}

	require.Len(t, violations, 1)
	assert.Equal(t, "spam_lockdown", violations[0].Kind)
	assert.Equal(t, "Sending 3 messages in 10 seconds (Lockdown mode)", violations[0].Reason)
}
