package escalation

import (
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnaljm/Project-bonk/internal/database"
	"github.com/mnaljm/Project-bonk/internal/models"
)

type fakeStore struct {
	cases    []*database.ModerationCase
	casesErr error

	createdCases []string // case types in creation order
	createdErr   error
	punishments  []string // punishment types
	config       database.GuildConfig
}

func (f *fakeStore) GetUserCasesSince(string, string, time.Time) ([]*database.ModerationCase, error) {
	return f.cases, f.casesErr
}

func (f *fakeStore) CreateModerationCase(_, caseType, _, _, _ string, _ int64) (int64, error) {
	if f.createdErr != nil {
		return 0, f.createdErr
	}
	f.createdCases = append(f.createdCases, caseType)
	return int64(len(f.createdCases)), nil
}

func (f *fakeStore) AddTempPunishment(_, _, punishmentType string, _ time.Time, _ int64) (int64, error) {
	f.punishments = append(f.punishments, punishmentType)
	return int64(len(f.punishments)), nil
}

func (f *fakeStore) GetGuildConfig(string) (*database.GuildConfig, error) {
	return &f.config, nil
}

type fakeClient struct {
	timeouts   []string // user IDs
	timeoutErr error
	embeds     []*discordgo.MessageEmbed
}

func (f *fakeClient) DeleteMessage(string, string) error { return nil }
func (f *fakeClient) SendDirectEmbed(string, *discordgo.MessageEmbed) error {
	return nil
}
func (f *fakeClient) SendChannelEmbed(_ string, embed *discordgo.MessageEmbed) error {
	f.embeds = append(f.embeds, embed)
	return nil
}
func (f *fakeClient) TimeoutMember(_, userID string, _ time.Time, _ string) error {
	f.timeouts = append(f.timeouts, userID)
	return f.timeoutErr
}
func (f *fakeClient) RemoveTimeout(string, string) error { return nil }
func (f *fakeClient) BanMember(string, string, string) error {
	return nil
}
func (f *fakeClient) UnbanMember(string, string) error      { return nil }
func (f *fakeClient) KickMember(string, string, string) error {
	return nil
}
func (f *fakeClient) ListModerators(string) ([]models.ModeratorInfo, error) {
	return nil, nil
}
func (f *fakeClient) GuildIDs() []string { return nil }
func (f *fakeClient) BotUserID() string  { return "bot" }

func automodCase(kind string) *database.ModerationCase {
	return &database.ModerationCase{CaseType: models.AutomodCasePrefix + kind}
}

func TestEscalationAtThreshold(t *testing.T) {
	store := &fakeStore{cases: []*database.ModerationCase{
		automodCase(models.ViolationSpam),
		automodCase(models.ViolationCaps),
		automodCase(models.ViolationSpam),
	}}
	client := &fakeClient{}
	tracker := NewTracker(store, client)

	tracker.OnViolation("g1", "u1")

	require.Equal(t, []string{models.CaseEscalationTimeout}, store.createdCases)
	require.Equal(t, []string{models.PunishmentTimeout}, store.punishments)
	require.Equal(t, []string{"u1"}, client.timeouts)
}

func TestEscalationBelowThreshold(t *testing.T) {
	store := &fakeStore{cases: []*database.ModerationCase{
		automodCase(models.ViolationSpam),
		automodCase(models.ViolationSpam),
	}}
	client := &fakeClient{}
	tracker := NewTracker(store, client)

	tracker.OnViolation("g1", "u1")

	assert.Empty(t, store.createdCases)
	assert.Empty(t, client.timeouts)
}

func TestEscalationDoesNotRetriggerPastEscalation(t *testing.T) {
	// One new violation since the last escalation; the three older
	// violations already escalated and must not count again.
	store := &fakeStore{cases: []*database.ModerationCase{
		automodCase(models.ViolationLink),
		{CaseType: models.CaseEscalationTimeout},
		automodCase(models.ViolationSpam),
		automodCase(models.ViolationCaps),
		automodCase(models.ViolationSpam),
	}}
	client := &fakeClient{}
	tracker := NewTracker(store, client)

	tracker.OnViolation("g1", "u1")

	assert.Empty(t, store.createdCases)
	assert.Empty(t, client.timeouts)
}

func TestEscalationCountsThroughLockdownTimeouts(t *testing.T) {
	// Under lockdown every violation pairs with an auto_timeout case from
	// the per-violation sanction. Those cases must not end the scan, or
	// repeat offenders could never escalate while lockdown is active.
	store := &fakeStore{cases: []*database.ModerationCase{
		{CaseType: models.CaseAutoTimeout},
		automodCase(models.ViolationSpam + "_lockdown"),
		{CaseType: models.CaseAutoTimeout},
		automodCase(models.ViolationSpam + "_lockdown"),
		{CaseType: models.CaseAutoTimeout},
		automodCase(models.ViolationSpam + "_lockdown"),
	}}
	client := &fakeClient{}
	tracker := NewTracker(store, client)

	tracker.OnViolation("g1", "u1")

	require.Equal(t, []string{models.CaseEscalationTimeout}, store.createdCases)
	require.Equal(t, []string{"u1"}, client.timeouts)
}

func TestEscalationIgnoresManualCases(t *testing.T) {
	store := &fakeStore{cases: []*database.ModerationCase{
		automodCase(models.ViolationSpam),
		{CaseType: models.CaseWarn},
		{CaseType: models.CaseKick},
		automodCase(models.ViolationSpam),
	}}
	client := &fakeClient{}
	tracker := NewTracker(store, client)

	tracker.OnViolation("g1", "u1")

	assert.Empty(t, store.createdCases)
}

func TestEscalationNoSanctionWithoutRecord(t *testing.T) {
	store := &fakeStore{
		cases: []*database.ModerationCase{
			automodCase(models.ViolationSpam),
			automodCase(models.ViolationSpam),
			automodCase(models.ViolationSpam),
		},
		createdErr: errors.New("disk full"),
	}
	client := &fakeClient{}
	tracker := NewTracker(store, client)

	tracker.OnViolation("g1", "u1")

	assert.Empty(t, store.punishments)
	assert.Empty(t, client.timeouts)
}

func TestEscalationPlatformFailureStillRecorded(t *testing.T) {
	store := &fakeStore{cases: []*database.ModerationCase{
		automodCase(models.ViolationSpam),
		automodCase(models.ViolationSpam),
		automodCase(models.ViolationSpam),
	}}
	client := &fakeClient{timeoutErr: errors.New("missing permissions")}
	tracker := NewTracker(store, client)

	tracker.OnViolation("g1", "u1")

	assert.Equal(t, []string{models.CaseEscalationTimeout}, store.createdCases)
	assert.Equal(t, []string{models.PunishmentTimeout}, store.punishments)
}

func TestEscalationReadFailureDegrades(t *testing.T) {
	store := &fakeStore{casesErr: errors.New("db locked")}
	client := &fakeClient{}
	tracker := NewTracker(store, client)

	tracker.OnViolation("g1", "u1")

	assert.Empty(t, store.createdCases)
}

func TestEscalationNotifiesLogChannel(t *testing.T) {
	store := &fakeStore{cases: []*database.ModerationCase{
		automodCase(models.ViolationSpam),
		automodCase(models.ViolationSpam),
		automodCase(models.ViolationSpam),
	}}
	store.config.LogChannelID = "log-chan"
	client := &fakeClient{}
	tracker := NewTracker(store, client)

	tracker.OnViolation("g1", "u1")

	require.Len(t, client.embeds, 1)
}
