package dispatcher

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
	createdTypes []string
	createdErr   error
	config       database.GuildConfig
}

func (f *fakeStore) GetGuildConfig(string) (*database.GuildConfig, error) {
	return &f.config, nil
}

func (f *fakeStore) CreateModerationCase(_, caseType, _, _, _ string, _ int64) (int64, error) {
	if f.createdErr != nil {
		return 0, f.createdErr
	}
	f.createdTypes = append(f.createdTypes, caseType)
	return int64(len(f.createdTypes)), nil
}

type fakeClient struct {
	deleted    []string // message IDs
	deleteErr  error
	timeouts   []string
	timeoutErr error
	dms        []*discordgo.MessageEmbed
	channel    []*discordgo.MessageEmbed
}

func (f *fakeClient) DeleteMessage(_, messageID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, messageID)
	return nil
}
func (f *fakeClient) SendDirectEmbed(_ string, embed *discordgo.MessageEmbed) error {
	f.dms = append(f.dms, embed)
	return nil
}
func (f *fakeClient) SendChannelEmbed(_ string, embed *discordgo.MessageEmbed) error {
	f.channel = append(f.channel, embed)
	return nil
}
func (f *fakeClient) TimeoutMember(_, userID string, _ time.Time, _ string) error {
	if f.timeoutErr != nil {
		return f.timeoutErr
	}
	f.timeouts = append(f.timeouts, userID)
	return nil
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

type fakeEscalator struct {
	calls []string
}

func (f *fakeEscalator) OnViolation(_, userID string) {
	f.calls = append(f.calls, userID)
}

func testMsg() models.Message {
	return models.Message{
		GuildID:   "g1",
		ChannelID: "c1",
		MessageID: "m1",
		UserID:    "u1",
		Content:   "offending content",
		Timestamp: time.Now(),
	}
}

func testViolation() models.Violation {
	return models.Violation{Kind: models.ViolationSpam, Reason: "Sending 5 messages in 10 seconds"}
}

func testSettings() *database.AutomodSettings {
	return &database.AutomodSettings{LockdownTimeoutDuration: 300}
}

func TestDispatchRecordsThenDeletes(t *testing.T) {
	store := &fakeStore{}
	client := &fakeClient{}
	esc := &fakeEscalator{}
	d := New(store, client, esc)
	defer d.Close()

	res, err := d.Dispatch(testMsg(), testViolation(), testSettings(), false)
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.CaseID)
	assert.True(t, res.ContentRemoved)
	assert.False(t, res.SanctionApplied)
	assert.Equal(t, []string{models.AutomodCasePrefix + models.ViolationSpam}, store.createdTypes)
	assert.Equal(t, []string{"m1"}, client.deleted)
	assert.Equal(t, []string{"u1"}, esc.calls)
	assert.Empty(t, client.timeouts)
}

func TestDispatchAbortsWhenRecordFails(t *testing.T) {
	store := &fakeStore{createdErr: errors.New("disk full")}
	client := &fakeClient{}
	esc := &fakeEscalator{}
	d := New(store, client, esc)
	defer d.Close()

	res, err := d.Dispatch(testMsg(), testViolation(), testSettings(), false)
	require.Error(t, err)

	assert.False(t, res.ContentRemoved)
	assert.Empty(t, client.deleted, "no sanction without a record")
	assert.Empty(t, esc.calls)
}

func TestDispatchAbortsWhenDeleteFails(t *testing.T) {
	store := &fakeStore{}
	client := &fakeClient{deleteErr: errors.New("unknown message")}
	esc := &fakeEscalator{}
	d := New(store, client, esc)
	defer d.Close()

	res, err := d.Dispatch(testMsg(), testViolation(), testSettings(), false)
	require.Error(t, err)

	assert.Equal(t, int64(1), res.CaseID, "case is recorded before removal is attempted")
	assert.False(t, res.ContentRemoved)
	assert.Empty(t, esc.calls)
}

func TestDispatchLockdownAppliesTimeout(t *testing.T) {
	store := &fakeStore{}
	client := &fakeClient{}
	esc := &fakeEscalator{}
	d := New(store, client, esc)
	defer d.Close()

	res, err := d.Dispatch(testMsg(), testViolation(), testSettings(), true)
	require.NoError(t, err)

	assert.True(t, res.SanctionApplied)
	require.Len(t, store.createdTypes, 2)
	assert.Equal(t, models.CaseAutoTimeout, store.createdTypes[1])
	assert.Equal(t, []string{"u1"}, client.timeouts)
	assert.Equal(t, []string{"u1"}, esc.calls)
}

func TestDispatchLockdownTimeoutFailureIsNonFatal(t *testing.T) {
	store := &fakeStore{}
	client := &fakeClient{timeoutErr: errors.New("missing permissions")}
	esc := &fakeEscalator{}
	d := New(store, client, esc)
	defer d.Close()

	res, err := d.Dispatch(testMsg(), testViolation(), testSettings(), true)
	require.NoError(t, err)

	assert.True(t, res.ContentRemoved)
	assert.False(t, res.SanctionApplied)
	assert.Equal(t, []string{"u1"}, esc.calls, "escalation still runs")
}

func TestDispatchDeliversNotifications(t *testing.T) {
	store := &fakeStore{}
	store.config.LogChannelID = "log-chan"
	client := &fakeClient{}
	esc := &fakeEscalator{}
	d := New(store, client, esc)

	_, err := d.Dispatch(testMsg(), testViolation(), testSettings(), false)
	require.NoError(t, err)

	// Close drains the notify queue.
	d.Close()

	require.Len(t, client.dms, 1)
	require.Len(t, client.channel, 1)
}
