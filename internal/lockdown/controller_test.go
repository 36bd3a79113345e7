package lockdown

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
	settings *database.AutomodSettings
	config   *database.GuildConfig

	enabled       []bool // manual flag per EnableLockdown call
	disabled      []bool
	overridesClrd int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		settings: &database.AutomodSettings{LockdownAutoEnable: true},
		config:   &database.GuildConfig{},
	}
}

func (f *fakeStore) GetAutomodSettings(string) (*database.AutomodSettings, error) {
	return f.settings, nil
}

func (f *fakeStore) GetGuildConfig(string) (*database.GuildConfig, error) {
	return f.config, nil
}

func (f *fakeStore) EnableLockdown(_ string, manual bool) error {
	f.enabled = append(f.enabled, manual)
	f.settings.LockdownMode = true
	if manual {
		f.settings.LockdownManualOverride = true
	}
	return nil
}

func (f *fakeStore) DisableLockdown(_ string, manual bool) error {
	f.disabled = append(f.disabled, manual)
	f.settings.LockdownMode = false
	if manual {
		f.settings.LockdownManualOverride = true
	}
	return nil
}

func (f *fakeStore) ClearLockdownOverride(string) error {
	f.overridesClrd++
	f.settings.LockdownManualOverride = false
	return nil
}

type fakePlatform struct {
	mods    []models.ModeratorInfo
	modsErr error
	embeds  []*discordgo.MessageEmbed
}

func (f *fakePlatform) ListModerators(string) ([]models.ModeratorInfo, error) {
	return f.mods, f.modsErr
}

func (f *fakePlatform) GuildIDs() []string { return []string{"g1"} }

func (f *fakePlatform) SendChannelEmbed(_ string, embed *discordgo.MessageEmbed) error {
	f.embeds = append(f.embeds, embed)
	return nil
}

func newTestController(store *fakeStore, client *fakePlatform) *Controller {
	return NewController(store, client, DefaultSignals(NewActivityTracker()), time.Minute, 0)
}

func auditReason(t *testing.T, embed *discordgo.MessageEmbed) string {
	t.Helper()
	require.NotEmpty(t, embed.Fields)
	require.Equal(t, "Reason", embed.Fields[0].Name)
	return embed.Fields[0].Value
}

func TestCheckGuildEnablesWhenNoModerators(t *testing.T) {
	store := newFakeStore()
	store.config.LogChannelID = "log-chan"
	client := &fakePlatform{mods: []models.ModeratorInfo{{UserID: "mod1", Status: "offline"}}}
	c := newTestController(store, client)

	require.NoError(t, c.CheckGuild("g1"))
	require.Len(t, store.enabled, 1)
	assert.False(t, store.enabled[0], "automatic enable must not set the latch")

	require.Len(t, client.embeds, 1)
	assert.Equal(t, "Auto-enabled: No moderators online", auditReason(t, client.embeds[0]))
}

func TestCheckGuildDisablesWhenModeratorsReturn(t *testing.T) {
	store := newFakeStore()
	store.settings.LockdownMode = true
	store.config.LogChannelID = "log-chan"
	client := &fakePlatform{mods: []models.ModeratorInfo{{UserID: "mod1", Status: "online"}}}
	c := newTestController(store, client)

	require.NoError(t, c.CheckGuild("g1"))
	require.Len(t, store.disabled, 1)
	assert.False(t, store.disabled[0])

	require.Len(t, client.embeds, 1)
	assert.Equal(t, "Auto-disabled: Moderators are online", auditReason(t, client.embeds[0]))
}

func TestCheckGuildHonorsManualOverride(t *testing.T) {
	store := newFakeStore()
	store.settings.LockdownManualOverride = true
	client := &fakePlatform{}
	c := newTestController(store, client)

	require.NoError(t, c.CheckGuild("g1"))
	assert.Empty(t, store.enabled)
	assert.Empty(t, store.disabled)
}

func TestCheckGuildHonorsAutoEnableOff(t *testing.T) {
	store := newFakeStore()
	store.settings.LockdownAutoEnable = false
	client := &fakePlatform{}
	c := newTestController(store, client)

	require.NoError(t, c.CheckGuild("g1"))
	assert.Empty(t, store.enabled)
}

func TestCheckGuildDoesNothingOnListError(t *testing.T) {
	store := newFakeStore()
	client := &fakePlatform{modsErr: errors.New("state not ready")}
	c := newTestController(store, client)

	err := c.CheckGuild("g1")
	require.Error(t, err)
	assert.Empty(t, store.enabled)
	assert.Empty(t, store.disabled)
}

func TestAvailableModeratorsSignals(t *testing.T) {
	store := newFakeStore()
	tracker := NewActivityTracker()
	client := &fakePlatform{mods: []models.ModeratorInfo{
		{UserID: "online", Status: "online"},
		{UserID: "mobile", Status: "offline", MobileStatus: "idle"},
		{UserID: "recent", Status: "offline"},
		{UserID: "gone", Status: "offline"},
	}}
	tracker.Touch("g1", "recent")

	c := NewController(store, client, DefaultSignals(tracker), time.Minute, 0)

	available, err := c.AvailableModerators("g1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"online", "mobile", "recent"}, available)
}

func TestManualToggleSetsLatchAndAudit(t *testing.T) {
	store := newFakeStore()
	store.config.LogChannelID = "log-chan"
	client := &fakePlatform{}
	c := newTestController(store, client)

	require.NoError(t, c.ManualEnable("g1", "actor1", "raid in progress"))
	require.Len(t, store.enabled, 1)
	assert.True(t, store.enabled[0])
	assert.True(t, store.settings.LockdownManualOverride)
	require.Len(t, client.embeds, 1)

	require.NoError(t, c.ManualDisable("g1", "actor1", "all clear"))
	require.Len(t, store.disabled, 1)
	assert.True(t, store.disabled[0])

	require.NoError(t, c.ClearOverride("g1"))
	assert.Equal(t, 1, store.overridesClrd)
	assert.False(t, store.settings.LockdownManualOverride)
}

func TestActivityTracker(t *testing.T) {
	tracker := NewActivityTracker()

	assert.False(t, tracker.ActiveSince("g", "u", time.Now().Add(-time.Hour)))

	tracker.Touch("g", "u")
	assert.True(t, tracker.ActiveSince("g", "u", time.Now().Add(-time.Minute)))
	assert.False(t, tracker.ActiveSince("g", "other", time.Now().Add(-time.Minute)))

	tracker.Prune(0)
	assert.False(t, tracker.ActiveSince("g", "u", time.Now().Add(-time.Hour)))
}
