package lockdown

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mnaljm/Project-bonk/internal/database"
)

func TestNextTransition(t *testing.T) {
	tests := []struct {
		name          string
		status        Status
		autoEnable    bool
		modsAvailable bool
		want          Transition
	}{
		{"normal, no mods, auto on", Status{Mode: ModeNormal}, true, false, TransitionEnable},
		{"normal, mods online", Status{Mode: ModeNormal}, true, true, TransitionNone},
		{"lockdown, mods online", Status{Mode: ModeLockdown}, true, true, TransitionDisable},
		{"lockdown, no mods", Status{Mode: ModeLockdown}, true, false, TransitionNone},
		{"auto disabled suppresses enable", Status{Mode: ModeNormal}, false, false, TransitionNone},
		{"auto disabled suppresses disable", Status{Mode: ModeLockdown}, false, true, TransitionNone},
		{"latch suppresses enable", Status{Mode: ModeNormal, Latched: true}, true, false, TransitionNone},
		{"latch suppresses disable", Status{Mode: ModeLockdown, Latched: true}, true, true, TransitionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextTransition(tt.status, tt.autoEnable, tt.modsAvailable)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusOf(t *testing.T) {
	st := StatusOf(&database.AutomodSettings{LockdownMode: true, LockdownManualOverride: true})
	assert.Equal(t, ModeLockdown, st.Mode)
	assert.True(t, st.Latched)

	st = StatusOf(&database.AutomodSettings{})
	assert.Equal(t, ModeNormal, st.Mode)
	assert.False(t, st.Latched)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "normal", ModeNormal.String())
	assert.Equal(t, "lockdown", ModeLockdown.String())
}
