package lockdown

import "github.com/mnaljm/Project-bonk/internal/database"

// Mode is the guild-wide policy mode.
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeLockdown
)

func (m Mode) String() string {
	if m == ModeLockdown {
		return "lockdown"
	}
	return "normal"
}

// Status pairs the mode with the manual-override latch. A latched status
// never transitions automatically.
type Status struct {
	Mode    Mode
	Latched bool
}

// StatusOf derives the tagged state from stored settings.
func StatusOf(s *database.AutomodSettings) Status {
	st := Status{Mode: ModeNormal, Latched: s.LockdownManualOverride}
	if s.LockdownMode {
		st.Mode = ModeLockdown
	}
	return st
}

// Transition is the controller's decision for one check.
type Transition uint8

const (
	TransitionNone Transition = iota
	TransitionEnable
	TransitionDisable
)

// NextTransition computes the automatic transition for a guild. The latch
// and the auto-enable setting suppress all automatic movement.
func NextTransition(st Status, autoEnable, moderatorsAvailable bool) Transition {
	if st.Latched || !autoEnable {
		return TransitionNone
	}
	switch {
	case st.Mode == ModeNormal && !moderatorsAvailable:
		return TransitionEnable
	case st.Mode == ModeLockdown && moderatorsAvailable:
		return TransitionDisable
	}
	return TransitionNone
}
