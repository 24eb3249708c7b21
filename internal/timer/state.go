// Package timer drives solve timing from press, release and tick events.
package timer

import "time"

// Phase names the states of the timing machine.
type Phase int

const (
	// PhaseIdle waits for the trigger to be held.
	PhaseIdle Phase = iota
	// PhaseReady is armed; releasing the trigger starts timing.
	PhaseReady
	// PhaseTiming accumulates elapsed time on every tick.
	PhaseTiming
	// PhaseFinished holds the finished solve until the trigger is released.
	PhaseFinished
)

// String returns a lower-case phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseReady:
		return "ready"
	case PhaseTiming:
		return "timing"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// State is the current machine state. Pressed is meaningful in PhaseIdle
// and LastTick in PhaseTiming.
type State struct {
	Phase    Phase
	Pressed  bool
	LastTick time.Time
}

// Holding reports whether the trigger is held in Idle.
func (s State) Holding() bool {
	return s.Phase == PhaseIdle && s.Pressed
}

// Running reports whether the display should be in solve mode.
func (s State) Running() bool {
	return s.Phase == PhaseReady || s.Phase == PhaseTiming
}

func idle(pressed bool) State {
	return State{Phase: PhaseIdle, Pressed: pressed}
}
