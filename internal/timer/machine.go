package timer

import (
	"time"

	"github.com/verte-zerg/tuicube/internal/session"
	"github.com/verte-zerg/tuicube/internal/solve"
)

// DefaultHoldDelay is how long the trigger must be held before timing can start.
const DefaultHoldDelay = 500 * time.Millisecond

// Machine is the timer aggregate: state, pending time and session. It is
// not safe for concurrent use; all events must come from one loop.
type Machine struct {
	clock     Clock
	scheduler Scheduler
	listener  Listener
	holdDelay time.Duration

	state      State
	pending    solve.SolveTime
	linkToLast bool
	pressedAt  time.Time
	scramble   string
	session    *session.Session

	generation uint64
	armed      uint64
}

// New returns a Machine in Idle with an empty session.
func New(clock Clock, scheduler Scheduler, holdDelay time.Duration) *Machine {
	if holdDelay <= 0 {
		holdDelay = DefaultHoldDelay
	}
	return &Machine{
		clock:     clock,
		scheduler: scheduler,
		holdDelay: holdDelay,
		state:     idle(false),
		session:   session.New(),
	}
}

// SetListener registers an observer for recorded solves and penalty edits.
func (m *Machine) SetListener(l Listener) {
	m.listener = l
}

// SetScramble sets the scramble attached to the next finished solve.
func (m *Machine) SetScramble(s string) {
	m.scramble = s
}

// Scramble returns the scramble for the current attempt.
func (m *Machine) Scramble() string {
	return m.scramble
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Pending returns the time being accumulated or the one just finished.
func (m *Machine) Pending() solve.SolveTime {
	return m.pending
}

// Linked reports whether penalty edits also apply to the last solve.
func (m *Machine) Linked() bool {
	return m.linkToLast
}

// Session returns the session owned by the machine.
func (m *Machine) Session() *session.Session {
	return m.session
}

// HoldDelay returns the press-to-ready delay.
func (m *Machine) HoldDelay() time.Duration {
	return m.holdDelay
}

// PressedAt returns when the trigger was last pressed.
func (m *Machine) PressedAt() time.Time {
	return m.pressedAt
}

// OnPress handles the trigger going down.
func (m *Machine) OnPress() {
	switch m.state.Phase {
	case PhaseIdle:
		if m.state.Pressed {
			return
		}
		m.state = idle(true)
		m.pressedAt = m.clock.Now()
		m.generation++
		m.armed = m.generation
		m.scheduler.Schedule(m.holdDelay, m.armed)
	case PhaseTiming:
		m.finish()
	}
}

// OnRelease handles the trigger going up.
func (m *Machine) OnRelease() {
	switch m.state.Phase {
	case PhaseIdle:
		if !m.state.Pressed {
			return
		}
		m.state = idle(false)
		m.disarm()
	case PhaseReady:
		m.state = State{Phase: PhaseTiming, LastTick: m.clock.Now()}
	case PhaseFinished:
		m.state = idle(false)
	}
}

// OnTimeout handles a fired hold timeout. Tokens other than the one
// currently armed are stale and ignored.
func (m *Machine) OnTimeout(token uint64) {
	if token == 0 || token != m.armed {
		return
	}
	m.armed = 0
	if !m.state.Holding() {
		return
	}
	m.pending = solve.New(0, solve.PenaltyNone)
	m.linkToLast = false
	m.state = State{Phase: PhaseReady}
}

// OnTick adds the time since the previous tick while timing.
func (m *Machine) OnTick(now time.Time) {
	if m.state.Phase != PhaseTiming {
		return
	}
	delta := now.Sub(m.state.LastTick)
	if delta <= 0 {
		return
	}
	m.pending.Elapsed += delta
	m.state.LastTick = now
}

// OnPenaltySelected sets the penalty of the pending time and, while the
// finished solve is linked, of the last session entry.
func (m *Machine) OnPenaltySelected(p solve.Penalty) {
	m.pending.Penalty = p
	if !m.linkToLast {
		return
	}
	if !m.session.SetLastPenalty(p) {
		return
	}
	if m.listener != nil {
		index := m.session.Len() - 1
		entry, _ := m.session.Entry(index)
		m.listener.PenaltyChanged(index, entry)
	}
}

func (m *Machine) finish() {
	index := m.session.AddSolve(solve.Solve{
		Time:      m.pending,
		Timestamp: m.clock.Now(),
		Scramble:  m.scramble,
	})
	m.linkToLast = true
	m.state = State{Phase: PhaseFinished}
	if m.listener != nil {
		entry, _ := m.session.Entry(index)
		m.listener.SolveRecorded(index, entry)
	}
}

func (m *Machine) disarm() {
	if m.armed == 0 {
		return
	}
	m.scheduler.Cancel(m.armed)
	m.armed = 0
}
