package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuicube/internal/model"
	"github.com/verte-zerg/tuicube/internal/scramble"
	"github.com/verte-zerg/tuicube/internal/solve"
	"github.com/verte-zerg/tuicube/internal/timer"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type memLog struct {
	sessions  int
	solves    []solve.Solve
	penalties map[int]solve.Penalty
}

func (l *memLog) StartSession(context.Context, time.Time) (string, error) {
	l.sessions++
	return "session", nil
}

func (l *memLog) InsertSolve(_ context.Context, _ string, _ int, sv solve.Solve) error {
	l.solves = append(l.solves, sv)
	return nil
}

func (l *memLog) UpdatePenalty(_ context.Context, _ string, idx int, p solve.Penalty) error {
	if l.penalties == nil {
		l.penalties = map[int]solve.Penalty{}
	}
	l.penalties[idx] = p
	return nil
}

var spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, record bool) (*Model, *fakeClock, *memLog) {
	t.Helper()
	clock := &fakeClock{now: time.Unix(1000, 0)}
	log := &memLog{}
	cfg := model.Config{
		HoldDelay:    500 * time.Millisecond,
		TickInterval: 10 * time.Millisecond,
		ReleaseGap:   120 * time.Millisecond,
		RepeatDelay:  600 * time.Millisecond,
		Theme:        "dark",
		Record:       record,
	}
	m, err := newModel(cfg, log, scramble.NewListSource([]string{"R U", "F2 B"}), clock)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m, clock, log
}

func send(m *Model, msg tea.Msg) {
	m.Update(msg)
}

func releaseSpace(m *Model) {
	send(m, releaseCheckMsg{gen: m.hold.gen})
}

// solveOnce holds space until ready, starts, ticks for d and stops. Every
// earlier press must have armed a solve for the token to line up.
func solveOnce(m *Model, clock *fakeClock, d time.Duration) {
	send(m, spaceKey)
	send(m, holdTimeoutMsg{token: uint64(m.machine.Session().Len()) + 1})
	releaseSpace(m)
	clock.now = clock.now.Add(d)
	send(m, tickMsg{gen: m.tickGen, at: clock.now})
	send(m, spaceKey)
}

func TestHoldReleaseRecordsSolve(t *testing.T) {
	m, clock, log := newTestModel(t, true)

	send(m, spaceKey)
	if !m.machine.State().Holding() {
		t.Fatalf("expected holding, got %+v", m.machine.State())
	}
	send(m, holdTimeoutMsg{token: 1})
	if got := m.machine.State().Phase; got != timer.PhaseReady {
		t.Fatalf("expected ready, got %s", got)
	}
	releaseSpace(m)
	if got := m.machine.State().Phase; got != timer.PhaseTiming {
		t.Fatalf("expected timing, got %s", got)
	}

	clock.now = clock.now.Add(time.Second)
	send(m, tickMsg{gen: m.tickGen, at: clock.now})
	send(m, tickMsg{gen: m.tickGen - 1, at: clock.now.Add(time.Hour)})
	clock.now = clock.now.Add(1500 * time.Millisecond)
	send(m, tickMsg{gen: m.tickGen, at: clock.now})
	if got := m.machine.Pending().Elapsed; got != 2500*time.Millisecond {
		t.Fatalf("expected 2.5s elapsed, got %v", got)
	}

	send(m, spaceKey)
	if got := m.machine.State().Phase; got != timer.PhaseFinished {
		t.Fatalf("expected finished, got %s", got)
	}
	if m.machine.Session().Len() != 1 {
		t.Fatalf("expected one solve")
	}
	if len(log.solves) != 1 || log.solves[0].Scramble != "R U" {
		t.Fatalf("unexpected stored solves: %+v", log.solves)
	}
	if got := m.machine.Scramble(); got != "F2 B" {
		t.Fatalf("expected next scramble, got %q", got)
	}

	send(m, runeKey("2"))
	if log.penalties[0] != solve.PenaltyPlus2 {
		t.Fatalf("expected +2 to be stored, got %v", log.penalties)
	}
	last, _ := m.machine.Session().LastSolve()
	if got := last.Time.String(); got != "4.50+" {
		t.Fatalf("expected 4.50+, got %s", got)
	}

	releaseSpace(m)
	if state := m.machine.State(); state.Phase != timer.PhaseIdle || state.Pressed {
		t.Fatalf("expected idle after release, got %+v", state)
	}
}

// holdSpace presses space and keeps it down for d while the terminal
// autorepeats it after repeatDelay, every repeatEvery. Release checks fire
// when due and the key is lifted at the end. It returns the phase seen
// after every event.
func holdSpace(m *Model, clock *fakeClock, d, repeatDelay, repeatEvery time.Duration) []timer.Phase {
	var phases []timer.Phase
	step := func(msg tea.Msg) {
		send(m, msg)
		phases = append(phases, m.machine.State().Phase)
	}
	start := clock.now
	step(spaceKey)
	checkGen, checkAt, checkDone := m.hold.gen, start.Add(m.hold.wait), false
	for at := start.Add(repeatDelay); !at.After(start.Add(d)); at = at.Add(repeatEvery) {
		if !checkDone && checkAt.Before(at) {
			clock.now = checkAt
			step(releaseCheckMsg{gen: checkGen})
			checkDone = true
		}
		clock.now = at
		step(spaceKey)
		checkGen, checkAt, checkDone = m.hold.gen, at.Add(m.hold.wait), false
	}
	clock.now = checkAt
	step(releaseCheckMsg{gen: checkGen})
	return phases
}

func TestHoldingStopKeyStaysFinished(t *testing.T) {
	m, clock, log := newTestModel(t, true)

	send(m, spaceKey)
	send(m, holdTimeoutMsg{token: 1})
	releaseSpace(m)
	clock.now = clock.now.Add(2 * time.Second)
	send(m, tickMsg{gen: m.tickGen, at: clock.now})

	phases := holdSpace(m, clock, 1500*time.Millisecond, 500*time.Millisecond, 33*time.Millisecond)
	for i, p := range phases[:len(phases)-1] {
		if p != timer.PhaseFinished {
			t.Fatalf("event %d: expected finished while the stop key is held, got %s", i, p)
		}
	}
	if state := m.machine.State(); state.Phase != timer.PhaseIdle || state.Pressed {
		t.Fatalf("expected idle after lifting the key, got %+v", state)
	}
	if m.machine.Session().Len() != 1 || len(log.solves) != 1 {
		t.Fatalf("expected exactly one solve, got %d in session and %d stored", m.machine.Session().Len(), len(log.solves))
	}

	solveOnce(m, clock, time.Second)
	if m.machine.Session().Len() != 2 {
		t.Fatalf("expected the next hold to arm a new solve")
	}
}

func TestTapDoesNotArm(t *testing.T) {
	m, _, _ := newTestModel(t, true)

	send(m, spaceKey)
	releaseSpace(m)
	send(m, holdTimeoutMsg{token: 1})
	if state := m.machine.State(); state.Phase != timer.PhaseIdle || state.Pressed {
		t.Fatalf("expected idle, got %+v", state)
	}
}

func TestAutorepeatKeepsKeyHeld(t *testing.T) {
	m, _, _ := newTestModel(t, true)

	send(m, spaceKey)
	first := m.hold.gen
	send(m, spaceKey)
	send(m, releaseCheckMsg{gen: first})
	if !m.machine.State().Holding() {
		t.Fatalf("stale release check should not release the key")
	}
	send(m, holdTimeoutMsg{token: 1})
	if got := m.machine.State().Phase; got != timer.PhaseReady {
		t.Fatalf("expected ready, got %s", got)
	}
}

func TestQuitIgnoredWhileTiming(t *testing.T) {
	m, _, _ := newTestModel(t, true)

	send(m, spaceKey)
	send(m, holdTimeoutMsg{token: 1})
	releaseSpace(m)
	if _, cmd := m.Update(runeKey("q")); cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatalf("q should not quit while timing")
		}
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); cmd == nil {
		t.Fatalf("ctrl+c should quit")
	} else if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
}

func TestRecordingDisabled(t *testing.T) {
	m, clock, log := newTestModel(t, false)

	solveOnce(m, clock, 3*time.Second)
	if m.machine.Session().Len() != 1 {
		t.Fatalf("expected one solve in session")
	}
	if log.sessions != 0 || len(log.solves) != 0 {
		t.Fatalf("expected nothing stored, got %+v", log)
	}
}

func TestThemeCycle(t *testing.T) {
	m, _, _ := newTestModel(t, true)

	send(m, runeKey("t"))
	if themes[m.theme].Name != "light" {
		t.Fatalf("expected light theme, got %s", themes[m.theme].Name)
	}
	send(m, runeKey("t"))
	if themes[m.theme].Name != "dark" {
		t.Fatalf("expected dark theme, got %s", themes[m.theme].Name)
	}
}

func TestUnknownTheme(t *testing.T) {
	_, err := newModel(model.Config{Theme: "neon"}, nil, nil, &fakeClock{})
	if err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}

func TestViewShowsStats(t *testing.T) {
	m, clock, _ := newTestModel(t, true)
	send(m, tea.WindowSizeMsg{Width: 100, Height: 30})

	solveOnce(m, clock, 2500*time.Millisecond)
	releaseSpace(m)
	out := m.View()
	for _, want := range []string{"F2 B", "2.50", "Ao5: --", "Ao12: --", "Solves 1", "Best 2.50", "Mean 2.50"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "ao12") {
		t.Fatalf("expected sidebar header in view")
	}

	send(m, spaceKey)
	send(m, holdTimeoutMsg{token: 2})
	if m.showSidebar() {
		t.Fatalf("sidebar should hide while ready")
	}
}

func TestPenaltySelectorOnlyWhenLinked(t *testing.T) {
	m, clock, _ := newTestModel(t, true)
	if strings.Contains(m.renderMain(80), "DNF") {
		t.Fatalf("penalty selector should be hidden before the first solve")
	}
	solveOnce(m, clock, time.Second)
	if !strings.Contains(m.renderMain(80), "DNF") {
		t.Fatalf("expected penalty selector after a solve")
	}
}

func TestPenaltyKeysFollowSelectorOrder(t *testing.T) {
	for i, want := range solve.Penalties {
		got, ok := penaltyForKey(penaltyKey(i))
		if !ok || got != want {
			t.Fatalf("key %s: expected %v, got %v", penaltyKey(i), want, got)
		}
	}
	for _, key := range []string{"0", "4", "+1", "12"} {
		if _, ok := penaltyForKey(key); ok {
			t.Fatalf("key %q should not select a penalty", key)
		}
	}
}

func TestHelpShowsHoldDelay(t *testing.T) {
	m, _, _ := newTestModel(t, true)
	send(m, runeKey("?"))
	out := m.renderHelp()
	for _, want := range []string{"0.5s to get ready", "1 / 2 / 3", "OK / +2 / DNF"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in help:\n%s", want, out)
		}
	}
}
