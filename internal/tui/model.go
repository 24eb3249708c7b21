// Package tui provides the Bubble Tea timer interface.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tuicube/internal/logging"
	"github.com/verte-zerg/tuicube/internal/model"
	"github.com/verte-zerg/tuicube/internal/scramble"
	"github.com/verte-zerg/tuicube/internal/timer"
)

// DefaultTickInterval is how often the running time is advanced.
const DefaultTickInterval = 10 * time.Millisecond

// Model implements the Bubble Tea timer UI.
type Model struct {
	config    model.Config
	machine   *timer.Machine
	scheduler *teaScheduler
	hold      holdDetector
	scrambles scramble.Source
	recorder  *recorder

	theme  int
	styles styles

	tickInterval time.Duration
	tickGen      uint64

	width    int
	height   int
	showHelp bool
}

// NewModel constructs a timer TUI model. A nil log disables recording.
func NewModel(cfg model.Config, log SolveLog, scrambles scramble.Source) (*Model, error) {
	return newModel(cfg, log, scrambles, timer.SystemClock{})
}

func newModel(cfg model.Config, log SolveLog, scrambles scramble.Source, clock timer.Clock) (*Model, error) {
	theme, err := ParseTheme(cfg.Theme)
	if err != nil {
		return nil, err
	}
	tick := cfg.TickInterval
	if tick <= 0 {
		tick = DefaultTickInterval
	}
	scheduler := newTeaScheduler()
	m := &Model{
		config:       cfg,
		machine:      timer.New(clock, scheduler, cfg.HoldDelay),
		scheduler:    scheduler,
		hold:         newHoldDetector(cfg.ReleaseGap, cfg.RepeatDelay),
		scrambles:    scrambles,
		tickInterval: tick,
	}
	if !cfg.Record {
		log = nil
	}
	m.recorder = newRecorder(log)
	m.machine.SetListener(m.recorder)
	m.setTheme(theme)
	m.nextScramble()
	return m, nil
}

// Machine exposes the timing state machine.
func (m *Model) Machine() *timer.Machine {
	return m.machine
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		cmd, quit := m.handleKey(msg)
		if quit {
			m.logSummary()
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)
	case releaseCheckMsg:
		if m.hold.released(msg) {
			cmds = append(cmds, m.release())
		}
	case holdTimeoutMsg:
		m.machine.OnTimeout(msg.token)
	case tickMsg:
		if msg.gen != m.tickGen || m.machine.State().Phase != timer.PhaseTiming {
			break
		}
		m.machine.OnTick(msg.at)
		cmds = append(cmds, m.tick())
	}
	cmds = append(cmds, m.scheduler.drain()...)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	timing := m.machine.State().Phase == timer.PhaseTiming
	switch msg.Type {
	case tea.KeyCtrlC:
		return nil, true
	case tea.KeySpace:
		return m.spaceDown(), false
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case " ":
			return m.spaceDown(), false
		case "q":
			return nil, !timing
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			m.setTheme((m.theme + 1) % len(themes))
		default:
			if p, ok := penaltyForKey(string(msg.Runes)); ok {
				m.machine.OnPenaltySelected(p)
			}
		}
	}
	return nil, false
}

func (m *Model) spaceDown() tea.Cmd {
	pressed, check := m.hold.key()
	if !pressed {
		return check
	}
	wasTiming := m.machine.State().Phase == timer.PhaseTiming
	m.machine.OnPress()
	if wasTiming && m.machine.State().Phase == timer.PhaseFinished {
		m.nextScramble()
	}
	return check
}

func (m *Model) release() tea.Cmd {
	m.machine.OnRelease()
	if m.machine.State().Phase != timer.PhaseTiming {
		return nil
	}
	logging.Debug("timing started", "hold", m.machine.State().LastTick.Sub(m.machine.PressedAt()))
	m.tickGen++
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(m.tickInterval, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

func (m *Model) nextScramble() {
	if m.scrambles == nil {
		return
	}
	m.machine.SetScramble(m.scrambles.Next())
}

func (m *Model) setTheme(idx int) {
	m.theme = idx
	m.styles = newStyles(themes[idx])
}

func (m *Model) logSummary() {
	s := m.machine.Session()
	best, _ := s.BestSingle()
	mean, hasMean := s.Mean()
	args := []any{"solves", s.Len(), "dnf", s.DNFCount()}
	if s.Len() > 0 {
		args = append(args, "best", best.String())
	}
	if hasMean {
		args = append(args, "mean", mean.String())
	}
	logging.Info("timer closed", args...)
}
