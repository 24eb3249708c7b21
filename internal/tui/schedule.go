package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type holdTimeoutMsg struct {
	token uint64
}

type tickMsg struct {
	gen uint64
	at  time.Time
}

// teaScheduler queues hold timeouts as Bubble Tea commands. Commands are
// handed to the runtime after each update; a timeout cancelled before that
// never starts. Ones already running are dropped by the machine's token check.
type teaScheduler struct {
	pending map[uint64]tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{pending: map[uint64]tea.Cmd{}}
}

func (s *teaScheduler) Schedule(delay time.Duration, token uint64) {
	s.pending[token] = tea.Tick(delay, func(time.Time) tea.Msg {
		return holdTimeoutMsg{token: token}
	})
}

func (s *teaScheduler) Cancel(token uint64) {
	delete(s.pending, token)
}

func (s *teaScheduler) drain() []tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(s.pending))
	for token, cmd := range s.pending {
		cmds = append(cmds, cmd)
		delete(s.pending, token)
	}
	return cmds
}
