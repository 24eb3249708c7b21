package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuicube/internal/session"
	"github.com/verte-zerg/tuicube/internal/solve"
	"github.com/verte-zerg/tuicube/internal/timer"
)

const (
	minSidebarWidth = 60
	sidebarRows     = 12
	timeColWidth    = 8
)

// penaltyKey returns the selector key for the i-th entry of solve.Penalties.
func penaltyKey(i int) string {
	return strconv.Itoa(i + 1)
}

// penaltyForKey maps a selector key back to its penalty.
func penaltyForKey(key string) (solve.Penalty, bool) {
	if len(key) != 1 {
		return solve.PenaltyNone, false
	}
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 || n > len(solve.Penalties) {
		return solve.PenaltyNone, false
	}
	return solve.Penalties[n-1], true
}

func helpLines(holdDelay time.Duration) []string {
	keys := make([]string, len(solve.Penalties))
	names := make([]string, len(solve.Penalties))
	for i, p := range solve.Penalties {
		keys[i] = penaltyKey(i)
		names[i] = p.String()
	}
	return []string{
		fmt.Sprintf("hold space   %.1fs to get ready, release to start", holdDelay.Seconds()),
		"space        stop the timer",
		fmt.Sprintf("%-12s %s for the last solve", strings.Join(keys, " / "), strings.Join(names, " / ")),
		"t            switch theme",
		"?            toggle help",
		"q, ctrl+c    quit",
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return m.renderMain(0)
	}
	sidebar := ""
	if m.showSidebar() {
		sidebar = m.renderSidebar(m.height - 4)
	}
	sideWidth := lipgloss.Width(sidebar)
	mainWidth := max(1, m.width-sideWidth)
	contentWidth := max(1, int(float64(mainWidth)*0.70))

	content := m.renderMain(contentWidth)
	if m.showHelp {
		content = lipgloss.JoinVertical(lipgloss.Center, content, "", m.renderHelp())
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(mainWidth, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	if sidebar != "" {
		side := lipgloss.Place(sideWidth, bodyHeight, lipgloss.Left, lipgloss.Center, sidebar)
		body = lipgloss.JoinHorizontal(lipgloss.Top, side, body)
	}
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.renderFooter())
	return body + "\n" + footerLine
}

func (m *Model) showSidebar() bool {
	if m.width < minSidebarWidth || m.machine.Session().Len() == 0 {
		return false
	}
	return !m.machine.State().Running()
}

func (m *Model) renderMain(width int) string {
	parts := []string{}
	if lines := wrapMoves(m.machine.Scramble(), width); len(lines) > 0 {
		block := lipgloss.JoinVertical(lipgloss.Center, lines...)
		parts = append(parts, m.styles.text.Render(block))
	}
	parts = append(parts, m.timeStyle().Render(m.timeText()))
	if m.machine.Linked() {
		parts = append(parts, m.renderPenalties())
	}
	parts = append(parts,
		m.styles.muted.Render("Ao5: "+statText(m.machine.Session().LastAo5())),
		m.styles.muted.Render("Ao12: "+statText(m.machine.Session().LastAo12())),
	)
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m *Model) timeText() string {
	pending := m.machine.Pending()
	switch m.machine.State().Phase {
	case timer.PhaseReady:
		return solve.FormatDuration(0)
	case timer.PhaseTiming:
		return solve.FormatDuration(pending.Elapsed)
	default:
		return pending.String()
	}
}

func (m *Model) timeStyle() lipgloss.Style {
	state := m.machine.State()
	switch {
	case state.Holding(), state.Phase == timer.PhaseFinished:
		return m.styles.timeHold
	case state.Phase == timer.PhaseReady:
		return m.styles.timeReady
	default:
		return m.styles.timeIdle
	}
}

func (m *Model) renderPenalties() string {
	current := m.machine.Pending().Penalty
	items := make([]string, 0, len(solve.Penalties))
	for i, p := range solve.Penalties {
		label := fmt.Sprintf(" %s %s ", penaltyKey(i), p)
		if p == current {
			items = append(items, m.styles.selected.Render(label))
			continue
		}
		items = append(items, m.styles.muted.Render(label))
	}
	return strings.Join(items, " ")
}

func (m *Model) renderSidebar(maxRows int) string {
	s := m.machine.Session()
	rows := min(sidebarRows, maxRows)
	if rows < 1 {
		return ""
	}
	numWidth := len(strconv.Itoa(s.Len()))
	lines := []string{m.styles.accent.Render(sidebarRow("#", "time", "ao5", "ao12", numWidth))}
	for i := s.Len() - 1; i >= 0 && len(lines) <= rows; i-- {
		e, _ := s.Entry(i)
		lines = append(lines, m.styles.text.Render(sidebarEntry(i, e, numWidth)))
	}
	return m.styles.sidebar.Render(strings.Join(lines, "\n"))
}

func sidebarEntry(i int, e session.Entry, numWidth int) string {
	return sidebarRow(strconv.Itoa(i+1), e.Solve.Time.String(), e.Ao5.String(), e.Ao12.String(), numWidth)
}

func sidebarRow(num, single, ao5, ao12 string, numWidth int) string {
	return strings.Join([]string{
		padLeft(num, numWidth),
		padLeft(single, timeColWidth),
		padLeft(ao5, timeColWidth),
		padLeft(ao12, timeColWidth),
	}, " ")
}

func (m *Model) renderFooter() string {
	s := m.machine.Session()
	segments := []string{fmt.Sprintf("Solves %d", s.Len())}
	if best, ok := s.BestSingle(); ok {
		segments = append(segments, "Best "+best.String())
	}
	if mean, ok := s.Mean(); ok {
		segments = append(segments, "Mean "+mean.String())
	}
	if m.recorder.failed != nil {
		segments = append(segments, "History not saved, see log")
	}
	segments = append(segments, "? help")
	return m.styles.footer.Render(strings.Join(segments, "  "))
}

func (m *Model) renderHelp() string {
	return m.styles.muted.Render(strings.Join(helpLines(m.machine.HoldDelay()), "\n"))
}

func statText(t solve.SolveTime, ok bool) string {
	return session.Stat{Time: t, Valid: ok}.String()
}
