package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// DefaultReleaseGap is how long the space key may stay silent after a
	// repeat before it counts as released.
	DefaultReleaseGap = 120 * time.Millisecond
	// DefaultRepeatDelay is how long a fresh press may stay silent before it
	// counts as released. It must outlast the terminal's delay before the
	// first autorepeat, or a held key is seen as a tap followed by a new press.
	DefaultRepeatDelay = 600 * time.Millisecond
)

// releaseCheckMsg asks the detector whether the key went quiet.
type releaseCheckMsg struct {
	gen uint64
}

// holdDetector rebuilds press and release from a terminal key stream,
// which only carries key-down events and their autorepeats. Each key event
// restarts a release check; a check that is still current when it fires
// means no repeat arrived in time. The first key of a hold waits for the
// initial repeat delay, later ones only for the gap between repeats.
type holdDetector struct {
	gap     time.Duration
	initial time.Duration
	held    bool
	gen     uint64
	wait    time.Duration
}

func newHoldDetector(gap, initial time.Duration) holdDetector {
	if gap <= 0 {
		gap = DefaultReleaseGap
	}
	if initial <= 0 {
		initial = DefaultRepeatDelay
	}
	return holdDetector{gap: gap, initial: max(initial, gap)}
}

// key records a key-down. pressed is true for the first key of a hold.
func (h *holdDetector) key() (pressed bool, check tea.Cmd) {
	pressed = !h.held
	h.held = true
	h.gen++
	h.wait = h.gap
	if pressed {
		h.wait = h.initial
	}
	gen := h.gen
	return pressed, tea.Tick(h.wait, func(time.Time) tea.Msg {
		return releaseCheckMsg{gen: gen}
	})
}

// released reports whether msg is the current check of a held key, and
// if so marks the key as up.
func (h *holdDetector) released(msg releaseCheckMsg) bool {
	if !h.held || msg.gen != h.gen {
		return false
	}
	h.held = false
	return true
}
