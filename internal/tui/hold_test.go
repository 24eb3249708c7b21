package tui

import (
	"testing"
	"time"
)

func TestHoldDetectorPressAndRelease(t *testing.T) {
	h := newHoldDetector(50*time.Millisecond, 200*time.Millisecond)

	pressed, check := h.key()
	if !pressed || check == nil {
		t.Fatalf("first key should be a press with a release check")
	}
	if h.wait != 200*time.Millisecond {
		t.Fatalf("first check should wait for the repeat delay, got %v", h.wait)
	}
	if pressed, _ := h.key(); pressed {
		t.Fatalf("repeat should not be a new press")
	}
	if h.wait != 50*time.Millisecond {
		t.Fatalf("repeat check should wait for the gap, got %v", h.wait)
	}
	if h.released(releaseCheckMsg{gen: 1}) {
		t.Fatalf("superseded check should not release")
	}
	if !h.released(releaseCheckMsg{gen: 2}) {
		t.Fatalf("current check should release")
	}
	if h.released(releaseCheckMsg{gen: 2}) {
		t.Fatalf("released key should not release twice")
	}
	if pressed, _ := h.key(); !pressed {
		t.Fatalf("key after release should be a press")
	}
}

func TestHoldDetectorDefaults(t *testing.T) {
	h := newHoldDetector(0, 0)
	if h.gap != DefaultReleaseGap || h.initial != DefaultRepeatDelay {
		t.Fatalf("expected defaults, got gap %v initial %v", h.gap, h.initial)
	}
	h = newHoldDetector(300*time.Millisecond, 100*time.Millisecond)
	if h.initial != 300*time.Millisecond {
		t.Fatalf("repeat delay should not be shorter than the gap, got %v", h.initial)
	}
}

func TestTeaSchedulerCancel(t *testing.T) {
	s := newTeaScheduler()
	s.Schedule(time.Millisecond, 1)
	s.Schedule(time.Millisecond, 2)
	s.Cancel(1)
	if got := len(s.drain()); got != 1 {
		t.Fatalf("expected 1 queued command, got %d", got)
	}
	if got := s.drain(); got != nil {
		t.Fatalf("expected empty queue, got %d commands", len(got))
	}
}
