package timer

import (
	"time"

	"github.com/verte-zerg/tuicube/internal/session"
)

// Clock supplies monotonic time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Scheduler arms one-shot timeouts. When a timeout fires, the host calls
// Machine.OnTimeout with the same token on the event loop.
type Scheduler interface {
	Schedule(delay time.Duration, token uint64)
	Cancel(token uint64)
}

// Listener observes changes to the session made by the machine.
type Listener interface {
	SolveRecorded(index int, entry session.Entry)
	PenaltyChanged(index int, entry session.Entry)
}
