package solve

import (
	"fmt"
	"time"
)

const plus2Penalty = 2 * time.Second

// SolveTime is a measured attempt: elapsed duration plus penalty.
type SolveTime struct {
	Elapsed time.Duration
	Penalty Penalty
}

// New builds a SolveTime. A negative elapsed duration is a caller bug.
func New(elapsed time.Duration, penalty Penalty) SolveTime {
	if elapsed < 0 {
		panic(fmt.Sprintf("solve: negative elapsed time %v", elapsed))
	}
	return SolveTime{Elapsed: elapsed, Penalty: penalty}
}

// DNF returns a solve time without a ranked result.
func DNF() SolveTime {
	return SolveTime{Penalty: PenaltyDNF}
}

// IsDNF reports whether the time has no ranked result.
func (t SolveTime) IsDNF() bool {
	return t.Penalty == PenaltyDNF
}

// RecordedTime returns the ranked duration. ok is false for DNF.
func (t SolveTime) RecordedTime() (d time.Duration, ok bool) {
	switch t.Penalty {
	case PenaltyDNF:
		return 0, false
	case PenaltyPlus2:
		return t.Elapsed + plus2Penalty, true
	default:
		return t.Elapsed, true
	}
}

// Compare orders a before b when a is faster. DNF sorts after every
// ranked time and all DNFs compare equal.
func Compare(a, b SolveTime) int {
	ad, aok := a.RecordedTime()
	bd, bok := b.RecordedTime()
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	case ad < bd:
		return -1
	case ad > bd:
		return 1
	default:
		return 0
	}
}

// Less reports whether t is strictly better than o.
func (t SolveTime) Less(o SolveTime) bool {
	return Compare(t, o) < 0
}

// String formats the time as [m:]ss.cc, truncating to centiseconds.
// Plus-two times carry a trailing "+"; DNF renders as "DNF".
func (t SolveTime) String() string {
	d, ok := t.RecordedTime()
	if !ok {
		return "DNF"
	}
	out := FormatDuration(d)
	if t.Penalty == PenaltyPlus2 {
		out += "+"
	}
	return out
}

// FormatDuration renders d as [m:]ss.cc without rounding up.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	centis := int64(d / (10 * time.Millisecond))
	seconds := centis / 100
	centis %= 100
	if seconds >= 60 {
		return fmt.Sprintf("%d:%02d.%02d", seconds/60, seconds%60, centis)
	}
	return fmt.Sprintf("%d.%02d", seconds, centis)
}

// Sum adds the recorded times. Any DNF makes the sum DNF.
func Sum(times []SolveTime) SolveTime {
	var total time.Duration
	for _, t := range times {
		d, ok := t.RecordedTime()
		if !ok {
			return DNF()
		}
		total += d
	}
	return SolveTime{Elapsed: total}
}

// Mean averages the recorded times. Any DNF makes the mean DNF.
func Mean(times []SolveTime) SolveTime {
	if len(times) == 0 {
		panic("solve: mean of empty window")
	}
	sum := Sum(times)
	if sum.IsDNF() {
		return sum
	}
	return SolveTime{Elapsed: sum.Elapsed / time.Duration(len(times))}
}

// Solve is one recorded attempt with its metadata.
type Solve struct {
	Time      SolveTime
	Timestamp time.Time
	Scramble  string
}
