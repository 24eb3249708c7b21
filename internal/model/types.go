// Package model defines shared data structures.
package model

import "time"

// Config defines timer settings.
type Config struct {
	HoldDelay      time.Duration
	TickInterval   time.Duration
	ReleaseGap     time.Duration
	RepeatDelay    time.Duration
	ScrambleLength int
	ScrambleFile   string
	Theme          string
	Record         bool
	LogLevel       string
}

// HistoryConfig defines filters and options for history output.
type HistoryConfig struct {
	Since       *time.Time
	Last        int
	SessionID   string
	CurveWindow int
}

// SolveRecord is a stored solve.
type SolveRecord struct {
	SessionID  string
	Index      int
	RecordedAt time.Time
	Elapsed    time.Duration
	Penalty    string
	Scramble   string
}

// SessionRecord summarizes a stored timer session.
type SessionRecord struct {
	ID        string
	StartedAt time.Time
	Puzzle    string
	Solves    int
}
