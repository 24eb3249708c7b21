// Package session keeps the solves of one practice run together with
// their rolling mo3, ao5 and ao12 statistics.
package session

import (
	"iter"

	"github.com/verte-zerg/tuicube/internal/solve"
)

// Window sizes of the rolling statistics.
const (
	Mo3Size  = 3
	Ao5Size  = 5
	Ao12Size = 12
)

// Stat is a rolling statistic that exists only once enough solves are in.
type Stat struct {
	Time  solve.SolveTime
	Valid bool
}

func someStat(t solve.SolveTime) Stat {
	return Stat{Time: t, Valid: true}
}

// Get returns the statistic and whether it exists.
func (s Stat) Get() (solve.SolveTime, bool) {
	return s.Time, s.Valid
}

// String renders the statistic, or "--" when absent.
func (s Stat) String() string {
	if !s.Valid {
		return "--"
	}
	return s.Time.String()
}

// Entry is one row of session history.
type Entry struct {
	Solve solve.Solve
	Mo3   Stat
	Ao5   Stat
	Ao12  Stat
}

// Session is an append-only list of solves. Only the last solve may be
// edited after insertion.
type Session struct {
	entries []Entry
}

// New returns an empty session.
func New() *Session {
	return &Session{}
}

// AddSolve appends a solve and computes its trailing statistics.
// It returns the index of the new entry.
func (s *Session) AddSolve(sv solve.Solve) int {
	s.entries = append(s.entries, Entry{Solve: sv})
	s.UpdateStatisticsLast()
	return len(s.entries) - 1
}

// UpdateStatisticsLast recomputes the statistics of the last entry. It
// must be called after the last solve is edited through LastSolveMut.
func (s *Session) UpdateStatisticsLast() {
	if len(s.entries) == 0 {
		return
	}
	i := len(s.entries) - 1
	entry := &s.entries[i]
	entry.Mo3 = s.compute(i, Mo3Size, MeanOf)
	entry.Ao5 = s.compute(i, Ao5Size, AverageOf)
	entry.Ao12 = s.compute(i, Ao12Size, AverageOf)
}

func (s *Session) compute(index, size int, fn func([]solve.SolveTime) solve.SolveTime) Stat {
	start := index - size + 1
	if start < 0 {
		return Stat{}
	}
	window := make([]solve.SolveTime, 0, size)
	for _, e := range s.entries[start : index+1] {
		window = append(window, e.Solve.Time)
	}
	return someStat(fn(window))
}

// LastSolveMut exposes the last solve for editing, or nil when empty.
// Callers must follow an edit with UpdateStatisticsLast.
func (s *Session) LastSolveMut() *solve.Solve {
	if len(s.entries) == 0 {
		return nil
	}
	return &s.entries[len(s.entries)-1].Solve
}

// SetLastPenalty changes the penalty of the last solve and refreshes its
// statistics. It reports false when the session is empty.
func (s *Session) SetLastPenalty(p solve.Penalty) bool {
	last := s.LastSolveMut()
	if last == nil {
		return false
	}
	last.Time.Penalty = p
	s.UpdateStatisticsLast()
	return true
}

// Len returns the number of solves.
func (s *Session) Len() int {
	return len(s.entries)
}

// Entries iterates over the entries in index order.
func (s *Session) Entries() iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for i, e := range s.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Entry returns the entry at index i.
func (s *Session) Entry(i int) (Entry, bool) {
	if i < 0 || i >= len(s.entries) {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Solve returns the solve at index i.
func (s *Session) Solve(i int) (solve.Solve, bool) {
	e, ok := s.Entry(i)
	return e.Solve, ok
}

// Mo3 returns the mean of 3 ending at index i.
func (s *Session) Mo3(i int) (solve.SolveTime, bool) {
	return s.stat(i, Mo3Size, func(e Entry) Stat { return e.Mo3 })
}

// Ao5 returns the average of 5 ending at index i.
func (s *Session) Ao5(i int) (solve.SolveTime, bool) {
	return s.stat(i, Ao5Size, func(e Entry) Stat { return e.Ao5 })
}

// Ao12 returns the average of 12 ending at index i.
func (s *Session) Ao12(i int) (solve.SolveTime, bool) {
	return s.stat(i, Ao12Size, func(e Entry) Stat { return e.Ao12 })
}

func (s *Session) stat(i, size int, pick func(Entry) Stat) (solve.SolveTime, bool) {
	if len(s.entries) < size {
		return solve.SolveTime{}, false
	}
	e, ok := s.Entry(i)
	if !ok {
		return solve.SolveTime{}, false
	}
	return pick(e).Get()
}

// BestMo3 returns the best mean of 3 in the session.
func (s *Session) BestMo3() (solve.SolveTime, bool) {
	return s.best(func(e Entry) Stat { return e.Mo3 })
}

// BestAo5 returns the best average of 5 in the session.
func (s *Session) BestAo5() (solve.SolveTime, bool) {
	return s.best(func(e Entry) Stat { return e.Ao5 })
}

// BestAo12 returns the best average of 12 in the session.
func (s *Session) BestAo12() (solve.SolveTime, bool) {
	return s.best(func(e Entry) Stat { return e.Ao12 })
}

// BestSingle returns the best solve time in the session.
func (s *Session) BestSingle() (solve.SolveTime, bool) {
	return s.best(func(e Entry) Stat { return someStat(e.Solve.Time) })
}

func (s *Session) best(pick func(Entry) Stat) (solve.SolveTime, bool) {
	var best Stat
	for _, e := range s.entries {
		st := pick(e)
		if !st.Valid {
			continue
		}
		if !best.Valid || solve.Compare(st.Time, best.Time) < 0 {
			best = st
		}
	}
	return best.Get()
}

// LastSolve returns the most recent solve.
func (s *Session) LastSolve() (solve.Solve, bool) {
	return s.Solve(len(s.entries) - 1)
}

// LastMo3 returns the mean of 3 ending at the last solve.
func (s *Session) LastMo3() (solve.SolveTime, bool) {
	return s.Mo3(len(s.entries) - 1)
}

// LastAo5 returns the average of 5 ending at the last solve.
func (s *Session) LastAo5() (solve.SolveTime, bool) {
	return s.Ao5(len(s.entries) - 1)
}

// LastAo12 returns the average of 12 ending at the last solve.
func (s *Session) LastAo12() (solve.SolveTime, bool) {
	return s.Ao12(len(s.entries) - 1)
}

// Mean returns the session mean over ranked solves, skipping DNFs.
func (s *Session) Mean() (solve.SolveTime, bool) {
	ranked := make([]solve.SolveTime, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Solve.Time.IsDNF() {
			continue
		}
		ranked = append(ranked, e.Solve.Time)
	}
	if len(ranked) == 0 {
		return solve.SolveTime{}, false
	}
	return solve.Mean(ranked), true
}

// DNFCount returns how many solves are DNF.
func (s *Session) DNFCount() int {
	count := 0
	for _, e := range s.entries {
		if e.Solve.Time.IsDNF() {
			count++
		}
	}
	return count
}
