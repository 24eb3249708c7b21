// Package stats builds history reports by replaying stored solves.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/verte-zerg/tuicube/internal/model"
	"github.com/verte-zerg/tuicube/internal/session"
	"github.com/verte-zerg/tuicube/internal/solve"
	"github.com/verte-zerg/tuicube/internal/store"
)

// SolveRow is one replayed solve with its rolling statistics.
type SolveRow struct {
	SessionID string
	Index     int
	Entry     session.Entry
}

// SessionSummary condenses one stored session.
type SessionSummary struct {
	ID         string
	StartedAt  time.Time
	Solves     int
	DNFs       int
	BestSingle session.Stat
	Mean       session.Stat
	BestMo3    session.Stat
	BestAo5    session.Stat
	BestAo12   session.Stat
	// Missing counts stored indexes skipped before the last solve, left by
	// inserts that failed while timing. Averages are replayed across the gap.
	Missing int
}

// Report contains precomputed data for history rendering.
type Report struct {
	Sessions   []SessionSummary
	Solves     []SolveRow
	BestSingle session.Stat
	BestMo3    session.Stat
	BestAo5    session.Stat
	BestAo12   session.Stat
}

// BuildReport loads and prepares data for history rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	records, err := st.ListSolves(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	return NewReport(sessions, records)
}

// NewReport replays records into one Session per stored session so every
// statistic is computed exactly as it was live.
func NewReport(sessions []model.SessionRecord, records []model.SolveRecord) (Report, error) {
	bySession := make(map[string][]model.SolveRecord, len(sessions))
	for _, rec := range records {
		bySession[rec.SessionID] = append(bySession[rec.SessionID], rec)
	}

	var report Report
	for _, meta := range sessions {
		replayed := session.New()
		missing, next := 0, 0
		for _, rec := range bySession[meta.ID] {
			if rec.Index > next {
				missing += rec.Index - next
			}
			next = rec.Index + 1
			sv, err := SolveFromRecord(rec)
			if err != nil {
				return Report{}, err
			}
			idx := replayed.AddSolve(sv)
			entry, _ := replayed.Entry(idx)
			report.Solves = append(report.Solves, SolveRow{SessionID: meta.ID, Index: rec.Index, Entry: entry})
		}
		if replayed.Len() == 0 {
			continue
		}
		summary := summarize(meta, replayed)
		summary.Missing = missing
		report.Sessions = append(report.Sessions, summary)
		report.BestSingle = better(report.BestSingle, summary.BestSingle)
		report.BestMo3 = better(report.BestMo3, summary.BestMo3)
		report.BestAo5 = better(report.BestAo5, summary.BestAo5)
		report.BestAo12 = better(report.BestAo12, summary.BestAo12)
	}
	return report, nil
}

// SolveFromRecord converts a stored row back into a solve.
func SolveFromRecord(rec model.SolveRecord) (solve.Solve, error) {
	penalty, err := solve.ParsePenalty(rec.Penalty)
	if err != nil {
		return solve.Solve{}, fmt.Errorf("solve %d of session %s: %w", rec.Index, rec.SessionID, err)
	}
	if rec.Elapsed < 0 {
		return solve.Solve{}, fmt.Errorf("solve %d of session %s: negative elapsed time", rec.Index, rec.SessionID)
	}
	return solve.Solve{
		Time:      solve.New(rec.Elapsed, penalty),
		Timestamp: rec.RecordedAt,
		Scramble:  rec.Scramble,
	}, nil
}

func summarize(meta model.SessionRecord, s *session.Session) SessionSummary {
	return SessionSummary{
		ID:         meta.ID,
		StartedAt:  meta.StartedAt,
		Solves:     s.Len(),
		DNFs:       s.DNFCount(),
		BestSingle: statOf(s.BestSingle()),
		Mean:       statOf(s.Mean()),
		BestMo3:    statOf(s.BestMo3()),
		BestAo5:    statOf(s.BestAo5()),
		BestAo12:   statOf(s.BestAo12()),
	}
}

func statOf(t solve.SolveTime, ok bool) session.Stat {
	return session.Stat{Time: t, Valid: ok}
}

func better(a, b session.Stat) session.Stat {
	if !b.Valid {
		return a
	}
	if !a.Valid || solve.Compare(b.Time, a.Time) < 0 {
		return b
	}
	return a
}
