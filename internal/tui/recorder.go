package tui

import (
	"context"
	"time"

	"github.com/verte-zerg/tuicube/internal/logging"
	"github.com/verte-zerg/tuicube/internal/session"
	"github.com/verte-zerg/tuicube/internal/solve"
)

// SolveLog persists finished solves. *store.Store implements it.
type SolveLog interface {
	StartSession(ctx context.Context, startedAt time.Time) (string, error)
	InsertSolve(ctx context.Context, sessionID string, idx int, sv solve.Solve) error
	UpdatePenalty(ctx context.Context, sessionID string, idx int, p solve.Penalty) error
}

// recorder mirrors the live session into the solve log. The stored
// session is created with the first solve so empty runs leave no trace.
type recorder struct {
	log       SolveLog
	sessionID string
	failed    error
}

func newRecorder(log SolveLog) *recorder {
	return &recorder{log: log}
}

func (r *recorder) SolveRecorded(index int, entry session.Entry) {
	logging.Info("solve recorded",
		"index", index+1,
		"time", entry.Solve.Time.String(),
		"ao5", entry.Ao5.String(),
		"ao12", entry.Ao12.String(),
	)
	if r.log == nil {
		return
	}
	ctx := context.Background()
	if r.sessionID == "" {
		id, err := r.log.StartSession(ctx, entry.Solve.Timestamp)
		if err != nil {
			r.fail("failed to start session", err)
			return
		}
		r.sessionID = id
	}
	if err := r.log.InsertSolve(ctx, r.sessionID, index, entry.Solve); err != nil {
		r.fail("failed to save solve", err, "index", index+1)
	}
}

func (r *recorder) PenaltyChanged(index int, entry session.Entry) {
	logging.Info("penalty changed",
		"index", index+1,
		"penalty", entry.Solve.Time.Penalty.String(),
		"ao5", entry.Ao5.String(),
	)
	if r.log == nil {
		return
	}
	if r.sessionID == "" {
		logging.Warn("penalty not saved, solve was never stored", "index", index+1)
		return
	}
	if err := r.log.UpdatePenalty(context.Background(), r.sessionID, index, entry.Solve.Time.Penalty); err != nil {
		r.fail("failed to update penalty", err, "index", index+1)
	}
}

func (r *recorder) fail(msg string, err error, args ...any) {
	logging.Error(msg, err, args...)
	r.failed = err
}
