package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/tuicube/internal/model"
)

func sampleSessions() []model.SessionRecord {
	return []model.SessionRecord{{ID: "s1", StartedAt: time.Unix(0, 0).UTC()}}
}

func sampleRecords() []model.SolveRecord {
	return []model.SolveRecord{
		{SessionID: "s1", Index: 0, Elapsed: secs(12), Penalty: "OK", Scramble: "R"},
		{SessionID: "s1", Index: 1, Elapsed: secs(9), Penalty: "DNF", Scramble: "U"},
		{SessionID: "s1", Index: 2, Elapsed: secs(10), Penalty: "OK", Scramble: "F"},
		{SessionID: "s1", Index: 3, Elapsed: secs(8), Penalty: "+2", Scramble: "L"},
		{SessionID: "s1", Index: 4, Elapsed: secs(11), Penalty: "OK", Scramble: "B"},
	}
}

func TestBestSolves(t *testing.T) {
	report, err := NewReport(sampleSessions(), sampleRecords())
	if err != nil {
		t.Fatalf("new report: %v", err)
	}
	best := BestSolves(report.Solves, 3)
	if len(best) != 3 {
		t.Fatalf("expected 3 solves, got %d", len(best))
	}
	// 10.00 and 8.00+ both rank as 10s; the earlier one wins.
	wantScrambles := []string{"F", "L", "B"}
	for i, want := range wantScrambles {
		if got := best[i].Entry.Solve.Scramble; got != want {
			t.Fatalf("rank %d: expected %s, got %s", i+1, want, got)
		}
	}
}

func TestBestSolvesExcludesDNF(t *testing.T) {
	report, err := NewReport(sampleSessions(), sampleRecords())
	if err != nil {
		t.Fatalf("new report: %v", err)
	}
	best := BestSolves(report.Solves, 10)
	if len(best) != 4 {
		t.Fatalf("expected 4 ranked solves, got %d", len(best))
	}
	for _, row := range best {
		if row.Entry.Solve.Time.IsDNF() {
			t.Fatalf("DNF should not be ranked")
		}
	}
}

func TestRenderSummaryAndSessions(t *testing.T) {
	report, err := NewReport(sampleSessions(), sampleRecords())
	if err != nil {
		t.Fatalf("new report: %v", err)
	}
	var buf bytes.Buffer
	if err := RenderSummary(&buf, report); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	if err := RenderSessions(&buf, report); err != nil {
		t.Fatalf("render sessions: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Solves: 5 (1 DNF)", "Best single: 10.00", "Best mo3: 10.33", "Best ao5: 11.00", "Best ao12: --"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, Report{}); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No solves found." {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
