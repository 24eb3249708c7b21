// Package stats builds history reports and renders them as text.
package stats

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/verte-zerg/tuicube/internal/session"
	"github.com/verte-zerg/tuicube/internal/solve"
)

const topSolves = 5

// MovingAverage computes a rolling mean over the provided window size.
// NaN values are skipped; a window holding only NaN stays NaN.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	for i := range values {
		start := max(0, i-window+1)
		var sum float64
		count := 0
		for _, v := range values[start : i+1] {
			if math.IsNaN(v) {
				continue
			}
			sum += v
			count++
		}
		if count == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(count)
	}
	return out
}

// Seconds converts a solve time into seconds, NaN for DNF.
func Seconds(t solve.SolveTime) float64 {
	d, ok := t.RecordedTime()
	if !ok {
		return math.NaN()
	}
	return d.Seconds()
}

func statSeconds(s session.Stat) float64 {
	if !s.Valid {
		return math.NaN()
	}
	return Seconds(s.Time)
}

func secondsToDuration(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

// RenderSummary prints the all-time bests over the report.
func RenderSummary(w io.Writer, report Report) error {
	if len(report.Sessions) == 0 {
		_, err := fmt.Fprintln(w, "No solves found.")
		return err
	}
	solves, dnfs := 0, 0
	for _, s := range report.Sessions {
		solves += s.Solves
		dnfs += s.DNFs
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", len(report.Sessions)),
		fmt.Sprintf("Solves: %d (%d DNF)", solves, dnfs),
		fmt.Sprintf("Best single: %s", report.BestSingle),
		fmt.Sprintf("Best mo3: %s", report.BestMo3),
		fmt.Sprintf("Best ao5: %s", report.BestAo5),
		fmt.Sprintf("Best ao12: %s", report.BestAo12),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderSessions prints one row per stored session.
func RenderSessions(w io.Writer, report Report) error {
	if len(report.Sessions) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Sessions"); err != nil {
		return err
	}
	headers := []string{"Started", "Solves", "DNF", "Best", "Mean", "mo3", "ao5", "ao12"}
	rows := make([][]string, 0, len(report.Sessions))
	gaps := false
	for _, s := range report.Sessions {
		rows = append(rows, SessionRow(s))
		gaps = gaps || s.Missing > 0
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if gaps {
		if _, err := fmt.Fprintln(w, missingNote); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// missingNote explains the marker SessionRow puts on sessions with gaps.
const missingNote = "* some solves of this session were not saved; averages span the gap"

// SessionRow formats a session summary as table cells.
func SessionRow(s SessionSummary) []string {
	solves := strconv.Itoa(s.Solves)
	if s.Missing > 0 {
		solves += "*"
	}
	return []string{
		s.StartedAt.Local().Format("2006-01-02 15:04"),
		solves,
		strconv.Itoa(s.DNFs),
		s.BestSingle.String(),
		s.Mean.String(),
		s.BestMo3.String(),
		s.BestAo5.String(),
		s.BestAo12.String(),
	}
}

// SolveRowCells formats a replayed solve as table cells.
func SolveRowCells(row SolveRow) []string {
	e := row.Entry
	return []string{
		strconv.Itoa(row.Index + 1),
		e.Solve.Time.String(),
		e.Mo3.String(),
		e.Ao5.String(),
		e.Ao12.String(),
		e.Solve.Scramble,
	}
}

// RenderTop prints the fastest ranked solves.
func RenderTop(w io.Writer, rows []SolveRow) error {
	best := BestSolves(rows, topSolves)
	if len(best) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Fastest Solves"); err != nil {
		return err
	}
	headers := []string{"#", "Time", "Scramble"}
	cells := make([][]string, 0, len(best))
	for i, row := range best {
		cells = append(cells, []string{strconv.Itoa(i + 1), row.Entry.Solve.Time.String(), row.Entry.Solve.Scramble})
	}
	for _, line := range formatTable(headers, cells, map[int]bool{0: true, 1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// CurveSeries builds the single, ao5 and rolling mean series for rows.
func CurveSeries(rows []SolveRow, window int) []Series {
	singles := make([]float64, len(rows))
	ao5 := make([]float64, len(rows))
	for i, row := range rows {
		singles[i] = Seconds(row.Entry.Solve.Time)
		ao5[i] = statSeconds(row.Entry.Ao5)
	}
	return []Series{
		{Name: "Single", Values: singles},
		{Name: "ao5", Values: ao5},
		{Name: fmt.Sprintf("Mean of %d", window), Values: MovingAverage(singles, window)},
	}
}

// RenderCurves prints the solve time curves.
func RenderCurves(w io.Writer, rows []SolveRow, window int) error {
	return RenderCurvesWithSize(w, rows, window, 0, defaultPlotHeight, false)
}

// RenderCurvesWithSize prints the solve time curves sized to a given total width.
func RenderCurvesWithSize(w io.Writer, rows []SolveRow, window, totalWidth, height int, useColor bool) error {
	if len(rows) == 0 {
		return nil
	}
	series := CurveSeries(rows, window)
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth, axisLabelWidth(filterSeries(series)))
	}
	return PlotSeries(w, "Solve Times", series, width, height, useColor)
}
