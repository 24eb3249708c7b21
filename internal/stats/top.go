package stats

import (
	"sort"

	"github.com/verte-zerg/tuicube/internal/solve"
)

// BestSolves returns the n fastest ranked solves, earliest first on ties.
func BestSolves(rows []SolveRow, n int) []SolveRow {
	if n <= 0 || len(rows) == 0 {
		return nil
	}
	ranked := make([]SolveRow, 0, len(rows))
	for _, row := range rows {
		if row.Entry.Solve.Time.IsDNF() {
			continue
		}
		ranked = append(ranked, row)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return solve.Compare(ranked[i].Entry.Solve.Time, ranked[j].Entry.Solve.Time) < 0
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
