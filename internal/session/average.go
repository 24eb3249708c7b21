package session

import "github.com/verte-zerg/tuicube/internal/solve"

// MeanOf returns the untrimmed mean of the window. Any DNF makes it DNF.
func MeanOf(window []solve.SolveTime) solve.SolveTime {
	return solve.Mean(window)
}

// AverageOf returns the trimmed mean of the window: the single best and
// single worst times are dropped and the rest are averaged. The earliest
// entry wins ties on either end, so a window with two or more DNFs is DNF.
func AverageOf(window []solve.SolveTime) solve.SolveTime {
	if len(window) < 3 {
		panic("session: trimmed average needs at least 3 times")
	}
	imin := 0
	for i := 1; i < len(window); i++ {
		if solve.Compare(window[i], window[imin]) < 0 {
			imin = i
		}
	}
	imax := -1
	for i := range window {
		if i == imin {
			continue
		}
		if imax == -1 || solve.Compare(window[i], window[imax]) > 0 {
			imax = i
		}
	}
	kept := make([]solve.SolveTime, 0, len(window)-2)
	for i, t := range window {
		if i == imin || i == imax {
			continue
		}
		kept = append(kept, t)
	}
	return solve.Mean(kept)
}
