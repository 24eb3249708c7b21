package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapMoves breaks a scramble into lines no wider than width, splitting
// only between moves. A move wider than width gets a line of its own.
func wrapMoves(scramble string, width int) []string {
	moves := strings.Fields(scramble)
	if len(moves) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(moves, " ")}
	}
	var lines []string
	var line strings.Builder
	lineWidth := 0
	for _, mv := range moves {
		w := runewidth.StringWidth(mv)
		if lineWidth > 0 && lineWidth+1+w > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteByte(' ')
			lineWidth++
		}
		line.WriteString(mv)
		lineWidth += w
	}
	return append(lines, line.String())
}

// padLeft right-aligns s within width display cells.
func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}
