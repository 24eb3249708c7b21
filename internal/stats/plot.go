package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/tuicube/internal/solve"
)

// Series is a named run of values in seconds. NaN marks a gap.
type Series struct {
	Name   string
	Values []float64
}

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	axisSeparator       = " ┤"
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var seriesColors = []string{
	"\x1b[36m",
	"\x1b[33m",
	"\x1b[35m",
	"\x1b[32m",
}

// PlotSeries renders the series as a braille chart on a shared time axis.
func PlotSeries(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	series = filterSeries(series)
	if len(series) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	labelWidth := axisLabelWidth(series)
	if width <= 0 {
		width = PlotWidthFor(terminalWidth(), labelWidth)
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	lo, hi := seriesRange(series)
	if hi-lo < 1e-9 {
		lo -= 0.5
		hi += 0.5
	}

	dotsX, dotsY := width*2, height*4
	layers := make([][][]uint8, len(series))
	for si, s := range series {
		cells := makeCells(height, width)
		values := resample(s.Values, dotsX)
		prevX, prevY := -1, -1
		for x, v := range values {
			if math.IsNaN(v) {
				prevX, prevY = -1, -1
				continue
			}
			y := valueToDot(v, lo, hi, dotsY)
			if prevX >= 0 {
				drawLine(prevX, prevY, x, y, func(px, py int) { setDot(cells, px, py) })
			} else {
				setDot(cells, x, y)
			}
			prevX, prevY = x, y
		}
		layers[si] = cells
	}

	useColor := shouldUseColor(w, forceColor)
	var b strings.Builder
	if title != "" {
		b.WriteString(title)
		b.WriteByte('\n')
	}
	for y := 0; y < height; y++ {
		label := ""
		switch y {
		case 0:
			label = secondsLabel(hi)
		case height - 1:
			label = secondsLabel(lo)
		case height / 2:
			label = secondsLabel((hi + lo) / 2)
		}
		b.WriteString(runewidth.FillLeft(label, labelWidth))
		b.WriteString(axisSeparator)
		for x := 0; x < width; x++ {
			mask, owner := composeCell(layers, x, y)
			if useColor && owner >= 0 {
				b.WriteString(seriesColors[owner%len(seriesColors)])
				b.WriteRune(braille(mask))
				b.WriteString(colorReset)
				continue
			}
			b.WriteRune(braille(mask))
		}
		b.WriteByte('\n')
	}
	b.WriteString(renderLegend(series, useColor))
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

// PlotWidthFor returns the chart width that fits within totalWidth.
func PlotWidthFor(totalWidth, labelWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	width := totalWidth - labelWidth - runewidth.StringWidth(axisSeparator)
	if width < minPlotWidth {
		width = minPlotWidth
	}
	return width
}

func axisLabelWidth(series []Series) int {
	lo, hi := seriesRange(series)
	width := runewidth.StringWidth(secondsLabel(hi))
	if w := runewidth.StringWidth(secondsLabel(lo)); w > width {
		width = w
	}
	return width
}

func secondsLabel(v float64) string {
	if v < 0 {
		v = 0
	}
	return solve.FormatDuration(secondsToDuration(v))
}

func filterSeries(series []Series) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		for _, v := range s.Values {
			if !math.IsNaN(v) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

func seriesRange(series []Series) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s.Values {
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 0
	}
	return lo, hi
}

// resample stretches or squeezes values onto n columns. A column that
// covers only gaps stays NaN.
func resample(values []float64, n int) []float64 {
	out := make([]float64, n)
	if len(values) == 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	for i := range out {
		start := i * len(values) / n
		end := (i + 1) * len(values) / n
		if end <= start {
			end = start + 1
		}
		var sum float64
		count := 0
		for _, v := range values[start:end] {
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

func valueToDot(v, lo, hi float64, dots int) int {
	pos := (v - lo) / (hi - lo)
	row := int(math.Round((1 - pos) * float64(dots-1)))
	return max(0, min(dots-1, row))
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	return cells
}

func composeCell(layers [][][]uint8, x, y int) (uint8, int) {
	var mask uint8
	owner := -1
	for i, cells := range layers {
		if m := cells[y][x]; m != 0 {
			if owner == -1 {
				owner = i
			}
			mask |= m
		}
	}
	return mask, owner
}

// Braille cells are 2 dots wide and 4 dots tall.
var dotBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func setDot(cells [][]uint8, x, y int) {
	cy, cx := y/4, x/2
	if y < 0 || x < 0 || cy >= len(cells) || cx >= len(cells[cy]) {
		return
	}
	cells[cy][cx] |= dotBits[y%4][x%2]
}

func braille(mask uint8) rune {
	return rune(0x2800 + int(mask))
}

func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func renderLegend(series []Series, useColor bool) string {
	parts := make([]string, 0, len(series))
	for i, s := range series {
		label := fmt.Sprintf("%c %s", braille(0xFF), s.Name)
		if useColor {
			label = seriesColors[i%len(seriesColors)] + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
