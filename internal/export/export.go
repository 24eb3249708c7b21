// Package export writes solve history as CSV, JSON lines, YAML or XLSX.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/verte-zerg/tuicube/internal/stats"
)

// Supported formats.
const (
	FormatCSV   = "csv"
	FormatJSONL = "jsonl"
	FormatYAML  = "yaml"
	FormatXLSX  = "xlsx"
)

// Formats lists every supported format.
var Formats = []string{FormatCSV, FormatJSONL, FormatYAML, FormatXLSX}

// Record is one exported solve.
type Record struct {
	SessionID  string  `json:"session_id" yaml:"session_id"`
	Index      int     `json:"index" yaml:"index"`
	RecordedAt string  `json:"recorded_at" yaml:"recorded_at"`
	Elapsed    float64 `json:"elapsed_s" yaml:"elapsed_s"`
	Penalty    string  `json:"penalty" yaml:"penalty"`
	Display    string  `json:"display" yaml:"display"`
	Mo3        string  `json:"mo3" yaml:"mo3"`
	Ao5        string  `json:"ao5" yaml:"ao5"`
	Ao12       string  `json:"ao12" yaml:"ao12"`
	Scramble   string  `json:"scramble" yaml:"scramble"`
}

var header = []string{
	"session_id", "index", "recorded_at", "elapsed_s", "penalty",
	"display", "mo3", "ao5", "ao12", "scramble",
}

// FromRows converts replayed solves into export records. Index is 1-based.
func FromRows(rows []stats.SolveRow) []Record {
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		e := row.Entry
		out = append(out, Record{
			SessionID:  row.SessionID,
			Index:      row.Index + 1,
			RecordedAt: e.Solve.Timestamp.UTC().Format(time.RFC3339),
			Elapsed:    e.Solve.Time.Elapsed.Seconds(),
			Penalty:    e.Solve.Time.Penalty.String(),
			Display:    e.Solve.Time.String(),
			Mo3:        e.Mo3.String(),
			Ao5:        e.Ao5.String(),
			Ao12:       e.Ao12.String(),
			Scramble:   e.Solve.Scramble,
		})
	}
	return out
}

// ParseFormat normalizes a format name.
func ParseFormat(s string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(s))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q (want one of %s)", s, strings.Join(Formats, ", "))
}

// Binary reports whether the format cannot be written to a terminal.
func Binary(format string) bool {
	return format == FormatXLSX
}

// Write encodes records in the given format.
func Write(w io.Writer, format string, records []Record) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, records)
	case FormatJSONL:
		return writeJSONL(w, records)
	case FormatYAML:
		return writeYAML(w, records)
	case FormatXLSX:
		return writeXLSX(w, records)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

func (r Record) cells() []string {
	return []string{
		r.SessionID,
		fmt.Sprintf("%d", r.Index),
		r.RecordedAt,
		fmt.Sprintf("%.3f", r.Elapsed),
		r.Penalty,
		r.Display,
		r.Mo3,
		r.Ao5,
		r.Ao12,
		r.Scramble,
	}
}
