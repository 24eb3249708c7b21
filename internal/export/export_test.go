package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/tuicube/internal/model"
	"github.com/verte-zerg/tuicube/internal/stats"
)

func sampleRecords(t *testing.T) []Record {
	t.Helper()
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	sessions := []model.SessionRecord{{ID: "s1", StartedAt: start}}
	var solves []model.SolveRecord
	penalties := []string{"OK", "+2", "DNF"}
	for i, p := range penalties {
		solves = append(solves, model.SolveRecord{
			SessionID:  "s1",
			Index:      i,
			RecordedAt: start.Add(time.Duration(i+1) * time.Minute),
			Elapsed:    time.Duration(10+i) * time.Second,
			Penalty:    p,
			Scramble:   "R U R' U'",
		})
	}
	report, err := stats.NewReport(sessions, solves)
	require.NoError(t, err)
	return FromRows(report.Solves)
}

func TestFromRows(t *testing.T) {
	records := sampleRecords(t)
	require.Len(t, records, 3)
	assert.Equal(t, 1, records[0].Index)
	assert.Equal(t, "2024-03-01T12:01:00Z", records[0].RecordedAt)
	assert.Equal(t, "13.00+", records[1].Display)
	assert.Equal(t, "DNF", records[2].Display)
	assert.Equal(t, "DNF", records[2].Mo3)
	assert.Equal(t, "--", records[1].Mo3)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" CSV ")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
	assert.True(t, Binary(FormatXLSX))
	assert.False(t, Binary(FormatYAML))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, sampleRecords(t)))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, header, rows[0])
	assert.Equal(t, "10.000", rows[1][3])
	assert.Equal(t, "+2", rows[2][4])
}

func TestWriteJSONL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSONL, sampleRecords(t)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &rec))
	assert.Equal(t, "DNF", rec.Penalty)
	assert.Equal(t, 3, rec.Index)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, sampleRecords(t)))

	var doc yamlDocument
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Solves, 3)
	assert.Equal(t, "R U R' U'", doc.Solves[0].Scramble)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, sampleRecords(t)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "session_id", rows[0][0])
	assert.Equal(t, "13.00+", rows[2][5])
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, "xml", nil))
}
