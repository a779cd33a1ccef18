// SPDX-License-Identifier: Apache-2.0

package format_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trfproj/trf-mcp/internal/format"
	"github.com/trfproj/trf-mcp/internal/query"
	"github.com/trfproj/trf-mcp/internal/report"
)

type stubSummarizer struct {
	text string
	err  error

	gotRecords []report.Record
}

func (s *stubSummarizer) Summarize(_ context.Context, records []report.Record) (string, error) {
	s.gotRecords = records
	return s.text, s.err
}

func sampleRecords() []report.Record {
	return []report.Record{
		{Feature: "Braking", Status: "Pass", Value: "12", Remarks: "", File: "feb2025_sprint2.trf"},
		{Feature: "Steering", Status: "Fail", Value: "3", Remarks: "drift", File: "mar2025_sprint1.trf"},
	}
}

// ---------------------------------------------------------------------------
// table / default
// ---------------------------------------------------------------------------

func TestRender_TablePassesRecordsThrough(t *testing.T) {
	f := format.NewFormatter(nil)
	records := sampleRecords()

	result := f.Render(context.Background(), records, query.FormatTable)
	assert.Equal(t, query.FormatTable, result.Format)
	assert.Equal(t, records, result.Records)
	assert.Empty(t, result.Text)
}

// ---------------------------------------------------------------------------
// csv
// ---------------------------------------------------------------------------

func TestRender_CSV(t *testing.T) {
	f := format.NewFormatter(nil)
	result := f.Render(context.Background(), sampleRecords(), query.FormatCSV)

	lines := strings.Split(strings.TrimRight(result.Text, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "feature,status,value,remarks,file", lines[0])
	assert.Equal(t, "Braking,Pass,12,,feb2025_sprint2.trf", lines[1])
	assert.Equal(t, "Steering,Fail,3,drift,mar2025_sprint1.trf", lines[2])
}

func TestRender_CSV_QuotesEmbeddedCommasAndQuotes(t *testing.T) {
	f := format.NewFormatter(nil)
	records := []report.Record{
		{Feature: "Braking, hard", Status: "Pass", Value: `12 "spike"`, Remarks: "a,b", File: "feb.trf"},
	}
	result := f.Render(context.Background(), records, query.FormatCSV)

	assert.Contains(t, result.Text, `"Braking, hard"`)
	assert.Contains(t, result.Text, `"12 ""spike"""`)
	assert.Contains(t, result.Text, `"a,b"`)
}

func TestRender_CSV_Empty(t *testing.T) {
	f := format.NewFormatter(nil)
	result := f.Render(context.Background(), nil, query.FormatCSV)
	assert.Equal(t, "No records", result.Text, "empty input must not render a lone header row")
}

// ---------------------------------------------------------------------------
// json
// ---------------------------------------------------------------------------

func TestRender_JSON_RoundTrips(t *testing.T) {
	f := format.NewFormatter(nil)
	records := sampleRecords()
	result := f.Render(context.Background(), records, query.FormatJSON)

	var back []report.Record
	require.NoError(t, json.Unmarshal([]byte(result.Text), &back))
	assert.Equal(t, records, back)

	// Keys render in the fixed record order.
	assert.Less(t, strings.Index(result.Text, `"feature"`), strings.Index(result.Text, `"status"`))
	assert.Less(t, strings.Index(result.Text, `"remarks"`), strings.Index(result.Text, `"file"`))
}

func TestRender_JSON_Empty(t *testing.T) {
	f := format.NewFormatter(nil)
	result := f.Render(context.Background(), nil, query.FormatJSON)
	assert.Equal(t, "No records", result.Text)
}

// ---------------------------------------------------------------------------
// markdown
// ---------------------------------------------------------------------------

func TestRender_Markdown(t *testing.T) {
	f := format.NewFormatter(nil)
	result := f.Render(context.Background(), sampleRecords(), query.FormatMarkdown)

	lines := strings.Split(result.Text, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| Feature | Status | Value | Remarks | File |", lines[0])
	assert.Equal(t, "|---------|--------|-------|---------|------|", lines[1])
	assert.Equal(t, "| Braking | Pass | 12 |  | feb2025_sprint2.trf |", lines[2])
}

func TestRender_Markdown_Empty(t *testing.T) {
	f := format.NewFormatter(nil)
	assert.Equal(t, "No records", f.Render(context.Background(), nil, query.FormatMarkdown).Text)
}

// ---------------------------------------------------------------------------
// count / stats
// ---------------------------------------------------------------------------

func TestRender_Count(t *testing.T) {
	f := format.NewFormatter(nil)
	result := f.Render(context.Background(), sampleRecords(), query.FormatCount)
	assert.Equal(t, "Found 2 matching record(s)", result.Text)
}

func TestRender_Stats(t *testing.T) {
	f := format.NewFormatter(nil)
	records := []report.Record{
		{Feature: "Braking", Status: "Pass"},
		{Feature: "Steering", Status: "Fail"},
		{Feature: "Braking", Status: "Pass"},
		{Feature: "Engine", Status: "Pass"},
	}
	result := f.Render(context.Background(), records, query.FormatStats)

	assert.Contains(t, result.Text, "**Statistics for 4 records:**")
	assert.Contains(t, result.Text, "- Pass: 3")
	assert.Contains(t, result.Text, "- Fail: 1")
	assert.Contains(t, result.Text, "- Braking: 2")
	assert.Contains(t, result.Text, "- Steering: 1")
	assert.Contains(t, result.Text, "- Engine: 1")

	// Groups render in first-seen order.
	assert.Less(t, strings.Index(result.Text, "- Pass:"), strings.Index(result.Text, "- Fail:"))
	assert.Less(t, strings.Index(result.Text, "- Braking:"), strings.Index(result.Text, "- Steering:"))
	assert.Less(t, strings.Index(result.Text, "**By Status:**"), strings.Index(result.Text, "**By Feature:**"))
}

func TestRender_Stats_Empty(t *testing.T) {
	f := format.NewFormatter(nil)
	assert.Equal(t, "No records", f.Render(context.Background(), nil, query.FormatStats).Text)
}

// ---------------------------------------------------------------------------
// summary
// ---------------------------------------------------------------------------

func TestRender_Summary_Delegates(t *testing.T) {
	stub := &stubSummarizer{text: "All braking tests passed."}
	f := format.NewFormatter(stub)

	result := f.Render(context.Background(), sampleRecords(), query.FormatSummary)
	assert.Equal(t, "All braking tests passed.", result.Text)
	assert.Equal(t, sampleRecords(), stub.gotRecords)
}

func TestRender_Summary_FailureBecomesText(t *testing.T) {
	stub := &stubSummarizer{err: errors.New("upstream unreachable")}
	f := format.NewFormatter(stub)

	result := f.Render(context.Background(), sampleRecords(), query.FormatSummary)
	assert.Equal(t, "Error generating summary: upstream unreachable", result.Text)
}

func TestRender_Summary_NoSummarizer(t *testing.T) {
	f := format.NewFormatter(nil)
	result := f.Render(context.Background(), sampleRecords(), query.FormatSummary)
	assert.Contains(t, result.Text, "Error generating summary")
}

// ---------------------------------------------------------------------------
// Project
// ---------------------------------------------------------------------------

func TestProject_SelectedColumns(t *testing.T) {
	rows := format.Project(sampleRecords(), []string{"Feature", "STATUS"})
	require.Len(t, rows, 2)
	assert.Equal(t, map[string]string{"feature": "Braking", "status": "Pass"}, rows[0])
}

func TestProject_InvalidColumnsFallBackToDefaults(t *testing.T) {
	rows := format.Project(sampleRecords(), []string{"bogus", "nope"})
	require.Len(t, rows, 2)
	assert.Equal(t, map[string]string{
		"feature": "Braking",
		"status":  "Pass",
		"value":   "12",
		"file":    "feb2025_sprint2.trf",
	}, rows[0])
}
