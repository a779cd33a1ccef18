// SPDX-License-Identifier: Apache-2.0

// Package format renders filtered record sequences into the fixed set of
// output shapes. Rendering is a pure function of its inputs except for the
// summary mode, which delegates to an injected Summarizer.
package format

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/trfproj/trf-mcp/internal/query"
	"github.com/trfproj/trf-mcp/internal/report"
)

// noRecords is the fixed message every textual mode returns for empty input,
// instead of an empty table or array.
const noRecords = "No records"

// Summarizer produces free-form text describing a record set. It is an
// external collaborator; failures surface as user-visible text, never as an
// error past the formatter boundary.
type Summarizer interface {
	Summarize(ctx context.Context, records []report.Record) (string, error)
}

// Result is a rendered query result: structured records for table mode,
// text for every other mode.
type Result struct {
	Format  query.Format    `json:"format"`
	Records []report.Record `json:"records,omitempty"`
	Text    string          `json:"text,omitempty"`
}

// Formatter renders records in a requested format.
type Formatter struct {
	summarizer Summarizer
}

// NewFormatter creates a Formatter. The summarizer may be nil, in which case
// summary mode reports it as unavailable.
func NewFormatter(summarizer Summarizer) *Formatter {
	return &Formatter{summarizer: summarizer}
}

// Render produces the result for the given mode. Table (the default) passes
// the records through unchanged; the caller decides final presentation.
func (f *Formatter) Render(ctx context.Context, records []report.Record, mode query.Format) Result {
	switch mode {
	case query.FormatCSV:
		return Result{Format: mode, Text: asCSV(records)}
	case query.FormatJSON:
		return Result{Format: mode, Text: asJSON(records)}
	case query.FormatMarkdown:
		return Result{Format: mode, Text: asMarkdown(records)}
	case query.FormatCount:
		return Result{Format: mode, Text: countSentence(records)}
	case query.FormatStats:
		return Result{Format: mode, Text: statistics(records)}
	case query.FormatSummary:
		return Result{Format: mode, Text: f.summary(ctx, records)}
	default:
		return Result{Format: query.FormatTable, Records: records}
	}
}

func asCSV(records []report.Record) string {
	if len(records) == 0 {
		return noRecords
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write([]string{"feature", "status", "value", "remarks", "file"})
	for _, r := range records {
		_ = w.Write([]string{r.Feature, r.Status, r.Value, r.Remarks, r.File})
	}
	w.Flush()
	return sb.String()
}

func asJSON(records []report.Record) string {
	if len(records) == 0 {
		return noRecords
	}

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		// Records are plain string fields; this cannot happen in practice.
		return fmt.Sprintf("Error encoding records: %v", err)
	}
	return string(out)
}

func asMarkdown(records []report.Record) string {
	if len(records) == 0 {
		return noRecords
	}

	lines := []string{
		"| Feature | Status | Value | Remarks | File |",
		"|---------|--------|-------|---------|------|",
	}
	for _, r := range records {
		// Pipe characters inside values are not escaped; accepted limitation.
		lines = append(lines, fmt.Sprintf("| %s | %s | %s | %s | %s |", r.Feature, r.Status, r.Value, r.Remarks, r.File))
	}
	return strings.Join(lines, "\n")
}

func countSentence(records []report.Record) string {
	return fmt.Sprintf("Found %d matching record(s)", len(records))
}

// statistics reports per-status and per-feature counts in first-seen order.
func statistics(records []report.Record) string {
	if len(records) == 0 {
		return noRecords
	}

	statusCount := map[string]int{}
	featureCount := map[string]int{}
	var statusOrder, featureOrder []string

	for _, r := range records {
		status, feature := r.Status, r.Feature
		if status == "" {
			status = "Unknown"
		}
		if feature == "" {
			feature = "Unknown"
		}
		if _, ok := statusCount[status]; !ok {
			statusOrder = append(statusOrder, status)
		}
		if _, ok := featureCount[feature]; !ok {
			featureOrder = append(featureOrder, feature)
		}
		statusCount[status]++
		featureCount[feature]++
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**Statistics for %d records:**\n\n**By Status:**\n", len(records))
	for _, status := range statusOrder {
		fmt.Fprintf(&sb, "\n- %s: %d", status, statusCount[status])
	}
	sb.WriteString("\n\n**By Feature:**\n")
	for _, feature := range featureOrder {
		fmt.Fprintf(&sb, "\n- %s: %d", feature, featureCount[feature])
	}
	return sb.String()
}

func (f *Formatter) summary(ctx context.Context, records []report.Record) string {
	if len(records) == 0 {
		return noRecords
	}
	if f.summarizer == nil {
		return "Error generating summary: no summarizer configured"
	}

	text, err := f.summarizer.Summarize(ctx, records)
	if err != nil {
		return fmt.Sprintf("Error generating summary: %v", err)
	}
	return text
}
