// SPDX-License-Identifier: Apache-2.0

// Package agent orchestrates one natural-language query end to end: extract
// parameters via the model, load the report store, filter, format. Each run
// builds its own fresh record sequence; nothing is shared between queries.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/trfproj/trf-mcp/internal/format"
	"github.com/trfproj/trf-mcp/internal/llm"
	"github.com/trfproj/trf-mcp/internal/query"
	"github.com/trfproj/trf-mcp/internal/report"
)

// DefaultPromptMaxLength caps the user query text before extraction.
const DefaultPromptMaxLength = 800

// ErrEmptyQuery is returned for blank query text, before any model call.
var ErrEmptyQuery = errors.New("query text is empty")

// Agent wires the extractor, store, filter and formatter together.
type Agent struct {
	store     *report.Store
	extractor llm.Client
	formatter *format.Formatter
	log       *zap.Logger
	promptMax int
}

// New creates an Agent. The extractor client answers parameter extraction;
// the summarizer client serves summary-format queries (they may be the same
// client, but extraction wants deterministic sampling while summaries use
// the API default). A nil logger is replaced with a no-op logger;
// promptMax <= 0 uses DefaultPromptMaxLength.
func New(store *report.Store, extractor, summarizer llm.Client, log *zap.Logger, promptMax int) *Agent {
	if log == nil {
		log = zap.NewNop()
	}
	if promptMax <= 0 {
		promptMax = DefaultPromptMaxLength
	}
	return &Agent{
		store:     store,
		extractor: extractor,
		formatter: format.NewFormatter(llmSummarizer{client: summarizer}),
		log:       log,
		promptMax: promptMax,
	}
}

// Run answers one natural-language query. Every collaborator fault and
// empty-result condition (model unreachable, unparseable extraction, missing
// data directory, no documents, no records, no filter matches) comes back as
// descriptive result text, not an error; only a blank query errors.
func (a *Agent) Run(ctx context.Context, prompt string) (format.Result, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return format.Result{}, ErrEmptyQuery
	}
	// Truncate on rune boundaries; a byte cut could split a multi-byte
	// character and send the model invalid UTF-8.
	if runes := []rune(prompt); len(runes) > a.promptMax {
		prompt = string(runes[:a.promptMax])
	}

	params, err := a.extractParams(ctx, prompt)
	if err != nil {
		a.log.Error("parameter extraction failed", zap.Error(err))
		if errors.Is(err, ErrExtractionFailed) {
			return format.Result{Format: query.FormatTable, Text: "Failed to extract parameters from query"}, nil
		}
		return format.Result{Format: query.FormatTable, Text: fmt.Sprintf("Error querying LLM: %v", err)}, nil
	}
	a.log.Info("query parameters extracted",
		zap.String("feature", params.Feature),
		zap.Int("periods", len(params.Periods)),
		zap.String("format", string(params.Format)))

	records, err := a.store.Load()
	if err != nil {
		if msg, ok := emptyResultMessage(err); ok {
			a.log.Warn("query produced no data", zap.Error(err))
			return format.Result{Format: params.Format, Text: msg}, nil
		}
		return format.Result{}, fmt.Errorf("loading reports: %w", err)
	}

	matched, err := query.Filter(records, params)
	if err != nil {
		if msg, ok := emptyResultMessage(err); ok {
			a.log.Info("no records matched query", zap.Error(err))
			return format.Result{Format: params.Format, Text: msg}, nil
		}
		return format.Result{}, fmt.Errorf("filtering records: %w", err)
	}

	a.log.Info("rendering result",
		zap.Int("records", len(matched)),
		zap.String("format", string(params.Format)))
	return a.formatter.Render(ctx, matched, params.Format), nil
}

// emptyResultMessage maps the reportable empty-result sentinels to their
// user-visible messages.
func emptyResultMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, report.ErrDataDirNotFound):
		return "Data directory not found", true
	case errors.Is(err, report.ErrNoDocuments):
		return "No TRF files found in data directory", true
	case errors.Is(err, report.ErrNoRecords):
		return "No test records found", true
	case errors.Is(err, query.ErrNoMatches):
		return "No matching records found", true
	default:
		return "", false
	}
}
