// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/trfproj/trf-mcp/internal/llm"
	"github.com/trfproj/trf-mcp/internal/report"
)

const summaryPromptTemplate = `Provide a clear, concise summary of these tractor test records.
Include key findings, patterns, and any issues:

%s`

// llmSummarizer implements format.Summarizer on top of the shared model
// client. Records are serialized as indent-2 JSON inside the prompt.
type llmSummarizer struct {
	client llm.Client
}

func (s llmSummarizer) Summarize(ctx context.Context, records []report.Record) (string, error) {
	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding records: %w", err)
	}
	return s.client.Complete(ctx, fmt.Sprintf(summaryPromptTemplate, payload))
}
