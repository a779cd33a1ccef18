// SPDX-License-Identifier: Apache-2.0

// Package tool exposes the TRF query pipeline as MCP tools.
package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/trfproj/trf-mcp/internal/agent"
	"github.com/trfproj/trf-mcp/internal/report"
)

// MetadataQueryTestReports describes the query_test_reports tool.
var MetadataQueryTestReports = &mcp.Tool{
	Name: "query_test_reports",
	Description: "Answer a natural-language query over the configured TRF test-report directory. " +
		"The query may name a feature (e.g. braking, steering), a time period (month, year, sprint " +
		"number, matched against report file names), and an output format: table (default), csv, " +
		"json, markdown, count, stats, or summary. Table results come back as structured records; " +
		"every other format comes back as text.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"query"},
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "Natural-language query, e.g. \"Get braking test data from February 2025 sprint 2 as CSV\"",
			},
		},
	},
}

// InputQueryTestReports is the input for the QueryTestReports tool.
type InputQueryTestReports struct {
	Query string `json:"query"`
}

// OutputQueryTestReports is the output for the QueryTestReports tool.
type OutputQueryTestReports struct {
	// Format is the output shape the query resolved to.
	Format string `json:"format"`
	// Count is the number of matching records (0 for empty-result text).
	Count int `json:"count"`
	// Records carries the result for table format.
	Records []report.Record `json:"records,omitempty"`
	// Text carries the result for every other format, including the
	// descriptive messages for empty results.
	Text string `json:"text,omitempty"`
}

// NewQueryTestReports builds the query_test_reports handler around an Agent.
func NewQueryTestReports(a *agent.Agent) func(context.Context, *mcp.CallToolRequest, InputQueryTestReports) (*mcp.CallToolResult, OutputQueryTestReports, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input InputQueryTestReports) (*mcp.CallToolResult, OutputQueryTestReports, error) {
		if input.Query == "" {
			return nil, OutputQueryTestReports{}, fmt.Errorf("query is required")
		}

		result, err := a.Run(ctx, input.Query)
		if err != nil {
			return nil, OutputQueryTestReports{}, err
		}

		return nil, OutputQueryTestReports{
			Format:  string(result.Format),
			Count:   len(result.Records),
			Records: result.Records,
			Text:    result.Text,
		}, nil
	}
}
