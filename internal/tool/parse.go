// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/trfproj/trf-mcp/internal/report"
)

// MetadataParseReportDocument describes the parse_report_document tool.
var MetadataParseReportDocument = &mcp.Tool{
	Name: "parse_report_document",
	Description: "Parse raw TRF test-report content and return the extracted feature records. " +
		"A TRF document holds '---'-delimited blocks of 'key = value' lines; a block produces a " +
		"record only when it carries a feature_name key. Recognized keys: feature_name, status, " +
		"measured_value, remarks. Useful when the caller already holds report content instead of " +
		"querying the configured data directory.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"content"},
		"properties": map[string]interface{}{
			"content": map[string]interface{}{
				"type":        "string",
				"description": "Raw content of the TRF document to parse",
			},
			"file": map[string]interface{}{
				"type":        "string",
				"description": "Optional source file name attached to each extracted record.",
			},
		},
	},
}

// InputParseReportDocument is the input for the ParseReportDocument tool.
type InputParseReportDocument struct {
	Content string `json:"content"`
	File    string `json:"file"`
}

// OutputParseReportDocument is the output for the ParseReportDocument tool.
type OutputParseReportDocument struct {
	// Records are the feature records extracted from the document, in block order.
	Records []report.Record `json:"records"`
	// Count is the number of extracted records.
	Count int `json:"count"`
}

// ParseReportDocument runs the TRF parser over the provided content.
func ParseReportDocument(_ context.Context, _ *mcp.CallToolRequest, input InputParseReportDocument) (*mcp.CallToolResult, OutputParseReportDocument, error) {
	if input.Content == "" {
		return nil, OutputParseReportDocument{}, fmt.Errorf("content is required")
	}

	records := report.Parse(input.Content)
	if input.File != "" {
		for i := range records {
			records[i].File = input.File
		}
	}

	return nil, OutputParseReportDocument{
		Records: records,
		Count:   len(records),
	}, nil
}
