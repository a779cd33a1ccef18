// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/trfproj/trf-mcp/internal/query"
)

// ErrExtractionFailed is returned when no parameter object can be recovered
// from the model's response at all. Structurally wrong but parseable output
// does not trigger it; that degrades to defaults instead.
var ErrExtractionFailed = errors.New("failed to extract query parameters")

// extractionSystemPrompt instructs the model to act as a pure JSON
// converter for query parameters.
const extractionSystemPrompt = `You are a JSON converter.

Your job: Convert the user query into a JSON object. Return ONLY JSON, nothing else.

Do not write explanation, code blocks, or markdown. Just the JSON object.

Template:
{
  "feature": <feature name or null>,
  "periods": [<list of period objects OR empty list>],
  "format": <output format requested>
}

Period object template:
{"month": <month name or null>, "year": <4-digit year string or null>, "sprint": <sprint number as string or null>}

Format detection rules:
- "summary" if user asks for summary, overview, analysis
- "csv" if user asks for CSV, spreadsheet, export
- "json" if user asks for JSON format
- "markdown" if user asks for markdown, table format
- "count" if user asks for count, total, how many
- "stats" if user asks for stats, statistics, breakdown
- "default" otherwise

Valid output examples:
{"feature": "Braking", "periods": [], "format": "table"}
{"feature": null, "periods": [{"month": "February", "year": "2025", "sprint": "2"}], "format": "csv"}
{"feature": "Steering", "periods": [{"month": "March", "year": "2024", "sprint": "1"}], "format": "summary"}

Remember: Return ONLY the JSON object. No text before or after.`

// looseString tolerates the scalar shapes language models actually emit:
// strings, numbers, booleans, and null all stringify; anything else becomes
// empty rather than failing the whole parse.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*s = ""
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = looseString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = looseString(num.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*s = looseString(fmt.Sprintf("%t", b))
		return nil
	}

	*s = ""
	return nil
}

// paramsEnvelope is the tolerant wire shape of the extractor's JSON output.
// Periods stays raw so a non-list value degrades to "no constraint" instead
// of failing the unmarshal.
type paramsEnvelope struct {
	Feature looseString     `json:"feature"`
	Periods json.RawMessage `json:"periods"`
	Format  looseString     `json:"format"`
}

type periodEnvelope struct {
	Month  looseString `json:"month"`
	Year   looseString `json:"year"`
	Sprint looseString `json:"sprint"`
}

// parseParams converts a raw model response into query parameters. Missing
// or malformed fields become "no constraint" / default format per the
// extractor contract; only a response with no recoverable JSON object errors.
func parseParams(response string) (query.Params, error) {
	jsonText := extractJSON(response)
	if jsonText == "" {
		return query.Params{}, fmt.Errorf("%w: no JSON object in response", ErrExtractionFailed)
	}

	var envelope paramsEnvelope
	if err := json.Unmarshal([]byte(jsonText), &envelope); err != nil {
		repaired := repairJSON(jsonText)
		if err2 := json.Unmarshal([]byte(repaired), &envelope); err2 != nil {
			return query.Params{}, fmt.Errorf("%w: %v (after repair: %v)", ErrExtractionFailed, err, err2)
		}
	}

	params := query.Params{
		Feature: string(envelope.Feature),
		Format:  query.ParseFormat(string(envelope.Format)),
	}

	var periods []periodEnvelope
	if len(envelope.Periods) > 0 {
		// A non-list periods value is an extraction-format fault: drop the
		// constraint, keep going.
		_ = json.Unmarshal(envelope.Periods, &periods)
	}
	for _, p := range periods {
		params.Periods = append(params.Periods, query.Period{
			Month:  string(p.Month),
			Year:   string(p.Year),
			Sprint: string(p.Sprint),
		})
	}

	return params, nil
}

// extractJSON finds the first complete JSON object in a model response,
// tolerating markdown fences and surrounding prose.
func extractJSON(response string) string {
	response = codeFence.ReplaceAllString(response, "")

	start := strings.Index(response, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	for i := start; i < len(response); i++ {
		switch response[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return response[start : i+1]
			}
		}
	}
	return ""
}

var (
	codeFence      = regexp.MustCompile("```(?:json)?\\s*")
	trailingCommas = regexp.MustCompile(`,\s*([}\]])`)
)

// repairJSON applies best-effort cleanup of common model JSON mistakes:
// smart and single quotes, escaped whitespace, trailing commas. Only used
// after a strict parse has already failed.
func repairJSON(text string) string {
	replacer := strings.NewReplacer(
		"‘", `"`, "’", `"`,
		"“", `"`, "”", `"`,
		"'", `"`,
		`\n`, " ",
		`\t`, " ",
	)
	text = replacer.Replace(text)
	return trailingCommas.ReplaceAllString(text, "$1")
}

// extractParams runs the extraction round-trip against the model. A client
// error passes through unwrapped; Run turns it into user-visible text.
func (a *Agent) extractParams(ctx context.Context, prompt string) (query.Params, error) {
	response, err := a.extractor.CompleteWithSystem(ctx, extractionSystemPrompt, prompt)
	if err != nil {
		return query.Params{}, err
	}
	a.log.Debug("raw extraction response", zap.String("response", response))

	return parseParams(response)
}
