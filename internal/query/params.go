// SPDX-License-Identifier: Apache-2.0

// Package query holds the extracted query parameters and the deterministic
// record filter that applies them.
package query

import "strings"

// Format is the requested output shape for a query result.
type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatSummary  Format = "summary"
	FormatCount    Format = "count"
	FormatStats    Format = "stats"
)

// ParseFormat validates a format name against the enumerated set. "default",
// the empty string, and anything unrecognized fall back to FormatTable; the
// extractor's output is never trusted to be well-formed.
func ParseFormat(s string) Format {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatTable, FormatCSV, FormatJSON, FormatMarkdown, FormatSummary, FormatCount, FormatStats:
		return f
	default:
		return FormatTable
	}
}

// Period is one OR-branch of the time filter. Its present fields are ANDed;
// an absent field imposes no constraint, so a zero Period matches every
// record. All matching is substring containment against the record's source
// file name.
type Period struct {
	// Month is a free-form month name; only its first three characters are
	// used, lowercased, against the lowercased file name.
	Month string `json:"month,omitempty"`
	// Year is matched as a literal substring of the file name.
	Year string `json:"year,omitempty"`
	// Sprint is matched as a literal substring of the file name.
	Sprint string `json:"sprint,omitempty"`
}

// matchesFile reports whether every present field of the descriptor occurs
// in the given file name.
func (p Period) matchesFile(file string) bool {
	lower := strings.ToLower(file)

	if p.Month != "" {
		abbr := strings.ToLower(p.Month)
		if len(abbr) > 3 {
			abbr = abbr[:3]
		}
		if !strings.Contains(lower, abbr) {
			return false
		}
	}
	if p.Year != "" && !strings.Contains(file, p.Year) {
		return false
	}
	if p.Sprint != "" && !strings.Contains(file, p.Sprint) {
		return false
	}
	return true
}

// Params are the extracted query parameters consumed by Filter and the
// formatter. The zero value imposes no constraints and renders as a table.
type Params struct {
	// Feature filters by case-insensitive substring; empty means no
	// constraint.
	Feature string
	// Periods are ORed; empty means every record passes the period stage.
	Periods []Period
	Format  Format
}
