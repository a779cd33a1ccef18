// SPDX-License-Identifier: Apache-2.0

package query

import (
	"errors"
	"strings"

	"github.com/trfproj/trf-mcp/internal/report"
)

// ErrNoMatches signals that the filter produced zero survivors. Like the
// store sentinels this is a reportable outcome, not a fault.
var ErrNoMatches = errors.New("no matching records found")

// dedupKey identifies a record for deduplication. Remarks are deliberately
// excluded: two records identical in every other field collapse to the
// first-seen one and the later remarks value is lost. This mirrors the
// established query contract; do not add Remarks here without a product
// decision.
type dedupKey struct {
	feature string
	status  string
	value   string
	file    string
}

// Filter selects the records matching the feature and period constraints,
// deduplicated, preserving the order of first occurrence. Zero survivors
// yield ErrNoMatches so callers can tell an empty result from no query.
func Filter(records []report.Record, p Params) ([]report.Record, error) {
	seen := make(map[dedupKey]struct{})
	var results []report.Record

	for _, rec := range records {
		if p.Feature != "" && !strings.Contains(strings.ToLower(rec.Feature), strings.ToLower(p.Feature)) {
			continue
		}
		if !matchesAnyPeriod(rec.File, p.Periods) {
			continue
		}

		key := dedupKey{feature: rec.Feature, status: rec.Status, value: rec.Value, file: rec.File}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		results = append(results, rec)
	}

	if len(results) == 0 {
		return nil, ErrNoMatches
	}
	return results, nil
}

// matchesAnyPeriod implements the OR across descriptors. An empty descriptor
// list imposes no constraint.
func matchesAnyPeriod(file string, periods []Period) bool {
	if len(periods) == 0 {
		return true
	}
	for _, p := range periods {
		if p.matchesFile(file) {
			return true
		}
	}
	return false
}
