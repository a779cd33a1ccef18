// SPDX-License-Identifier: Apache-2.0

package report

import (
	"regexp"
	"strings"
)

// blockDelimiter separates feature entries within a .trf document. The split
// is a plain substring split; the format has no escaping.
const blockDelimiter = "---"

// fieldLine matches one `key = value` line. The value is greedy to end of
// line, so embedded '=' characters are kept.
var fieldLine = regexp.MustCompile(`([A-Za-z_]+)\s*=\s*(.+)`)

// Recognized block keys. Unrecognized keys still land in the per-block
// mapping but never surface in a Record.
const (
	keyFeatureName   = "feature_name"
	keyStatus        = "status"
	keyMeasuredValue = "measured_value"
	keyRemarks       = "remarks"
)

// Parse converts raw .trf document content into records, in block order.
// A block yields a Record only if it contains a feature_name key; blank
// blocks are skipped. Parse never fails: malformed lines simply do not match
// and an empty or whitespace-only document yields no records.
func Parse(content string) []Record {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	blocks := strings.Split(content, blockDelimiter)
	records := make([]Record, 0, len(blocks))

	for _, block := range blocks {
		if strings.TrimSpace(block) == "" {
			continue
		}

		fields := scanBlock(block)
		if _, ok := fields[keyFeatureName]; !ok {
			continue
		}

		records = append(records, Record{
			Feature: fields[keyFeatureName],
			Status:  fields[keyStatus],
			Value:   fields[keyMeasuredValue],
			Remarks: fields[keyRemarks],
		})
	}

	return records
}

// scanBlock collects every `key = value` line of one block into a mapping.
// Keys are case-insensitive and lowercased; the last occurrence of a
// duplicate key wins. Values are trimmed of surrounding whitespace and never
// span lines.
func scanBlock(block string) map[string]string {
	fields := make(map[string]string)
	for _, m := range fieldLine.FindAllStringSubmatch(block, -1) {
		key := strings.ToLower(m[1])
		fields[key] = strings.TrimSpace(m[2])
	}
	return fields
}
