// SPDX-License-Identifier: Apache-2.0

// Package report implements the TRF test-report data model: the Record type,
// the block-delimited .trf document parser, and the directory Store that
// aggregates records across report files.
package report

// Record is one feature's test outcome extracted from one document block.
// All fields are free-form text; absent keys in the source block yield empty
// strings, never an error.
type Record struct {
	// Feature is the test subject name, e.g. "Braking". A block without a
	// feature_name key never becomes a Record.
	Feature string `json:"feature"`
	Status  string `json:"status"`
	// Value holds the measured_value field verbatim; its format is not
	// interpreted or validated.
	Value   string `json:"value"`
	Remarks string `json:"remarks"`
	// File is the name of the originating document. It is attached by the
	// Store during loading, not by the parser.
	File string `json:"file"`
}
