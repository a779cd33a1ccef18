// SPDX-License-Identifier: Apache-2.0

package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trfproj/trf-mcp/internal/report"
)

func TestParse_BlockPerRecord(t *testing.T) {
	content := `feature_name = Braking
status = Pass
measured_value = 12.5
remarks = within tolerance
---
feature_name = Steering
status = Fail
measured_value = 3.1
remarks = drift at speed
---
feature_name = Suspension
status = Pass
`
	records := report.Parse(content)
	require.Len(t, records, 3)

	assert.Equal(t, report.Record{Feature: "Braking", Status: "Pass", Value: "12.5", Remarks: "within tolerance"}, records[0])
	assert.Equal(t, report.Record{Feature: "Steering", Status: "Fail", Value: "3.1", Remarks: "drift at speed"}, records[1])
	// Absent keys yield empty strings, never an error.
	assert.Equal(t, report.Record{Feature: "Suspension", Status: "Pass"}, records[2])
}

func TestParse_BlockWithoutFeatureNameYieldsNothing(t *testing.T) {
	content := `status = Pass
measured_value = 42
remarks = orphan block
---
feature_name = Engine
status = Pass
`
	records := report.Parse(content)
	require.Len(t, records, 1)
	assert.Equal(t, "Engine", records[0].Feature)
}

func TestParse_DuplicateKeyLastWins(t *testing.T) {
	content := `feature_name = Hydraulics
status = Fail
status = Pass
`
	records := report.Parse(content)
	require.Len(t, records, 1)
	assert.Equal(t, "Pass", records[0].Status)
}

func TestParse_ValueKeepsEmbeddedEquals(t *testing.T) {
	content := `feature_name = Braking
remarks = torque = 45 Nm at lever
`
	records := report.Parse(content)
	require.Len(t, records, 1)
	assert.Equal(t, "torque = 45 Nm at lever", records[0].Remarks)
}

func TestParse_KeysAreCaseInsensitive(t *testing.T) {
	content := `FEATURE_NAME = Braking
Status = Pass
MEASURED_VALUE = 9
`
	records := report.Parse(content)
	require.Len(t, records, 1)
	assert.Equal(t, "Braking", records[0].Feature)
	assert.Equal(t, "Pass", records[0].Status)
	assert.Equal(t, "9", records[0].Value)
}

func TestParse_ValueIsTrimmed(t *testing.T) {
	content := "feature_name =    Braking   \nstatus =  Pass\t\n"
	records := report.Parse(content)
	require.Len(t, records, 1)
	assert.Equal(t, "Braking", records[0].Feature)
	assert.Equal(t, "Pass", records[0].Status)
}

func TestParse_BlankBlocksSkipped(t *testing.T) {
	content := "\n---\n   \n---\nfeature_name = Engine\n---\n\t\n"
	records := report.Parse(content)
	require.Len(t, records, 1)
	assert.Equal(t, "Engine", records[0].Feature)
}

func TestParse_EmptyContent(t *testing.T) {
	assert.Empty(t, report.Parse(""))
	assert.Empty(t, report.Parse("   \n\t\n  "))
}

func TestParse_UnrecognizedKeysDoNotSurface(t *testing.T) {
	content := `feature_name = Braking
operator = J. Smith
rig_id = 7
`
	records := report.Parse(content)
	require.Len(t, records, 1)
	assert.Equal(t, report.Record{Feature: "Braking"}, records[0])
}

func TestParse_FileNotSetByParser(t *testing.T) {
	records := report.Parse("feature_name = Braking\n")
	require.Len(t, records, 1)
	assert.Empty(t, records[0].File, "file association happens during loading, not parsing")
}
