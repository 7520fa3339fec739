package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dt-pm-tools/testcase-pipeline/internal/pipeline"
)

func sampleCases() []pipeline.TestCase {
	return pipeline.Synthesize([]string{
		"Verify that login succeeds",
		"Should show dashboard",
	})
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleCases()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Test Case ID", "Summary", "Type", "Priority", "Steps", "Expected Result"}, records[0])
	assert.Equal(t, "TC_001", records[1][0])
	assert.Equal(t, "Verify that login succeeds...", records[1][1])
	assert.Equal(t, "TC_002", records[2][0])
	assert.Contains(t, records[1][4], "1. Access the system")
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, sampleCases(), "ABC-1"))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Test Cases for ABC-1"))
	assert.Contains(t, out, "## TC_001")
	assert.Contains(t, out, "## TC_002")
	assert.Contains(t, out, "**Summary:** Verify that login succeeds...")
	assert.Contains(t, out, "4. Verify the system's response")
}
