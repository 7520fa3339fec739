// Package report renders synthesized test cases for human consumers.
// These writers stand in for the external report generators that
// consume the synthesizer's output alongside the publisher.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dt-pm-tools/testcase-pipeline/internal/pipeline"
)

// WriteCSV writes test cases as CSV with a header row.
func WriteCSV(w io.Writer, cases []pipeline.TestCase) error {
	cw := csv.NewWriter(w)

	header := []string{"Test Case ID", "Summary", "Type", "Priority", "Steps", "Expected Result"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tc := range cases {
		record := []string{
			tc.ID,
			tc.Summary,
			tc.Type,
			tc.Priority,
			strings.Join(tc.Steps, "\n"),
			tc.ExpectedResult,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing record %s: %w", tc.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteMarkdown writes test cases as a titled markdown document, one
// section per case.
func WriteMarkdown(w io.Writer, cases []pipeline.TestCase, title string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Test Cases for %s\n\n", title)
	for _, tc := range cases {
		fmt.Fprintf(&b, "## %s\n\n", tc.ID)
		fmt.Fprintf(&b, "**Summary:** %s\n\n", tc.Summary)
		fmt.Fprintf(&b, "**Type:** %s  \n**Priority:** %s\n\n", tc.Type, tc.Priority)
		b.WriteString("**Steps:**\n\n")
		for _, step := range tc.Steps {
			fmt.Fprintf(&b, "%s\n", step)
		}
		fmt.Fprintf(&b, "\n**Expected Result:** %s\n\n", tc.ExpectedResult)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
