package pipeline

import (
	"fmt"
	"strings"
)

// TestCase is a structured verification procedure derived from one
// requirement. A slice of TestCases belongs to exactly one ticket for
// the duration of a publish.
type TestCase struct {
	ID             string
	Summary        string
	Type           string
	Priority       string
	Steps          []string
	ExpectedResult string
}

// minRequirementLen filters out fragments too short to be a real
// requirement.
const minRequirementLen = 5

// summaryActionLen bounds the action text embedded in summaries and
// expected results.
const summaryActionLen = 100

// Synthesize converts requirements into test cases. Requirements
// shorter than five characters are dropped; output order follows input
// order; ids are sequential per call (TC_001, TC_002, ...).
func Synthesize(requirements []string) []TestCase {
	var cases []TestCase
	id := 1
	for _, requirement := range requirements {
		if len(requirement) < minRequirementLen {
			continue
		}
		cases = append(cases, synthesizeOne(requirement, id))
		id++
	}
	return cases
}

func synthesizeOne(requirement string, id int) TestCase {
	action := deriveAction(requirement)
	short := truncate(action, summaryActionLen)

	return TestCase{
		ID:       fmt.Sprintf("TC_%03d", id),
		Summary:  fmt.Sprintf("Verify %s...", short),
		Type:     "Functional",
		Priority: "High",
		Steps: []string{
			"1. Access the system",
			"2. Navigate to the relevant section",
			fmt.Sprintf("3. Perform %s", action),
			"4. Verify the system's response",
		},
		ExpectedResult: fmt.Sprintf("The system should successfully handle %s...", short),
	}
}

// deriveAction extracts the action phrase: everything after the first
// "verify", "should", or "must" (checked in that order,
// case-insensitively), or the whole requirement if none occurs.
func deriveAction(requirement string) string {
	lower := strings.ToLower(requirement)
	for _, keyword := range []string{"verify", "should", "must"} {
		if idx := strings.Index(lower, keyword); idx >= 0 {
			return strings.TrimSpace(requirement[idx+len(keyword):])
		}
	}
	return requirement
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
