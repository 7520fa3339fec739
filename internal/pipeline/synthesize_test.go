package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeLengthFilter(t *testing.T) {
	// 4 characters is noise, 5 is a requirement.
	cases := Synthesize([]string{"abcd", "abcde"})
	require.Len(t, cases, 1)
	assert.Equal(t, "TC_001", cases[0].ID)

	assert.Empty(t, Synthesize([]string{"abcd", "xy", ""}))
}

func TestSynthesizeOutputNeverLongerThanInput(t *testing.T) {
	inputs := []string{"Verify login", "no", "Should display dashboard", "must persist the record"}
	cases := Synthesize(inputs)
	assert.LessOrEqual(t, len(cases), len(inputs))
}

func TestSynthesizeKeywordPrecedence(t *testing.T) {
	tests := []struct {
		name        string
		requirement string
		wantAction  string
	}{
		{
			name:        "verify keyword",
			requirement: "Verify that login succeeds",
			wantAction:  "that login succeeds",
		},
		{
			name:        "should keyword",
			requirement: "The page should show dashboard",
			wantAction:  "show dashboard",
		},
		{
			name:        "must keyword",
			requirement: "The system must persist records",
			wantAction:  "persist records",
		},
		{
			name:        "verify wins over should",
			requirement: "User should verify the invoice total",
			wantAction:  "the invoice total",
		},
		{
			name:        "no keyword falls back to full text",
			requirement: "Login page renders",
			wantAction:  "Login page renders",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cases := Synthesize([]string{tt.requirement})
			require.Len(t, cases, 1)

			tc := cases[0]
			assert.Equal(t, "Verify "+tt.wantAction+"...", tc.Summary)
			assert.Equal(t, "The system should successfully handle "+tt.wantAction+"...", tc.ExpectedResult)
			require.Len(t, tc.Steps, 4)
			assert.Equal(t, "3. Perform "+tt.wantAction, tc.Steps[2])
		})
	}
}

func TestSynthesizeTemplate(t *testing.T) {
	cases := Synthesize([]string{"Verify that login succeeds"})
	require.Len(t, cases, 1)

	tc := cases[0]
	assert.Equal(t, "Functional", tc.Type)
	assert.Equal(t, "High", tc.Priority)
	assert.Equal(t, []string{
		"1. Access the system",
		"2. Navigate to the relevant section",
		"3. Perform that login succeeds",
		"4. Verify the system's response",
	}, tc.Steps)
}

func TestSynthesizeSequentialIDs(t *testing.T) {
	cases := Synthesize([]string{"first requirement", "tiny", "second requirement", "third requirement"})
	require.Len(t, cases, 3)
	assert.Equal(t, "TC_001", cases[0].ID)
	assert.Equal(t, "TC_002", cases[1].ID)
	assert.Equal(t, "TC_003", cases[2].ID)
}

func TestSynthesizeTruncatesLongActions(t *testing.T) {
	long := "Verify " + strings.Repeat("a", 300)
	cases := Synthesize([]string{long})
	require.Len(t, cases, 1)

	tc := cases[0]
	assert.Equal(t, "Verify "+strings.Repeat("a", 100)+"...", tc.Summary)
	assert.Equal(t, "The system should successfully handle "+strings.Repeat("a", 100)+"...", tc.ExpectedResult)
	// Steps carry the full action untruncated.
	assert.Equal(t, "3. Perform "+strings.Repeat("a", 300), tc.Steps[2])
}

func TestSynthesizeScenarioA(t *testing.T) {
	description := "Verify that login succeeds\n* Should show dashboard"
	requirements := ExtractRequirements(description)
	require.Equal(t, []string{"Verify that login succeeds", "Should show dashboard"}, requirements)

	cases := Synthesize(requirements)
	require.Len(t, cases, 2)
	assert.Equal(t, "TC_001", cases[0].ID)
	assert.Equal(t, "Verify that login succeeds...", cases[0].Summary)
	assert.Equal(t, "TC_002", cases[1].ID)
	assert.Equal(t, "Verify show dashboard...", cases[1].Summary)
}
