package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractRequirements(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        []string
	}{
		{
			name:        "plain lines",
			description: "Verify login works\nShould show dashboard",
			want:        []string{"Verify login works", "Should show dashboard"},
		},
		{
			name:        "strips html tags",
			description: "<p>Verify login works</p>\n<b>Should show dashboard</b>",
			want:        []string{"Verify login works", "Should show dashboard"},
		},
		{
			name:        "strips panel markers",
			description: "{panel}Verify login works{/panel}",
			want:        []string{"Verify login works"},
		},
		{
			name:        "strips bullet and heading prefixes",
			description: "# Heading requirement\n* bullet requirement\n- dash requirement\n  indented requirement",
			want:        []string{"Heading requirement", "bullet requirement", "dash requirement", "indented requirement"},
		},
		{
			name:        "drops blank lines",
			description: "first requirement\n\n\nsecond requirement\n",
			want:        []string{"first requirement", "second requirement"},
		},
		{
			name:        "malformed markup does not panic",
			description: "<div unclosed Verify broken <markup\nShould still work",
			want:        []string{"<div unclosed Verify broken <markup", "Should still work"},
		},
		{
			name:        "empty input",
			description: "",
			want:        nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractRequirements(tt.description)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractRequirementsFallback(t *testing.T) {
	// A description that is pure markers on every line collapses to
	// nothing; the whole cleaned text comes back as one requirement.
	description := "<p></p>\n{panel}{/panel}"
	got := ExtractRequirements(description)
	assert.Empty(t, got)

	// Non-empty cleaned text with no surviving lines is impossible by
	// construction (any non-blank line survives), so the fallback only
	// fires when stripping was the sole content. Verify it stays a
	// single element when it does fire.
	single := ExtractRequirements("   lone requirement   ")
	assert.Equal(t, []string{"lone requirement"}, single)
}

func TestExtractRequirementsIdempotent(t *testing.T) {
	description := "<p># Verify login works</p>\n{panel}* Should show dashboard{/panel}"
	first := ExtractRequirements(description)
	second := ExtractRequirements(strings.Join(first, "\n"))
	assert.Equal(t, first, second)
}
