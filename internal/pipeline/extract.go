// Package pipeline holds the pure transformation steps between a
// fetched ticket and publishable test cases: requirement extraction
// and test case synthesis. No I/O happens here.
package pipeline

import (
	"regexp"
	"strings"
)

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// ExtractRequirements normalizes a ticket description into discrete
// requirement lines. HTML tags and JIRA panel markers are stripped,
// lines are trimmed, blanks dropped, and leading list/heading markers
// removed. If nothing survives, the whole cleaned description comes
// back as a single requirement so non-empty input never yields an
// empty result.
func ExtractRequirements(description string) []string {
	if description == "" {
		return nil
	}

	cleaned := htmlTagRe.ReplaceAllString(description, "")
	cleaned = strings.ReplaceAll(cleaned, "{panel}", "")
	cleaned = strings.ReplaceAll(cleaned, "{/panel}", "")

	var lines []string
	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// One pass of leading-marker stripping, not a markdown parser.
		line = strings.TrimLeft(line, "#*- ")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		fallback := strings.TrimSpace(cleaned)
		if fallback == "" {
			return nil
		}
		return []string{fallback}
	}
	return lines
}
