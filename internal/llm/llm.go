// Package llm wraps the text-completion collaborator behind a small
// interface. The model's internals are opaque: text in, text out,
// fallible. The pipeline must keep working when it is absent or
// failing.
package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Completer is an opaque, fallible text-to-text function.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const systemPrompt = `You are a QA expert. Generate detailed test cases from the given user story. For each user story, include: Positive test cases, Validation (negative/edge case) test cases, UI/UX test cases, Performance test cases, Security test cases, and all possible combination test cases. For each test case, provide: test case ID, description, preconditions, steps, expected results, and priority. Clearly separate positive, validation, UI/UX, performance, security, and combination test cases.`

// BuildPrompt composes the fixed synthesis prompt for one user story.
func BuildPrompt(userStory string) string {
	return fmt.Sprintf("%s\n\nGenerate test cases for this user story:\n\n%s", systemPrompt, userStory)
}

var caseBoundaryRe = regexp.MustCompile(`\n(?:Test Case|TC\d+)`)

// ParseCases splits a completion reply into individual test case
// blocks. Heuristic: a line starting with "Test Case" or "TC<n>"
// opens a new block. Blank results are dropped.
func ParseCases(reply string) []string {
	if strings.TrimSpace(reply) == "" {
		return nil
	}

	var blocks []string
	last := 0
	for _, loc := range caseBoundaryRe.FindAllStringIndex(reply, -1) {
		if block := strings.TrimSpace(reply[last:loc[0]]); block != "" {
			blocks = append(blocks, block)
		}
		last = loc[0] + 1 // keep the "Test Case"/"TC" marker with its block
	}
	if block := strings.TrimSpace(reply[last:]); block != "" {
		blocks = append(blocks, block)
	}
	return blocks
}
