// Package qmetry publishes synthesized test cases into the QTM4J
// test-management plugin through its two-stage API: idempotency-free
// folder creation followed by chunked, partially-failable test case
// uploads.
package qmetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dt-pm-tools/testcase-pipeline/internal/config"
	"github.com/dt-pm-tools/testcase-pipeline/internal/jira"
	"github.com/dt-pm-tools/testcase-pipeline/internal/pipeline"
	"github.com/dt-pm-tools/testcase-pipeline/internal/remote"
)

const (
	folderPath   = "/plugins/servlet/ac/com.infostretch.QmetryTestManager/qtm4j-test-management/api/folders"
	testCasePath = "/rest/qtm4j/1.0/testcase"

	// chunkSize bounds how many test cases are grouped per upload
	// round; client-side rate/memory control, not an atomic request.
	chunkSize = 5

	// Hard transport limits, enforced client-side before every upload.
	maxSummaryLen      = 255
	maxDescriptionLen  = 1000
	maxPreconditionLen = 1000
)

// Publisher uploads test cases for one ticket over an authenticated
// session. Construct one per pipeline run; no state is shared across
// runs.
type Publisher struct {
	session    *jira.Session
	projectID  string
	projectKey string
	logger     *zap.Logger
}

// NewPublisher creates a publisher on an open session. The session
// must have been validated by jira.Open; a nil session is a
// configuration fault surfaced on Publish.
func NewPublisher(session *jira.Session, cfg config.Config) *Publisher {
	var logger *zap.Logger
	if session != nil {
		logger = session.Logger()
	} else {
		logger = zap.NewNop()
	}
	return &Publisher{
		session:    session,
		projectID:  cfg.QMetryProjectID,
		projectKey: cfg.QMetryProjectKey,
		logger:     logger,
	}
}

// Publish resolves a folder named after ticketID and uploads the test
// cases in chunks, judging each upload independently. It returns the
// aggregate counters; Success+Failed always equals len(cases) unless
// the returned error is non-nil, in which case no upload was counted.
//
// Re-running Publish for the same ticket creates a second folder with
// the same name; the remote does not deduplicate by name.
func (p *Publisher) Publish(ctx context.Context, cases []pipeline.TestCase, ticketID string) (Result, error) {
	if p.session == nil {
		return Result{}, remote.NewConfigurationError("qmetry: publish",
			fmt.Errorf("no authenticated session"))
	}
	if p.projectID == "" || p.projectKey == "" {
		return Result{}, remote.NewConfigurationError("qmetry: publish",
			fmt.Errorf("QMetry project id and key are required"))
	}

	// The plugin rejects state-changing calls unless an auth probe
	// immediately precedes them.
	if err := p.session.Probe(ctx); err != nil {
		return Result{}, err
	}

	folderID, err := p.CreateFolder(ctx, ticketID)
	if err != nil {
		return Result{}, err
	}
	p.logger.Info("folder created",
		zap.String("ticket", ticketID), zap.Int64("folder_id", folderID))

	var result Result
	for start := 0; start < len(cases); start += chunkSize {
		end := start + chunkSize
		if end > len(cases) {
			end = len(cases)
		}
		p.uploadChunk(ctx, cases[start:end], start, folderID, &result)
	}

	p.logger.Info("publish finished",
		zap.String("ticket", ticketID),
		zap.Int("success", result.Success),
		zap.Int("failed", result.Failed))
	return result, nil
}

// CreateFolder creates a TEST_CASE folder named after the ticket and
// returns its numeric id. Any non-2xx response is fatal for the whole
// publish since no upload can proceed without a folder.
func (p *Publisher) CreateFolder(ctx context.Context, name string) (int64, error) {
	op := fmt.Sprintf("qmetry: create folder %s", name)

	payload := folderPayload{
		Name:      name,
		ProjectID: p.projectID,
		ParentID:  -1,
		Type:      "TEST_CASE",
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, remote.NewConfigurationError(op, err)
	}

	req, err := p.session.NewRequest(ctx, http.MethodPost, folderPath, bytes.NewReader(data))
	if err != nil {
		return 0, remote.NewConfigurationError(op, err)
	}

	resp, err := p.session.Do(req)
	if err != nil {
		return 0, remote.NewTransientError(op, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return 0, remote.NewValidationError(op, resp.StatusCode, errorDetail(body))
	}

	var folder folderResponse
	if err := json.Unmarshal(body, &folder); err != nil {
		return 0, remote.NewValidationError(op, resp.StatusCode,
			fmt.Sprintf("invalid JSON response: %s", string(body)))
	}
	return folder.ID, nil
}

// uploadChunk posts each test case in the chunk in order. One item's
// failure never aborts siblings; counters and item errors accumulate
// into result.
func (p *Publisher) uploadChunk(ctx context.Context, chunk []pipeline.TestCase, offset int, folderID int64, result *Result) {
	for i, tc := range chunk {
		index := offset + i
		status, body, err := p.createTestCase(ctx, tc, folderID)
		if err == nil && (status == http.StatusOK || status == http.StatusCreated) {
			result.Success++
			continue
		}

		result.Failed++
		item := ItemError{Index: index, Summary: tc.Summary, Status: status}
		if err != nil {
			item.Body = err.Error()
		} else {
			item.Body = errorDetail(body)
		}
		result.Errors = append(result.Errors, item)
		p.logger.Warn("test case upload failed",
			zap.String("id", tc.ID),
			zap.Int("status", status),
			zap.String("detail", item.Body))
	}
}

func (p *Publisher) createTestCase(ctx context.Context, tc pipeline.TestCase, folderID int64) (int, []byte, error) {
	payload := p.buildPayload(tc, folderID)
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}

	req, err := p.session.NewRequest(ctx, http.MethodPost, testCasePath, bytes.NewReader(data))
	if err != nil {
		return 0, nil, err
	}

	resp, err := p.session.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body, nil
}

// buildPayload maps a TestCase onto the wire shape: joined steps into
// description, expected result into precondition, and each step
// exploded into a numbered step object. Expansion is per test case,
// not per chunk.
func (p *Publisher) buildPayload(tc pipeline.TestCase, folderID int64) testCasePayload {
	joined := strings.Join(tc.Steps, "\n")

	var steps []stepPayload
	for _, step := range tc.Steps {
		step = strings.TrimSpace(step)
		if step == "" {
			continue
		}
		steps = append(steps, stepPayload{
			StepDetails:    step,
			ExpectedResult: tc.ExpectedResult,
			ID:             len(steps) + 1,
			IsChecked:      false,
			IsExpanded:     true,
		})
	}

	return testCasePayload{
		Summary:      truncate(tc.Summary, maxSummaryLen),
		Description:  truncate(joined, maxDescriptionLen),
		Precondition: truncate(tc.ExpectedResult, maxPreconditionLen),
		FolderID:     strconv.FormatInt(folderID, 10),
		Priority:     "Medium",
		Status:       "Draft",
		Type:         "Functional",
		ProjectID:    p.projectID,
		ProjectKey:   p.projectKey,
		Steps:        steps,
	}
}

// errorDetail prefers the structured remote error body, falling back
// to raw text so the status detail is never lost.
func errorDetail(body []byte) string {
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err == nil {
		if msg, ok := parsed["message"].(string); ok && msg != "" {
			return msg
		}
		if pretty, err := json.MarshalIndent(parsed, "", "  "); err == nil {
			return string(pretty)
		}
	}
	return string(body)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
