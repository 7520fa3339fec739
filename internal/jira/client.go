package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/dt-pm-tools/testcase-pipeline/internal/remote"
	"github.com/dt-pm-tools/testcase-pipeline/internal/retry"
)

// Client fetches tickets over an authenticated Session with bounded
// retry on transient failure.
type Client struct {
	session *Session
	policy  retry.Policy
}

// NewClient creates a ticket client on an open session using the
// default retry policy (3 attempts, 2s backoff).
func NewClient(session *Session) *Client {
	return &Client{session: session, policy: retry.Default}
}

// NewClientWithPolicy creates a ticket client with an explicit policy.
func NewClientWithPolicy(session *Session, policy retry.Policy) *Client {
	return &Client{session: session, policy: policy}
}

// FetchTicket fetches a ticket by key. The key is trimmed of
// surrounding whitespace before use. Transport failures are retried
// per the policy; a clean "not found" is terminal and never retried.
func (c *Client) FetchTicket(ctx context.Context, key string) (*Ticket, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, remote.NewConfigurationError("jira: fetch ticket", fmt.Errorf("empty ticket key"))
	}

	var ticket *Ticket
	err := c.policy.Do(ctx, func(ctx context.Context) error {
		t, err := c.fetchOnce(ctx, key)
		if err != nil {
			c.session.Logger().Warn("ticket fetch attempt failed",
				zap.String("key", key), zap.Error(err))
			return err
		}
		ticket = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

func (c *Client) fetchOnce(ctx context.Context, key string) (*Ticket, error) {
	op := fmt.Sprintf("jira: fetch ticket %s", key)

	path := fmt.Sprintf("/rest/api/2/issue/%s?fields=summary,description", key)
	req, err := c.session.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, remote.NewConfigurationError(op, err)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, remote.NewTransientError(op, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fallthrough to decode
	case resp.StatusCode == http.StatusNotFound:
		body, _ := io.ReadAll(resp.Body)
		return nil, remote.NewNotFoundError(op, resp.StatusCode, string(body))
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		body, _ := io.ReadAll(resp.Body)
		return nil, remote.NewAuthError(op, resp.StatusCode, string(body))
	default:
		// 5xx and rate limiting are worth another attempt.
		body, _ := io.ReadAll(resp.Body)
		return nil, remote.NewTransientError(op,
			fmt.Errorf("JIRA API returned %d: %s", resp.StatusCode, string(body)))
	}

	var issue Issue
	if err := json.NewDecoder(resp.Body).Decode(&issue); err != nil {
		return nil, remote.NewTransientError(op, fmt.Errorf("decoding response: %w", err))
	}

	return &Ticket{
		Key:         issue.Key,
		Summary:     issue.Fields.Summary,
		Description: issue.Fields.Description,
	}, nil
}
