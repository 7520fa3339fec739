package jira

// Issue represents a JIRA issue from the REST API v2.
type Issue struct {
	Key    string `json:"key"`
	Fields Fields `json:"fields"`
}

// Fields contains the issue fields the pipeline consumes. The v2 API
// returns description as plain wiki-markup text, not ADF.
type Fields struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

// Ticket is the pipeline's view of a fetched issue. Immutable once
// fetched; owned by the caller for one pipeline run.
type Ticket struct {
	Key         string
	Summary     string
	Description string
}
