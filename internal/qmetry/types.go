package qmetry

// folderPayload is the body for the QTM4J folder-creation call.
type folderPayload struct {
	Name      string `json:"name"`
	ProjectID string `json:"projectId"`
	ParentID  int    `json:"parentId"`
	Type      string `json:"type"`
}

// folderResponse carries the numeric folder id returned on 200/201.
type folderResponse struct {
	ID int64 `json:"id"`
}

// stepPayload is one exploded test step on the wire. The two UI-state
// flags are fixed by the remote contract.
type stepPayload struct {
	StepDetails    string `json:"stepDetails"`
	ExpectedResult string `json:"expectedResult"`
	ID             int    `json:"id"`
	IsChecked      bool   `json:"isChecked"`
	IsExpanded     bool   `json:"isExpanded"`
}

// testCasePayload is the body for POST /rest/qtm4j/1.0/testcase.
type testCasePayload struct {
	Summary      string        `json:"summary"`
	Description  string        `json:"description"`
	Precondition string        `json:"precondition"`
	FolderID     string        `json:"folderId"`
	Priority     string        `json:"priority"`
	Status       string        `json:"status"`
	Type         string        `json:"type"`
	ProjectID    string        `json:"projectId"`
	ProjectKey   string        `json:"projectKey"`
	Steps        []stepPayload `json:"steps"`
}

// ItemError records one failed upload for user-visible reporting.
type ItemError struct {
	Index   int    `json:"index"`
	Summary string `json:"summary"`
	Status  int    `json:"status"`
	Body    string `json:"body"`
}

// Result is the aggregate outcome of a publish. Partial failure is a
// valid outcome, not an error: callers must check both counters.
type Result struct {
	Success int         `json:"successCount"`
	Failed  int         `json:"failedCount"`
	Errors  []ItemError `json:"errors,omitempty"`
}

// Total returns the number of test cases accounted for.
func (r Result) Total() int {
	return r.Success + r.Failed
}
