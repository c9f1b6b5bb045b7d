// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jira

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gojira "github.com/andygrunwald/go-jira"
	exporterrors "github.com/sirseerhq/jira-export/internal/errors"
)

// MockClient is a mock implementation of the Client interface for testing.
type MockClient struct {
	// Issues to return
	Issues []gojira.Issue

	// Total to report; defaults to len(Issues) when zero
	Total int

	// Error to return
	Error error

	// Behavior flags
	ShouldFailAuth    bool
	ShouldFailNetwork bool
	ShouldFailQuery   bool

	// Track calls for verification
	CallCount   int
	LastOptions SearchOptions
}

// NewMockClient creates a new mock client with default test data
func NewMockClient() *MockClient {
	return &MockClient{
		Issues: generateTestIssues(),
	}
}

// SearchIssues implements the Client interface
func (m *MockClient) SearchIssues(ctx context.Context, opts SearchOptions) (*SearchResult, error) {
	m.CallCount++
	m.LastOptions = opts

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if m.ShouldFailAuth {
		return nil, &APIError{
			StatusCode: http.StatusUnauthorized,
			Body:       "Client must be authenticated to access this resource.",
			kind:       exporterrors.ErrInvalidCredentials,
		}
	}

	if m.ShouldFailQuery {
		return nil, &APIError{
			StatusCode: http.StatusBadRequest,
			Body:       fmt.Sprintf("Error in the JQL Query: %q", opts.JQL),
			kind:       exporterrors.ErrInvalidQuery,
		}
	}

	if m.ShouldFailNetwork {
		return nil, fmt.Errorf("dial tcp: connection refused: %w", exporterrors.ErrNetworkFailure)
	}

	if m.Error != nil {
		return nil, m.Error
	}

	issues := m.Issues
	if opts.MaxResults > 0 && len(issues) > opts.MaxResults {
		issues = issues[:opts.MaxResults]
	}

	total := m.Total
	if total < len(m.Issues) {
		total = len(m.Issues)
	}

	return &SearchResult{
		Issues:     issues,
		Total:      total,
		MaxResults: opts.MaxResults,
	}, nil
}

// generateTestIssues creates sample issue data for testing
func generateTestIssues() []gojira.Issue {
	created := time.Date(2024, 3, 4, 9, 15, 0, 0, time.UTC)
	updated := created.Add(26 * time.Hour)

	return []gojira.Issue{
		{
			Key: "DEMO-1",
			Fields: &gojira.IssueFields{
				Summary:     "Login page rejects valid passwords",
				Description: "Steps to reproduce:\n1. Open login\n2. Enter valid password",
				Status:      &gojira.Status{Name: "In Progress"},
				Priority:    &gojira.Priority{Name: "High"},
				Type:        gojira.IssueType{Name: "Bug"},
				Assignee:    &gojira.User{DisplayName: "Alice Example"},
				Reporter:    &gojira.User{DisplayName: "Bob Example"},
				Created:     gojira.Time(created),
				Updated:     gojira.Time(updated),
			},
		},
		{
			Key: "DEMO-2",
			Fields: &gojira.IssueFields{
				Summary:  "Add CSV import",
				Status:   &gojira.Status{Name: "To Do"},
				Type:     gojira.IssueType{Name: "Story"},
				Reporter: &gojira.User{DisplayName: "Carol Example"},
				Created:  gojira.Time(created),
				Updated:  gojira.Time(created),
			},
		},
		{
			Key: "DEMO-3",
			Fields: &gojira.IssueFields{
				Summary:  "Update dependencies",
				Status:   &gojira.Status{Name: "Done"},
				Priority: &gojira.Priority{Name: "Low"},
				Type:     gojira.IssueType{Name: "Task"},
				Assignee: &gojira.User{DisplayName: "Alice Example"},
				Reporter: &gojira.User{DisplayName: "Alice Example"},
				Created:  gojira.Time(created.Add(-72 * time.Hour)),
				Updated:  gojira.Time(updated.Add(time.Hour)),
			},
		},
	}
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithIssues sets specific issues to return
func WithIssues(issues []gojira.Issue) MockClientOption {
	return func(m *MockClient) {
		m.Issues = issues
	}
}

// WithTotal sets the total match count the mock reports
func WithTotal(total int) MockClientOption {
	return func(m *MockClient) {
		m.Total = total
	}
}

// WithError makes the client return a specific error
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
	}
}

// WithAuthFailure makes the client simulate a 401 response
func WithAuthFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailAuth = true
	}
}

// NewMockClientWithOptions creates a mock client with options
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}
