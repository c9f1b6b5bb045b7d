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

// Package testutil provides common test helpers for jira-export: canned Jira
// search servers, workbook readers and a runner for the built binary.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

// SearchPath is the endpoint every mock server answers on.
const SearchPath = "/rest/api/2/search"

// MockServer is an httptest server that records the requests it receives.
type MockServer struct {
	*httptest.Server

	requests atomic.Int32
	mu       sync.Mutex
	last     *http.Request
}

// RequestCount returns the number of requests served.
func (s *MockServer) RequestCount() int {
	return int(s.requests.Load())
}

// LastRequest returns a copy of the most recent request, or nil.
func (s *MockServer) LastRequest() *http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func newMockServer(t *testing.T, handler http.HandlerFunc) *MockServer {
	t.Helper()

	s := &MockServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.Add(1)
		s.mu.Lock()
		s.last = r.Clone(r.Context())
		s.mu.Unlock()

		if r.URL.Path != SearchPath {
			http.NotFound(w, r)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(s.Close)

	return s
}

// NewJiraServer creates a mock server answering searches with body.
func NewJiraServer(t *testing.T, body []byte) *MockServer {
	t.Helper()

	return newMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	})
}

// NewErrorServer creates a mock server that always fails searches with the
// given status and a Jira-style JSON error body.
func NewErrorServer(t *testing.T, statusCode int, message string) *MockServer {
	t.Helper()

	body, _ := json.Marshal(map[string]any{
		"errorMessages": []string{message},
		"errors":        map[string]string{},
	})

	return newMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_, _ = w.Write(body)
	})
}

// UnreachableURL returns the URL of a server that has already been shut down.
func UnreachableURL(t *testing.T) string {
	t.Helper()

	s := httptest.NewServer(http.NotFoundHandler())
	url := s.URL
	s.Close()
	return url
}

// SearchResponse builds a search response body holding one minimal issue per
// key. total is reported as the server-side match count.
func SearchResponse(total int, keys ...string) []byte {
	type fields struct {
		Summary string `json:"summary"`
	}
	type issue struct {
		Key    string `json:"key"`
		Fields fields `json:"fields"`
	}

	issues := make([]issue, 0, len(keys))
	for _, k := range keys {
		issues = append(issues, issue{Key: k, Fields: fields{Summary: "Summary of " + k}})
	}

	body, _ := json.Marshal(map[string]any{
		"startAt":    0,
		"maxResults": len(keys),
		"total":      total,
		"issues":     issues,
	})
	return body
}

// LoadFixture returns the canned three-issue search response.
func LoadFixture(t *testing.T) []byte {
	t.Helper()

	root, err := projectRoot()
	if err != nil {
		t.Fatalf("Failed to locate project root: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "internal", "jira", "testdata", "search.json"))
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}
	return data
}

// projectRoot resolves the module root from this file's location, so it works
// regardless of the test's working directory.
func projectRoot() (string, error) {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "", os.ErrNotExist
	}
	return filepath.Abs(filepath.Join(filepath.Dir(file), "..", ".."))
}
