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

package metadata

import (
	"time"
)

// ExportMetadata is the record of a single export run.
type ExportMetadata struct {
	ToolVersion string        `json:"tool_version"`
	ExportID    string        `json:"export_id"`
	Parameters  ExportParams  `json:"parameters"`
	Results     ExportResults `json:"results"`
}

// ExportParams captures the inputs of an export.
type ExportParams struct {
	BaseURL    string `json:"base_url"`
	JQL        string `json:"jql"`
	MaxResults int    `json:"max_results"`
	Output     string `json:"output"`
}

// ExportResults holds the statistics of a completed export. TotalMatched is
// the server's count of matching issues, which may exceed IssueCount when the
// result was capped by MaxResults.
type ExportResults struct {
	IssueCount    int       `json:"issue_count"`
	TotalMatched  int       `json:"total_matched"`
	OldestCreated time.Time `json:"oldest_created"`
	NewestUpdated time.Time `json:"newest_updated"`
	Duration      string    `json:"export_duration"`
	APICallCount  int       `json:"api_calls_made"`
	StartedAt     time.Time `json:"started_at"`
	CompletedAt   time.Time `json:"completed_at"`
}

// Truncated reports whether more issues matched than were exported.
func (r ExportResults) Truncated() bool {
	return r.TotalMatched > r.IssueCount
}
