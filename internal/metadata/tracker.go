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

// Package metadata tracks statistics about an export run: API calls made,
// issues exported, the server's total match count and the date range the
// exported issues cover. The resulting ExportMetadata carries a unique export
// ID and is stamped into the workbook's document properties.
package metadata

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Tracker collects statistics during an export. Create one at the start of a
// run.
type Tracker struct {
	startTime    time.Time
	now          func() time.Time
	apiCallCount int
	totalMatched int
	issueStats   IssueStats
}

// IssueStats holds the running statistics of exported issues.
type IssueStats struct {
	Count         int
	OldestCreated time.Time // Earliest creation date
	NewestUpdated time.Time // Latest update date
}

// New creates a tracker started at the current time.
func New() *Tracker {
	return newWithClock(time.Now)
}

func newWithClock(now func() time.Time) *Tracker {
	return &Tracker{
		startTime: now(),
		now:       now,
	}
}

// IncrementAPICall records that an API call was made.
func (t *Tracker) IncrementAPICall() {
	t.apiCallCount++
}

// SetTotalMatched records how many issues the server reported as matching.
func (t *Tracker) SetTotalMatched(total int) {
	t.totalMatched = total
}

// UpdateIssueStats folds one exported issue into the running statistics.
// Zero timestamps are counted but do not move the date range.
func (t *Tracker) UpdateIssueStats(createdAt, updatedAt time.Time) {
	t.issueStats.Count++

	if !createdAt.IsZero() && (t.issueStats.OldestCreated.IsZero() || createdAt.Before(t.issueStats.OldestCreated)) {
		t.issueStats.OldestCreated = createdAt
	}
	if updatedAt.After(t.issueStats.NewestUpdated) {
		t.issueStats.NewestUpdated = updatedAt
	}
}

// Stats returns a copy of the running issue statistics.
func (t *Tracker) Stats() IssueStats {
	return t.issueStats
}

// GenerateMetadata builds the metadata record for the run. Call it once the
// export has completed.
func (t *Tracker) GenerateMetadata(toolVersion string, params ExportParams) *ExportMetadata {
	completedAt := t.now()

	total := t.totalMatched
	if total < t.issueStats.Count {
		total = t.issueStats.Count
	}

	return &ExportMetadata{
		ToolVersion: toolVersion,
		ExportID:    uuid.NewString(),
		Parameters:  params,
		Results: ExportResults{
			IssueCount:    t.issueStats.Count,
			TotalMatched:  total,
			OldestCreated: t.issueStats.OldestCreated,
			NewestUpdated: t.issueStats.NewestUpdated,
			Duration:      completedAt.Sub(t.startTime).String(),
			APICallCount:  t.apiCallCount,
			StartedAt:     t.startTime,
			CompletedAt:   completedAt,
		},
	}
}

// Summary renders a one-line description of the export results.
func (m *ExportMetadata) Summary() string {
	r := m.Results

	noun := "issues"
	if r.IssueCount == 1 {
		noun = "issue"
	}

	s := fmt.Sprintf("%d %s exported", r.IssueCount, noun)
	if r.Truncated() {
		s += fmt.Sprintf(" of %d matching", r.TotalMatched)
	}
	if !r.OldestCreated.IsZero() && !r.NewestUpdated.IsZero() {
		s += fmt.Sprintf(", created from %s, updated through %s",
			r.OldestCreated.Format("2006-01-02"), r.NewestUpdated.Format("2006-01-02"))
	}
	return s
}
