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

// Package record flattens Jira issues into the fixed set of spreadsheet
// columns. Records are plain values: built once, never mutated.
package record

import (
	"time"

	gojira "github.com/andygrunwald/go-jira"
)

// TimestampLayout is the rendering used for the Created and Updated columns.
const TimestampLayout = "2006-01-02 15:04:05"

// Columns holds the sheet headers, in order.
var Columns = []string{
	"Key",
	"Summary",
	"Status",
	"Priority",
	"Issue Type",
	"Assignee",
	"Reporter",
	"Created",
	"Updated",
	"Description",
}

// Record is one issue flattened to text. Missing values are empty strings.
type Record struct {
	Key         string
	Summary     string
	Status      string
	Priority    string
	IssueType   string
	Assignee    string
	Reporter    string
	Created     string
	Updated     string
	Description string
}

// FromIssue flattens a single issue.
func FromIssue(issue gojira.Issue) Record {
	r := Record{Key: issue.Key}

	f := issue.Fields
	if f == nil {
		return r
	}

	r.Summary = f.Summary
	r.IssueType = f.Type.Name
	r.Description = f.Description
	r.Created = FormatTimestamp(time.Time(f.Created))
	r.Updated = FormatTimestamp(time.Time(f.Updated))

	if f.Status != nil {
		r.Status = f.Status.Name
	}
	if f.Priority != nil {
		r.Priority = f.Priority.Name
	}
	if f.Assignee != nil {
		r.Assignee = f.Assignee.DisplayName
	}
	if f.Reporter != nil {
		r.Reporter = f.Reporter.DisplayName
	}

	return r
}

// FromIssues flattens issues, one record per issue, in input order.
func FromIssues(issues []gojira.Issue) []Record {
	records := make([]Record, 0, len(issues))
	for _, issue := range issues {
		records = append(records, FromIssue(issue))
	}
	return records
}

// FormatTimestamp renders t with TimestampLayout in t's own UTC offset, so a
// value Jira reported as 08:05 +0100 stays 08:05. The zero time renders as "".
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimestampLayout)
}

// Values returns the cells of r in Columns order.
func (r Record) Values() []string {
	return []string{
		r.Key,
		r.Summary,
		r.Status,
		r.Priority,
		r.IssueType,
		r.Assignee,
		r.Reporter,
		r.Created,
		r.Updated,
		r.Description,
	}
}
