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

import gojira "github.com/andygrunwald/go-jira"

// DefaultFields is the field list requested when SearchOptions.Fields is empty.
// It covers every column of the export.
var DefaultFields = []string{
	"key",
	"summary",
	"status",
	"priority",
	"assignee",
	"reporter",
	"created",
	"updated",
	"description",
	"issuetype",
}

// SearchOptions configures a single search request.
type SearchOptions struct {
	// JQL selects the issues. An empty query matches every issue the
	// account can see.
	JQL string

	// MaxResults caps the number of issues returned. Zero leaves the cap to
	// the server.
	MaxResults int

	// Fields limits the issue fields returned. Defaults to DefaultFields.
	Fields []string
}

// SearchResult is one page of search results.
type SearchResult struct {
	Issues []gojira.Issue

	// Total is the number of issues matching the query on the server, which
	// may exceed len(Issues).
	Total int

	// MaxResults is the page size the server actually applied.
	MaxResults int
}

// Truncated reports whether the server matched more issues than were returned.
func (r *SearchResult) Truncated() bool {
	return r.Total > len(r.Issues)
}
