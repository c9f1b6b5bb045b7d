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

// Package jira provides a minimal client for Jira's REST issue search.
//
// The client issues a single authenticated search request per call and
// returns the decoded issues together with the total number of matches the
// server reported. Pagination, retries and rate-limit waiting are out of scope:
// any non-2xx response is returned as an *APIError carrying the status code and
// response body, classified against the sentinels in internal/errors.
//
// Usage:
//
//	client, err := jira.NewClient("https://example.atlassian.net", email, token,
//	    jira.WithLogger(logger), jira.WithTimeout(30*time.Second))
//	if err != nil {
//	    return err
//	}
//	result, err := client.SearchIssues(ctx, jira.SearchOptions{
//	    JQL:        "project = ABC ORDER BY updated DESC",
//	    MaxResults: 100,
//	})
package jira
