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

// Package main implements the jira-export command-line interface.
// It runs one JQL search against a Jira instance and writes the matching
// issues to a single-sheet Excel workbook.
//
// Usage:
//
//	jira-export --url https://example.atlassian.net --email me@example.com --token <api-token> [flags]
//
// Example:
//
//	jira-export --url https://example.atlassian.net \
//	  --email me@example.com --token "$JIRA_TOKEN" \
//	  --jql 'project = ABC ORDER BY created DESC' --max 500 \
//	  --output exports/abc.xlsx
//
// Settings other than credentials may also come from a YAML file given with
// --config, or from .jira-export.yaml in the working directory. Flags that are
// set explicitly win over the file.
//
// Exit codes:
//   - 0: Success
//   - 1: General error (configuration, file system, no matching issues)
//   - 2: Jira rejected the request (credentials, query, not found, rate limit)
//   - 3: Network error
package main
