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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrInvalidCredentials indicates Jira rejected the email/API token pair
	// (HTTP 401) or the account may not run the search (HTTP 403).
	// Maps to exit code 2.
	ErrInvalidCredentials = errors.New("invalid jira credentials")

	// ErrInvalidQuery indicates Jira rejected the JQL query (HTTP 400).
	// Maps to exit code 2.
	ErrInvalidQuery = errors.New("invalid jql query")

	// ErrNotFound indicates the search endpoint does not exist under the
	// configured base URL (HTTP 404).
	// Maps to exit code 2.
	ErrNotFound = errors.New("jira endpoint not found")

	// ErrRateLimit indicates Jira throttled the request (HTTP 429).
	// Maps to exit code 2.
	ErrRateLimit = errors.New("jira rate limit exceeded")

	// ErrUnexpectedStatus indicates any other non-2xx response.
	// Maps to exit code 1.
	ErrUnexpectedStatus = errors.New("unexpected jira response status")

	// ErrInvalidResponse indicates a 2xx response whose body could not be decoded.
	// Maps to exit code 1.
	ErrInvalidResponse = errors.New("invalid jira response")

	// ErrNetworkFailure indicates a network connection problem.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrNoIssues indicates the query matched nothing, so there is nothing to export.
	// Maps to exit code 1.
	ErrNoIssues = errors.New("no issues found")
)
