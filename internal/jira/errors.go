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
	"errors"
	"fmt"
	"net"
	"net/http"
	"sort"
	"strings"

	gojira "github.com/andygrunwald/go-jira"
	exporterrors "github.com/sirseerhq/jira-export/internal/errors"
)

// APIError is returned for any non-2xx search response. It unwraps to the
// sentinel matching the status class.
type APIError struct {
	StatusCode int
	// Body holds the Jira error messages, or the raw response body when
	// the server did not answer with a Jira error document.
	Body string
	kind error
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("jira returned status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	if hint := statusHint(e.StatusCode); hint != "" {
		msg += ". " + hint
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// mapError maps search failures to our domain errors with actionable messages.
// rawBody is the captured start of a non-2xx response body, if any.
func (c *HTTPClient) mapError(resp *gojira.Response, err error, rawBody string) error {
	if resp == nil || resp.Response == nil {
		if isNetworkError(err) {
			return fmt.Errorf("network error connecting to Jira at %s (%v): %w", c.baseURL, err, exporterrors.ErrNetworkFailure)
		}
		return fmt.Errorf("failed to search Jira issues: %w", err)
	}

	status := resp.StatusCode
	if status >= 200 && status < 300 {
		return fmt.Errorf("failed to decode Jira search response (%v): %w", err, exporterrors.ErrInvalidResponse)
	}

	return &APIError{
		StatusCode: status,
		Body:       errorDetail(err, rawBody),
		kind:       sentinelForStatus(status),
	}
}

func sentinelForStatus(status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return exporterrors.ErrInvalidCredentials
	case http.StatusBadRequest:
		return exporterrors.ErrInvalidQuery
	case http.StatusNotFound:
		return exporterrors.ErrNotFound
	case http.StatusTooManyRequests:
		return exporterrors.ErrRateLimit
	default:
		return exporterrors.ErrUnexpectedStatus
	}
}

func statusHint(status int) string {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return "Check the --email and --token values"
	case http.StatusBadRequest:
		return "Check the --jql query"
	case http.StatusNotFound:
		return "Check the --url base URL"
	case http.StatusTooManyRequests:
		return "Wait before running the export again"
	default:
		return ""
	}
}

// errorDetail extracts the Jira error messages when the response carried a
// Jira error document. Otherwise it returns the raw body, and only when that
// is empty the error text.
func errorDetail(err error, rawBody string) string {
	var jerr *gojira.Error
	if errors.As(err, &jerr) {
		parts := append([]string(nil), jerr.ErrorMessages...)

		keys := make([]string, 0, len(jerr.Errors))
		for k := range jerr.Errors {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = append(parts, k+": "+jerr.Errors[k])
		}

		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	}
	if rawBody != "" {
		return rawBody
	}
	if err == nil {
		return ""
	}
	return strings.TrimSpace(err.Error())
}

// isNetworkError checks the error chain for a net.Error and falls back to
// matching well-known connectivity messages.
func isNetworkError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "dial tcp") ||
		strings.Contains(errStr, "tls handshake") ||
		strings.Contains(errStr, "network is unreachable")
}
