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
	"net/url"
	"strings"
	"time"

	gojira "github.com/andygrunwald/go-jira"
	"go.uber.org/zap"
)

// restAPISuffixes are stripped from a configured base URL so that both the
// site root and the REST root are accepted.
var restAPISuffixes = []string{"/rest/api/2", "/rest/api/latest"}

// HTTPClient implements Client over Jira's REST API v2.
type HTTPClient struct {
	client  *gojira.Client
	baseURL string
	logger  *zap.Logger
}

type clientOptions struct {
	logger      *zap.Logger
	timeout     time.Duration
	transport   http.RoundTripper
	maxBodySize int64
}

// Option configures an HTTPClient.
type Option func(*clientOptions)

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithTimeout bounds each request, including reading the response body.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithTransport replaces the underlying round tripper. Authentication and
// the response size limit are still applied on top of it.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) {
		o.transport = rt
	}
}

// WithMaxBodySize changes the response body limit.
func WithMaxBodySize(n int64) Option {
	return func(o *clientOptions) {
		o.maxBodySize = n
	}
}

// NewClient creates a Jira client that authenticates every request with HTTP
// basic auth using the account email and API token. baseURL may point at the
// site root or at the REST API root; both resolve to the same endpoints.
func NewClient(baseURL, email, token string, opts ...Option) (*HTTPClient, error) {
	if email == "" || token == "" {
		return nil, fmt.Errorf("jira email and API token are required")
	}

	root, err := NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	o := clientOptions{
		logger:      zap.NewNop(),
		transport:   http.DefaultTransport,
		maxBodySize: defaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	httpClient := &http.Client{
		Timeout: o.timeout,
		Transport: &basicAuthTransport{
			email:       email,
			token:       token,
			base:        o.transport,
			maxBodySize: o.maxBodySize,
		},
	}

	client, err := gojira.NewClient(httpClient, root)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}

	return &HTTPClient{
		client:  client,
		baseURL: root,
		logger:  o.logger,
	}, nil
}

// NormalizeBaseURL validates a Jira base URL and returns the site root with a
// trailing slash, removing a /rest/api/2 or /rest/api/latest suffix.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("jira base URL cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid jira base URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid jira base URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid jira base URL %q: host is required", raw)
	}

	path := strings.TrimRight(u.Path, "/")
	for _, suffix := range restAPISuffixes {
		path = strings.TrimSuffix(path, suffix)
	}
	u.Path = path + "/"
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""

	return u.String(), nil
}

// BaseURL returns the normalized site root the client talks to.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// SearchIssues performs GET rest/api/2/search with the jql, maxResults and
// fields query parameters.
func (c *HTTPClient) SearchIssues(ctx context.Context, opts SearchOptions) (*SearchResult, error) {
	fields := opts.Fields
	if len(fields) == 0 {
		fields = DefaultFields
	}

	c.logger.Debug("Searching Jira issues",
		zap.String("base_url", c.baseURL),
		zap.String("jql", opts.JQL),
		zap.Int("max_results", opts.MaxResults),
		zap.Strings("fields", fields))

	snap := &bodySnapshot{}
	ctx = withBodySnapshot(ctx, snap)

	start := time.Now()
	issues, resp, err := c.client.Issue.SearchWithContext(ctx, opts.JQL, &gojira.SearchOptions{
		MaxResults: opts.MaxResults,
		Fields:     fields,
	})
	if err != nil {
		mapped := c.mapError(resp, err, snap.String())
		c.logger.Debug("Jira search failed", zap.Error(mapped), zap.Duration("elapsed", time.Since(start)))
		return nil, mapped
	}

	result := &SearchResult{
		Issues: issues,
		Total:  len(issues),
	}
	if resp != nil {
		// Some proxies strip "total"; never report fewer matches than we hold.
		if resp.Total > result.Total {
			result.Total = resp.Total
		}
		result.MaxResults = resp.MaxResults
	}

	c.logger.Debug("Jira search completed",
		zap.Int("issues", len(result.Issues)),
		zap.Int("total", result.Total),
		zap.Duration("elapsed", time.Since(start)))

	return result, nil
}
