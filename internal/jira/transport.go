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
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sirseerhq/jira-export/pkg/version"
)

// defaultMaxBodySize caps how much of a response body is read (50MB).
const defaultMaxBodySize = 50 * 1024 * 1024

// maxErrorSnapshot caps how much of a non-2xx body is kept for error messages.
const maxErrorSnapshot = 4 * 1024

// bodySnapshot holds the leading bytes of a non-2xx response body, captured
// by the transport for requests whose context carries one.
type bodySnapshot struct {
	data []byte
}

type snapshotKey struct{}

func withBodySnapshot(ctx context.Context, snap *bodySnapshot) context.Context {
	return context.WithValue(ctx, snapshotKey{}, snap)
}

// String returns the captured body with surrounding whitespace removed.
func (s *bodySnapshot) String() string {
	if s == nil {
		return ""
	}
	return string(bytes.TrimSpace(s.data))
}

// basicAuthTransport adds basic authentication, standard headers and a
// response size limit to HTTP requests.
type basicAuthTransport struct {
	email       string
	token       string
	base        http.RoundTripper
	maxBodySize int64
}

// RoundTrip implements http.RoundTripper
func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = req.Clone(req.Context())

	req.SetBasicAuth(t.email, t.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.Body != nil && t.maxBodySize > 0 {
		resp.Body = &limitedReader{
			ReadCloser: resp.Body,
			limit:      t.maxBodySize,
		}
	}

	if snap, ok := req.Context().Value(snapshotKey{}).(*bodySnapshot); ok && resp.Body != nil &&
		(resp.StatusCode < 200 || resp.StatusCode > 299) {
		captureBody(resp, snap)
	}

	return resp, nil
}

// captureBody copies up to maxErrorSnapshot bytes of the body into snap and
// puts them back in front of the unread remainder.
func captureBody(resp *http.Response, snap *bodySnapshot) {
	head, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorSnapshot))
	snap.data = head

	resp.Body = struct {
		io.Reader
		io.Closer
	}{
		Reader: io.MultiReader(bytes.NewReader(head), resp.Body),
		Closer: resp.Body,
	}
}

// limitedReader wraps a ReadCloser with a size limit to prevent excessive memory usage.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

// Read implements io.Reader with size limit enforcement.
func (lr *limitedReader) Read(p []byte) (n int, err error) {
	if lr.read >= lr.limit {
		return 0, fmt.Errorf("response size exceeded limit of %d bytes", lr.limit)
	}

	remaining := lr.limit - lr.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err = lr.ReadCloser.Read(p)
	lr.read += int64(n)

	return n, err
}
