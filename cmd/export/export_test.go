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

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gojira "github.com/andygrunwald/go-jira"
	"github.com/google/go-cmp/cmp"
	"github.com/sirseerhq/jira-export/internal/config"
	exporterrors "github.com/sirseerhq/jira-export/internal/errors"
	"github.com/sirseerhq/jira-export/internal/jira"
	"github.com/sirseerhq/jira-export/internal/record"
	"github.com/sirseerhq/jira-export/test/testutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixtureRows = [][]string{
	{"ABC-1", "Checkout button unresponsive on Safari", "In Progress", "High", "Bug",
		"Alice Example", "Bob Example", "2024-01-15 10:30:00", "2024-02-01 08:05:09",
		"Clicking Pay does nothing.\nSeen on Safari 17."},
	{"ABC-2", "Document the export flags", "To Do", "", "Task",
		"", "Carol Example", "2024-01-20 23:59:59", "2024-01-21 00:00:01", ""},
	{"ABC-3", "Überarbeitung der Startseite", "Done", "Low", "Story",
		"", "Dana Example", "2023-12-31 12:00:00", "2024-01-02 12:00:00", ""},
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Jira.BaseURL = "https://example.atlassian.net/"
	cfg.Export.Output = filepath.Join(t.TempDir(), "export.xlsx")
	return cfg
}

func TestRunExport(t *testing.T) {
	cfg := testConfig(t)
	mock := jira.NewMockClient()
	var stderr bytes.Buffer

	if err := runExport(context.Background(), mock, cfg, zap.NewNop(), &stderr); err != nil {
		t.Fatalf("runExport failed: %v", err)
	}

	if mock.CallCount != 1 {
		t.Errorf("CallCount = %d, want 1", mock.CallCount)
	}
	if mock.LastOptions.JQL != config.DefaultJQL || mock.LastOptions.MaxResults != config.DefaultMaxResults {
		t.Errorf("LastOptions = %+v", mock.LastOptions)
	}

	wb := testutil.ReadWorkbook(t, cfg.Export.Output, len(record.Columns))
	if diff := cmp.Diff([]string{config.DefaultSheetName}, wb.Sheets); diff != "" {
		t.Errorf("sheets mismatch (-want +got):\n%s", diff)
	}
	rows := wb.Rows
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want header + 3", len(rows))
	}
	if diff := cmp.Diff(record.Columns, rows[0]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}

	if !strings.Contains(stderr.String(), "Exported 3 issues to "+cfg.Export.Output) {
		t.Errorf("stderr = %q, want success line", stderr.String())
	}
	if strings.Contains(stderr.String(), "Warning") {
		t.Errorf("unexpected warning in %q", stderr.String())
	}
}

func TestRunExport_NoIssues(t *testing.T) {
	cfg := testConfig(t)
	mock := jira.NewMockClientWithOptions(jira.WithIssues([]gojira.Issue{}))

	err := runExport(context.Background(), mock, cfg, zap.NewNop(), &bytes.Buffer{})
	if !errors.Is(err, exporterrors.ErrNoIssues) {
		t.Fatalf("error = %v, want ErrNoIssues", err)
	}
	if code := mapErrorToExitCode(err); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	testutil.AssertNoFile(t, cfg.Export.Output)
}

func TestRunExport_SearchFailures(t *testing.T) {
	tests := []struct {
		name     string
		mock     *jira.MockClient
		wantCode int
	}{
		{"auth", jira.NewMockClientWithOptions(jira.WithAuthFailure()), 2},
		{"query", &jira.MockClient{ShouldFailQuery: true}, 2},
		{"network", &jira.MockClient{ShouldFailNetwork: true}, 3},
		{"other", jira.NewMockClientWithOptions(jira.WithError(errors.New("boom"))), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)

			err := runExport(context.Background(), tt.mock, cfg, zap.NewNop(), &bytes.Buffer{})
			if err == nil {
				t.Fatal("expected error")
			}
			if code := mapErrorToExitCode(err); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (err: %v)", code, tt.wantCode, err)
			}
			testutil.AssertNoFile(t, cfg.Export.Output)
		})
	}
}

func TestRunExport_TruncatedWarning(t *testing.T) {
	cfg := testConfig(t)
	cfg.Jira.MaxResults = 2
	mock := jira.NewMockClientWithOptions(jira.WithTotal(57))
	var stderr bytes.Buffer

	if err := runExport(context.Background(), mock, cfg, zap.NewNop(), &stderr); err != nil {
		t.Fatalf("runExport failed: %v", err)
	}

	if !strings.Contains(stderr.String(), "Warning: 57 issues matched, only the first 2 were exported") {
		t.Errorf("stderr = %q, want truncation warning", stderr.String())
	}

	wb := testutil.ReadWorkbook(t, cfg.Export.Output, len(record.Columns))
	if len(wb.Rows) != 3 {
		t.Errorf("got %d rows, want header + 2", len(wb.Rows))
	}
	if !strings.HasPrefix(wb.Properties.Description, "2 issues exported of 57 matching") {
		t.Errorf("Description = %q", wb.Properties.Description)
	}
}

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"credentials", fmt.Errorf("search: %w", exporterrors.ErrInvalidCredentials), 2},
		{"query", exporterrors.ErrInvalidQuery, 2},
		{"not found", exporterrors.ErrNotFound, 2},
		{"rate limit", exporterrors.ErrRateLimit, 2},
		{"network", fmt.Errorf("dial: %w", exporterrors.ErrNetworkFailure), 3},
		{"unexpected status", exporterrors.ErrUnexpectedStatus, 1},
		{"invalid response", exporterrors.ErrInvalidResponse, 1},
		{"no issues", exporterrors.ErrNoIssues, 1},
		{"plain", errors.New("disk full"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapErrorToExitCode(tt.err); got != tt.want {
				t.Errorf("mapErrorToExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want func(*config.Config)
	}{
		{
			name: "unset flags keep config values",
			args: []string{"--email", "a", "--token", "b"},
			want: func(c *config.Config) {},
		},
		{
			name: "every flag overrides",
			args: []string{
				"--url", "https://flag.example.com",
				"--jql", "project = FLAG",
				"--max", "7",
				"--timeout", "5s",
				"--output", "flag.xlsx",
				"--sheet", "Flag Sheet",
			},
			want: func(c *config.Config) {
				c.Jira.BaseURL = "https://flag.example.com"
				c.Jira.JQL = "project = FLAG"
				c.Jira.MaxResults = 7
				c.Jira.Timeout = 5 * time.Second
				c.Export.Output = "flag.xlsx"
				c.Export.SheetName = "Flag Sheet"
			},
		},
		{
			name: "explicit default still overrides",
			args: []string{"--max", "100"},
			want: func(c *config.Config) {
				c.Jira.MaxResults = 100
			},
		},
	}

	fromFile := func() *config.Config {
		c := config.DefaultConfig()
		c.Jira.BaseURL = "https://file.example.com"
		c.Jira.JQL = "project = FILE"
		c.Jira.MaxResults = 25
		c.Export.Output = "file.xlsx"
		c.Export.SheetName = "File Sheet"
		return c
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flags exportFlags
			cmd := &cobra.Command{Use: "test"}
			flags.register(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags failed: %v", err)
			}

			got := fromFile()
			applyFlagOverrides(got, cmd.Flags(), &flags)

			want := fromFile()
			tt.want(want)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// failingWriter rejects every row after the first n.
type failingWriter struct {
	n    int
	rows [][]string
}

func (w *failingWriter) Write(row []string) error {
	if len(w.rows) >= w.n {
		return errors.New("disk full")
	}
	w.rows = append(w.rows, row)
	return nil
}

func (w *failingWriter) Close() error { return nil }

func TestWriteRecords(t *testing.T) {
	records := []record.Record{{Key: "A-1"}, {Key: "A-2"}, {Key: "A-3"}}

	ok := &failingWriter{n: 3}
	if err := writeRecords(ok, records); err != nil {
		t.Fatalf("writeRecords failed: %v", err)
	}
	if len(ok.rows) != 3 || ok.rows[2][0] != "A-3" {
		t.Errorf("rows = %v", ok.rows)
	}

	err := writeRecords(&failingWriter{n: 1}, records)
	if err == nil || !strings.Contains(err.Error(), "A-2") {
		t.Errorf("error = %v, want failure naming A-2", err)
	}
}
