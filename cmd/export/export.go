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
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirseerhq/jira-export/internal/config"
	exporterrors "github.com/sirseerhq/jira-export/internal/errors"
	"github.com/sirseerhq/jira-export/internal/jira"
	"github.com/sirseerhq/jira-export/internal/metadata"
	"github.com/sirseerhq/jira-export/internal/output"
	"github.com/sirseerhq/jira-export/internal/record"
	"github.com/sirseerhq/jira-export/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// clientFactory builds the Jira client for a validated configuration.
type clientFactory func(cfg *config.Config, email, token string, logger *zap.Logger) (jira.Client, error)

// exportFlags holds the raw command-line values.
type exportFlags struct {
	configPath string
	baseURL    string
	jql        string
	maxResults int
	output     string
	email      string
	token      string
	sheet      string
	timeout    time.Duration
	verbose    bool
}

func (f *exportFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()

	fs.StringVar(&f.baseURL, "url", "", "Jira base URL, e.g. https://example.atlassian.net (required)")
	fs.StringVar(&f.jql, "jql", config.DefaultJQL, "JQL query selecting the issues to export")
	fs.IntVar(&f.maxResults, "max", config.DefaultMaxResults, "Maximum number of issues to export")
	fs.StringVar(&f.output, "output", config.DefaultOutput, "Output .xlsx file path")
	fs.StringVar(&f.email, "email", "", "Jira account email (required)")
	fs.StringVar(&f.token, "token", "", "Jira API token (required)")
	fs.StringVar(&f.configPath, "config", "", "Path to a YAML configuration file (default: .jira-export.yaml if present)")
	fs.StringVar(&f.sheet, "sheet", config.DefaultSheetName, "Worksheet name")
	fs.DurationVar(&f.timeout, "timeout", config.DefaultTimeout, "Request timeout")

	cmd.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "Enable debug logging")

	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("token")
}

// applyFlagOverrides copies explicitly set flags over the loaded configuration.
// Flags left at their defaults do not mask values from the config file.
func applyFlagOverrides(cfg *config.Config, fs *pflag.FlagSet, f *exportFlags) {
	if fs.Changed("url") {
		cfg.Jira.BaseURL = f.baseURL
	}
	if fs.Changed("jql") {
		cfg.Jira.JQL = f.jql
	}
	if fs.Changed("max") {
		cfg.Jira.MaxResults = f.maxResults
	}
	if fs.Changed("timeout") {
		cfg.Jira.Timeout = f.timeout
	}
	if fs.Changed("output") {
		cfg.Export.Output = f.output
	}
	if fs.Changed("sheet") {
		cfg.Export.SheetName = f.sheet
	}
}

// execute resolves the configuration and runs the export.
func (a *app) execute(cmd *cobra.Command, f *exportFlags) error {
	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg, cmd.Flags(), f)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := a.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := a.newClient(cfg, f.email, f.token, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Jira.Timeout)
	defer cancel()

	return runExport(ctx, client, cfg, logger, a.stderr)
}

func newJiraClient(cfg *config.Config, email, token string, logger *zap.Logger) (jira.Client, error) {
	return jira.NewClient(cfg.Jira.BaseURL, email, token,
		jira.WithLogger(logger),
		jira.WithTimeout(cfg.Jira.Timeout),
	)
}

// runExport fetches the issues selected by cfg and writes them to the
// configured workbook. Nothing is written when the search fails or matches
// no issues.
func runExport(ctx context.Context, client jira.Client, cfg *config.Config, logger *zap.Logger, stderr io.Writer) error {
	tracker := metadata.New()

	fmt.Fprintf(stderr, "Fetching issues from %s...\n", cfg.Jira.BaseURL)

	result, err := client.SearchIssues(ctx, jira.SearchOptions{
		JQL:        cfg.Jira.JQL,
		MaxResults: cfg.Jira.MaxResults,
	})
	if err != nil {
		return fmt.Errorf("failed to search issues: %w", err)
	}
	tracker.IncrementAPICall()

	if len(result.Issues) == 0 {
		return fmt.Errorf("%w for query %q", exporterrors.ErrNoIssues, cfg.Jira.JQL)
	}
	tracker.SetTotalMatched(result.Total)

	for _, issue := range result.Issues {
		if issue.Fields != nil {
			tracker.UpdateIssueStats(time.Time(issue.Fields.Created), time.Time(issue.Fields.Updated))
		} else {
			tracker.UpdateIssueStats(time.Time{}, time.Time{})
		}
	}

	records := record.FromIssues(result.Issues)

	md := tracker.GenerateMetadata(version.Version, metadata.ExportParams{
		BaseURL:    cfg.Jira.BaseURL,
		JQL:        cfg.Jira.JQL,
		MaxResults: cfg.Jira.MaxResults,
		Output:     cfg.Export.Output,
	})

	if err := writeWorkbook(cfg, records, md); err != nil {
		return err
	}

	logger.Info("export complete",
		zap.String("export_id", md.ExportID),
		zap.Int("issues", md.Results.IssueCount),
		zap.Int("total_matched", md.Results.TotalMatched),
		zap.String("output", cfg.Export.Output),
		zap.String("duration", md.Results.Duration),
	)

	if md.Results.Truncated() {
		logger.Warn("search matched more issues than were exported",
			zap.Int("exported", md.Results.IssueCount),
			zap.Int("total_matched", md.Results.TotalMatched),
		)
		fmt.Fprintf(stderr, "Warning: %d issues matched, only the first %d were exported (raise --max to include more)\n",
			md.Results.TotalMatched, md.Results.IssueCount)
	}

	fmt.Fprintf(stderr, "Exported %d issues to %s\n", len(records), cfg.Export.Output)
	return nil
}

// writeWorkbook writes the header and one row per record, then saves the file.
// A failed write discards the workbook so no partial file is left behind.
func writeWorkbook(cfg *config.Config, records []record.Record, md *metadata.ExportMetadata) error {
	writer, err := output.NewSheetWriter(cfg.Export.Output, output.Options{
		SheetName:      cfg.Export.SheetName,
		MaxColumnWidth: cfg.Export.MaxColumnWidth,
		Header:         record.Columns,
	})
	if err != nil {
		return fmt.Errorf("failed to create workbook: %w", err)
	}

	if err := writeRecords(writer, records); err != nil {
		_ = writer.Discard()
		return err
	}

	err = writer.SetProperties(output.Properties{
		Title:       cfg.Export.SheetName,
		Subject:     cfg.Jira.JQL,
		Description: md.Summary(),
		Identifier:  md.ExportID,
		Creator:     version.UserAgent(),
		Created:     md.Results.CompletedAt,
	})
	if err != nil {
		_ = writer.Discard()
		return err
	}

	if err := writer.Close(); err != nil {
		if errors.Is(err, output.ErrEmptySheet) {
			return exporterrors.ErrNoIssues
		}
		return fmt.Errorf("failed to write %s: %w", cfg.Export.Output, err)
	}
	return nil
}

func writeRecords(w output.OutputWriter, records []record.Record) error {
	for _, r := range records {
		if err := w.Write(r.Values()); err != nil {
			return fmt.Errorf("failed to write issue %s: %w", r.Key, err)
		}
	}
	return nil
}

// mapErrorToExitCode maps internal errors to process exit codes.
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, exporterrors.ErrInvalidCredentials) ||
		errors.Is(err, exporterrors.ErrInvalidQuery) ||
		errors.Is(err, exporterrors.ErrNotFound) ||
		errors.Is(err, exporterrors.ErrRateLimit) {
		return 2 // Jira rejected the request
	}

	if errors.Is(err, exporterrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error
}
