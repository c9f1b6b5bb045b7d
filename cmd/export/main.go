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
	"fmt"
	"io"
	"os"

	"github.com/sirseerhq/jira-export/pkg/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds the state shared by the root command hooks.
type app struct {
	stderr    io.Writer
	logger    *zap.Logger
	newClient clientFactory
}

func main() {
	a := &app{stderr: os.Stderr, newClient: newJiraClient}
	rootCmd := newRootCommand(a)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

func newRootCommand(a *app) *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "jira-export",
		Short: "Export Jira issues to an Excel workbook",
		Long: `jira-export runs a JQL search against a Jira instance and writes the
matching issues to a single-sheet .xlsx file, one row per issue.

Columns: Key, Summary, Status, Priority, Issue Type, Assignee, Reporter,
Created, Updated, Description.

Authentication uses the account email and an API token, passed as flags.`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				return nil
			}
			logger, err := newLogger(flags.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, &flags)
		},
	}

	flags.register(cmd)

	return cmd
}

// newLogger builds the console logger. Only warnings and errors are shown
// unless verbose is set.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.TimeKey = ""

	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	return cfg.Build()
}
