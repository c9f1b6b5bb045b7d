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

// Package config types define the configuration structures used throughout
// jira-export. These types represent settings that can be loaded from a YAML
// configuration file and overridden by command-line flags.
package config

import "time"

// Config represents the complete configuration for jira-export.
// Credentials are deliberately absent: they are accepted as flags only.
type Config struct {
	Jira   JiraConfig   `yaml:"jira"`
	Export ExportConfig `yaml:"export"`
}

// JiraConfig contains the search request settings: which instance to talk to,
// which issues to select and how many of them to return.
type JiraConfig struct {
	BaseURL    string        `yaml:"base_url"`
	JQL        string        `yaml:"jql"`
	MaxResults int           `yaml:"max_results"`
	Timeout    time.Duration `yaml:"timeout"`
}

// ExportConfig controls where and how the spreadsheet is written.
type ExportConfig struct {
	Output         string `yaml:"output"`
	SheetName      string `yaml:"sheet_name"`
	MaxColumnWidth int    `yaml:"max_column_width"`
}

// Built-in defaults.
const (
	DefaultJQL            = "ORDER BY updated DESC"
	DefaultMaxResults     = 100
	DefaultTimeout        = 30 * time.Second
	DefaultOutput         = "jira_export.xlsx"
	DefaultSheetName      = "JIRA Issues"
	DefaultMaxColumnWidth = 255
)

// DefaultConfig returns a Config populated with the built-in defaults. The
// base URL has no sensible default and must come from a file or flag.
func DefaultConfig() *Config {
	return &Config{
		Jira: JiraConfig{
			JQL:        DefaultJQL,
			MaxResults: DefaultMaxResults,
			Timeout:    DefaultTimeout,
		},
		Export: ExportConfig{
			Output:         DefaultOutput,
			SheetName:      DefaultSheetName,
			MaxColumnWidth: DefaultMaxColumnWidth,
		},
	}
}
