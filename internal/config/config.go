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

// Package config provides configuration management for jira-export.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags (applied by the CLI)
//  2. YAML configuration file
//  3. Built-in defaults
//
// The process environment is never consulted.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPaths lists the files LoadConfig looks for, relative to the working
// directory, when no explicit path is given.
var DefaultPaths = []string{
	".jira-export.yaml",
	".jira-export.yml",
}

// maxSheetNameLength is the spreadsheet limit on worksheet names.
const maxSheetNameLength = 31

// LoadConfig loads configuration on top of the defaults. If configPath is
// provided, that file must exist and parse. Otherwise the first of
// DefaultPaths that exists is used, and a missing file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		return cfg, nil
	}

	for _, path := range DefaultPaths {
		if _, err := os.Stat(path); err == nil {
			if err := loadConfigFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
			}
			break
		}
	}

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// Validate checks if the configuration contains valid values. It should be
// called after flags have been applied so that every source is covered.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Jira.BaseURL) == "" {
		errs = append(errs, fmt.Errorf("jira base URL is required (use --url or jira.base_url)"))
	}
	if c.Jira.MaxResults <= 0 {
		errs = append(errs, fmt.Errorf("max results must be positive, got: %d", c.Jira.MaxResults))
	}
	if c.Jira.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got: %s", c.Jira.Timeout))
	}
	if err := validateSheetName(c.Export.SheetName); err != nil {
		errs = append(errs, err)
	}
	if c.Export.MaxColumnWidth < 1 || c.Export.MaxColumnWidth > DefaultMaxColumnWidth {
		errs = append(errs, fmt.Errorf("max column width must be between 1 and %d, got: %d",
			DefaultMaxColumnWidth, c.Export.MaxColumnWidth))
	}
	if c.Export.Output == "" {
		errs = append(errs, fmt.Errorf("output path cannot be empty"))
	} else if !strings.EqualFold(filepath.Ext(c.Export.Output), ".xlsx") {
		errs = append(errs, fmt.Errorf("output path %q must have the .xlsx extension", c.Export.Output))
	}

	return errors.Join(errs...)
}

func validateSheetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("sheet name cannot be empty")
	}
	if n := len([]rune(name)); n > maxSheetNameLength {
		return fmt.Errorf("sheet name %q is %d characters, the limit is %d", name, n, maxSheetNameLength)
	}
	if i := strings.IndexAny(name, `:\/?*[]`); i >= 0 {
		return fmt.Errorf("sheet name %q contains illegal character %q", name, name[i])
	}
	return nil
}
