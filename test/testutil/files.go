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

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Workbook is the readable content of a saved .xlsx file.
type Workbook struct {
	Sheets     []string
	Rows       [][]string
	Properties *excelize.DocProperties
}

// ReadWorkbook opens path and returns its sheet names, the rows of the first
// sheet and the document properties. Rows are padded with empty cells to
// width, since trailing empty cells are not stored.
func ReadWorkbook(t *testing.T, path string, width int) Workbook {
	t.Helper()

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open workbook %s: %v", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		t.Fatalf("Workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		t.Fatalf("Failed to read rows: %v", err)
	}
	for i := range rows {
		for len(rows[i]) < width {
			rows[i] = append(rows[i], "")
		}
	}

	props, err := f.GetDocProps()
	if err != nil {
		t.Fatalf("Failed to read document properties: %v", err)
	}

	return Workbook{Sheets: sheets, Rows: rows, Properties: props}
}

// AssertNoFile fails the test if anything exists at path.
func AssertNoFile(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected no file at %s, stat err = %v", path, err)
	}
}

// WriteConfig writes content as .jira-export.yaml in dir and returns its path.
func WriteConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, ".jira-export.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}
