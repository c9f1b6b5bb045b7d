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

// Package output writes exported issues as a single-sheet spreadsheet
// (.xlsx) using excelize.
//
// The workbook is built in memory: a bold header row followed by one row per
// Write call. Close sizes every column to its longest value (plus padding,
// capped at a maximum width), creates the parent directory if needed and
// saves the file. A writer that never received a row saves nothing.
//
// Example usage:
//
//	w, err := output.NewSheetWriter("exports/issues.xlsx", output.Options{
//	    Header: record.Columns,
//	})
//	if err != nil {
//	    return err
//	}
//	for _, r := range records {
//	    if err := w.Write(r.Values()); err != nil {
//	        _ = w.Close()
//	        return err
//	    }
//	}
//	return w.Close()
package output
