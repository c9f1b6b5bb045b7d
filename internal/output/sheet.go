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

package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	// DefaultSheetName is used when Options.SheetName is empty.
	DefaultSheetName = "JIRA Issues"

	// MaxColumnWidth is the widest column a spreadsheet accepts.
	MaxColumnWidth = excelize.MaxColumnWidth

	// columnPadding is added to the longest value of each column.
	columnPadding = 2
)

// ErrEmptySheet is returned by Close when no row was written. No file is
// created in that case.
var ErrEmptySheet = errors.New("no rows to write")

// Options configures a SheetWriter.
type Options struct {
	// SheetName names the only worksheet. Defaults to DefaultSheetName.
	SheetName string

	// MaxColumnWidth caps the computed column widths. Defaults to
	// MaxColumnWidth.
	MaxColumnWidth int

	// Header is written as the first, bold row and fixes the row width.
	Header []string
}

// Properties are the workbook document properties.
type Properties struct {
	Title       string
	Subject     string
	Description string
	Identifier  string
	Creator     string
	Created     time.Time
}

// SheetWriter accumulates rows in an in-memory workbook and saves it on Close.
type SheetWriter struct {
	mu       sync.Mutex
	path     string
	file     *excelize.File
	sheet    string
	columns  int
	widths   []int
	maxWidth int
	count    int
	closed   bool
}

// NewSheetWriter creates a workbook whose single sheet starts with the header
// row. The file at path is not touched until Close.
func NewSheetWriter(path string, opts Options) (*SheetWriter, error) {
	if path == "" {
		return nil, fmt.Errorf("output path cannot be empty")
	}
	if len(opts.Header) == 0 {
		return nil, fmt.Errorf("header must have at least one column")
	}

	sheet := opts.SheetName
	if sheet == "" {
		sheet = DefaultSheetName
	}
	maxWidth := opts.MaxColumnWidth
	if maxWidth <= 0 || maxWidth > MaxColumnWidth {
		maxWidth = MaxColumnWidth
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to name sheet %q: %w", sheet, err)
	}

	w := &SheetWriter{
		path:     path,
		file:     f,
		sheet:    sheet,
		columns:  len(opts.Header),
		widths:   make([]int, len(opts.Header)),
		maxWidth: maxWidth,
	}

	if err := w.writeRow(1, opts.Header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := w.styleHeader(); err != nil {
		_ = f.Close()
		return nil, err
	}

	return w, nil
}

func (w *SheetWriter) styleHeader() error {
	style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(w.columns, 1)
	if err != nil {
		return err
	}
	if err := w.file.SetCellStyle(w.sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	return nil
}

// writeRow sets the cells of a row and widens the tracked column widths.
func (w *SheetWriter) writeRow(rowNum int, row []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}

	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
		if n := utf8.RuneCountInString(v); n > w.widths[i] {
			w.widths[i] = n
		}
	}

	return w.file.SetSheetRow(w.sheet, cell, &cells)
}

// Write appends a row. The row must have exactly as many cells as the header.
func (w *SheetWriter) Write(row []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("write to closed sheet writer")
	}
	if len(row) != w.columns {
		return fmt.Errorf("row has %d cells, header has %d", len(row), w.columns)
	}

	// Row 1 is the header.
	if err := w.writeRow(w.count+2, row); err != nil {
		return fmt.Errorf("failed to write row %d: %w", w.count+1, err)
	}

	w.count++
	return nil
}

// SetProperties stamps the workbook document properties.
func (w *SheetWriter) SetProperties(p Properties) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("set properties on closed sheet writer")
	}

	created := ""
	if !p.Created.IsZero() {
		created = p.Created.UTC().Format(time.RFC3339)
	}

	err := w.file.SetDocProps(&excelize.DocProperties{
		Title:          p.Title,
		Subject:        p.Subject,
		Description:    p.Description,
		Identifier:     p.Identifier,
		Creator:        p.Creator,
		LastModifiedBy: p.Creator,
		Created:        created,
		Modified:       created,
	})
	if err != nil {
		return fmt.Errorf("failed to set document properties: %w", err)
	}
	return nil
}

// Count returns the number of data rows written, excluding the header.
func (w *SheetWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Path returns the destination file path.
func (w *SheetWriter) Path() string {
	return w.path
}

// ColumnWidths returns the widths Close will apply, in column order.
func (w *SheetWriter) ColumnWidths() []float64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]float64, len(w.widths))
	for i, n := range w.widths {
		out[i] = float64(columnWidth(n, w.maxWidth))
	}
	return out
}

func columnWidth(longest, maxWidth int) int {
	return min(longest+columnPadding, maxWidth)
}

// Discard releases the workbook without saving it. It is a no-op after Close.
func (w *SheetWriter) Discard() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}

// Close sizes the columns and saves the workbook. It returns ErrEmptySheet,
// without creating any file, when no row was written. Calling Close more than
// once is a no-op.
func (w *SheetWriter) Close() (err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	defer func() {
		if cerr := w.file.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to release workbook: %w", cerr))
		}
	}()

	if w.count == 0 {
		return ErrEmptySheet
	}

	for i, n := range w.widths {
		col, cerr := excelize.ColumnNumberToName(i + 1)
		if cerr != nil {
			return cerr
		}
		if err := w.file.SetColWidth(w.sheet, col, col, float64(columnWidth(n, w.maxWidth))); err != nil {
			return fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", w.path, err)
	}

	return nil
}
