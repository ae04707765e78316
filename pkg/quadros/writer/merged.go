// Package writer fills fixed-layout template workbooks, preserving merged
// regions, and emits the hidden audit sheet.
package writer

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// MergeWriteError reports a write outside the template's bounds or to an
// unparsable address. Fatal: it indicates a template/version mismatch.
type MergeWriteError struct {
	Sheet string
	Cell  string
	Err   error
}

func (e *MergeWriteError) Error() string {
	return fmt.Sprintf("cannot write cell %s!%s: %v", e.Sheet, e.Cell, e.Err)
}

func (e *MergeWriteError) Unwrap() error {
	return e.Err
}

// Writer writes values and formulas into one template sheet. Every template
// write in the pipeline goes through it, so merged-region handling lives in
// exactly one place. A write to an address inside a merged region unmerges
// the region, writes the anchor (top-left) cell and re-merges the identical
// bounds, leaving the sheet's merge topology otherwise unchanged.
type Writer struct {
	f     *excelize.File
	sheet string
	// maxCol bounds writable columns, derived from the template's dimension.
	maxCol int
}

// New returns a Writer for one sheet of an opened template workbook.
func New(f *excelize.File, sheet string) (*Writer, error) {
	w := &Writer{f: f, sheet: sheet}
	if dim, err := f.GetSheetDimension(sheet); err == nil {
		if _, end, ok := strings.Cut(dim, ":"); ok {
			if col, _, err := excelize.CellNameToCoordinates(end); err == nil {
				w.maxCol = col
			}
		}
	}
	return w, nil
}

// Sheet returns the target sheet name.
func (w *Writer) Sheet() string { return w.sheet }

// Set writes a value to a cell address. Strings beginning with "=" are
// written verbatim as formulas, never evaluated.
func (w *Writer) Set(cell string, value any) error {
	col, row, err := excelize.CellNameToCoordinates(cell)
	if err != nil {
		return &MergeWriteError{Sheet: w.sheet, Cell: cell, Err: err}
	}
	if row > excelize.TotalRows || (w.maxCol > 0 && col > w.maxCol) {
		return &MergeWriteError{Sheet: w.sheet, Cell: cell, Err: fmt.Errorf("address outside template bounds")}
	}

	target := cell
	region, ok, err := w.regionOf(cell)
	if err != nil {
		return &MergeWriteError{Sheet: w.sheet, Cell: cell, Err: err}
	}
	if ok {
		if err := w.f.UnmergeCell(w.sheet, region.start, region.end); err != nil {
			return &MergeWriteError{Sheet: w.sheet, Cell: cell, Err: err}
		}
		target = region.start
		defer func() {
			// Re-merge the identical bounds regardless of how the write went.
			_ = w.f.MergeCell(w.sheet, region.start, region.end)
		}()
	}

	if s, isStr := value.(string); isStr && strings.HasPrefix(s, "=") {
		err = w.f.SetCellFormula(w.sheet, target, strings.TrimPrefix(s, "="))
	} else {
		err = w.f.SetCellValue(w.sheet, target, value)
	}
	if err != nil {
		return &MergeWriteError{Sheet: w.sheet, Cell: cell, Err: err}
	}
	return nil
}

type mergedRegion struct {
	start, end string
}

// regionOf finds the merged region containing cell, if any.
func (w *Writer) regionOf(cell string) (mergedRegion, bool, error) {
	col, row, err := excelize.CellNameToCoordinates(cell)
	if err != nil {
		return mergedRegion{}, false, err
	}
	merges, err := w.f.GetMergeCells(w.sheet)
	if err != nil {
		return mergedRegion{}, false, err
	}
	for _, m := range merges {
		start, end := m.GetStartAxis(), m.GetEndAxis()
		c1, r1, err1 := excelize.CellNameToCoordinates(start)
		c2, r2, err2 := excelize.CellNameToCoordinates(end)
		if err1 != nil || err2 != nil {
			continue
		}
		if col >= c1 && col <= c2 && row >= r1 && row <= r2 {
			return mergedRegion{start: start, end: end}, true, nil
		}
	}
	return mergedRegion{}, false, nil
}
