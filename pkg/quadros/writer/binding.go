package writer

import (
	"fmt"

	"github.com/secretaria-digital/quadros-go/pkg/quadros/models"
	"github.com/secretaria-digital/quadros-go/pkg/quadros/parser"
)

// BindMatrix places per-cell counts into a matrix template block. Every cell
// of the block is written, explicit zero when the key is absent from the
// counts, so missing buckets are visible in the output rather than silently
// omitted. Traversal follows the layout's declared order, never map order.
func BindMatrix(w *Writer, layout models.MatrixLayout, counts map[models.MatrixKey]int) error {
	for _, series := range layout.SeriesOrder {
		for _, label := range layout.Rows {
			cell, ok := layout.Cell(series, label)
			if !ok {
				continue
			}
			if err := w.Set(cell, counts[models.MatrixKey{Series: series, Label: label}]); err != nil {
				return err
			}
		}
	}
	return nil
}

// BindRecords writes one record per template row starting at the layout's
// start row. Keys absent from a record receive the layout placeholder.
func BindRecords(w *Writer, layout models.RecordLayout, records []models.OutputRecord) error {
	for i, rec := range records {
		row := layout.StartRow + i
		for _, col := range layout.Columns {
			v, ok := rec[col.Key]
			if !ok || v == "" {
				v = layout.Placeholder
			}
			cell := fmt.Sprintf("%s%d", col.Column, row)
			if err := w.Set(cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// BindCells writes fixed header values into the template.
func BindCells(w *Writer, cells []models.HeaderCell) error {
	for _, hc := range cells {
		if err := w.Set(hc.Cell, hc.Value); err != nil {
			return err
		}
	}
	return nil
}

// CopyBlocks copies runs of source rows into template rows and injects the
// per-row total formulas. Source cells beyond the grid are written as zero.
func CopyBlocks(w *Writer, blocks []models.CopyBlock, source [][]string) error {
	for _, blk := range blocks {
		for row := blk.TargetStart; row <= blk.TargetEnd; row++ {
			srcRow := blk.SourceStart + (row - blk.TargetStart)
			for col, srcCol := range blk.ValueColumns {
				cell := fmt.Sprintf("%s%d", col, row)
				if err := w.Set(cell, sourceValue(source, srcRow, srcCol)); err != nil {
					return err
				}
			}
			if blk.FormulaColumn != "" {
				cell := fmt.Sprintf("%s%d", blk.FormulaColumn, row)
				formula := fmt.Sprintf(blk.FormulaTemplate, row)
				if err := w.Set(cell, formula); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// CopyCells copies single source cells to fixed template addresses.
func CopyCells(w *Writer, copies []models.CellCopy, source [][]string) error {
	for _, cp := range copies {
		if err := w.Set(cp.Target, sourceValue(source, cp.SourceRow, cp.SourceCol)); err != nil {
			return err
		}
	}
	return nil
}

// sourceValue reads a 1-based cell from a GetRows grid, parsed so numbers
// stay numbers in the output.
func sourceValue(rows [][]string, row, col int) any {
	if row < 1 || row > len(rows) {
		return 0
	}
	r := rows[row-1]
	if col < 1 || col > len(r) {
		return 0
	}
	if r[col-1] == "" {
		return 0
	}
	return parser.ParseCellValue(r[col-1])
}

// BindCounts writes a class-count block. Every enumerated group is written,
// zero when absent from the counts, so "missing" is visible in the output.
func BindCounts(w *Writer, layout models.CountLayout, counts map[string]int, unique map[string]int) error {
	for _, g := range layout.Groups {
		if g.CountCell != "" {
			if err := w.Set(g.CountCell, counts[g.Series]); err != nil {
				return err
			}
		}
		if g.UniqueCell == "" {
			continue
		}
		if err := w.Set(g.UniqueCell, unique[g.Series]); err != nil {
			return err
		}
	}
	return nil
}

// BindSeriesGroups writes grouped series counts: each group's count is the
// sum over its member series, its unique count the size of the union of the
// members' name sets.
func BindSeriesGroups(w *Writer, groups []models.SeriesGroup, counts map[string]int, names map[string]map[string]struct{}) error {
	for _, g := range groups {
		total := 0
		union := make(map[string]struct{})
		for _, s := range g.Series {
			total += counts[s]
			for n := range names[s] {
				union[n] = struct{}{}
			}
		}
		if g.CountCell != "" {
			if err := w.Set(g.CountCell, total); err != nil {
				return err
			}
		}
		if g.UniqueCell == "" {
			continue
		}
		if err := w.Set(g.UniqueCell, len(union)); err != nil {
			return err
		}
	}
	return nil
}
