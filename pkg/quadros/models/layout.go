package models

import "fmt"

// MatrixLayout places per-bucket counts into a template block. Series map to
// fixed columns, row labels to consecutive rows below StartRow. Declarative:
// loaded from a block-layout table, never inferred at runtime. The row labels
// are whatever the template prints beside each row, which for the
// quantitative quadro is the raw reason text, not the canonical category.
type MatrixLayout struct {
	// StartRow is the template row of the first label.
	StartRow int
	// SeriesOrder fixes the series traversal order.
	SeriesOrder []string
	// Columns maps a series key to its template column letter.
	Columns map[string]string
	// Rows fixes the row-label order.
	Rows []string
}

// Cell returns the template address for a (series, label) cell, or ok=false
// when the pair has no place in the block.
func (l MatrixLayout) Cell(series, label string) (string, bool) {
	col, ok := l.Columns[series]
	if !ok {
		return "", false
	}
	for i, r := range l.Rows {
		if r == label {
			return fmt.Sprintf("%s%d", col, l.StartRow+i), true
		}
	}
	return "", false
}

// MatrixKey addresses one cell of a MatrixLayout block.
type MatrixKey struct {
	Series string
	Label  string
}

// RecordColumn binds one output-record key to a template column letter.
type RecordColumn struct {
	Key    string
	Column string
}

// RecordLayout places a list of OutputRecords into consecutive template rows
// starting at StartRow, one record per row.
type RecordLayout struct {
	StartRow int
	Columns  []RecordColumn
	// Placeholder is written for keys absent from a record; missing data must
	// be visible in the output, never silently omitted.
	Placeholder string
}

// CellCopy copies a single source cell to a fixed template address.
type CellCopy struct {
	// Target is the template cell address.
	Target string
	// SourceRow and SourceCol are 1-based coordinates in the source sheet.
	SourceRow, SourceCol int
}

// CopyBlock copies a run of source rows into a run of template rows, two
// value columns per row plus an optional per-row total formula.
type CopyBlock struct {
	// TargetStart..TargetEnd are inclusive template rows.
	TargetStart, TargetEnd int
	// SourceStart is the 1-based source row aligned with TargetStart.
	SourceStart int
	// ValueColumns maps a template column letter to a 1-based source column.
	ValueColumns map[string]int
	// FormulaColumn, when set, receives FormulaTemplate expanded with the
	// target row number (e.g. "=B%[1]d+C%[1]d").
	FormulaColumn   string
	FormulaTemplate string
}

// HeaderCell is one fixed header value written into the template.
type HeaderCell struct {
	Cell  string
	Value any
}

// ClassGroup is one letter-labeled class in a count block layout.
type ClassGroup struct {
	// Series is the full class name (e.g. "4ºB").
	Series string
	// CountCell receives the row count for the class; empty when the block
	// only prints the unique count for it.
	CountCell string
	// UniqueCell receives the deduplicated name count; empty when the block
	// has no unique row.
	UniqueCell string
}

// SeriesGroup folds several full series names into one count/unique cell
// pair (the EJA blocks group whole grade ranges into a single row).
type SeriesGroup struct {
	Series     []string
	CountCell  string
	UniqueCell string
}

// CountLayout enumerates the fixed class roster of a count template. Groups
// absent from the source data are still written with an explicit zero.
type CountLayout struct {
	Groups []ClassGroup
}
