package parser

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/secretaria-digital/quadros-go/pkg/quadros/models"
)

// SchemaKind tells which part of the roster schema was missing.
type SchemaKind string

const (
	// SchemaSheet means the required sheet is absent.
	SchemaSheet SchemaKind = "sheet"
	// SchemaColumn means a required column is absent even after fallback.
	SchemaColumn SchemaKind = "column"
)

// SchemaError reports a required sheet or column absent from the roster.
// Fatal for the run; the message names the missing piece.
type SchemaError struct {
	Kind SchemaKind
	// Name is the missing sheet name or logical field name.
	Name string
	// Sheet is the sheet being resolved, for column errors.
	Sheet string
}

func (e *SchemaError) Error() string {
	if e.Kind == SchemaSheet {
		return fmt.Sprintf("required sheet %q not found in workbook", e.Name)
	}
	return fmt.Sprintf("required column %q not found in sheet %q", e.Name, e.Sheet)
}

// ColumnSpec describes how to locate one logical field in a header row.
type ColumnSpec struct {
	Field models.Field
	// Candidates are header texts tried in order against the normalized
	// header row.
	Candidates []string
	// Fallback is the 0-based positional index used when no candidate
	// matches; -1 disables positional fallback for the field.
	Fallback int
}

// ResolveSheet returns the first sheet whose normalized name equals the
// normalized target, or a SchemaError when none matches.
func ResolveSheet(f *excelize.File, target string) (string, error) {
	want := NormalizeKey(target)
	for _, name := range f.GetSheetList() {
		if NormalizeKey(name) == want {
			return name, nil
		}
	}
	return "", &SchemaError{Kind: SchemaSheet, Name: target}
}

// ResolveColumns builds a ColumnMap from the sheet's header row. The first
// matching candidate wins; a configured positional fallback is used
// otherwise and marked on the binding; a field with no match and no
// fallback is a SchemaError. Pure over the header row.
func ResolveColumns(sheet string, header []string, specs []ColumnSpec) (models.ColumnMap, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := NormalizeKey(h)
		if key == "" {
			continue
		}
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}

	out := make(models.ColumnMap, len(specs))
	for _, spec := range specs {
		bound := false
		for _, cand := range spec.Candidates {
			if i, ok := index[NormalizeKey(cand)]; ok {
				out[spec.Field] = models.ColumnBinding{
					Field:  spec.Field,
					Index:  i,
					Header: header[i],
				}
				bound = true
				break
			}
		}
		if bound {
			continue
		}
		if spec.Fallback >= 0 {
			out[spec.Field] = models.ColumnBinding{
				Field:    spec.Field,
				Index:    spec.Fallback,
				Fallback: true,
			}
			continue
		}
		return nil, &SchemaError{Kind: SchemaColumn, Name: string(spec.Field), Sheet: sheet}
	}
	return out, nil
}

// ParseCellValue parses a raw cell string as int64, float64 or string, in
// that order. Template writers use it so numeric source cells stay numeric
// in the output.
func ParseCellValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// DataBounds finds the bounding box of non-empty cells in a row grid. All
// values are 0-based; minRow is -1 when the grid is empty.
func DataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow, minCol, maxCol = -1, -1, -1, -1
	for r, row := range rows {
		for c, cell := range row {
			if cell == "" {
				continue
			}
			if minRow < 0 || r < minRow {
				minRow = r
			}
			if r > maxRow {
				maxRow = r
			}
			if minCol < 0 || c < minCol {
				minCol = c
			}
			if c > maxCol {
				maxCol = c
			}
		}
	}
	return
}
