package writer

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/secretaria-digital/quadros-go/pkg/quadros/models"
)

// DefaultAuditSheetName is the name of the hidden diagnostic sheet.
const DefaultAuditSheetName = "Auditoria"

// WriteAuditSheet replaces the audit sheet with one hidden sheet holding the
// fixed header plus one row per entry in source-row order. This is the only
// place the pipeline mutates workbook structure outside the designated
// output cells.
func WriteAuditSheet(f *excelize.File, name string, entries []models.AuditEntry) error {
	if name == "" {
		name = DefaultAuditSheetName
	}
	if idx, err := f.GetSheetIndex(name); err == nil && idx >= 0 {
		if err := f.DeleteSheet(name); err != nil {
			return fmt.Errorf("replace audit sheet: %w", err)
		}
	}
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create audit sheet: %w", err)
	}

	header := make([]any, len(models.AuditHeader))
	for i, h := range models.AuditHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("write audit header: %w", err)
	}

	for i, e := range entries {
		row := []any{
			e.Row,
			e.StudentID,
			e.Name,
			e.Series,
			e.RawText,
			e.ExtractedDate,
			e.YearInferred,
			e.MatchedText,
			string(e.Decision),
			e.Reason,
			e.RawCategory,
			string(e.Category),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("write audit row %d: %w", e.Row, err)
		}
	}

	if err := f.SetSheetVisible(name, false); err != nil {
		return fmt.Errorf("hide audit sheet: %w", err)
	}
	return nil
}
