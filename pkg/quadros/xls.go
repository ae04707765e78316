package quadros

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"github.com/yamitzky/xlrd-go/xlrd"
)

// convertXLS reads a legacy BIFF .xls workbook and rebuilds it as an
// in-memory xlsx, sheet by sheet and cell by cell. Only cell values survive
// the conversion, which is all the roster pipeline reads.
func convertXLS(path string) (*excelize.File, error) {
	book, err := xlrd.OpenWorkbook(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}

	out := excelize.NewFile()
	defaultSheet := out.GetSheetName(0)

	for _, sheet := range book.Sheets() {
		if _, err := out.NewSheet(sheet.Name); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", sheet.Name, err)
		}
		for r := 0; r < sheet.NRows; r++ {
			for c := 0; c < sheet.NCols; c++ {
				v := sheet.CellValue(r, c)
				if v == nil || v == "" {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return nil, err
				}
				if err := out.SetCellValue(sheet.Name, cell, v); err != nil {
					return nil, err
				}
			}
		}
	}

	// Drop the workbook's default sheet unless the source happened to use
	// the same name.
	if idx, err := out.GetSheetIndex(defaultSheet); err == nil && idx >= 0 && out.SheetCount > 1 {
		if name := defaultSheet; !hasSheetNamed(book, name) {
			if err := out.DeleteSheet(name); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func hasSheetNamed(book *xlrd.Book, name string) bool {
	for _, s := range book.Sheets() {
		if s.Name == name {
			return true
		}
	}
	return false
}
