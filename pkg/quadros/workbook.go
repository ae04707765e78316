package quadros

import (
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// OpenRoster opens an uploaded roster workbook. Legacy .xls files are
// converted cell-by-cell into an in-memory xlsx on read; anything else must
// be a valid .xlsx.
func OpenRoster(path string) (*excelize.File, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, NewParseError(path, err)
		}
		return f, nil
	case ".xls":
		f, err := convertXLS(path)
		if err != nil {
			return nil, NewParseError(path, err)
		}
		return f, nil
	default:
		return nil, NewParseError(path, ErrUnsupportedFormat)
	}
}

// OpenTemplate opens a fixed-layout template workbook. Templates are always
// .xlsx; formulas and merged regions are preserved.
func OpenTemplate(path string) (*excelize.File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, NewParseError(path, err)
	}
	return f, nil
}
