package writer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestSetMergedRegion(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.MergeCell(sheet, "B5", "D5"))

	w, err := New(f, sheet)
	require.NoError(t, err)

	// Writing anywhere inside B5:D5 lands on the anchor and leaves the
	// merge topology untouched.
	require.NoError(t, w.Set("C5", "X"))

	got, err := f.GetCellValue(sheet, "B5")
	require.NoError(t, err)
	assert.Equal(t, "X", got)

	merges, err := f.GetMergeCells(sheet)
	require.NoError(t, err)
	found := false
	for _, m := range merges {
		if m.GetStartAxis() == "B5" && m.GetEndAxis() == "D5" {
			found = true
		}
	}
	assert.True(t, found, "merged region B5:D5 must survive the write")
}

func TestSetAnchorDirect(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.MergeCell(sheet, "A9", "J9"))

	w, err := New(f, sheet)
	require.NoError(t, err)
	require.NoError(t, w.Set("A9", "ESCOLA MUNICIPAL"))

	got, err := f.GetCellValue(sheet, "A9")
	require.NoError(t, err)
	assert.Equal(t, "ESCOLA MUNICIPAL", got)
}

func TestSetUnmergedCell(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	w, err := New(f, sheet)
	require.NoError(t, err)
	require.NoError(t, w.Set("K14", 3))

	got, err := f.GetCellValue(sheet, "K14")
	require.NoError(t, err)
	assert.Equal(t, "3", got)
}

func TestSetFormulaVerbatim(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	w, err := New(f, sheet)
	require.NoError(t, err)
	require.NoError(t, w.Set("D55", "=B55+C55"))

	formula, err := f.GetCellFormula(sheet, "D55")
	require.NoError(t, err)
	assert.Equal(t, "B55+C55", formula)
}

func TestSetBadAddress(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	w, err := New(f, sheet)
	require.NoError(t, err)

	err = w.Set("not-a-cell", 1)
	var mwErr *MergeWriteError
	require.True(t, errors.As(err, &mwErr), "expected MergeWriteError, got %v", err)
	assert.Equal(t, sheet, mwErr.Sheet)
	assert.Equal(t, "not-a-cell", mwErr.Cell)
}

func TestSetOutsideRowBounds(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	w, err := New(f, sheet)
	require.NoError(t, err)

	err = w.Set("A1048577", 1)
	var mwErr *MergeWriteError
	assert.True(t, errors.As(err, &mwErr), "expected MergeWriteError, got %v", err)
}
