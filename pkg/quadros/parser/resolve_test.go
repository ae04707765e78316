package parser

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/secretaria-digital/quadros-go/pkg/quadros/models"
)

func TestResolveSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet("Lista Corrida "); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	if _, err := f.NewSheet("Total de Alunos"); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}

	tmp := filepath.Join(t.TempDir(), "roster.xlsx")
	if err := f.SaveAs(tmp); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	f2, err := excelize.OpenFile(tmp)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer f2.Close()

	name, err := ResolveSheet(f2, "LISTA CORRIDA")
	if err != nil {
		t.Fatalf("ResolveSheet failed: %v", err)
	}
	if name != "Lista Corrida " {
		t.Errorf("resolved %q, expected the drifted sheet name", name)
	}

	name, err = ResolveSheet(f2, "TOTAL DE ALUNOS")
	if err != nil {
		t.Fatalf("ResolveSheet failed: %v", err)
	}
	if name != "Total de Alunos" {
		t.Errorf("resolved %q, expected 'Total de Alunos'", name)
	}

	_, err = ResolveSheet(f2, "QUADRO FINAL")
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schemaErr.Kind != SchemaSheet || schemaErr.Name != "QUADRO FINAL" {
		t.Errorf("SchemaError = %+v, expected missing sheet 'QUADRO FINAL'", schemaErr)
	}
}

func TestResolveColumnsByHeader(t *testing.T) {
	header := []string{"Série", "Turno", "", "Nome do Aluno", "R.M.", "OBSERVAÇÕES"}
	specs := []ColumnSpec{
		{Field: models.FieldSeries, Candidates: []string{"Serie", "Classe"}, Fallback: -1},
		{Field: models.FieldName, Candidates: []string{"Nome", "Nome do Aluno"}, Fallback: -1},
		{Field: models.FieldStudentID, Candidates: []string{"RM"}, Fallback: -1},
		{Field: models.FieldObservation, Candidates: []string{"OBS", "Observações"}, Fallback: -1},
	}

	cols, err := ResolveColumns("LISTA CORRIDA", header, specs)
	if err != nil {
		t.Fatalf("ResolveColumns failed: %v", err)
	}

	want := map[models.Field]int{
		models.FieldSeries:      0,
		models.FieldName:        3,
		models.FieldStudentID:   4,
		models.FieldObservation: 5,
	}
	for field, idx := range want {
		b, ok := cols[field]
		if !ok {
			t.Fatalf("field %s not bound", field)
		}
		if b.Index != idx {
			t.Errorf("field %s bound to column %d, expected %d", field, b.Index, idx)
		}
		if b.Fallback {
			t.Errorf("field %s marked as fallback despite a header match", field)
		}
	}
}

func TestResolveColumnsPositionalFallback(t *testing.T) {
	header := []string{"A", "B", "C"}
	specs := []ColumnSpec{
		{Field: models.FieldObservation, Candidates: []string{"OBS"}, Fallback: 8},
	}

	cols, err := ResolveColumns("LISTA CORRIDA", header, specs)
	if err != nil {
		t.Fatalf("ResolveColumns failed: %v", err)
	}
	b := cols[models.FieldObservation]
	if b.Index != 8 {
		t.Errorf("fallback index = %d, expected 8", b.Index)
	}
	if !b.Fallback {
		t.Error("binding not marked as fallback")
	}
	if got := cols.Fallbacks(); len(got) != 1 || got[0] != models.FieldObservation {
		t.Errorf("Fallbacks() = %v, expected [OBSERVATION]", got)
	}
}

func TestResolveColumnsMissing(t *testing.T) {
	header := []string{"Nome"}
	specs := []ColumnSpec{
		{Field: models.FieldStudentID, Candidates: []string{"RM"}, Fallback: -1},
	}

	_, err := ResolveColumns("LISTA CORRIDA", header, specs)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schemaErr.Kind != SchemaColumn || schemaErr.Name != "STUDENT_ID" {
		t.Errorf("SchemaError = %+v, expected missing column STUDENT_ID", schemaErr)
	}
	if schemaErr.Sheet != "LISTA CORRIDA" {
		t.Errorf("error does not name the sheet: %v", schemaErr)
	}
}

func TestColumnMapValue(t *testing.T) {
	cols := models.ColumnMap{
		models.FieldName: {Field: models.FieldName, Index: 2},
		models.FieldRA:   {Field: models.FieldRA, Index: 9},
	}
	row := []string{"4ºB", "x", "  MARIA  "}
	if got := cols.Value(row, models.FieldName); got != "MARIA" {
		t.Errorf("Value = %q, expected trimmed 'MARIA'", got)
	}
	// Bound index past the row's width reads as empty.
	if got := cols.Value(row, models.FieldRA); got != "" {
		t.Errorf("Value = %q, expected empty for a short row", got)
	}
}

func TestParseCellValue(t *testing.T) {
	tests := []struct {
		input    string
		expected any
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{"4ºB", "4ºB"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ParseCellValue(tt.input); got != tt.expected {
			t.Errorf("ParseCellValue(%q) = %v (%T), expected %v (%T)",
				tt.input, got, got, tt.expected, tt.expected)
		}
	}
}

func TestDataBounds(t *testing.T) {
	rows := [][]string{
		{"", "", ""},
		{"", "a", "b"},
		{"", "", "c"},
	}
	minRow, maxRow, minCol, maxCol := DataBounds(rows)
	if minRow != 1 || maxRow != 2 || minCol != 1 || maxCol != 2 {
		t.Errorf("bounds = (%d,%d,%d,%d), expected (1,2,1,2)", minRow, maxRow, minCol, maxCol)
	}

	if minRow, _, _, _ := DataBounds(nil); minRow != -1 {
		t.Errorf("empty grid minRow = %d, expected -1", minRow)
	}
}
