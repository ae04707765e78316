package quadros

import (
	"github.com/secretaria-digital/quadros-go/pkg/quadros/models"
	"github.com/secretaria-digital/quadros-go/pkg/quadros/parser"
)

// Column specs for the running roster sheet ("LISTA CORRIDA"). Header text
// drifts between yearly resubmissions, so every field carries candidate
// headers plus the historical positional fallback.
var rosterColumnSpecs = []parser.ColumnSpec{
	{Field: models.FieldSeries, Candidates: []string{"Série", "Serie", "Classe", "Nível/Classe"}, Fallback: 0},
	{Field: models.FieldName, Candidates: []string{"Nome", "Nome do Aluno", "Aluno"}, Fallback: 3},
	{Field: models.FieldBirthDate, Candidates: []string{"Data de Nascimento", "Nascimento", "DN"}, Fallback: 5},
	{Field: models.FieldRA, Candidates: []string{"RA", "R.A.", "Registro do Aluno"}, Fallback: 6},
	{Field: models.FieldStudentID, Candidates: []string{"RM", "R.M.", "Matrícula"}, Fallback: 7},
	{Field: models.FieldObservation, Candidates: []string{"OBS", "Observação", "Observações"}, Fallback: 8},
	{Field: models.FieldReason, Candidates: []string{"Motivo", "Motivo TE", "Destino"}, Fallback: 21},
	{Field: models.FieldReasonDetail, Candidates: []string{"Complemento", "Detalhe", "Motivo (Detalhe)"}, Fallback: 22},
}

// Column specs for the inclusion roster pass.
var inclusionColumnSpecs = []parser.ColumnSpec{
	{Field: models.FieldSeries, Candidates: []string{"Série", "Serie", "Classe"}, Fallback: 0},
	{Field: models.FieldName, Candidates: []string{"Nome", "Nome do Aluno", "Aluno"}, Fallback: 3},
	{Field: models.FieldBirthDate, Candidates: []string{"Data de Nascimento", "Nascimento", "DN"}, Fallback: 5},
	{Field: models.FieldStudentID, Candidates: []string{"RM", "R.M.", "Matrícula"}, Fallback: 7},
	{Field: models.FieldSchedule, Candidates: []string{"Horário", "Horario"}, Fallback: 10},
	{Field: models.FieldInclusion, Candidates: []string{"Inclusão", "Aluno de Inclusão", "AEE?"}, Fallback: 13},
	{Field: models.FieldTeacher, Candidates: []string{"Professor", "Professora", "Docente"}, Fallback: 14},
	{Field: models.FieldPlan, Candidates: []string{"Plano de Ação", "Plano"}, Fallback: 15},
	{Field: models.FieldAEE, Candidates: []string{"AEE", "Atendimento AEE"}, Fallback: 16},
	{Field: models.FieldDeficiency, Candidates: []string{"Deficiência", "Deficiencia", "Laudo"}, Fallback: 17},
	{Field: models.FieldNotes, Candidates: []string{"Observações", "Observacoes", "OBS Inclusão"}, Fallback: 18},
	{Field: models.FieldChair, Candidates: []string{"Cadeira", "Cadeira de Rodas"}, Fallback: 19},
	{Field: models.FieldAide, Candidates: []string{"Apoio", "Acompanhante"}, Fallback: 20},
	{Field: models.FieldLevel, Candidates: []string{"Nível", "Nivel", "Ano"}, Fallback: 23},
	{Field: models.FieldTransport, Candidates: []string{"Transporte"}, Fallback: 24},
}

// transferLayout is the record-list block of the transfer report template
// ("Quadro Informativo").
var transferLayout = models.RecordLayout{
	StartRow:    12,
	Placeholder: "-",
	Columns: []models.RecordColumn{
		{Key: "nome", Column: "A"},
		{Key: "nascimento", Column: "B"},
		{Key: "ra", Column: "C"},
		{Key: "situacao", Column: "D"},
		{Key: "breda", Column: "E"},
		{Key: "classe", Column: "F"},
		{Key: "tipo", Column: "G"},
		{Key: "observacao", Column: "H"},
		{Key: "remanejamento", Column: "I"},
		{Key: "data", Column: "J"},
	},
}

// quantitativeReasonRows are the reason rows the quantitative template
// prints, K14..N23, in template order. The template keys its rows by the raw
// reason text, not the canonical category; rows that map many-to-one onto a
// category (Litoral, São Paulo, ABCD, Interior) stay separate here.
var quantitativeReasonRows = []string{
	"Dentro da Rede",
	"Rede Estadual",
	"Litoral",
	"São Paulo",
	"ABCD",
	"Interior",
	"Outros Estados",
	"Particular",
	"País",
	"Sem Informação",
}

// quantitativeLayout is the series × reason matrix block of the monthly
// quantitative template: series in columns K..N, one reason row from row 14
// down.
var quantitativeLayout = models.MatrixLayout{
	StartRow:    14,
	SeriesOrder: []string{"2º", "3º", "4º", "5º"},
	Columns: map[string]string{
		"2º": "K",
		"3º": "L",
		"4º": "M",
		"5º": "N",
	},
	Rows: quantitativeReasonRows,
}

// reasonRowIndex resolves raw reason text to its template row label,
// tolerant to accent and case drift. Raw reasons without a row of their own
// land on the "Sem Informação" row, keeping the binding total.
var reasonRowIndex = func() map[string]string {
	m := make(map[string]string, len(quantitativeReasonRows))
	for _, label := range quantitativeReasonRows {
		m[parser.NormalizeKey(label)] = label
	}
	return m
}()

func reasonRowLabel(raw string) string {
	if label, ok := reasonRowIndex[parser.NormalizeKey(raw)]; ok {
		return label
	}
	return "Sem Informação"
}

// inclusionLayout is the record-list block of the inclusion report template.
var inclusionLayout = models.RecordLayout{
	StartRow:    7,
	Placeholder: "-",
	Columns: []models.RecordColumn{
		{Key: "nivel", Column: "B"},
		{Key: "turma", Column: "C"},
		{Key: "periodo", Column: "D"},
		{Key: "horario", Column: "E"},
		{Key: "nome", Column: "F"},
		{Key: "nascimento", Column: "G"},
		{Key: "professor", Column: "H"},
		{Key: "plano", Column: "I"},
		{Key: "aee", Column: "J"},
		{Key: "deficiencia", Column: "K"},
		{Key: "observacoes", Column: "L"},
		{Key: "cadeira", Column: "M"},
		{Key: "apoio", Column: "N"},
		{Key: "transporte", Column: "O"},
	},
}

// attendanceBlocks copies the "Total de Alunos" summary into the monthly
// attendance template: enrollment columns G/H land in B/C, with a per-row
// total formula in D.
var attendanceBlocks = []models.CopyBlock{
	{TargetStart: 55, TargetEnd: 56, SourceStart: 13, ValueColumns: map[string]int{"B": 7, "C": 8}, FormulaColumn: "D", FormulaTemplate: "=B%[1]d+C%[1]d"},
	{TargetStart: 57, TargetEnd: 60, SourceStart: 15, ValueColumns: map[string]int{"B": 7, "C": 8}, FormulaColumn: "D", FormulaTemplate: "=B%[1]d+C%[1]d"},
	{TargetStart: 73, TargetEnd: 79, SourceStart: 20, ValueColumns: map[string]int{"B": 7, "C": 8}, FormulaColumn: "D", FormulaTemplate: "=B%[1]d+C%[1]d"},
	{TargetStart: 91, TargetEnd: 97, SourceStart: 28, ValueColumns: map[string]int{"B": 7, "C": 8}, FormulaColumn: "D", FormulaTemplate: "=B%[1]d+C%[1]d"},
	{TargetStart: 37, TargetEnd: 42, SourceStart: 6, ValueColumns: map[string]int{"B": 7, "C": 8}},
}

// attendanceCellCopies are the scattered single-cell transfers of the
// attendance template.
var attendanceCellCopies = []models.CellCopy{
	{Target: "R20", SourceRow: 37, SourceCol: 9},
	{Target: "R28", SourceRow: 39, SourceCol: 9},
}

// inclusionCountLayout enumerates the letter-labeled class roster of the
// inclusion count template. Every group is written even when absent from
// the roster.
var inclusionCountLayout = models.CountLayout{
	Groups: []models.ClassGroup{
		{Series: "2ºA", CountCell: "D14", UniqueCell: "D15"},
		{Series: "2ºB", CountCell: "D18", UniqueCell: "D19"},
		{Series: "2ºC", CountCell: "D22", UniqueCell: "D23"},
		{Series: "2ºD", CountCell: "D26", UniqueCell: "D27"},
		{Series: "2ºE", CountCell: "D30", UniqueCell: "D31"},
		{Series: "2ºF", CountCell: "D34", UniqueCell: "D35"},
		{Series: "2ºG", UniqueCell: "D39"},
		{Series: "3ºA", CountCell: "D42", UniqueCell: "D43"},
		{Series: "3ºB", CountCell: "D46", UniqueCell: "D47"},
		{Series: "3ºC", CountCell: "H14", UniqueCell: "H15"},
		{Series: "3ºD", CountCell: "H18", UniqueCell: "H19"},
		{Series: "3ºE", CountCell: "H22", UniqueCell: "H23"},
		{Series: "3ºF", CountCell: "H26", UniqueCell: "H27"},
		{Series: "4ºA", CountCell: "H30", UniqueCell: "H31"},
		{Series: "4ºB", CountCell: "H34", UniqueCell: "H35"},
		{Series: "4ºC", CountCell: "H38", UniqueCell: "H39"},
		{Series: "4ºD", CountCell: "H42", UniqueCell: "H43"},
		{Series: "4ºE", CountCell: "H46", UniqueCell: "H47"},
		{Series: "4ºF", CountCell: "L14", UniqueCell: "L15"},
		{Series: "4ºG", CountCell: "L18", UniqueCell: "L19"},
		{Series: "5ºA", CountCell: "L22", UniqueCell: "L23"},
		{Series: "5ºB", CountCell: "L26", UniqueCell: "L27"},
		{Series: "5ºC", CountCell: "L30", UniqueCell: "L31"},
		{Series: "5ºD", CountCell: "L34", UniqueCell: "L35"},
		{Series: "5ºE", CountCell: "L38", UniqueCell: "L39"},
		{Series: "5ºF", CountCell: "L42", UniqueCell: "L43"},
		{Series: "5ºG", CountCell: "L46", UniqueCell: "L47"},
	},
}

// inclusionTotalsCopies transfers the per-class enrollment totals from the
// regular roster's "Total de Alunos" column O into the inclusion count
// template's fixed cells.
var inclusionTotalsCopies = []models.CellCopy{
	{Target: "D13", SourceRow: 6, SourceCol: 15},
	{Target: "D17", SourceRow: 7, SourceCol: 15},
	{Target: "D21", SourceRow: 8, SourceCol: 15},
	{Target: "D25", SourceRow: 9, SourceCol: 15},
	{Target: "D29", SourceRow: 10, SourceCol: 15},
	{Target: "D33", SourceRow: 11, SourceCol: 15},
	{Target: "D41", SourceRow: 13, SourceCol: 15},
	{Target: "D45", SourceRow: 14, SourceCol: 15},
	{Target: "H13", SourceRow: 15, SourceCol: 15},
	{Target: "H17", SourceRow: 16, SourceCol: 15},
	{Target: "H21", SourceRow: 17, SourceCol: 15},
	{Target: "H25", SourceRow: 18, SourceCol: 15},
	{Target: "H29", SourceRow: 20, SourceCol: 15},
	{Target: "H33", SourceRow: 21, SourceCol: 15},
	{Target: "H37", SourceRow: 22, SourceCol: 15},
	{Target: "H41", SourceRow: 23, SourceCol: 15},
	{Target: "H45", SourceRow: 24, SourceCol: 15},
	{Target: "L13", SourceRow: 25, SourceCol: 15},
	{Target: "L17", SourceRow: 26, SourceCol: 15},
	{Target: "L21", SourceRow: 28, SourceCol: 15},
	{Target: "L25", SourceRow: 29, SourceCol: 15},
	{Target: "L29", SourceRow: 30, SourceCol: 15},
	{Target: "L33", SourceRow: 31, SourceCol: 15},
	{Target: "L37", SourceRow: 32, SourceCol: 15},
	{Target: "L41", SourceRow: 33, SourceCol: 15},
	{Target: "L45", SourceRow: 34, SourceCol: 15},
}

// ejaTotalsCopies transfers the EJA roster's "Total de Alunos" column M
// totals into the template. D57 is a two-cell sum handled by the
// orchestrator, not a plain copy.
var ejaTotalsCopies = []models.CellCopy{
	{Target: "D53", SourceRow: 10, SourceCol: 13},
	{Target: "D61", SourceRow: 13, SourceCol: 13},
	{Target: "H53", SourceRow: 14, SourceCol: 13},
	{Target: "H57", SourceRow: 16, SourceCol: 13},
	{Target: "H61", SourceRow: 17, SourceCol: 13},
	{Target: "L53", SourceRow: 18, SourceCol: 13},
}

// ejaGroupLayout folds the EJA grade ranges into the template's grouped
// count/unique rows.
var ejaGroupLayout = []models.SeriesGroup{
	{Series: []string{"1ª SÉRIE E.F", "2ª SÉRIE E.F", "3ª SÉRIE E.F", "4ª SÉRIE E.F"}, CountCell: "D54", UniqueCell: "D55"},
	{Series: []string{"5ª SÉRIE E.F", "6ª SÉRIE E.F"}, CountCell: "D58", UniqueCell: "D59"},
	{Series: []string{"7ª SÉRIE E.F"}, CountCell: "D62", UniqueCell: "D63"},
	{Series: []string{"8ª SÉRIE E.F"}, CountCell: "H54", UniqueCell: "H55"},
	{Series: []string{"1ª SÉRIE E.M"}, CountCell: "H58", UniqueCell: "H59"},
	{Series: []string{"2ª SÉRIE E.M"}, CountCell: "H62", UniqueCell: "H63"},
	{Series: []string{"3ª SÉRIE E.M"}, CountCell: "L54", UniqueCell: "L55"},
}

// ejaPlanColumn is the 0-based plan-name column of the EJA running list.
const ejaPlanColumn = 19
