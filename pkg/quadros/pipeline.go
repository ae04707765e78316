package quadros

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/secretaria-digital/quadros-go/pkg/quadros/models"
	"github.com/secretaria-digital/quadros-go/pkg/quadros/parser"
	"github.com/secretaria-digital/quadros-go/pkg/quadros/writer"
)

// Sheet names resolved fuzzily in every roster workbook.
const (
	RunningListSheet   = "LISTA CORRIDA"
	TotalStudentsSheet = "TOTAL DE ALUNOS"
)

// ReportMeta carries the header values stamped on every quadro.
type ReportMeta struct {
	// Responsible is the operator filling the report.
	Responsible string
	// SchoolName, Principal and SchoolCode identify the school on templates
	// that print them.
	SchoolName string
	Principal  string
	SchoolCode string
}

// Pipeline owns the workbooks of one run. Handles are never shared between
// runs; every run builds its own Pipeline and discards it afterwards.
type Pipeline struct {
	// Roster is the uploaded student-roster workbook, read-only.
	Roster *excelize.File
	// EJA is the optional EJA roster workbook; the inclusion count quadro
	// fills its EJA blocks only when it is present.
	EJA *excelize.File
	// Template is the fixed-layout output workbook being filled.
	Template *excelize.File
	// Window disambiguates event dates whose year is missing.
	Window models.Window
	Opts   Options
}

// resolveRows resolves a roster sheet fuzzily and returns its row grid.
func (p *Pipeline) resolveRows(target string) (string, [][]string, error) {
	return resolveRowsIn(p.Roster, target)
}

func resolveRowsIn(f *excelize.File, target string) (string, [][]string, error) {
	sheet, err := parser.ResolveSheet(f, target)
	if err != nil {
		return "", nil, err
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", nil, NewParseError(sheet, err)
	}
	if min, _, _, _ := parser.DataBounds(rows); min < 0 {
		return "", nil, NewParseError(sheet, fmt.Errorf("sheet %q is empty", sheet))
	}
	return sheet, rows, nil
}

func (p *Pipeline) templateWriter(sheetIndex int) (*writer.Writer, error) {
	sheets := p.Template.GetSheetList()
	if sheetIndex >= len(sheets) {
		sheetIndex = 0
	}
	return writer.New(p.Template, sheets[sheetIndex])
}

// classify runs a classification pass scoped to the given event codes; each
// quadro counts its own code set (the quantitative quadro scans only TE, the
// transfer quadro TE/MC/MCC).
func (p *Pipeline) classify(rows [][]string, cols models.ColumnMap, codes ...models.EventCode) parser.Result {
	c := parser.NewClassifier(p.Opts.logger())
	c.Table = p.Opts.categories()
	c.Extractor = parser.NewExtractor(codes...)
	return c.Classify(rows, cols, p.Window)
}

func (p *Pipeline) writeAudit(res parser.Result) error {
	if !p.Opts.Audit {
		return nil
	}
	return writer.WriteAuditSheet(p.Template, p.Opts.auditSheet(), res.Audit)
}

// TransferReport fills the transfer quadro: every TE/MC/MCC event inside the
// validity window becomes one row of the record block, in roster order.
func (p *Pipeline) TransferReport(meta ReportMeta) error {
	sheet, rows, err := p.resolveRows(RunningListSheet)
	if err != nil {
		return err
	}
	cols, err := parser.ResolveColumns(sheet, rows[0], rosterColumnSpecs)
	if err != nil {
		return err
	}
	res := p.classify(rows, cols,
		models.EventCancellationCompulsory, models.EventCancellation, models.EventTransfer)

	w, err := p.templateWriter(0)
	if err != nil {
		return err
	}
	now := p.Opts.now()
	if err := writer.BindCells(w, []models.HeaderCell{
		{Cell: "B9", Value: meta.Responsible},
		{Cell: "J9", Value: now.Format("02/01/2006")},
	}); err != nil {
		return err
	}

	records := make([]models.OutputRecord, 0, len(res.Events))
	for _, ev := range res.Events {
		row := rows[ev.Row-1]
		obs := string(ev.Category)
		if ev.Code == models.EventCancellation || ev.Code == models.EventCancellationCompulsory {
			obs = string(models.CategoryDropout)
		}
		if detail := cols.Value(row, models.FieldReasonDetail); detail != "" && !parser.IsSentinelID(detail) {
			obs = fmt.Sprintf("%s (%s)", obs, detail)
		}
		records = append(records, models.OutputRecord{
			"nome":       cols.Value(row, models.FieldName),
			"nascimento": formatBirthDate(cols.Value(row, models.FieldBirthDate), "02/01/06"),
			"ra":         cols.Value(row, models.FieldRA),
			"situacao":   "Parcial",
			"breda":      "Não",
			"classe":     ev.RawSeries,
			"tipo":       string(ev.Code),
			"observacao": obs,
			"data":       ev.Date.Format("02/01/2006"),
		})
	}
	if err := writer.BindRecords(w, transferLayout, records); err != nil {
		return err
	}

	p.Opts.logger().Info("transfer report filled",
		zap.Int("records", len(records)),
		zap.Int("skipped", len(res.Audit)-len(res.Events)))
	return p.writeAudit(res)
}

// QuantitativeMonthly fills the series × reason matrix quadro. Only TE
// events count here; the template keys its rows by raw reason text. Every
// matrix cell is written, zero when no student landed in it.
func (p *Pipeline) QuantitativeMonthly(meta ReportMeta) error {
	sheet, rows, err := p.resolveRows(RunningListSheet)
	if err != nil {
		return err
	}
	cols, err := parser.ResolveColumns(sheet, rows[0], rosterColumnSpecs)
	if err != nil {
		return err
	}
	res := p.classify(rows, cols, models.EventTransfer)

	w, err := p.templateWriter(0)
	if err != nil {
		return err
	}
	now := p.Opts.now()
	if err := writer.BindCells(w, []models.HeaderCell{
		{Cell: "B3", Value: meta.Responsible},
		{Cell: "D3", Value: fmt.Sprintf("%s a %s",
			p.Window.Start.Format("02/01/2006"), p.Window.End.Format("02/01/2006"))},
		{Cell: "A8", Value: fmt.Sprintf("%s/%d", monthName(now.Month()), now.Year())},
	}); err != nil {
		return err
	}
	counts := make(map[models.MatrixKey]int, len(res.Events))
	for _, ev := range res.Events {
		counts[models.MatrixKey{Series: ev.Series, Label: reasonRowLabel(ev.RawCategory)}]++
	}
	if err := writer.BindMatrix(w, quantitativeLayout, counts); err != nil {
		return err
	}

	p.Opts.logger().Info("quantitative report filled",
		zap.Int("counted", res.Matrix.Total()),
		zap.Int("rows_scanned", res.RowsScanned))
	return p.writeAudit(res)
}

var classLetterRe = regexp.MustCompile(`^(\d+º).*?([A-Za-z])$`)

// InclusionRoster fills the inclusion quadro with every roster row flagged
// as an inclusion student.
func (p *Pipeline) InclusionRoster(meta ReportMeta) error {
	sheet, rows, err := p.resolveRows(RunningListSheet)
	if err != nil {
		return err
	}
	cols, err := parser.ResolveColumns(sheet, rows[0], inclusionColumnSpecs)
	if err != nil {
		return err
	}

	w, err := p.templateWriter(0)
	if err != nil {
		return err
	}
	now := p.Opts.now()
	if err := writer.BindCells(w, []models.HeaderCell{
		{Cell: "C2", Value: meta.SchoolName},
		{Cell: "C3", Value: meta.Principal},
		{Cell: "P4", Value: now.Format("02/01/2006")},
	}); err != nil {
		return err
	}

	var records []models.OutputRecord
	var audit []models.AuditEntry
	for i, row := range rows {
		if i == 0 {
			continue
		}
		id := cols.Value(row, models.FieldStudentID)
		if parser.IsSentinelID(id) {
			continue
		}
		flag := parser.NormalizeKey(cols.Value(row, models.FieldInclusion))
		if flag != "SIM" {
			continue
		}

		rawSeries := cols.Value(row, models.FieldSeries)
		_, letter := splitClass(rawSeries)
		schedule := cols.Value(row, models.FieldSchedule)
		records = append(records, models.OutputRecord{
			"nivel":       cols.Value(row, models.FieldLevel),
			"turma":       letter,
			"periodo":     schedulePeriod(schedule),
			"horario":     schedule,
			"nome":        cols.Value(row, models.FieldName),
			"nascimento":  formatBirthDate(cols.Value(row, models.FieldBirthDate), "02/01/2006"),
			"professor":   cols.Value(row, models.FieldTeacher),
			"plano":       cols.Value(row, models.FieldPlan),
			"aee":         cols.Value(row, models.FieldAEE),
			"deficiencia": cols.Value(row, models.FieldDeficiency),
			"observacoes": cols.Value(row, models.FieldNotes),
			"cadeira":     cols.Value(row, models.FieldChair),
			"apoio":       cols.Value(row, models.FieldAide),
			"transporte":  cols.Value(row, models.FieldTransport),
		})
		audit = append(audit, models.AuditEntry{
			Row:         i + 1,
			StudentID:   id,
			Name:        cols.Value(row, models.FieldName),
			Series:      rawSeries,
			RawText:     cols.Value(row, models.FieldInclusion),
			MatchedText: "sim",
			Decision:    models.DecisionCounted,
		})
	}
	if err := writer.BindRecords(w, inclusionLayout, records); err != nil {
		return err
	}

	p.Opts.logger().Info("inclusion roster filled", zap.Int("records", len(records)))
	if !p.Opts.Audit {
		return nil
	}
	return writer.WriteAuditSheet(p.Template, p.Opts.auditSheet(), audit)
}

// MonthlyAttendance fills the attendance quadro from the roster's student
// totals sheet, injecting the per-row total formulas.
func (p *Pipeline) MonthlyAttendance(meta ReportMeta) error {
	_, rows, err := p.resolveRows(TotalStudentsSheet)
	if err != nil {
		return err
	}

	// The attendance template keeps its form on the second sheet when a
	// cover sheet is present.
	w, err := p.templateWriter(1)
	if err != nil {
		return err
	}
	now := p.Opts.now()
	if err := writer.BindCells(w, []models.HeaderCell{
		{Cell: "B5", Value: meta.SchoolName},
		{Cell: "C6", Value: meta.Responsible},
		{Cell: "B7", Value: meta.SchoolCode},
		{Cell: "A13", Value: now.Format("01/2006")},
		{Cell: "R24", Value: "-"},
	}); err != nil {
		return err
	}
	if err := writer.CopyBlocks(w, attendanceBlocks, rows); err != nil {
		return err
	}
	if err := writer.CopyCells(w, attendanceCellCopies, rows); err != nil {
		return err
	}

	p.Opts.logger().Info("attendance report filled")
	return nil
}

// InclusionCounts fills the per-class inclusion count quadro: rows with a
// valid action plan are counted per class, plus the deduplicated plan-name
// count. Every enumerated class is written, zero when absent.
func (p *Pipeline) InclusionCounts(meta ReportMeta) error {
	sheet, rows, err := p.resolveRows(RunningListSheet)
	if err != nil {
		return err
	}
	cols, err := parser.ResolveColumns(sheet, rows[0], inclusionColumnSpecs)
	if err != nil {
		return err
	}

	counts := make(map[string]int)
	unique := make(map[string]map[string]struct{})
	for i, row := range rows {
		if i == 0 {
			continue
		}
		series := cols.Value(row, models.FieldSeries)
		plan := cols.Value(row, models.FieldPlan)
		if series == "" || parser.IsSentinelID(plan) {
			continue
		}
		counts[series]++
		if unique[series] == nil {
			unique[series] = make(map[string]struct{})
		}
		unique[series][plan] = struct{}{}
	}
	uniqueCounts := make(map[string]int, len(unique))
	for s, set := range unique {
		uniqueCounts[s] = len(set)
	}

	w, err := p.templateWriter(0)
	if err != nil {
		return err
	}
	now := p.Opts.now()
	if err := writer.BindCells(w, []models.HeaderCell{
		{Cell: "B4", Value: strings.ToUpper(fmt.Sprintf("%s/%d", monthName(now.Month()), now.Year()))},
		{Cell: "C8", Value: meta.Responsible},
		{Cell: "K8", Value: now.Format("02/01/2006")},
	}); err != nil {
		return err
	}
	if err := writer.BindCounts(w, inclusionCountLayout, counts, uniqueCounts); err != nil {
		return err
	}

	_, totals, err := p.resolveRows(TotalStudentsSheet)
	if err != nil {
		return err
	}
	if err := writer.CopyCells(w, inclusionTotalsCopies, totals); err != nil {
		return err
	}

	if p.EJA != nil {
		if err := p.fillEJACounts(w); err != nil {
			return err
		}
	}

	p.Opts.logger().Info("inclusion counts filled",
		zap.Int("classes", len(counts)),
		zap.Bool("eja", p.EJA != nil))
	return nil
}

// fillEJACounts fills the EJA block of the inclusion count quadro from the
// separate EJA roster workbook: the grouped per-grade counts plus the totals
// carried over from its student-totals sheet.
func (p *Pipeline) fillEJACounts(w *writer.Writer) error {
	_, totals, err := resolveRowsIn(p.EJA, TotalStudentsSheet)
	if err != nil {
		return err
	}
	if err := writer.CopyCells(w, ejaTotalsCopies, totals); err != nil {
		return err
	}
	// The fundamental total prints the sum of the two source rows above it.
	if err := w.Set("D57", intAt(totals, 11, 13)+intAt(totals, 12, 13)); err != nil {
		return err
	}

	_, rows, err := resolveRowsIn(p.EJA, RunningListSheet)
	if err != nil {
		return err
	}
	labels := make(map[string]string)
	for _, g := range ejaGroupLayout {
		for _, s := range g.Series {
			labels[parser.NormalizeKey(s)] = s
		}
	}
	counts := make(map[string]int)
	names := make(map[string]map[string]struct{})
	for i, row := range rows {
		if i == 0 {
			continue
		}
		series, ok := labels[parser.NormalizeKey(firstCell(row))]
		if !ok {
			continue
		}
		plan := ""
		if ejaPlanColumn < len(row) {
			plan = strings.TrimSpace(row[ejaPlanColumn])
		}
		if parser.IsSentinelID(plan) {
			continue
		}
		counts[series]++
		if names[series] == nil {
			names[series] = make(map[string]struct{})
		}
		names[series][plan] = struct{}{}
	}
	return writer.BindSeriesGroups(w, ejaGroupLayout, counts, names)
}

func firstCell(row []string) string {
	if len(row) == 0 {
		return ""
	}
	return strings.TrimSpace(row[0])
}

// intAt reads a 1-based cell as an integer, zero when absent or non-numeric.
func intAt(rows [][]string, row, col int) int {
	if row < 1 || row > len(rows) {
		return 0
	}
	r := rows[row-1]
	if col < 1 || col > len(r) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(r[col-1]))
	if err != nil {
		return 0
	}
	return n
}

var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

func monthName(m time.Month) string {
	return monthNames[int(m)-1]
}

// splitClass separates a class name like "4ºB" into level ("4º") and class
// letter ("B").
func splitClass(raw string) (level, letter string) {
	if m := classLetterRe.FindStringSubmatch(raw); m != nil {
		return m[1], strings.ToUpper(m[2])
	}
	return raw, ""
}

// schedulePeriod maps a roster schedule text to its period label.
func schedulePeriod(schedule string) string {
	s := strings.ToLower(schedule)
	switch {
	case strings.Contains(s, "08h") && strings.Contains(s, "12h"):
		return "MANHÃ"
	case strings.Contains(s, "13h30"):
		return "TARDE"
	case strings.Contains(s, "19h"):
		return "NOITE"
	default:
		return ""
	}
}

// birthDateLayouts are the formats roster birth cells have shown up in.
var birthDateLayouts = []string{"02/01/2006", "2006-01-02", "01-02-06", "2/1/2006"}

// formatBirthDate renders a roster birth cell in the template's date layout
// when it parses, otherwise passes the raw text through. The transfer quadro
// prints two-digit years, the inclusion quadro four.
func formatBirthDate(raw, layout string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, l := range birthDateLayouts {
		if t, err := time.Parse(l, raw); err == nil {
			return t.Format(layout)
		}
	}
	return raw
}
