package parser

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/secretaria-digital/quadros-go/pkg/quadros/models"
)

// CategoryTable maps raw reason text to a canonical category. The lookup is
// total: raw values absent from the table resolve to CategoryUnknown.
type CategoryTable map[string]models.Category

// Lookup resolves a raw reason. The normalized key makes the table tolerant
// to accent and case drift in the roster.
func (t CategoryTable) Lookup(raw string) models.Category {
	if c, ok := t[NormalizeKey(raw)]; ok {
		return c
	}
	return models.CategoryUnknown
}

// DefaultCategoryTable mirrors the secretariat's reason map.
func DefaultCategoryTable() CategoryTable {
	raw := map[string]models.Category{
		"Dentro da Rede":       models.CategoryInNetwork,
		"Rede Estadual":        models.CategoryInNetwork,
		"Litoral":              models.CategoryCityMove,
		"Mudança de Municipio": models.CategoryCityMove,
		"São Paulo":            models.CategoryCityMove,
		"ABCD":                 models.CategoryCityMove,
		"Interior":             models.CategoryCityMove,
		"Outros Estados":       models.CategoryStateMove,
		"Particular":           models.CategoryPrivateSchool,
		"País":                 models.CategoryCountryMove,
		"Desistência":          models.CategoryDropout,
	}
	t := make(CategoryTable, len(raw))
	for k, v := range raw {
		t[NormalizeKey(k)] = v
	}
	return t
}

// LoadCategoryTable reads a raw→canonical mapping from a YAML artifact so
// the business rule can be versioned and tested independently of code.
// Values must be canonical category labels; unknown labels are rejected.
func LoadCategoryTable(path string) (CategoryTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read category table: %w", err)
	}
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse category table: %w", err)
	}
	t := make(CategoryTable, len(raw))
	for k, v := range raw {
		cat, ok := canonicalCategory(v)
		if !ok {
			return nil, fmt.Errorf("category table: %q maps to unknown category %q", k, v)
		}
		t[NormalizeKey(k)] = cat
	}
	return t, nil
}

func canonicalCategory(label string) (models.Category, bool) {
	want := NormalizeKey(label)
	for _, c := range models.Categories {
		if NormalizeKey(string(c)) == want {
			return c, true
		}
	}
	return "", false
}

// sentinel student-identifier values that mark a filler row.
var sentinelIDs = map[string]struct{}{
	"": {}, "-": {}, "0": {}, "0000": {}, "#REF": {}, "#REF!": {},
}

// IsSentinelID reports whether a student-identifier cell marks a filler row
// rather than a student.
func IsSentinelID(v string) bool {
	_, ok := sentinelIDs[strings.TrimSpace(v)]
	return ok
}

// SeriesKey maps a raw class name (e.g. "4ºB") to its reporting series key
// (e.g. "4º"): the first key contained in the raw value wins. Empty when no
// key matches.
func SeriesKey(raw string, keys []string) string {
	for _, k := range keys {
		if strings.Contains(raw, k) {
			return k
		}
	}
	return ""
}

// DefaultSeriesKeys are the elementary series tracked by the quantitative
// templates.
var DefaultSeriesKeys = []string{"2º", "3º", "4º", "5º"}

// Classifier turns resolved roster rows into classified events, the report
// matrix and the audit trail.
type Classifier struct {
	Extractor *Extractor
	Table     CategoryTable
	// SeriesKeys are the recognized reporting series; rows outside them are
	// skipped with an audit entry.
	SeriesKeys []string
	Logger     *zap.Logger
}

// NewClassifier wires a classifier with the default code alphabet, category
// table and series keys.
func NewClassifier(logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		Extractor:  NewExtractor(),
		Table:      DefaultCategoryTable(),
		SeriesKeys: DefaultSeriesKeys,
		Logger:     logger,
	}
}

// Result is the output of one classification pass. Audit entries appear in
// source-row order; the matrix is traversed through its sorted Buckets, so
// two runs over identical input are bit-identical.
type Result struct {
	Matrix *models.ReportMatrix
	Events []models.ClassifiedEvent
	Audit  []models.AuditEntry
	// RowsScanned counts rows that entered the decision process: non-filler
	// rows whose observation cell carried an event pattern. COUNTED plus
	// SKIPPED audit entries always equals RowsScanned.
	RowsScanned int
}

// Classify walks every data row (rows[0] is the header). Blank-id rows are
// skipped silently; rows with no event pattern likewise (absence of signal
// is not an error). Every other decision lands in the audit trail.
func (c *Classifier) Classify(rows [][]string, cols models.ColumnMap, w models.Window) Result {
	res := Result{Matrix: models.NewReportMatrix()}

	for i, row := range rows {
		if i == 0 {
			continue
		}
		rowNum := i + 1

		id := cols.Value(row, models.FieldStudentID)
		if IsSentinelID(id) {
			continue
		}

		obs := cols.Value(row, models.FieldObservation)
		match, ok := c.Extractor.Extract(obs, w)
		if !ok {
			continue
		}
		res.RowsScanned++

		rawSeries := cols.Value(row, models.FieldSeries)
		entry := models.AuditEntry{
			Row:          rowNum,
			StudentID:    id,
			Name:         cols.Value(row, models.FieldName),
			Series:       rawSeries,
			RawText:      obs,
			MatchedText:  match.MatchedText,
			YearInferred: match.YearInferred,
		}

		if match.Date == nil {
			entry.Decision = models.DecisionSkipped
			entry.Reason = "invalid calendar date"
			res.Audit = append(res.Audit, entry)
			continue
		}
		entry.ExtractedDate = match.Date.Format("02/01/2006")

		if !w.Contains(*match.Date) {
			entry.Decision = models.DecisionSkipped
			entry.Reason = "date outside validity window"
			res.Audit = append(res.Audit, entry)
			continue
		}

		series := SeriesKey(rawSeries, c.SeriesKeys)
		if series == "" {
			entry.Decision = models.DecisionSkipped
			entry.Reason = fmt.Sprintf("unrecognized series %q", rawSeries)
			res.Audit = append(res.Audit, entry)
			continue
		}

		rawReason := cols.Value(row, models.FieldReason)
		category := c.Table.Lookup(rawReason)
		entry.RawCategory = rawReason
		entry.Category = category

		event := models.ClassifiedEvent{
			Row:          rowNum,
			StudentID:    id,
			Series:       series,
			RawSeries:    rawSeries,
			Code:         match.Code,
			Category:     category,
			RawCategory:  rawReason,
			Date:         *match.Date,
			YearInferred: match.YearInferred,
			RawMatch:     match.MatchedText,
		}

		if !res.Matrix.Add(models.Bucket{Series: series, Category: category}, id) {
			entry.Decision = models.DecisionSkipped
			entry.Reason = "duplicate student for bucket"
			res.Audit = append(res.Audit, entry)
			continue
		}

		res.Events = append(res.Events, event)
		entry.Decision = models.DecisionCounted
		res.Audit = append(res.Audit, entry)
	}

	c.Logger.Debug("classification pass finished",
		zap.Int("rows_scanned", res.RowsScanned),
		zap.Int("counted", len(res.Events)),
		zap.Int("audit_entries", len(res.Audit)))
	return res
}
