// Package models defines data structures for the roster pipeline.
package models

import (
	"strings"
	"time"
)

// Field is a logical column role in a roster sheet.
type Field string

const (
	FieldSeries       Field = "SERIES"
	FieldName         Field = "NAME"
	FieldBirthDate    Field = "BIRTH_DATE"
	FieldStudentID    Field = "STUDENT_ID"
	FieldRA           Field = "RA"
	FieldObservation  Field = "OBSERVATION"
	FieldReason       Field = "REASON"
	FieldReasonDetail Field = "REASON_DETAIL"
	FieldInclusion    Field = "INCLUSION"
	FieldSchedule     Field = "SCHEDULE"
	FieldTeacher      Field = "TEACHER"
	FieldPlan         Field = "PLAN"
	FieldAEE          Field = "AEE"
	FieldDeficiency   Field = "DEFICIENCY"
	FieldNotes        Field = "NOTES"
	FieldLevel        Field = "LEVEL"
	FieldChair        Field = "CHAIR"
	FieldAide         Field = "AIDE"
	FieldTransport    Field = "TRANSPORT"
)

// ColumnBinding ties a logical field to a concrete 0-based column index.
type ColumnBinding struct {
	// Field is the logical role.
	Field Field `json:"field"`
	// Index is the resolved 0-based column index.
	Index int `json:"index"`
	// Header is the header text the binding matched, empty for positional
	// fallbacks.
	Header string `json:"header,omitempty"`
	// Fallback reports that no candidate header matched and the configured
	// positional index was used instead.
	Fallback bool `json:"fallback"`
}

// ColumnMap maps logical fields to resolved columns. Built once per sheet;
// immutable for the pipeline run.
type ColumnMap map[Field]ColumnBinding

// Value returns the trimmed cell value for a field in a raw row, or "" when
// the row is shorter than the bound index.
func (m ColumnMap) Value(row []string, f Field) string {
	b, ok := m[f]
	if !ok || b.Index < 0 || b.Index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[b.Index])
}

// Fallbacks returns the fields that were bound positionally, in field name
// order, for the audit trail.
func (m ColumnMap) Fallbacks() []Field {
	var out []Field
	for f, b := range m {
		if b.Fallback {
			out = append(out, f)
		}
	}
	sortFields(out)
	return out
}

func sortFields(fs []Field) {
	for i := 1; i < len(fs); i++ {
		for j := i; j > 0 && fs[j] < fs[j-1]; j-- {
			fs[j], fs[j-1] = fs[j-1], fs[j]
		}
	}
}

// Window is the caller-supplied validity window used to disambiguate event
// dates whose year is missing in the source text.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window (inclusive bounds).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Years returns every calendar year spanned by the window, ascending.
func (w Window) Years() []int {
	var ys []int
	for y := w.Start.Year(); y <= w.End.Year(); y++ {
		ys = append(ys, y)
	}
	return ys
}

// OutputRecord is one filled row of a record-list template block, keyed by
// the layout's column keys.
type OutputRecord map[string]string
