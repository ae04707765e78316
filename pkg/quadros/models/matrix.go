package models

import "sort"

// Bucket is one cell of the reporting matrix.
type Bucket struct {
	Series   string
	Category Category
}

// ReportMatrix accumulates deduplicated student identifiers per
// (series, category) bucket. It is the sole mutable aggregate in a pipeline
// run and grows monotonically during classification.
type ReportMatrix struct {
	students map[Bucket]map[string]struct{}
}

// NewReportMatrix returns an empty matrix.
func NewReportMatrix() *ReportMatrix {
	return &ReportMatrix{students: make(map[Bucket]map[string]struct{})}
}

// Add records a student in a bucket. It returns false when the student was
// already counted for that bucket, so a student seen twice across passes
// counts once.
func (m *ReportMatrix) Add(b Bucket, studentID string) bool {
	set, ok := m.students[b]
	if !ok {
		set = make(map[string]struct{})
		m.students[b] = set
	}
	if _, dup := set[studentID]; dup {
		return false
	}
	set[studentID] = struct{}{}
	return true
}

// Count returns the number of distinct students in a bucket.
func (m *ReportMatrix) Count(b Bucket) int {
	return len(m.students[b])
}

// Total returns the sum of all bucket counts.
func (m *ReportMatrix) Total() int {
	n := 0
	for _, set := range m.students {
		n += len(set)
	}
	return n
}

// Buckets returns every non-empty bucket sorted by series then category, so
// traversal is deterministic across runs.
func (m *ReportMatrix) Buckets() []Bucket {
	out := make([]Bucket, 0, len(m.students))
	for b := range m.students {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Series != out[j].Series {
			return out[i].Series < out[j].Series
		}
		return out[i].Category < out[j].Category
	})
	return out
}
