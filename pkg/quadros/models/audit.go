package models

// AuditDecision is the per-row classification outcome.
type AuditDecision string

const (
	// DecisionCounted means the row produced a classified event.
	DecisionCounted AuditDecision = "COUNTED"
	// DecisionSkipped means the row matched an event pattern but was
	// rejected, with the reason recorded.
	DecisionSkipped AuditDecision = "SKIPPED"
)

// AuditHeader is the fixed header row of the hidden audit sheet.
var AuditHeader = []string{
	"row",
	"student_id",
	"name",
	"series",
	"raw_text",
	"extracted_date",
	"year_inferred",
	"matched_text",
	"status",
	"reason",
	"raw_category",
	"canonical_category",
}

// AuditEntry records one accept/reject decision. Write-once, append-only,
// emitted in source-row order.
type AuditEntry struct {
	// Row is the 1-based source row number.
	Row int
	// StudentID, Name and Series identify the roster row.
	StudentID string
	Name      string
	Series    string
	// RawText is the full observation cell content.
	RawText string
	// ExtractedDate is the accepted event date as dd/mm/yyyy, empty when the
	// match was rejected.
	ExtractedDate string
	YearInferred  bool
	// MatchedText is the exact code+date text matched in the cell.
	MatchedText string
	Decision    AuditDecision
	// Reason explains a SKIPPED decision; for COUNTED rows it is empty.
	Reason      string
	RawCategory string
	Category    Category
}
