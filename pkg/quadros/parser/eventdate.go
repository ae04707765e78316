package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/secretaria-digital/quadros-go/pkg/quadros/models"
)

// Match is the result of scanning one observation cell.
type Match struct {
	// Code is the event code that matched.
	Code models.EventCode
	// Date is the resolved event date; nil means the text clearly intended
	// an event but the date is not a real calendar date, which callers must
	// treat as a reject rather than as no event.
	Date *time.Time
	// MatchedText is the exact text the grammar matched.
	MatchedText string
	// YearInferred reports that the year was absent and filled from the
	// validity window's start year without an in-window candidate.
	YearInferred bool
}

// Extractor runs the fixed event grammar "CODE [sep] DD/MM[/YY[YY]]" over
// free text. Only the first match per cell is authoritative; cells holding
// more than one code+date pattern are not disambiguated further, which is a
// documented product decision, not an accident.
type Extractor struct {
	re *regexp.Regexp
}

// NewExtractor builds an extractor for a closed code alphabet. Codes are
// tried in the given order, so longer codes must precede their prefixes
// (MCC before MC).
func NewExtractor(codes ...models.EventCode) *Extractor {
	if len(codes) == 0 {
		codes = models.DefaultEventCodes
	}
	quoted := make([]string, len(codes))
	for i, c := range codes {
		quoted[i] = regexp.QuoteMeta(string(c))
	}
	pattern := `(?i)\b(` + strings.Join(quoted, "|") + `)\b[\s.:-]*` +
		`([0-9]{1,2})\s*/\s*([0-9]{1,2})(?:\s*/\s*([0-9]{4}|[0-9]{2}))?`
	return &Extractor{re: regexp.MustCompile(pattern)}
}

// Extract scans text for the first code+date pattern. The second return is
// false when no pattern is present at all (no event, not an error).
func (e *Extractor) Extract(text string, w models.Window) (Match, bool) {
	sub := e.re.FindStringSubmatch(text)
	if sub == nil {
		return Match{}, false
	}

	m := Match{
		Code:        models.EventCode(strings.ToUpper(sub[1])),
		MatchedText: strings.TrimSpace(sub[0]),
	}
	day, _ := strconv.Atoi(sub[2])
	month, _ := strconv.Atoi(sub[3])

	if sub[4] != "" {
		year, _ := strconv.Atoi(sub[4])
		if year < 100 {
			year += 2000
		}
		if d, ok := makeDate(year, month, day); ok {
			m.Date = &d
		}
		return m, true
	}

	// Year absent: the first candidate year that lands inside the validity
	// window wins.
	for _, year := range w.Years() {
		if d, ok := makeDate(year, month, day); ok && w.Contains(d) {
			m.Date = &d
			return m, true
		}
	}

	// No in-window candidate: fall back to the window's start year.
	if d, ok := makeDate(w.Start.Year(), month, day); ok {
		m.Date = &d
		m.YearInferred = true
	}
	return m, true
}

// makeDate builds a calendar date, rejecting impossible day/month
// combinations (time.Date would silently normalize 31/04 to 01/05).
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != time.Month(month) || d.Year() != year {
		return time.Time{}, false
	}
	return d, true
}
