package schedule

import (
	"fmt"
	"time"
)

// RuleType classifies a recurring-deadline rule.
type RuleType string

const (
	// RuleFixedDay is due on a fixed day of the month, adjusted forward to
	// the nearest business day.
	RuleFixedDay RuleType = "fixed_day"
	// RuleMonthEnd is due on the month's last business day, adjusted
	// backward.
	RuleMonthEnd RuleType = "month_end"
	// RuleWeekly is due on a fixed weekday, adjusted forward.
	RuleWeekly RuleType = "weekly"
)

// Rule is one recurring secretariat deadline.
type Rule struct {
	Name string   `json:"name"`
	Type RuleType `json:"type"`
	// Day is the due day of month for fixed-day rules.
	Day int `json:"day,omitempty"`
	// Weekday is the due weekday for weekly rules.
	Weekday time.Weekday `json:"weekday,omitempty"`
	// DaysBefore and DaysAfter bound the alert window around the adjusted
	// due date. Zero values fall back to 2/2.
	DaysBefore int `json:"days_before,omitempty"`
	DaysAfter  int `json:"days_after,omitempty"`
}

func (r Rule) windowBefore() int {
	if r.DaysBefore > 0 {
		return r.DaysBefore
	}
	return 2
}

func (r Rule) windowAfter() int {
	if r.DaysAfter > 0 {
		return r.DaysAfter
	}
	return 2
}

// AdjustedDueDate computes the rule's due date for the period containing
// ref, walked to the nearest business day: forward for fixed-day and weekly
// rules, backward for month-end rules.
func (r Rule) AdjustedDueDate(cal *Calendar, ref time.Time) (time.Time, error) {
	ref = civil(ref)
	switch r.Type {
	case RuleFixedDay:
		day := r.Day
		if last := lastDayOfMonth(ref); day > last {
			day = last
		}
		due := time.Date(ref.Year(), ref.Month(), day, 0, 0, 0, 0, ref.Location())
		return cal.NextBusinessDay(due), nil
	case RuleMonthEnd:
		due := time.Date(ref.Year(), ref.Month(), lastDayOfMonth(ref), 0, 0, 0, 0, ref.Location())
		return cal.PrevBusinessDay(due), nil
	case RuleWeekly:
		// The due date is the rule's weekday in the week containing ref
		// (weeks starting Monday), so the alert window can extend past the
		// deadline into the weekend.
		monday := ref.AddDate(0, 0, -((int(ref.Weekday()) + 6) % 7))
		due := monday.AddDate(0, 0, (int(r.Weekday)+6)%7)
		return cal.NextBusinessDay(due), nil
	default:
		return time.Time{}, fmt.Errorf("unknown deadline rule type %q", r.Type)
	}
}

// Alert is an active deadline notification.
type Alert struct {
	Rule      string    `json:"rule"`
	DueDate   time.Time `json:"due_date"`
	DaysUntil int       `json:"days_until"`
}

// Alerts evaluates every rule against today and returns the ones whose
// alert window contains today, in rule order. A rule alerts only inside
// [due-DaysBefore, due+DaysAfter].
func Alerts(cal *Calendar, rules []Rule, today time.Time) ([]Alert, error) {
	today = civil(today)
	var out []Alert
	for _, r := range rules {
		due, err := r.AdjustedDueDate(cal, today)
		if err != nil {
			return nil, err
		}
		from := due.AddDate(0, 0, -r.windowBefore())
		to := due.AddDate(0, 0, r.windowAfter())
		if today.Before(from) || today.After(to) {
			continue
		}
		out = append(out, Alert{
			Rule:      r.Name,
			DueDate:   due,
			DaysUntil: int(due.Sub(today).Hours() / 24),
		})
	}
	return out, nil
}

func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func lastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
