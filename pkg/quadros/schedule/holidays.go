// Package schedule computes business-day deadline alerts. It has no
// dependency on the spreadsheet pipeline.
package schedule

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Calendar is a set of holidays keyed by civil date.
type Calendar struct {
	names map[string]string
}

// NewCalendar builds a calendar from ISO date → holiday name pairs.
// Malformed dates are skipped, not fatal.
func NewCalendar(entries map[string]string) *Calendar {
	c := &Calendar{names: make(map[string]string, len(entries))}
	for k, v := range entries {
		if _, err := time.Parse("2006-01-02", k); err != nil {
			continue
		}
		c.names[k] = v
	}
	return c
}

// LoadCalendar reads a JSON object mapping "YYYY-MM-DD" strings to holiday
// names.
func LoadCalendar(path string) (*Calendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read holiday calendar: %w", err)
	}
	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse holiday calendar: %w", err)
	}
	return NewCalendar(entries), nil
}

var (
	cacheOnce sync.Once
	cacheCal  *Calendar
	cacheErr  error
)

// LoadCached loads the holiday calendar once per process and reuses it on
// every later call; concurrent first loads observe a single load.
func LoadCached(path string) (*Calendar, error) {
	cacheOnce.Do(func() {
		cacheCal, cacheErr = LoadCalendar(path)
	})
	return cacheCal, cacheErr
}

// Holiday returns the holiday name for a date, if any.
func (c *Calendar) Holiday(t time.Time) (string, bool) {
	if c == nil {
		return "", false
	}
	name, ok := c.names[t.Format("2006-01-02")]
	return name, ok
}

// IsBusinessDay reports whether t is neither a weekend day nor a holiday.
func (c *Calendar) IsBusinessDay(t time.Time) bool {
	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	_, holiday := c.Holiday(t)
	return !holiday
}

// NextBusinessDay walks forward from t (inclusive) to the nearest business
// day.
func (c *Calendar) NextBusinessDay(t time.Time) time.Time {
	for !c.IsBusinessDay(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// PrevBusinessDay walks backward from t (inclusive) to the nearest business
// day.
func (c *Calendar) PrevBusinessDay(t time.Time) time.Time {
	for !c.IsBusinessDay(t) {
		t = t.AddDate(0, 0, -1)
	}
	return t
}
