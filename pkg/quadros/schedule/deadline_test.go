package schedule

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalendarBusinessDays(t *testing.T) {
	cal := NewCalendar(map[string]string{
		"2025-05-01": "Dia do Trabalho",
		"not-a-date": "ignorado",
	})

	assert.True(t, cal.IsBusinessDay(date(2025, 5, 2)))   // Friday
	assert.False(t, cal.IsBusinessDay(date(2025, 5, 3)))  // Saturday
	assert.False(t, cal.IsBusinessDay(date(2025, 5, 4)))  // Sunday
	assert.False(t, cal.IsBusinessDay(date(2025, 5, 1)))  // holiday (Thursday)
	assert.True(t, cal.IsBusinessDay(date(2025, 5, 5)))   // Monday

	name, ok := cal.Holiday(date(2025, 5, 1))
	require.True(t, ok)
	assert.Equal(t, "Dia do Trabalho", name)

	_, ok = cal.Holiday(date(2025, 5, 2))
	assert.False(t, ok)
}

func TestLoadCalendar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feriados.json")
	content := `{"2025-04-21": "Tiradentes", "31/12/2025": "malformado"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cal, err := LoadCalendar(path)
	require.NoError(t, err)

	_, ok := cal.Holiday(date(2025, 4, 21))
	assert.True(t, ok)
	// Malformed date keys are dropped silently.
	assert.True(t, cal.IsBusinessDay(date(2025, 12, 31)))

	_, err = LoadCalendar(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestFixedDayAdjustsForward(t *testing.T) {
	cal := NewCalendar(nil)
	rule := Rule{Name: "Quadro Quantitativo Mensal", Type: RuleFixedDay, Day: 5}

	// April 5 2025 is a Saturday: the due date walks forward to Monday the 7th.
	due, err := rule.AdjustedDueDate(cal, date(2025, 4, 1))
	require.NoError(t, err)
	assert.Equal(t, date(2025, 4, 7), due)

	// March 5 2025 is a Wednesday: no adjustment.
	due, err = rule.AdjustedDueDate(cal, date(2025, 3, 10))
	require.NoError(t, err)
	assert.Equal(t, date(2025, 3, 5), due)
}

func TestFixedDayClampsToMonthLength(t *testing.T) {
	cal := NewCalendar(nil)
	rule := Rule{Name: "Dia 31", Type: RuleFixedDay, Day: 31}

	// February has no day 31; the rule clamps to the month's last day and
	// then adjusts. 28/02/2025 is a Friday.
	due, err := rule.AdjustedDueDate(cal, date(2025, 2, 10))
	require.NoError(t, err)
	assert.Equal(t, date(2025, 2, 28), due)
}

func TestMonthEndAdjustsBackward(t *testing.T) {
	// May 31 2025 is a Saturday, so the due date walks back to Friday the
	// 30th; with the 30th a holiday it lands on Thursday the 29th.
	rule := Rule{Name: "Quadro de Atendimento Mensal", Type: RuleMonthEnd}

	due, err := rule.AdjustedDueDate(NewCalendar(nil), date(2025, 5, 12))
	require.NoError(t, err)
	assert.Equal(t, date(2025, 5, 30), due)

	cal := NewCalendar(map[string]string{"2025-05-30": "Emenda de feriado"})
	due, err = rule.AdjustedDueDate(cal, date(2025, 5, 12))
	require.NoError(t, err)
	assert.Equal(t, date(2025, 5, 29), due)
}

func TestWeeklyDueDate(t *testing.T) {
	cal := NewCalendar(nil)
	rule := Rule{Name: "Conferência da Lista Piloto", Type: RuleWeekly, Weekday: time.Friday}

	// Wednesday 2025-06-04: the next Friday is June 6.
	due, err := rule.AdjustedDueDate(cal, date(2025, 6, 4))
	require.NoError(t, err)
	assert.Equal(t, date(2025, 6, 6), due)

	// On the weekday itself the due date is today.
	due, err = rule.AdjustedDueDate(cal, date(2025, 6, 6))
	require.NoError(t, err)
	assert.Equal(t, date(2025, 6, 6), due)

	// After the weekday the due date stays in the current week, so it can
	// lie in the past and the post-deadline window still applies.
	due, err = rule.AdjustedDueDate(cal, date(2025, 6, 7)) // Saturday
	require.NoError(t, err)
	assert.Equal(t, date(2025, 6, 6), due)
}

func TestWeeklyAlertAfterDueDate(t *testing.T) {
	cal := NewCalendar(nil)
	rules := []Rule{{Name: "Conferência da Lista Piloto", Type: RuleWeekly, Weekday: time.Friday}}

	// Saturday 2025-06-07, one day past Friday's deadline: still inside the
	// default two-day trailing window, with a negative day count.
	alerts, err := Alerts(cal, rules, date(2025, 6, 7))
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, date(2025, 6, 6), alerts[0].DueDate)
	assert.Equal(t, -1, alerts[0].DaysUntil)

	// Monday anchors the next week: its Friday is 4 days out, ahead of the
	// leading window, so nothing alerts.
	alerts, err = Alerts(cal, rules, date(2025, 6, 9))
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestUnknownRuleType(t *testing.T) {
	_, err := Rule{Name: "x", Type: "biweekly"}.AdjustedDueDate(NewCalendar(nil), date(2025, 6, 4))
	assert.Error(t, err)
}

func TestAlertsWindow(t *testing.T) {
	cal := NewCalendar(nil)
	rules := []Rule{
		{Name: "Conferência da Lista Piloto", Type: RuleWeekly, Weekday: time.Friday},
		{Name: "Quadro Quantitativo Mensal", Type: RuleFixedDay, Day: 5},
	}

	// Wednesday 2025-06-04: Friday's deadline is 2 days out and inside the
	// default window; the fixed-day deadline (June 5, Thursday) is 1 day out.
	alerts, err := Alerts(cal, rules, date(2025, 6, 4))
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "Conferência da Lista Piloto", alerts[0].Rule)
	assert.Equal(t, 2, alerts[0].DaysUntil)
	assert.Equal(t, 1, alerts[1].DaysUntil)

	// Mid-month, nothing is due within the window.
	alerts, err = Alerts(cal, []Rule{{Name: "Quadro", Type: RuleFixedDay, Day: 5}}, date(2025, 6, 17))
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestAlertsCustomWindow(t *testing.T) {
	cal := NewCalendar(nil)
	rule := Rule{Name: "Quadro", Type: RuleFixedDay, Day: 20, DaysBefore: 5, DaysAfter: 1}

	// 2025-06-16 is 4 business-agnostic days before Friday June 20: inside
	// the widened window.
	alerts, err := Alerts(cal, []Rule{rule}, date(2025, 6, 16))
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, 4, alerts[0].DaysUntil)

	// Two days after the due date is outside DaysAfter=1.
	alerts, err = Alerts(cal, []Rule{rule}, date(2025, 6, 23))
	require.NoError(t, err)
	assert.Empty(t, alerts)
}
