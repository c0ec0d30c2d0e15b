package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestMondayOf(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-06-02", "2025-06-02"}, // понедельник
		{"2025-06-05", "2025-06-02"}, // четверг
		{"2025-06-08", "2025-06-02"}, // воскресенье
		{"2025-06-09", "2025-06-09"},
		{"2026-01-01", "2025-12-29"}, // через границу года
		{"2024-03-01", "2024-02-26"}, // високосный февраль
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(MondayOf(date(t, tt.in))))
		})
	}
}

func TestMondayOfProperties(t *testing.T) {
	start := date(t, "2024-01-01")
	for i := 0; i < 800; i++ {
		d := start.AddDate(0, 0, i)
		monday := MondayOf(d)

		require.Equal(t, time.Monday, monday.Weekday(), d)
		require.Equal(t, monday, MondayOf(monday), "must be idempotent")
		require.False(t, monday.After(d))
		require.True(t, d.Sub(monday) < 7*24*time.Hour)

		week := WeekDates(monday)
		require.Len(t, week, 7)
		require.Equal(t, monday, week[0])
		for j := 1; j < len(week); j++ {
			require.Equal(t, week[j-1].AddDate(0, 0, 1), week[j])
		}
	}
}

func TestMondayOfIgnoresClockAndZone(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	// четверг поздно вечером по местному времени
	d := time.Date(2025, 6, 5, 23, 45, 0, 0, loc)

	assert.Equal(t, "2025-06-02", FormatDate(MondayOf(d)))
	assert.Equal(t, time.UTC, MondayOf(d).Location())
}

func TestWeekDates(t *testing.T) {
	week := WeekDates(date(t, "2025-06-30"))

	got := make([]string, len(week))
	for i, d := range week {
		got[i] = FormatDate(d)
	}
	assert.Equal(t, []string{
		"2025-06-30", "2025-07-01", "2025-07-02", "2025-07-03",
		"2025-07-04", "2025-07-05", "2025-07-06",
	}, got)
}

func TestNextMonthMonday(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-12-01", "2025-12-29"}, // неделя с 2026-01-01
		{"2025-06-02", "2025-06-30"}, // 2025-07-01 вторник
		{"2025-08-25", "2025-09-01"}, // 1 сентября понедельник
		{"2024-01-29", "2024-01-29"}, // 2024-02-01 четверг
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(NextMonthMonday(date(t, tt.in))))
		})
	}
}

func TestWeekNavigation(t *testing.T) {
	monday := date(t, "2025-06-02")

	assert.Equal(t, "2025-05-26", FormatDate(PrevWeek(monday)))
	assert.Equal(t, "2025-06-09", FormatDate(NextWeek(monday)))
	assert.Equal(t, monday, PrevWeek(NextWeek(monday)))
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("2025-13-01")
	assert.Error(t, err)

	_, err = ParseDate("05.06.2025")
	assert.Error(t, err)

	d, err := ParseDate(" 2025-06-05 ")
	require.NoError(t, err)
	assert.Equal(t, time.Thursday, d.Weekday())
}
