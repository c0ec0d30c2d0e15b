package calendar

import (
	"strings"
	"time"
)

// DateLayout формат дат в запросах и формах
const DateLayout = "2006-01-02"

const daysInWeek = 7

// Day отбрасывает время и часовой пояс: календарная дата в UTC
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate разбирает дату вида YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// FormatDate форматирует дату в YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// MondayOf возвращает понедельник недели, в которую входит d
func MondayOf(d time.Time) time.Time {
	d = Day(d)
	offset := (int(d.Weekday()) + 6) % 7 // понедельник = 0
	return d.AddDate(0, 0, -offset)
}

// WeekDates возвращает 7 дней недели начиная с monday.
// Что monday действительно понедельник, не проверяется.
func WeekDates(monday time.Time) []time.Time {
	monday = Day(monday)
	dates := make([]time.Time, daysInWeek)
	for i := range dates {
		dates[i] = monday.AddDate(0, 0, i)
	}
	return dates
}

// NextMonthMonday возвращает понедельник недели, содержащей
// первое число месяца, следующего за месяцем d
func NextMonthMonday(d time.Time) time.Time {
	d = Day(d)
	// time.Date нормализует 13-й месяц в январь следующего года
	firstOfNext := time.Date(d.Year(), d.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return MondayOf(firstOfNext)
}

// PrevWeek понедельник предыдущей недели
func PrevWeek(monday time.Time) time.Time {
	return Day(monday).AddDate(0, 0, -daysInWeek)
}

// NextWeek понедельник следующей недели
func NextWeek(monday time.Time) time.Time {
	return Day(monday).AddDate(0, 0, daysInWeek)
}
