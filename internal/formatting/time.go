package formatting

import "time"

// FormatDate форматирует дату для отображения
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDayMonth форматирует дату без года
func FormatDayMonth(t time.Time) string {
	return t.Format("02.01")
}

// WeekdayName возвращает название дня недели на русском
func WeekdayName(weekday time.Weekday) string {
	names := []string{
		"Воскресенье",
		"Понедельник",
		"Вторник",
		"Среда",
		"Четверг",
		"Пятница",
		"Суббота",
	}
	if weekday >= 0 && int(weekday) < len(names) {
		return names[weekday]
	}
	return "Неизвестно"
}

// WeekdayShort возвращает короткое название дня недели
func WeekdayShort(weekday time.Weekday) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	if weekday >= 0 && int(weekday) < len(names) {
		return names[weekday]
	}
	return "?"
}

// MonthName возвращает название месяца на русском
func MonthName(month time.Month) string {
	names := map[time.Month]string{
		time.January:   "Январь",
		time.February:  "Февраль",
		time.March:     "Март",
		time.April:     "Апрель",
		time.May:       "Май",
		time.June:      "Июнь",
		time.July:      "Июль",
		time.August:    "Август",
		time.September: "Сентябрь",
		time.October:   "Октябрь",
		time.November:  "Ноябрь",
		time.December:  "Декабрь",
	}
	return names[month]
}
