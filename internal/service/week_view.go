package service

import (
	"time"

	"github.com/Freeeeeet/clinic_calendar/internal/calendar"
	"github.com/Freeeeeet/clinic_calendar/internal/model"
)

// WeekView модель недельного календаря для отрисовки
type WeekView struct {
	Start           time.Time
	Dates           []time.Time
	MonthName       string // месяц понедельника недели
	Year            int
	Grid            Grid
	Workers         model.Workers
	TimeSlots       []string
	Today           time.Time
	PrevWeek        time.Time
	NextWeek        time.Time
	NextMonthMonday time.Time
}

// Grid записи недели: дата (YYYY-MM-DD) -> специалист -> записи по времени
type Grid map[string]map[string][]*model.Booking

// At возвращает запись в ячейке или nil если слот свободен
func (g Grid) At(date time.Time, worker, slot string) *model.Booking {
	for _, b := range g[calendar.FormatDate(date)][worker] {
		if b.Time == slot {
			return b
		}
	}
	return nil
}

// Count количество записей в неделе
func (g Grid) Count() int {
	total := 0
	for _, byWorker := range g {
		for _, list := range byWorker {
			total += len(list)
		}
	}
	return total
}
