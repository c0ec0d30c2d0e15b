package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Freeeeeet/clinic_calendar/internal/calendar"
	"github.com/Freeeeeet/clinic_calendar/internal/formatting"
	"github.com/Freeeeeet/clinic_calendar/internal/model"
	"github.com/Freeeeeet/clinic_calendar/internal/notify"
	"github.com/Freeeeeet/clinic_calendar/internal/repository"
	"go.uber.org/zap"
)

// MaxSurnameLength предел длины фамилии в символах
const MaxSurnameLength = 100

// BookingStore хранилище записей
type BookingStore interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]*model.Booking, error)
	Exists(ctx context.Context, date time.Time, worker, slot string) (bool, error)
	Create(ctx context.Context, booking *model.Booking) error
	Delete(ctx context.Context, id int64) (*model.Booking, error)
	Ping(ctx context.Context) error
}

type BookingService struct {
	store    BookingStore
	workers  model.Workers
	notifier notify.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewBookingService(
	store BookingStore,
	workers model.Workers,
	notifier notify.Notifier,
	logger *zap.Logger,
) *BookingService {
	if notifier == nil {
		notifier = notify.Multi{}
	}
	return &BookingService{
		store:    store,
		workers:  workers,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// SetClock подменяет источник текущего времени
func (s *BookingService) SetClock(now func() time.Time) {
	s.now = now
}

// Workers возвращает список специалистов
func (s *BookingService) Workers() model.Workers {
	return s.workers
}

// Ping проверяет доступность хранилища
func (s *BookingService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// WeekStart определяет понедельник недели для просмотра.
// Пустая или некорректная дата даёт текущую неделю.
func (s *BookingService) WeekStart(startDate string) time.Time {
	if startDate != "" {
		if d, err := calendar.ParseDate(startDate); err == nil {
			return calendar.MondayOf(d)
		}
	}
	return calendar.MondayOf(s.now())
}

// Week собирает модель недельного календаря
func (s *BookingService) Week(ctx context.Context, startDate string) (*WeekView, error) {
	return s.WeekOf(ctx, s.WeekStart(startDate))
}

// WeekOf собирает модель недели, начинающейся с monday
func (s *BookingService) WeekOf(ctx context.Context, monday time.Time) (*WeekView, error) {
	monday = calendar.MondayOf(monday)
	dates := calendar.WeekDates(monday)

	bookings, err := s.store.ListBetween(ctx, dates[0], dates[len(dates)-1])
	if err != nil {
		return nil, fmt.Errorf("get week bookings: %w", err)
	}

	return &WeekView{
		Start:           monday,
		Dates:           dates,
		MonthName:       formatting.MonthName(monday.Month()),
		Year:            monday.Year(),
		Grid:            buildGrid(dates, s.workers, bookings),
		Workers:         s.workers,
		TimeSlots:       calendar.TimeSlots(),
		Today:           calendar.Day(s.now()),
		PrevWeek:        calendar.PrevWeek(monday),
		NextWeek:        calendar.NextWeek(monday),
		NextMonthMonday: calendar.NextMonthMonday(monday),
	}, nil
}

// CreateBookingInput данные формы новой записи
type CreateBookingInput struct {
	Surname string
	Date    string
	Worker  string
	Time    string
}

// Create создаёт запись, если слот у специалиста свободен
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*model.Booking, error) {
	if !s.workers.Contains(in.Worker) {
		return nil, ErrInvalidWorker
	}

	date, err := calendar.ParseDate(in.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	if !calendar.IsSlot(in.Time) {
		return nil, ErrInvalidTime
	}

	surname := strings.TrimSpace(in.Surname)
	if surname == "" {
		return nil, ErrEmptySurname
	}
	if utf8.RuneCountInString(surname) > MaxSurnameLength {
		return nil, ErrLongSurname
	}

	// Быстрая проверка; гонку двух запросов закрывает уникальный индекс хранилища
	taken, err := s.store.Exists(ctx, date, in.Worker, in.Time)
	if err != nil {
		return nil, fmt.Errorf("check slot: %w", err)
	}
	if taken {
		return nil, ErrSlotTaken
	}

	booking := &model.Booking{
		Surname: surname,
		Date:    date,
		Worker:  in.Worker,
		Time:    in.Time,
	}

	if err := s.store.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.logger.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.String("date", booking.DateString()),
		zap.String("worker", booking.Worker),
		zap.String("time", booking.Time),
	)

	s.notify(ctx, notify.EventBookingCreated, booking)

	return booking, nil
}

// Delete удаляет запись без проверки владельца
func (s *BookingService) Delete(ctx context.Context, id int64) (*model.Booking, error) {
	booking, err := s.store.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete booking: %w", err)
	}

	s.logger.Info("Booking deleted",
		zap.Int64("booking_id", booking.ID),
		zap.String("date", booking.DateString()),
		zap.String("worker", booking.Worker),
		zap.String("time", booking.Time),
	)

	s.notify(ctx, notify.EventBookingDeleted, booking)

	return booking, nil
}

func (s *BookingService) notify(ctx context.Context, eventType notify.EventType, booking *model.Booking) {
	event := notify.Event{Type: eventType, Booking: *booking, At: s.now()}
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.Warn("Failed to deliver booking event",
			zap.String("type", string(eventType)),
			zap.Int64("booking_id", booking.ID),
			zap.Error(err),
		)
	}
}

func buildGrid(dates []time.Time, workers model.Workers, bookings []*model.Booking) Grid {
	grid := make(Grid, len(dates))
	for _, d := range dates {
		byWorker := make(map[string][]*model.Booking, len(workers))
		for _, w := range workers {
			byWorker[w] = []*model.Booking{}
		}
		grid[calendar.FormatDate(d)] = byWorker
	}

	for _, b := range bookings {
		byWorker, ok := grid[b.DateString()]
		if !ok {
			continue
		}
		byWorker[b.Worker] = append(byWorker[b.Worker], b)
	}

	for _, byWorker := range grid {
		for _, list := range byWorker {
			// HH:MM с ведущим нулём, строковый порядок совпадает с временным
			sort.Slice(list, func(i, j int) bool {
				return list[i].Time < list[j].Time
			})
		}
	}

	return grid
}
