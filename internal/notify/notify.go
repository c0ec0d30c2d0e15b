package notify

import (
	"context"
	"errors"
	"time"

	"github.com/Freeeeeet/clinic_calendar/internal/model"
	"go.uber.org/zap"
)

type EventType string

const (
	EventBookingCreated EventType = "booking.created"
	EventBookingDeleted EventType = "booking.deleted"
)

// Event изменение в журнале записей
type Event struct {
	Type    EventType     `json:"type"`
	Booking model.Booking `json:"booking"`
	At      time.Time     `json:"at"`
}

// Notifier доставляет события о записях (лог, Telegram, RabbitMQ)
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Multi рассылает событие всем получателям.
// Ошибка одного получателя не мешает остальным.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, event Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogNotifier пишет события в лог
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, event Event) error {
	n.logger.Info("Booking event",
		zap.String("type", string(event.Type)),
		zap.Int64("booking_id", event.Booking.ID),
		zap.String("date", event.Booking.DateString()),
		zap.String("worker", event.Booking.Worker),
		zap.String("time", event.Booking.Time),
	)
	return nil
}
