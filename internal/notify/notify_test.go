package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/clinic_calendar/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, event Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func testEvent() Event {
	return Event{
		Type: EventBookingCreated,
		Booking: model.Booking{
			ID:      7,
			Surname: "Иванов <b>",
			Date:    time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			Worker:  "Хирург",
			Time:    "09:00",
		},
		At: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestMultiDeliversToAll(t *testing.T) {
	ctx := context.Background()
	event := testEvent()

	failing := new(mockNotifier)
	failing.On("Notify", ctx, event).Return(errors.New("telegram down"))
	ok := new(mockNotifier)
	ok.On("Notify", ctx, event).Return(nil)

	err := Multi{failing, ok}.Notify(ctx, event)

	assert.EqualError(t, err, "telegram down")
	failing.AssertExpectations(t)
	ok.AssertExpectations(t)
}

func TestMultiEmpty(t *testing.T) {
	assert.NoError(t, Multi{}.Notify(context.Background(), testEvent()))
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	assert.NoError(t, n.Notify(context.Background(), testEvent()))

	entries := logs.FilterMessage("Booking event").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "booking.created", fields["type"])
		assert.Equal(t, int64(7), fields["booking_id"])
		assert.Equal(t, "2025-06-02", fields["date"])
	}
}

func TestFormatEvent(t *testing.T) {
	text := FormatEvent(testEvent())

	assert.Contains(t, text, "Новая запись")
	assert.Contains(t, text, "Иванов &lt;b&gt;")
	assert.Contains(t, text, "Понедельник, 02.06.2025")
	assert.Contains(t, text, "09:00")

	deleted := testEvent()
	deleted.Type = EventBookingDeleted
	assert.Contains(t, FormatEvent(deleted), "Запись удалена")
}
