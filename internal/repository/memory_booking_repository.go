package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/clinic_calendar/internal/model"
)

type slotKey struct {
	date   string
	worker string
	slot   string
}

func keyOf(b *model.Booking) slotKey {
	return slotKey{date: b.DateString(), worker: b.Worker, slot: b.Time}
}

// MemoryBookingRepository хранит записи в памяти процесса.
// Используется в тестах и при STORE_DRIVER=memory.
type MemoryBookingRepository struct {
	mu       sync.RWMutex
	nextID   int64
	bookings map[int64]model.Booking
	slots    map[slotKey]int64
	now      func() time.Time
}

func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{
		bookings: make(map[int64]model.Booking),
		slots:    make(map[slotKey]int64),
		now:      time.Now,
	}
}

func (r *MemoryBookingRepository) Create(_ context.Context, booking *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := keyOf(booking)
	if _, taken := r.slots[key]; taken {
		return ErrDuplicate
	}

	r.nextID++
	booking.ID = r.nextID
	booking.CreatedAt = r.now()

	r.bookings[booking.ID] = *booking
	r.slots[key] = booking.ID
	return nil
}

func (r *MemoryBookingRepository) Exists(_ context.Context, date time.Time, worker, slot string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.slots[slotKey{date: date.Format("2006-01-02"), worker: worker, slot: slot}]
	return ok, nil
}

func (r *MemoryBookingRepository) ListBetween(_ context.Context, from, to time.Time) ([]*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var bookings []*model.Booking
	for _, b := range r.bookings {
		if b.Date.Before(from) || b.Date.After(to) {
			continue
		}
		booking := b
		bookings = append(bookings, &booking)
	}

	sort.Slice(bookings, func(i, j int) bool {
		a, b := bookings[i], bookings[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Worker != b.Worker {
			return a.Worker < b.Worker
		}
		return a.Time < b.Time
	})

	return bookings, nil
}

func (r *MemoryBookingRepository) Delete(_ context.Context, id int64) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}

	delete(r.bookings, id)
	delete(r.slots, keyOf(&booking))
	return &booking, nil
}

func (r *MemoryBookingRepository) Ping(context.Context) error {
	return nil
}
