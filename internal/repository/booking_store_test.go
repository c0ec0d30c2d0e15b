package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/clinic_calendar/internal/model"
	"github.com/Freeeeeet/clinic_calendar/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingStore interface {
	Create(ctx context.Context, booking *model.Booking) error
	Exists(ctx context.Context, date time.Time, worker, slot string) (bool, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*model.Booking, error)
	Delete(ctx context.Context, id int64) (*model.Booking, error)
	Ping(ctx context.Context) error
}

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func booking(surname string, date time.Time, worker, slot string) *model.Booking {
	return &model.Booking{Surname: surname, Date: date, Worker: worker, Time: slot}
}

// runBookingStoreTests общий набор проверок для всех реализаций хранилища.
// newStore должен возвращать пустое хранилище.
func runBookingStoreTests(t *testing.T, newStore func(t *testing.T) bookingStore) {
	ctx := context.Background()

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, newStore(t).Ping(ctx))
	})

	t.Run("create assigns id", func(t *testing.T) {
		store := newStore(t)

		first := booking("Petrov", day(2), "Surgeon", "09:00")
		require.NoError(t, store.Create(ctx, first))
		second := booking("Ivanov", day(2), "Surgeon", "09:30")
		require.NoError(t, store.Create(ctx, second))

		assert.NotZero(t, first.ID)
		assert.NotEqual(t, first.ID, second.ID)
		assert.False(t, first.CreatedAt.IsZero())
	})

	t.Run("duplicate slot", func(t *testing.T) {
		store := newStore(t)

		require.NoError(t, store.Create(ctx, booking("Petrov", day(2), "Surgeon", "09:00")))
		err := store.Create(ctx, booking("Sidorov", day(2), "Surgeon", "09:00"))
		assert.ErrorIs(t, err, repository.ErrDuplicate)

		// тот же слот у другого специалиста или в другой день свободен
		assert.NoError(t, store.Create(ctx, booking("Sidorov", day(2), "Therapist", "09:00")))
		assert.NoError(t, store.Create(ctx, booking("Sidorov", day(3), "Surgeon", "09:00")))
	})

	t.Run("exists", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Create(ctx, booking("Petrov", day(4), "Surgeon", "10:00")))

		ok, err := store.Exists(ctx, day(4), "Surgeon", "10:00")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Exists(ctx, day(4), "Surgeon", "10:30")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("list between is inclusive and ordered", func(t *testing.T) {
		store := newStore(t)
		for _, b := range []*model.Booking{
			booking("Late", day(8), "Surgeon", "18:30"),
			booking("Before", day(1), "Surgeon", "09:00"),
			booking("Second", day(2), "Surgeon", "11:00"),
			booking("First", day(2), "Surgeon", "09:30"),
			booking("After", day(9), "Surgeon", "09:00"),
		} {
			require.NoError(t, store.Create(ctx, b))
		}

		list, err := store.ListBetween(ctx, day(2), day(8))
		require.NoError(t, err)

		var names []string
		for _, b := range list {
			names = append(names, b.Surname)
			assert.Equal(t, time.UTC, b.Date.Location())
		}
		assert.Equal(t, []string{"First", "Second", "Late"}, names)
	})

	t.Run("delete", func(t *testing.T) {
		store := newStore(t)
		b := booking("Petrov", day(5), "Orthopedist", "12:00")
		require.NoError(t, store.Create(ctx, b))

		removed, err := store.Delete(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, removed.ID)
		assert.Equal(t, "Petrov", removed.Surname)
		assert.Equal(t, "2025-06-05", removed.DateString())

		_, err = store.Delete(ctx, b.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		// слот снова свободен
		assert.NoError(t, store.Create(ctx, booking("Ivanov", day(5), "Orthopedist", "12:00")))
	})

	t.Run("concurrent create of one slot", func(t *testing.T) {
		store := newStore(t)

		const n = 8
		var wg sync.WaitGroup
		errs := make([]error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = store.Create(ctx, booking("Racer", day(6), "Therapist", "15:00"))
			}(i)
		}
		wg.Wait()

		created := 0
		for _, err := range errs {
			if err == nil {
				created++
			} else {
				assert.ErrorIs(t, err, repository.ErrDuplicate)
			}
		}
		assert.Equal(t, 1, created)
	})
}

func TestMemoryBookingRepository(t *testing.T) {
	runBookingStoreTests(t, func(t *testing.T) bookingStore {
		return repository.NewMemoryBookingRepository()
	})
}

func TestMemoryListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryBookingRepository()
	require.NoError(t, store.Create(ctx, booking("Petrov", day(2), "Surgeon", "09:00")))

	list, err := store.ListBetween(ctx, day(2), day(2))
	require.NoError(t, err)
	require.Len(t, list, 1)
	list[0].Surname = "Changed"

	list, err = store.ListBetween(ctx, day(2), day(2))
	require.NoError(t, err)
	assert.Equal(t, "Petrov", list[0].Surname)
}
