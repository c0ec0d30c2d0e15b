package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/clinic_calendar/internal/model"
	"github.com/Freeeeeet/clinic_calendar/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `id, surname, date, worker, slot_time, created_at`

// BookingRepository хранит записи в PostgreSQL
type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт новую запись.
// Занятый слот ловит уникальный индекс uq_bookings_slot.
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (surname, date, worker, slot_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		booking.Surname,
		booking.Date,
		booking.Worker,
		booking.Time,
	).Scan(&booking.ID, &booking.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// Exists проверяет занят ли слот у специалиста в этот день
func (r *BookingRepository) Exists(ctx context.Context, date time.Time, worker, slot string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE date = $1 AND worker = $2 AND slot_time = $3
		)
	`

	var exists bool
	if err := r.QueryRow(ctx, query, date, worker, slot).Scan(&exists); err != nil {
		return false, fmt.Errorf("check booking slot: %w", err)
	}

	return exists, nil
}

// ListBetween получает записи с датой в диапазоне [from, to] включительно
func (r *BookingRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE date BETWEEN $1 AND $2
		ORDER BY date, worker, slot_time
	`

	rows, err := r.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	return bookings, nil
}

// Delete удаляет запись и возвращает удалённую
func (r *BookingRepository) Delete(ctx context.Context, id int64) (*model.Booking, error) {
	query := `DELETE FROM bookings WHERE id = $1 RETURNING ` + bookingColumns

	booking, err := scanBooking(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete booking: %w", err)
	}

	return booking, nil
}

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var booking model.Booking
	err := row.Scan(
		&booking.ID,
		&booking.Surname,
		&booking.Date,
		&booking.Worker,
		&booking.Time,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
