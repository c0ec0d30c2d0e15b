package web

import (
	"github.com/Freeeeeet/clinic_calendar/internal/service"
	"github.com/Freeeeeet/clinic_calendar/internal/session"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler обработчики HTTP интерфейса календаря
type Handler struct {
	bookings *service.BookingService
	sessions session.Store
	gate     *Gate
	limiter  *PasswordLimiter
	pages    *Pages
	validate *validator.Validate
	logger   *zap.Logger
}

func NewHandler(
	bookings *service.BookingService,
	sessions session.Store,
	gate *Gate,
	limiter *PasswordLimiter,
	logger *zap.Logger,
) (*Handler, error) {
	pages, err := NewPages()
	if err != nil {
		return nil, err
	}

	return &Handler{
		bookings: bookings,
		sessions: sessions,
		gate:     gate,
		limiter:  limiter,
		pages:    pages,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}, nil
}
