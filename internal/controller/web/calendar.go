package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Freeeeeet/clinic_calendar/internal/render"
	"github.com/Freeeeeet/clinic_calendar/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

type calendarPage struct {
	View  *service.WeekView
	Error string
}

func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	view, err := h.bookings.Week(r.Context(), query.Get("start_date"))
	if err != nil {
		h.logger.Error("Failed to build week view", zap.Error(err))
		h.pages.RenderError(w, http.StatusInternalServerError, ErrorMessage(err))
		return
	}

	h.pages.Render(w, http.StatusOK, pageCalendar, calendarPage{
		View:  view,
		Error: query.Get("error"),
	})
}

// CalendarImage отдаёт неделю в виде PNG
func (h *Handler) CalendarImage(w http.ResponseWriter, r *http.Request) {
	view, err := h.bookings.Week(r.Context(), r.URL.Query().Get("start_date"))
	if err != nil {
		h.logger.Error("Failed to build week view", zap.Error(err))
		h.pages.RenderError(w, http.StatusInternalServerError, ErrorMessage(err))
		return
	}

	data, err := render.WeekImage(view)
	if err != nil {
		h.logger.Error("Failed to render week image", zap.Error(err))
		h.pages.RenderError(w, http.StatusInternalServerError, ErrorMessage(err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`inline; filename="week-%s.png"`, view.Start.Format("2006-01-02")))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) AddBooking(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, calendarURL("", ErrorMessage(errBadForm)), http.StatusSeeOther)
		return
	}

	form := parseBookingForm(r)
	start := weekParam(h.validate, form.StartDate)

	_, err := h.bookings.Create(r.Context(), service.CreateBookingInput{
		Surname: form.Surname,
		Date:    form.DateStr,
		Worker:  form.Worker,
		Time:    form.Time,
	})
	if err != nil {
		msg := ErrorMessage(err)
		if errors.Is(err, service.ErrSlotTaken) {
			msg = fmt.Sprintf("Время %s у %s уже занято!", form.Time, form.Worker)
		} else if !isDomainError(err) {
			h.logger.Error("Failed to create booking", zap.Error(err))
		}
		http.Redirect(w, r, calendarURL(start, msg), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, calendarURL(start, ""), http.StatusSeeOther)
}

func (h *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()

	start := weekParam(h.validate, r.PostFormValue("start_date"))
	if start == "" {
		start = refererWeek(h.validate, r)
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "booking_id"), 10, 64)
	if err != nil {
		http.Redirect(w, r, calendarURL(start, ErrorMessage(service.ErrNotFound)), http.StatusSeeOther)
		return
	}

	if _, err := h.bookings.Delete(r.Context(), id); err != nil {
		if !isDomainError(err) {
			h.logger.Error("Failed to delete booking", zap.Int64("booking_id", id), zap.Error(err))
		}
		http.Redirect(w, r, calendarURL(start, ErrorMessage(err)), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, calendarURL(start, ""), http.StatusSeeOther)
}

// Health проверяет доступность хранилища
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := h.bookings.Ping(ctx); err != nil {
		h.logger.Warn("Health check failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("unavailable"))
		return
	}
	_, _ = w.Write([]byte("ok"))
}

func isDomainError(err error) bool {
	for _, target := range []error{
		service.ErrInvalidWorker,
		service.ErrInvalidDate,
		service.ErrInvalidTime,
		service.ErrEmptySurname,
		service.ErrLongSurname,
		service.ErrSlotTaken,
		service.ErrNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
