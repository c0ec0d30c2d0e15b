package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// RouterOptions настройки общего middleware
type RouterOptions struct {
	// RequestsPerSecond общий лимит на IP, <= 0 отключает его
	RequestsPerSecond int
	// TrustProxy берёт IP клиента из X-Forwarded-For / X-Real-IP.
	// Включать только за своим reverse proxy, иначе лимиты обходятся подменой заголовка.
	TrustProxy bool
}

func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if opts.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(RequestLogger(h.logger))
	r.Use(middleware.Recoverer)
	if opts.RequestsPerSecond > 0 {
		r.Use(httprate.LimitByIP(opts.RequestsPerSecond, time.Second))
	}

	r.Get("/healthz", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(h.LoadSession)

		r.Get("/", h.Root)
		r.Get("/password", h.PasswordPage)
		r.Post("/password", h.CheckPassword)
		r.Get("/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth)

			r.Get("/calendar", h.Calendar)
			r.Get("/calendar/image", h.CalendarImage)
			r.Post("/add_booking", h.AddBooking)
			r.Post("/delete_booking/{booking_id}", h.DeleteBooking)
		})
	})

	return r
}
