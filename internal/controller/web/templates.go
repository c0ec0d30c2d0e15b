package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/Freeeeeet/clinic_calendar/internal/calendar"
	"github.com/Freeeeeet/clinic_calendar/internal/formatting"
	"github.com/Freeeeeet/clinic_calendar/internal/model"
	"github.com/Freeeeeet/clinic_calendar/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pagePassword = "password.html"
	pageCalendar = "calendar.html"
	pageError    = "error.html"
)

var templateFuncs = template.FuncMap{
	"isoDate":   calendar.FormatDate,
	"dayMonth":  formatting.FormatDayMonth,
	"fullDate":  formatting.FormatDate,
	"weekday":   func(t time.Time) string { return formatting.WeekdayShort(t.Weekday()) },
	"sameDay":   func(a, b time.Time) bool { return calendar.Day(a).Equal(calendar.Day(b)) },
	"bookingAt": func(v *service.WeekView, d time.Time, worker, slot string) *model.Booking { return v.Grid.At(d, worker, slot) },
}

// Pages HTML страницы, собранные из base.html и страницы
type Pages struct {
	pages map[string]*template.Template
}

func NewPages() (*Pages, error) {
	p := &Pages{pages: make(map[string]*template.Template)}
	for _, name := range []string{pagePassword, pageCalendar, pageError} {
		t, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/base.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		p.pages[name] = t
	}
	return p, nil
}

// Render рисует страницу целиком в буфер и только потом пишет ответ
func (p *Pages) Render(w http.ResponseWriter, status int, name string, data any) {
	t, ok := p.pages[name]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// RenderError страница с сообщением об ошибке
func (p *Pages) RenderError(w http.ResponseWriter, status int, message string) {
	p.Render(w, status, pageError, struct{ Error string }{message})
}
