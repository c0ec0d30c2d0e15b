package web

import (
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
)

// maxFormBytes предел тела POST формы
const maxFormBytes = 16 << 10

// bookingForm поля формы записи. Содержимое проверяет сервис,
// чтобы порядок ошибок был один: специалист, дата, время, фамилия.
type bookingForm struct {
	Surname   string
	DateStr   string
	Worker    string
	Time      string
	StartDate string
}

func parseBookingForm(r *http.Request) bookingForm {
	return bookingForm{
		Surname:   r.PostFormValue("surname"),
		DateStr:   r.PostFormValue("date_str"),
		Worker:    r.PostFormValue("worker"),
		Time:      r.PostFormValue("time"),
		StartDate: r.PostFormValue("start_date"),
	}
}

// weekParam возвращает start_date, только если это корректная дата.
// Всё остальное в адрес редиректа не попадает.
func weekParam(v *validator.Validate, value string) string {
	if v.Var(value, "required,datetime=2006-01-02") != nil {
		return ""
	}
	return value
}

// refererWeek достаёт start_date из Referer; сам Referer как адрес не используется
func refererWeek(v *validator.Validate, r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil {
		return ""
	}
	return weekParam(v, ref.Query().Get("start_date"))
}

// calendarURL адрес недели с необязательным сообщением об ошибке
func calendarURL(startDate, errMsg string) string {
	q := url.Values{}
	if startDate != "" {
		q.Set("start_date", startDate)
	}
	if errMsg != "" {
		q.Set("error", errMsg)
	}
	if len(q) == 0 {
		return "/calendar"
	}
	return "/calendar?" + q.Encode()
}
