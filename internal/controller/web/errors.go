package web

import (
	"errors"

	"github.com/Freeeeeet/clinic_calendar/internal/service"
)

var (
	errTooManyAttempts = errors.New("too many password attempts")
	errBadForm         = errors.New("malformed form")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrWrongPassword):
		return "Неверный пароль"
	case errors.Is(err, errTooManyAttempts):
		return "Слишком много попыток, попробуйте позже"
	case errors.Is(err, errBadForm):
		return "Некорректные данные формы"
	case errors.Is(err, service.ErrInvalidWorker):
		return "Неверный сотрудник"
	case errors.Is(err, service.ErrInvalidDate):
		return "Неверная дата"
	case errors.Is(err, service.ErrInvalidTime):
		return "Неверное время"
	case errors.Is(err, service.ErrEmptySurname):
		return "Укажите фамилию"
	case errors.Is(err, service.ErrLongSurname):
		return "Слишком длинная фамилия"
	case errors.Is(err, service.ErrSlotTaken):
		return "Это время уже занято"
	case errors.Is(err, service.ErrNotFound):
		return "Запись не найдена"
	default:
		return "Произошла ошибка, попробуйте позже"
	}
}
