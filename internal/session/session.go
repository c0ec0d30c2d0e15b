package session

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// CookieName имя cookie сессии
const CookieName = "clinic_session"

// ErrUnauthenticated сессия не прошла проверку пароля
var ErrUnauthenticated = errors.New("unauthenticated")

// Session состояние сессии сотрудника
type Session struct {
	ID            string    `json:"id"`
	Authenticated bool      `json:"authenticated"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// Store хранилище сессий.
// Get никогда не возвращает nil сессию: при отсутствии cookie это пустая сессия.
type Store interface {
	Get(r *http.Request) (*Session, error)
	Set(w http.ResponseWriter, r *http.Request, s *Session) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

type ctxKey struct{}

// NewContext кладёт сессию в контекст запроса
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext достаёт сессию из контекста; без сессии возвращает пустую
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(ctxKey{}).(*Session); ok && s != nil {
		return s
	}
	return &Session{}
}

// RequireAuthenticated возвращает ErrUnauthenticated для неавторизованной сессии
func RequireAuthenticated(ctx context.Context) error {
	if !FromContext(ctx).Authenticated {
		return ErrUnauthenticated
	}
	return nil
}

// CookieOptions общие параметры cookie сессии
type CookieOptions struct {
	Secure bool
}

func (o CookieOptions) write(w http.ResponseWriter, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (o CookieOptions) expire(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func readCookie(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
