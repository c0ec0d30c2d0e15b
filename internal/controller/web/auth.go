package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Freeeeeet/clinic_calendar/internal/session"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrWrongPassword неверный общий пароль
var ErrWrongPassword = errors.New("wrong password")

// Gate проверяет общий пароль сотрудников.
// Пароль хранится только как bcrypt хэш.
type Gate struct {
	hash []byte
}

func NewGate(password string, cost int) (*Gate, error) {
	if password == "" {
		return nil, fmt.Errorf("access password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash access password: %w", err)
	}
	return &Gate{hash: hash}, nil
}

func (g *Gate) Check(password string) error {
	if bcrypt.CompareHashAndPassword(g.hash, []byte(password)) != nil {
		return ErrWrongPassword
	}
	return nil
}

type passwordPage struct {
	Error string
}

// Root отправляет на календарь или на ввод пароля
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	if session.FromContext(r.Context()).Authenticated {
		http.Redirect(w, r, "/calendar", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/password", http.StatusFound)
}

func (h *Handler) PasswordPage(w http.ResponseWriter, r *http.Request) {
	h.pages.Render(w, http.StatusOK, pagePassword, passwordPage{})
}

func (h *Handler) CheckPassword(w http.ResponseWriter, r *http.Request) {
	if !h.limiter.Allow(r) {
		h.logger.Warn("Password attempts rate limited", zap.String("ip", clientIP(r)))
		h.pages.Render(w, http.StatusTooManyRequests, pagePassword, passwordPage{Error: ErrorMessage(errTooManyAttempts)})
		return
	}

	if err := h.gate.Check(r.PostFormValue("password")); err != nil {
		h.logger.Info("Wrong access password", zap.String("ip", clientIP(r)))
		h.pages.Render(w, http.StatusOK, pagePassword, passwordPage{Error: ErrorMessage(err)})
		return
	}

	// новая сессия после входа, старый id не переиспользуется
	sess := &session.Session{Authenticated: true}
	if err := h.sessions.Set(w, r, sess); err != nil {
		h.logger.Error("Failed to save session", zap.Error(err))
		h.pages.Render(w, http.StatusInternalServerError, pagePassword, passwordPage{Error: ErrorMessage(err)})
		return
	}

	http.Redirect(w, r, "/calendar", http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		h.logger.Error("Failed to clear session", zap.Error(err))
	}
	http.Redirect(w, r, "/password", http.StatusFound)
}
