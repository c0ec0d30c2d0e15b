package web

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestWeekParam(t *testing.T) {
	v := validator.New()

	assert.Equal(t, "2025-06-02", weekParam(v, "2025-06-02"))
	assert.Equal(t, "", weekParam(v, ""))
	assert.Equal(t, "", weekParam(v, "2025-06-31"))
	assert.Equal(t, "", weekParam(v, "https://evil.example"))
	assert.Equal(t, "", weekParam(v, "2025-06-02&error=x"))
}

func TestCalendarURL(t *testing.T) {
	assert.Equal(t, "/calendar", calendarURL("", ""))
	assert.Equal(t, "/calendar?start_date=2025-06-02", calendarURL("2025-06-02", ""))
	assert.Equal(t, "/calendar?error=%D0%9E%D0%BA", calendarURL("", "Ок"))
	assert.Equal(t, "/calendar?error=a+b&start_date=2025-06-02", calendarURL("2025-06-02", "a b"))
}

func TestRefererWeek(t *testing.T) {
	v := validator.New()

	r := httptest.NewRequest("POST", "/delete_booking/1", nil)
	assert.Equal(t, "", refererWeek(v, r))

	r.Header.Set("Referer", "http://clinic.local/calendar?start_date=2025-06-09")
	assert.Equal(t, "2025-06-09", refererWeek(v, r))

	r.Header.Set("Referer", "http://clinic.local/calendar?start_date=soon")
	assert.Equal(t, "", refererWeek(v, r))
}

func TestPasswordLimiter(t *testing.T) {
	rl := NewPasswordLimiter(0, 1)

	a := httptest.NewRequest("POST", "/password", nil)
	a.RemoteAddr = "10.0.0.1:5000"
	b := httptest.NewRequest("POST", "/password", nil)
	b.RemoteAddr = "10.0.0.2:5000"

	assert.True(t, rl.Allow(a))
	assert.False(t, rl.Allow(a))
	// у другого адреса свой лимит
	assert.True(t, rl.Allow(b))

	assert.Equal(t, 0, rl.Purge())

	rl.mu.Lock()
	for _, c := range rl.clients {
		c.seen = time.Now().Add(-2 * limiterIdleTimeout)
	}
	rl.mu.Unlock()

	assert.Equal(t, 2, rl.Purge())
	assert.True(t, rl.Allow(a))
}

func TestGate(t *testing.T) {
	_, err := NewGate("", 4)
	assert.Error(t, err)

	g, err := NewGate("secret", 4)
	assert.NoError(t, err)
	assert.NoError(t, g.Check("secret"))
	assert.ErrorIs(t, g.Check("Secret"), ErrWrongPassword)
	assert.ErrorIs(t, g.Check(""), ErrWrongPassword)
}
