package web

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterIdleTimeout = 3 * time.Minute

type client struct {
	lim  *rate.Limiter
	seen time.Time
}

// PasswordLimiter ограничивает попытки ввода пароля с одного IP
type PasswordLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	r       rate.Limit
	burst   int
}

func NewPasswordLimiter(rps float64, burst int) *PasswordLimiter {
	return &PasswordLimiter{
		clients: make(map[string]*client),
		r:       rate.Limit(rps),
		burst:   burst,
	}
}

func (rl *PasswordLimiter) get(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if c, ok := rl.clients[ip]; ok {
		c.seen = time.Now()
		return c.lim
	}
	l := rate.NewLimiter(rl.r, rl.burst)
	rl.clients[ip] = &client{lim: l, seen: time.Now()}
	return l
}

// Allow расходует одну попытку клиента
func (rl *PasswordLimiter) Allow(r *http.Request) bool {
	return rl.get(clientIP(r)).Allow()
}

// Purge забывает клиентов, не приходивших дольше limiterIdleTimeout
func (rl *PasswordLimiter) Purge() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	purged := 0
	for ip, c := range rl.clients {
		if time.Since(c.seen) > limiterIdleTimeout {
			delete(rl.clients, ip)
			purged++
		}
	}
	return purged
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
