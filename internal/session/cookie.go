package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var errBadToken = errors.New("invalid session token")

type claims struct {
	Authenticated bool `json:"auth"`
	jwt.RegisteredClaims
}

// CookieStore хранит сессию целиком в cookie, подписанной HS256
type CookieStore struct {
	secret []byte
	ttl    time.Duration
	cookie CookieOptions
	now    func() time.Time
}

func NewCookieStore(secret string, ttl time.Duration, cookie CookieOptions) *CookieStore {
	return &CookieStore{
		secret: []byte(secret),
		ttl:    ttl,
		cookie: cookie,
		now:    time.Now,
	}
}

// Get отдаёт пустую сессию для отсутствующей, подделанной или истёкшей cookie
func (c *CookieStore) Get(r *http.Request) (*Session, error) {
	raw := readCookie(r)
	if raw == "" {
		return &Session{}, nil
	}

	cl, err := c.parse(raw)
	if err != nil {
		return &Session{}, nil
	}

	return &Session{
		ID:            cl.ID,
		Authenticated: cl.Authenticated,
		ExpiresAt:     cl.ExpiresAt.Time,
	}, nil
}

func (c *CookieStore) Set(w http.ResponseWriter, _ *http.Request, s *Session) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := c.now()
	s.ExpiresAt = now.Add(c.ttl)

	cl := claims{
		Authenticated: s.Authenticated,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.secret)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}

	c.cookie.write(w, signed, s.ExpiresAt)
	return nil
}

func (c *CookieStore) Clear(w http.ResponseWriter, _ *http.Request) error {
	c.cookie.expire(w)
	return nil
}

func (c *CookieStore) parse(raw string) (*claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &claims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errBadToken
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		return nil, err
	}
	cl, ok := tok.Claims.(*claims)
	if !ok || !tok.Valid {
		return nil, errBadToken
	}
	return cl, nil
}
