package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "clinic:session:"

// RedisStore хранит сессии в Redis с TTL, в cookie только id
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	cookie CookieOptions
}

func NewRedisStore(client *redis.Client, ttl time.Duration, cookie CookieOptions) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, cookie: cookie}
}

func (s *RedisStore) Get(r *http.Request) (*Session, error) {
	id := readCookie(r)
	if id == "" {
		return &Session{}, nil
	}

	data, err := s.client.Get(r.Context(), redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return &Session{}, nil
	}
	return &sess, nil
}

func (s *RedisStore) Set(w http.ResponseWriter, r *http.Request, sess *Session) error {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	sess.ExpiresAt = time.Now().Add(s.ttl)

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(r.Context(), redisKeyPrefix+sess.ID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}

	s.cookie.write(w, sess.ID, sess.ExpiresAt)
	return nil
}

func (s *RedisStore) Clear(w http.ResponseWriter, r *http.Request) error {
	if id := readCookie(r); id != "" {
		if err := s.client.Del(r.Context(), redisKeyPrefix+id).Err(); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}
	s.cookie.expire(w)
	return nil
}

// Ping проверяет соединение с Redis
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
