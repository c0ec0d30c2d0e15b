package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Freeeeeet/clinic_calendar/internal/model"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
	StoreMemory   = "memory"

	SessionCookie = "cookie"
	SessionMemory = "memory"
	SessionRedis  = "redis"
)

type Config struct {
	Environment string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`

	StoreDriver       string `envconfig:"STORE_DRIVER" default:"postgres"`
	DBDSN             string `envconfig:"DB_DSN"`
	MongoURI          string `envconfig:"MONGO_URI"`
	MongoDatabase     string `envconfig:"MONGO_DATABASE" default:"clinic"`
	MigrationsEnabled bool   `envconfig:"MIGRATIONS_ENABLED" default:"true"`

	AccessPassword string        `envconfig:"ACCESS_PASSWORD"`
	SessionSecret  string        `envconfig:"SESSION_SECRET"`
	SessionDriver  string        `envconfig:"SESSION_DRIVER" default:"cookie"`
	SessionTTL     time.Duration `envconfig:"SESSION_TTL" default:"12h"`
	CookieSecure   bool          `envconfig:"COOKIE_SECURE" default:"false"`
	RedisAddr      string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword  string        `envconfig:"REDIS_PASSWORD"`

	// пусто: model.DefaultWorkers
	Workers []string `envconfig:"CLINIC_WORKERS"`

	PasswordRate      float64 `envconfig:"PASSWORD_RATE" default:"0.2"`
	PasswordBurst     int     `envconfig:"PASSWORD_BURST" default:"5"`
	RequestsPerSecond int     `envconfig:"REQUESTS_PER_SECOND" default:"20"`
	TrustProxy        bool    `envconfig:"TRUST_PROXY" default:"false"`

	TelegramToken  string `envconfig:"TELEGRAM_TOKEN"`
	TelegramChatID int64  `envconfig:"TELEGRAM_CHAT_ID"`

	RabbitURL      string `envconfig:"RABBIT_URL"`
	RabbitExchange string `envconfig:"RABBIT_EXCHANGE" default:"clinic.bookings"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if len(cfg.Workers) == 0 {
		cfg.Workers = append([]string(nil), model.DefaultWorkers...)
	}
	for i, w := range cfg.Workers {
		cfg.Workers[i] = strings.TrimSpace(w)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет настройки хранилища, нужные любому бинарнику
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StorePostgres:
		if c.DBDSN == "" {
			return errors.New("DB_DSN is required for postgres store")
		}
	case StoreMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required for mongo store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if len(c.Workers) == 0 {
		return errors.New("CLINIC_WORKERS is empty")
	}
	seen := make(map[string]struct{}, len(c.Workers))
	for _, w := range c.Workers {
		if w == "" {
			return errors.New("CLINIC_WORKERS contains an empty name")
		}
		if _, ok := seen[w]; ok {
			return fmt.Errorf("CLINIC_WORKERS contains %q twice", w)
		}
		seen[w] = struct{}{}
	}
	return nil
}

// ValidateServer проверяет то, без чего не стартует HTTP сервер
func (c *Config) ValidateServer() error {
	if c.AccessPassword == "" {
		return errors.New("ACCESS_PASSWORD is required but not set")
	}

	switch c.SessionDriver {
	case SessionCookie:
		if len(c.SessionSecret) < 16 {
			return errors.New("SESSION_SECRET must be at least 16 bytes")
		}
	case SessionMemory, SessionRedis:
	default:
		return fmt.Errorf("unknown SESSION_DRIVER %q", c.SessionDriver)
	}

	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.PasswordBurst < 1 {
		return errors.New("PASSWORD_BURST must be at least 1")
	}
	if c.TelegramToken != "" && c.TelegramChatID == 0 {
		return errors.New("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}
	return nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}
