package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/clinic_calendar/internal/config"
	"github.com/Freeeeeet/clinic_calendar/internal/notify"
	"github.com/Freeeeeet/clinic_calendar/internal/repository"
	"github.com/Freeeeeet/clinic_calendar/internal/service"
	"github.com/Freeeeeet/clinic_calendar/internal/session"
	"github.com/Freeeeeet/clinic_calendar/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// Cleanup освобождает ресурсы, открытые при старте
type Cleanup func()

func noop() {}

// OpenStore открывает хранилище записей по STORE_DRIVER
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.BookingStore, Cleanup, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		return openPostgres(ctx, cfg, logger)
	case config.StoreMongo:
		return openMongo(ctx, cfg, logger)
	case config.StoreMemory:
		logger.Warn("⚠️  Using in-memory booking store, data is lost on restart")
		return repository.NewMemoryBookingRepository(), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.BookingStore, Cleanup, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping postgres: %w", err)
	}
	logger.Info("✅ Connected to PostgreSQL")

	if cfg.MigrationsEnabled {
		if err := migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}

	return repository.NewBookingRepository(pool), pool.Close, nil
}

func migrate(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	migrator, err := NewMigrator(pool, migrations.FS, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Run(ctx)
}

func openMongo(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.BookingStore, Cleanup, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	disconnect := func() {
		dctx, dcancel := context.WithTimeout(context.Background(), connectTimeout)
		defer dcancel()
		if err := client.Disconnect(dctx); err != nil {
			logger.Warn("Failed to disconnect mongo", zap.Error(err))
		}
	}

	if err := client.Ping(ctx, nil); err != nil {
		disconnect()
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	repo, err := repository.NewMongoBookingRepository(ctx, client.Database(cfg.MongoDatabase))
	if err != nil {
		disconnect()
		return nil, nil, err
	}
	logger.Info("✅ Connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	return repo, disconnect, nil
}

// OpenSessions создаёт хранилище сессий по SESSION_DRIVER.
// Для memory возвращается и сам MemoryStore, чтобы его чистил Janitor.
func OpenSessions(ctx context.Context, cfg *config.Config, logger *zap.Logger) (session.Store, *session.MemoryStore, Cleanup, error) {
	opts := session.CookieOptions{Secure: cfg.CookieSecure}

	switch cfg.SessionDriver {
	case config.SessionCookie:
		return session.NewCookieStore(cfg.SessionSecret, cfg.SessionTTL, opts), nil, noop, nil
	case config.SessionMemory:
		store := session.NewMemoryStore(cfg.SessionTTL, opts)
		return store, store, noop, nil
	case config.SessionRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		store := session.NewRedisStore(client, cfg.SessionTTL, opts)

		pctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		if err := store.Ping(pctx); err != nil {
			_ = client.Close()
			return nil, nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		logger.Info("✅ Connected to Redis", zap.String("addr", cfg.RedisAddr))

		return store, nil, func() { _ = client.Close() }, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown session driver %q", cfg.SessionDriver)
	}
}

// BuildNotifier собирает получателей событий о записях.
// Лог пишется всегда, Telegram и RabbitMQ только если настроены.
func BuildNotifier(cfg *config.Config, logger *zap.Logger) (notify.Notifier, Cleanup, error) {
	notifiers := notify.Multi{notify.NewLogNotifier(logger)}
	cleanup := noop

	if cfg.TelegramToken != "" {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			return nil, nil, fmt.Errorf("create telegram notifier: %w", err)
		}
		notifiers = append(notifiers, tg)
		logger.Info("Telegram notifications enabled", zap.Int64("chat_id", cfg.TelegramChatID))
	}

	if cfg.RabbitURL != "" {
		pub, err := notify.NewAMQPNotifier(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			return nil, nil, fmt.Errorf("create amqp notifier: %w", err)
		}
		notifiers = append(notifiers, pub)
		cleanup = func() {
			if err := pub.Close(); err != nil {
				logger.Warn("Failed to close amqp notifier", zap.Error(err))
			}
		}
		logger.Info("RabbitMQ event publishing enabled", zap.String("exchange", cfg.RabbitExchange))
	}

	return notifiers, cleanup, nil
}
