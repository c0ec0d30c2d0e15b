package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/clinic_calendar/internal/app"
	"github.com/Freeeeeet/clinic_calendar/internal/config"
	"github.com/Freeeeeet/clinic_calendar/internal/controller/web"
	"github.com/Freeeeeet/clinic_calendar/internal/model"
	"github.com/Freeeeeet/clinic_calendar/internal/service"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	janitorInterval = time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	// run сам закрывает хранилища; здесь только сбрасываем лог и выходим с кодом
	err = run(cfg, logger)
	if err != nil {
		logger.Error("Server failed", zap.Error(err))
	}
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("🚀 Starting clinic calendar",
		zap.String("environment", cfg.Environment),
		zap.String("store", cfg.StoreDriver),
		zap.String("sessions", cfg.SessionDriver),
		zap.Strings("workers", cfg.Workers),
	)

	store, closeStore, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	sessions, memSessions, closeSessions, err := app.OpenSessions(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSessions()

	notifier, closeNotifier, err := app.BuildNotifier(cfg, logger)
	if err != nil {
		return err
	}
	defer closeNotifier()

	gate, err := web.NewGate(cfg.AccessPassword, bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	limiter := web.NewPasswordLimiter(cfg.PasswordRate, cfg.PasswordBurst)

	bookings := service.NewBookingService(store, model.Workers(cfg.Workers), notifier, logger)

	handler, err := web.NewHandler(bookings, sessions, gate, limiter, logger)
	if err != nil {
		return err
	}

	janitor := app.NewJanitor(janitorInterval, logger)
	janitor.Add("password_limiter", limiter)
	if memSessions != nil {
		janitor.Add("sessions", memSessions)
	}
	janitor.Start(ctx)
	defer janitor.Stop()

	router := web.NewRouter(handler, web.RouterOptions{
		RequestsPerSecond: cfg.RequestsPerSecond,
		TrustProxy:        cfg.TrustProxy,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("✅ HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
