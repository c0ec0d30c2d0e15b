package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Purger хранилище, умеющее удалять устаревшие записи
type Purger interface {
	Purge() int
}

// Janitor периодически чистит in-memory хранилища
type Janitor struct {
	interval time.Duration
	logger   *zap.Logger
	targets  map[string]Purger
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewJanitor(interval time.Duration, logger *zap.Logger) *Janitor {
	return &Janitor{
		interval: interval,
		logger:   logger,
		targets:  make(map[string]Purger),
		stopChan: make(chan struct{}),
	}
}

// Add регистрирует хранилище. Вызывать до Start.
func (j *Janitor) Add(name string, p Purger) {
	j.targets[name] = p
}

// Start запускает фоновую очистку
func (j *Janitor) Start(ctx context.Context) {
	if len(j.targets) == 0 {
		return
	}
	j.logger.Info("Starting background janitor", zap.Duration("interval", j.interval))

	j.wg.Add(1)
	go j.run(ctx)
}

// Stop останавливает очистку и ждёт завершения
func (j *Janitor) Stop() {
	j.stopOnce.Do(func() {
		close(j.stopChan)
	})
	j.wg.Wait()
}

func (j *Janitor) run(ctx context.Context) {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.purge()
		case <-j.stopChan:
			j.logger.Info("Janitor stopped")
			return
		case <-ctx.Done():
			j.logger.Info("Janitor cancelled")
			return
		}
	}
}

func (j *Janitor) purge() {
	for name, p := range j.targets {
		if n := p.Purge(); n > 0 {
			j.logger.Debug("Purged expired entries", zap.String("target", name), zap.Int("count", n))
		}
	}
}
