package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingPurger struct {
	calls atomic.Int32
}

func (p *countingPurger) Purge() int {
	p.calls.Add(1)
	return 1
}

func TestJanitorPurgesUntilStopped(t *testing.T) {
	p := &countingPurger{}
	j := NewJanitor(5*time.Millisecond, zap.NewNop())
	j.Add("sessions", p)

	j.Start(context.Background())
	assert.Eventually(t, func() bool { return p.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	j.Stop()
	stopped := p.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, p.calls.Load())

	// повторный Stop безопасен
	j.Stop()
}

func TestJanitorStopsOnContextCancel(t *testing.T) {
	p := &countingPurger{}
	j := NewJanitor(time.Hour, zap.NewNop())
	j.Add("limiter", p)

	ctx, cancel := context.WithCancel(context.Background())
	j.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		j.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancel")
	}
	assert.Zero(t, p.calls.Load())
}

func TestJanitorWithoutTargets(t *testing.T) {
	j := NewJanitor(time.Millisecond, zap.NewNop())
	j.Start(context.Background())
	j.Stop()
}
