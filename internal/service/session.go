package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tradesim/internal/domain"
	"tradesim/internal/engine"
)

// Session binds one participant's isolated simulated market: its matching
// engine, its liquidity generator handle, and the configuration it was
// created with.
type Session struct {
	ID     string
	Config domain.SessionConfig
	Engine *engine.Engine

	logger *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// StartUpdates launches the session's liquidity generator, broadcasting a
// snapshot to b after every tick. A previous run, if any, is stopped
// first. The generator stops when ctx is cancelled or StopUpdates is
// called; failures inside the run are logged at error level so a dead
// generator is never silent.
func (s *Session) StartUpdates(ctx context.Context, b engine.Broadcaster) {
	s.StopUpdates()

	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	interval := time.Duration(s.Config.NoiseUpdateFreqSec) * time.Second
	if interval <= 0 {
		interval = time.Duration(domain.DefaultSessionConfig().NoiseUpdateFreqSec) * time.Second
	}
	gen := engine.NewGenerator(interval, s.Engine, nil, nil, s.logger)

	go func() {
		defer close(done)
		if err := gen.Run(runCtx, b); err != nil {
			s.logger.Error("liquidity generator stopped",
				slog.String("session_id", s.ID),
				slog.String("error", err.Error()),
			)
		}
	}()
}

// StopUpdates cancels the running generator and waits for it to exit, so
// the engine is never touched after the transport has gone away. Safe to
// call when no generator is running, and idempotent.
func (s *Session) StopUpdates() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
