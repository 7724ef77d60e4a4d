package services

import (
	"time"

	"go.uber.org/zap"
)

// Scheduler is the one real clock in the system. It beats once a second and
// forwards the beat to every live engine, which advances mood countdowns
// and sweeps expired notifications. The engines themselves never touch the
// wall clock, so tests drive them tick by tick.
type Scheduler struct {
	log     *zap.Logger
	manager *Manager
	stop    chan struct{}
}

func NewScheduler(log *zap.Logger, manager *Manager) *Scheduler {
	return &Scheduler{
		log:     log,
		manager: manager,
		stop:    make(chan struct{}),
	}
}

// Start runs the scheduler in a goroutine.
func (s *Scheduler) Start() {
	s.log.Info("Starting engine scheduler...")
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				s.manager.Each(func(e *Engine) {
					e.Tick(now)
				})
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the ticker loop.
func (s *Scheduler) Stop() {
	close(s.stop)
}
