// Package scheduler drives the trading tick loop on a cron schedule.
package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/tradeforge/vela/internal/logger"
	"github.com/tradeforge/vela/internal/orchestrator"
	"github.com/tradeforge/vela/pkg/errors"
)

// Scheduler ticks every registered orchestrator on its schedule. Each tick
// runs on the cron goroutine; the orchestrator's own latch drops a tick that
// arrives while the previous one is still running.
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	logger *logger.Logger
}

// New creates a stopped scheduler. ctx bounds every tick it fires.
func New(ctx context.Context, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Scheduler{
		cron:   cron.New(),
		ctx:    ctx,
		logger: log.Named("scheduler"),
	}
}

// Register schedules one orchestrator. spec is a cron expression, including
// the @every form.
func (s *Scheduler) Register(spec string, orch *orchestrator.Orchestrator) error {
	symbol := orch.Symbol()

	_, err := s.cron.AddFunc(spec, func() {
		if err := orch.Tick(s.ctx); err != nil {
			s.logger.Error("tick failed",
				zap.String("symbol", symbol),
				zap.Error(err),
			)
		}
	})
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "bad tick schedule %q", spec)
	}

	return nil
}

// Start begins firing ticks in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops firing new ticks and waits for running ones to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}
