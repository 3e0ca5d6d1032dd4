// File: internal/jobs/status_sweep.go
package jobs

import (
	"context"
	"time"

	"streamhub_backend/internal/config"
	"streamhub_backend/internal/streamer"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StatusSweeper periodically marks streams offline when their status has not
// been refreshed within the staleness window.
type StatusSweeper struct {
	cron            *cron.Cron
	streamerService streamer.Service
	schedule        string
	staleAfter      time.Duration
	logger          *zap.Logger
}

// NewStatusSweeper creates a new StatusSweeper from configuration. An empty
// schedule disables the job.
func NewStatusSweeper(cfg *config.Config, streamerService streamer.Service, logger *zap.Logger) *StatusSweeper {
	jobLogger := logger.Named("StatusSweeper")
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(newCronLogger(jobLogger)),
	))
	return &StatusSweeper{
		cron:            c,
		streamerService: streamerService,
		schedule:        cfg.StatusSweepSchedule,
		staleAfter:      time.Duration(cfg.StatusStaleAfterMinutes) * time.Minute,
		logger:          jobLogger,
	}
}

// Start registers and starts the sweep schedule.
func (s *StatusSweeper) Start() error {
	if s.schedule == "" {
		s.logger.Info("Status sweep disabled: no schedule configured")
		return nil
	}
	if _, err := s.cron.AddFunc(s.schedule, s.runSweep); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Status sweep scheduled",
		zap.String("schedule", s.schedule),
		zap.Duration("staleAfter", s.staleAfter))
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *StatusSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Status sweep stopped")
}

func (s *StatusSweeper) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	count, err := s.streamerService.SweepStaleStatuses(ctx, s.staleAfter)
	if err != nil {
		s.logger.Error("Status sweep failed", zap.Error(err))
		return
	}
	s.logger.Debug("Status sweep completed", zap.Int64("flipped", count))
}

// cronLogger adapts zap to the cron.Logger interface.
type cronLogger struct {
	logger *zap.SugaredLogger
}

func newCronLogger(logger *zap.Logger) cron.Logger {
	return &cronLogger{logger: logger.Sugar()}
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Infow(msg, keysAndValues...)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
