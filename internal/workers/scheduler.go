package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"hostmarket_backend/internal/logger"
)

// Scheduler запускает свипер по cron-расписанию
type Scheduler struct {
	cron    *cron.Cron
	sweeper *ExpirySweeper
}

func NewScheduler(sweeper *ExpirySweeper, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	// сообщения cron идут в общий slog
	cronLog := cron.PrintfLogger(slog.NewLogLogger(logger.GetLogger().Handler(), slog.LevelWarn))
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		sweeper: sweeper,
	}
}

// Start регистрирует задачу и запускает планировщик. ctx передается в каждый проход.
func (s *Scheduler) Start(ctx context.Context, schedule string) error {
	id, err := s.cron.AddFunc(schedule, func() {
		s.sweeper.RunOnce(ctx)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	logger.Info("expiry sweeper scheduled", "schedule", schedule)
	logger.Debug("cron entry registered", "entry_id", int(id))
	return nil
}

// Stop ждет завершения текущего прохода
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Info("expiry sweeper stopped")
}
