// Command sweeper переводит просроченные pending офферы и предложения в hold.
// Работает отдельным процессом: по cron-расписанию или один раз с -once.
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"hostmarket_backend/database"
	"hostmarket_backend/internal/config"
	"hostmarket_backend/internal/logger"
	"hostmarket_backend/internal/repositories"
	"hostmarket_backend/internal/workers"
)

func main() {
	once := flag.Bool("once", false, "run a single sweep and exit")
	flag.Parse()

	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)

	db, err := database.ConnectGorm(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loc := cfg.Location()
	sweeper := workers.NewExpirySweeper(db, repositories.NewOfferRepository(), repositories.NewProposalRepository(), loc)

	if *once {
		res := sweeper.RunOnce(ctx)
		logger.Info("Sweep finished", "scanned", res.Scanned, "held", res.Held, "skipped", res.Skipped, "failed", res.Failed)
		return
	}

	scheduler := workers.NewScheduler(sweeper, loc)
	if err := scheduler.Start(ctx, cfg.Sweep.Schedule); err != nil {
		logger.Fatal("Invalid sweep schedule", "schedule", cfg.Sweep.Schedule, "error", err)
	}
	<-ctx.Done()
	scheduler.Stop()
}
