package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"RRGView/internal/collector"
	"RRGView/internal/notifier"
	"RRGView/internal/scheduler"
)

func runWatch(cmd *cobra.Command, _ []string) error {
	a, err := buildApp(cmd)
	if err != nil {
		return err
	}
	if err := a.cfg.ValidateWatch(); err != nil {
		return err
	}

	col := collector.NewCollector(a.loader, a.params)
	rec := openRecorder(a)
	defer rec.Close()

	tn := notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, col, rec, tn, a.benchmark, a.watchlist, a.cfg.Data.Timeframe)
	if err := sched.Register(a.cfg.Schedule.WatchCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Info().Str("cron", a.cfg.Schedule.WatchCron).Msg("watch mode running, press Ctrl+C to stop")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, recording a snapshot now")
		go sched.RunNow()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	cancel()
	return nil
}
