package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"RRGView/internal/collector"
	"RRGView/internal/model"
	"RRGView/internal/notifier"
	"RRGView/internal/recorder"
)

// Scheduler drives watch mode: on each cron tick it recomputes the chart,
// records a snapshot, and alerts when a symbol rotates into a new quadrant.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Recorder  recorder.Recorder
	Notifier  *notifier.TelegramNotifier
	Ctx       context.Context

	Benchmark string
	Watchlist []string
	Timeframe string
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, rec recorder.Recorder, tn *notifier.TelegramNotifier, benchmark string, watchlist []string, timeframe string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Recorder:  rec,
		Notifier:  tn,
		Ctx:       ctx,
		Benchmark: benchmark,
		Watchlist: watchlist,
		Timeframe: timeframe,
	}
}

// Register registers the watch task on the given cron spec.
func (s *Scheduler) Register(watchCron string) error {
	if _, err := s.Cron.AddFunc(watchCron, s.watchTask); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Info().Msg("scheduler stopped")
}

// RunNow executes the watch task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.watchTask()
}

func (s *Scheduler) watchTask() {
	log.Info().Str("benchmark", s.Benchmark).Int("symbols", len(s.Watchlist)).Msg("running watch task")

	res, err := s.Collector.Collect(s.Benchmark, s.Watchlist)
	if err != nil {
		log.Error().Err(err).Msg("watch collect")
		s.trySend(fmt.Sprintf("❌ RRG watch run failed: %v", err))
		return
	}

	// Previous quadrants before this run is recorded.
	prev, err := s.Recorder.LatestQuadrants(s.Benchmark, s.Timeframe)
	if err != nil {
		log.Error().Err(err).Msg("load previous quadrants")
		prev = map[string]string{}
	}

	snapshots := make([]recorder.Snapshot, 0, len(res.Tails))
	for _, t := range res.Tails {
		snapshots = append(snapshots, recorder.SnapshotFromTail(res.TakenAt, s.Benchmark, s.Timeframe, t))
	}
	if err := s.Recorder.Record(snapshots); err != nil {
		log.Error().Err(err).Msg("record snapshots")
	}

	for _, t := range res.Tails {
		head := t.Head()
		now := model.QuadrantOf(head).String()
		before, seen := prev[t.Symbol]
		if !seen || before == now {
			continue
		}
		log.Info().Str("symbol", t.Symbol).Str("from", before).Str("to", now).Msg("quadrant rotation")
		s.trySend(notifier.FormatRotationAlert(t.Symbol, before, now, head))
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/status":
		res, err := s.Collector.Collect(s.Benchmark, s.Watchlist)
		if err != nil {
			return fmt.Sprintf("status failed: %v", err)
		}
		return notifier.FormatStatusTable(res)
	case "/run":
		s.watchTask()
		return ""
	default:
		return "Available commands:\n• /status — current quadrant table\n• /run — record a snapshot now"
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
