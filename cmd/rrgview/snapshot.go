package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"RRGView/internal/collector"
	"RRGView/internal/model"
	"RRGView/internal/recorder"
)

func runSnapshot(cmd *cobra.Command, _ []string) error {
	a, err := buildApp(cmd)
	if err != nil {
		return err
	}

	col := collector.NewCollector(a.loader, a.params)
	res, err := col.Collect(a.benchmark, a.watchlist)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		log.Warn().Msg(w)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tRS-RATIO\tRS-MOMENTUM\tQUADRANT\tAS OF")
	for _, t := range res.Tails {
		head := t.Head()
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%s\t%s\n",
			t.Symbol, head.RSRatio, head.RSMomentum,
			model.QuadrantOf(head), head.Date.Format("2006-01-02"))
	}
	tw.Flush()

	rec := openRecorder(a)
	defer rec.Close()

	snapshots := make([]recorder.Snapshot, 0, len(res.Tails))
	for _, t := range res.Tails {
		snapshots = append(snapshots, recorder.SnapshotFromTail(res.TakenAt, a.benchmark, a.cfg.Data.Timeframe, t))
	}
	if err := rec.Record(snapshots); err != nil {
		return fmt.Errorf("record snapshots: %w", err)
	}
	log.Info().Int("rows", len(snapshots)).Msg("snapshot recorded")
	return nil
}

// openRecorder returns the SQLite recorder, falling back to a noop when the
// database cannot be opened.
func openRecorder(a *app) recorder.Recorder {
	if a.cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	r, err := recorder.NewSQLiteRecorder(a.cfg.Database.SQLitePath)
	if err != nil {
		log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	return r
}
