package main

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"RRGView/internal/collector"
	"RRGView/internal/session"
	"RRGView/internal/ui"
)

func runPlot(cmd *cobra.Command, _ []string) error {
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

	state, err := session.LoadState(a.cfg.Session.StateFile)
	if err != nil {
		log.Warn().Err(err).Msg("load session state, using defaults")
		state = nil
	}

	// The TUI owns the terminal; send logs to a file until it exits.
	restore := redirectLogToFile()
	showLabels, curved, err := ui.Run(res, a.cfg.Data.Timeframe, state)
	restore()
	if err != nil {
		return err
	}

	saveSession(a, showLabels, curved)
	return nil
}

func saveSession(a *app, showLabels, curved bool) {
	state, err := session.LoadState(a.cfg.Session.StateFile)
	if err != nil {
		log.Warn().Err(err).Msg("reload session state")
		return
	}
	state.Benchmark = a.benchmark
	state.Watchlist = a.watchlist
	state.ShowLabels = showLabels
	state.CurvedTails = curved
	if err := session.SaveState(a.cfg.Session.StateFile, state); err != nil {
		log.Warn().Err(err).Msg("save session state")
	}
}

// redirectLogToFile swaps the global logger to an append-only file and
// returns a function restoring the console writer.
func redirectLogToFile() func() {
	prev := log.Logger

	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		logDir = os.TempDir()
	}
	f, err := os.OpenFile(filepath.Join(logDir, appName+".log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		// no usable file; drop logs rather than corrupt the chart
		log.Logger = zerolog.Nop()
		return func() { log.Logger = prev }
	}

	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() {
		log.Logger = prev
		f.Close()
	}
}
