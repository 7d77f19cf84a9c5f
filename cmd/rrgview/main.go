package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"RRGView/internal/config"
	"RRGView/internal/loader"
	"RRGView/internal/rrg"
)

const (
	appName = "rrgview"
	version = "v1.2.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Plot Relative Rotation Graphs from price data",
		Version: version,
		Long: `rrgview renders Relative Rotation Graph (RRG) charts in the terminal.

It computes relative strength and momentum of a watchlist against a
benchmark index and plots each symbol's trailing path on a quadrant chart.
Running rrgview with no subcommand opens the interactive chart.`,
		RunE:         runPlot,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringP("config", "c", "", "Custom config file")
	pf.StringP("benchmark", "b", "", "Benchmark index symbol")
	pf.StringSlice("sym", nil, "Stock symbols (comma separated, or repeat the flag)")
	pf.StringP("file", "f", "", "File containing list of stocks, one per line")
	pf.String("tf", "", "Timeframe: daily, weekly, monthly, quarterly")
	pf.IntP("tail", "t", 0, "Length of tail")
	pf.StringP("date", "d", "", "ISO format end date YYYY-MM-DD")
	pf.Int("window", 0, "Smoothing window for the RRG normalization")
	pf.Int("lag", 0, "Momentum rate-of-change lag")
	pf.Float64("scale", 0, "Normalization scale constant")
	pf.Int("period", 0, "Bars of history loaded per symbol")
	rootCmd.MarkFlagsMutuallyExclusive("sym", "file")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "Open the interactive RRG chart (default)",
		RunE:  runPlot,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Compute coordinates once, print them, and record to the database",
		RunE:  runSnapshot,
	}

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Recompute on a cron schedule, record snapshots, alert on rotation",
		Long:  "Runs until interrupted. Sends a Telegram alert whenever a symbol rotates into a new quadrant and answers /status with the current table.",
		RunE:  runWatch,
	}

	historyCmd := &cobra.Command{
		Use:   "history <symbol>",
		Short: "Print recorded snapshots for a symbol, most recent first",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistory,
	}
	historyCmd.Flags().Int("limit", 20, "Maximum rows to print")

	rootCmd.AddCommand(plotCmd, snapshotCmd, watchCmd, historyCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// app bundles everything a command needs after config and flags are merged.
type app struct {
	cfg       *config.Config
	loader    loader.Loader
	params    rrg.Params
	benchmark string
	watchlist []string
}

// loadAppConfig loads the YAML config and applies flag overrides.
func loadAppConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			cfgPath = v
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	applyFlagOverrides(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// buildApp loads configuration, applies flag overrides, and constructs the
// data loader and watchlist.
func buildApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadAppConfig(cmd)
	if err != nil {
		return nil, err
	}

	endDate, err := parseEndDate(cmd)
	if err != nil {
		return nil, err
	}

	var l loader.Loader
	switch cfg.Data.Source {
	case "yahoo":
		l, err = loader.NewYahooLoader(cfg.Data.Timeframe, endDate, cfg.Data.Period, cfg.Proxy)
	default:
		l, err = loader.NewCSVLoader(cfg.Data.Path, cfg.Data.Timeframe, endDate,
			cfg.Data.Period, cfg.Data.DateColumn, cfg.Data.DateFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s loader: %w", cfg.Data.Source, err)
	}
	log.Info().Str("source", l.Name()).Str("timeframe", cfg.Data.Timeframe).Msg("data source ready")

	watchlist, err := resolveWatchlist(cmd, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Chart.Benchmark == "" {
		return nil, fmt.Errorf("no benchmark: set chart.benchmark in config or pass --benchmark")
	}

	return &app{
		cfg:    cfg,
		loader: l,
		params: rrg.Params{
			Window:      cfg.Chart.Window,
			MomentumLag: cfg.Chart.MomentumLag,
			Scale:       cfg.Chart.Scale,
			TailCount:   cfg.Chart.Tail,
		},
		benchmark: cfg.Chart.Benchmark,
		watchlist: watchlist,
	}, nil
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetString("benchmark"); v != "" {
		cfg.Chart.Benchmark = v
	}
	if v, _ := cmd.Flags().GetString("tf"); v != "" {
		cfg.Data.Timeframe = v
	}
	if v, _ := cmd.Flags().GetInt("tail"); v > 0 {
		cfg.Chart.Tail = v
	}
	if v, _ := cmd.Flags().GetInt("window"); v > 0 {
		cfg.Chart.Window = v
	}
	if v, _ := cmd.Flags().GetInt("lag"); v > 0 {
		cfg.Chart.MomentumLag = v
	}
	if v, _ := cmd.Flags().GetFloat64("scale"); v > 0 {
		cfg.Chart.Scale = v
	}
	if v, _ := cmd.Flags().GetInt("period"); v > 0 {
		cfg.Data.Period = v
	}
	if v, _ := cmd.Flags().GetString("file"); v != "" {
		cfg.Chart.WatchlistFile = v
	}
}

func parseEndDate(cmd *cobra.Command) (time.Time, error) {
	v, _ := cmd.Flags().GetString("date")
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q, want YYYY-MM-DD: %w", v, err)
	}
	return t, nil
}

// resolveWatchlist picks symbols from --sym, then --file, then the
// configured watchlist file.
func resolveWatchlist(cmd *cobra.Command, cfg *config.Config) ([]string, error) {
	if syms, _ := cmd.Flags().GetStringSlice("sym"); len(syms) > 0 {
		return syms, nil
	}
	if cfg.Chart.WatchlistFile == "" {
		return nil, fmt.Errorf("no watchlist: pass --sym, --file, or set chart.watchlist_file in config")
	}
	return readWatchlistFile(cfg.Chart.WatchlistFile)
}

// readWatchlistFile reads one symbol per line, ignoring blanks and # comments.
func readWatchlistFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read watchlist file: %w", err)
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("watchlist file %s has no symbols", path)
	}
	return out, nil
}
