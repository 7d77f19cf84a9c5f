package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"RRGView/internal/recorder"
)

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadAppConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Database.SQLitePath == "" {
		return fmt.Errorf("history requires database.sqlite_path in config")
	}

	rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		return fmt.Errorf("open recorder: %w", err)
	}
	defer rec.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	rows, err := rec.History(args[0], limit)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Printf("no recorded snapshots for %s\n", args[0])
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RECORDED\tBENCHMARK\tTF\tRS-RATIO\tRS-MOMENTUM\tQUADRANT")
	for _, s := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%.2f\t%s\n",
			s.TakenAt.Format("2006-01-02 15:04"), s.Benchmark, s.Timeframe,
			s.RSRatio, s.RSMomentum, s.Quadrant)
	}
	return tw.Flush()
}
