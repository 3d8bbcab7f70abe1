package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"neural-uplink/internal/analytics"
	"neural-uplink/internal/config"
	"neural-uplink/internal/scheduler"
	"neural-uplink/internal/storage"
)

func newReportCmd() *cobra.Command {
	var now bool
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the daily journal summary on a schedule until interrupted",
		Long: `report stays in the foreground and prints the summary for the current day
every time REPORT_SCHEDULE fires (a cron spec, UTC, default "0 21 * * *").`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.New()
			if err != nil {
				return err
			}
			logger, closer, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if closer != nil {
				defer closer.Close()
			}
			if cfg.JournalFilePath == "" {
				return fmt.Errorf("no journal configured (set JOURNAL_FILE_PATH)")
			}
			rec, err := storage.Open(cfg.JournalDriver, cfg.JournalFilePath)
			if err != nil {
				return err
			}
			if c, ok := rec.(io.Closer); ok {
				defer c.Close()
			}

			out := cmd.OutOrStdout()
			report := func(context.Context) error {
				return writeDailyReport(out, rec, time.Now().UTC())
			}
			if now {
				if err := report(cmd.Context()); err != nil {
					return err
				}
			}

			s := scheduler.New(cfg.ReportSchedule, time.UTC, logger.WithField("component", "scheduler"))
			s.SetReportFunction(report)
			if err := s.Start(); err != nil {
				return fmt.Errorf("failed to start scheduler: %w", err)
			}
			defer s.Stop()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().BoolVar(&now, "now", false, "Also print a report immediately")
	return cmd
}

func writeDailyReport(w io.Writer, rec storage.Recorder, day time.Time) error {
	events, err := rec.LoadInteractions()
	if err != nil {
		return fmt.Errorf("failed to load journal: %w", err)
	}
	_, err = fmt.Fprint(w, analytics.AnalyzeDailyLogs(events, day).GenerateReportSummary())
	return err
}
