package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"neural-uplink/internal/analytics"
	"neural-uplink/internal/config"
	"neural-uplink/internal/storage"
)

func newStatsCmd() *cobra.Command {
	var (
		date    string
		asJSON  bool
		journal string
		driver  string
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the turn journal for one day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if journal == "" {
				cfg, err := config.New()
				if err != nil {
					return err
				}
				journal = cfg.JournalFilePath
				if driver == "" {
					driver = cfg.JournalDriver
				}
			}
			if journal == "" {
				return fmt.Errorf("no journal configured (set JOURNAL_FILE_PATH or --journal)")
			}

			day := time.Now()
			if date != "" {
				d, err := time.ParseInLocation("2006-01-02", date, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --date %q: %w", date, err)
				}
				day = d
			}

			rec, err := storage.OpenExisting(driver, journal)
			if err != nil {
				return err
			}
			if c, ok := rec.(io.Closer); ok {
				defer c.Close()
			}
			events, err := rec.LoadInteractions()
			if err != nil {
				return fmt.Errorf("failed to load journal: %w", err)
			}

			stats := analytics.AnalyzeDailyLogs(events, day)
			out := cmd.OutOrStdout()
			if asJSON {
				s, err := stats.ToJSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s)
				return nil
			}
			fmt.Fprint(out, stats.GenerateReportSummary())
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to summarize, YYYY-MM-DD (defaults to today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the stats as JSON")
	cmd.Flags().StringVar(&journal, "journal", "", "Journal file (defaults to JOURNAL_FILE_PATH)")
	cmd.Flags().StringVar(&driver, "driver", "", "Journal driver, jsonl or sqlite (defaults to the file extension)")
	return cmd
}
