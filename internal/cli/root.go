// Package cli provides the hospitalrank command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"hospitalrank/internal/config"
	"hospitalrank/outcomes"
)

// Version is set at build time.
var Version = "0.1.0"

var (
	cfgFile string
	cfg     *config.Config
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hospitalrank",
		Short: "Rank hospitals by 30-day mortality outcomes",
		Long: `hospitalrank reads the CMS outcome-of-care measures file and ranks
hospitals within each state by their 30-day mortality rate for heart attack,
heart failure, or pneumonia.

Recognized outcomes (case-sensitive): "heart attack", "heart failure",
"pneumonia". Ranks are "best", "worst", or a positive integer counted from
the best rate. Missing results print "NA".`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			var err error
			cfg, err = config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			setupLogging(cfg.Verbose)
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default hospitalrank.yaml)")
	pf.String("file", "", "path to the outcome-of-care measures CSV")
	pf.String("na-token", "", "missing-value sentinel in the source file")
	pf.String("output", "", "output format for rank-all: table or csv")
	pf.BoolP("verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newBestCommand(),
		newRankCommand(),
		newRankAllCommand(),
		newExportCommand(),
	)

	return rootCmd
}

// Execute runs the root command and returns a process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// loadTable reads the configured CSV and builds the ranked outcome table.
func loadTable() (*outcomes.Table, error) {
	start := time.Now()

	reader, err := outcomes.NewCSVReader(cfg.Data.File, cfg.ReaderOptions())
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", cfg.Data.File, err)
	}

	table := outcomes.BuildTable(rows)
	slog.Debug("outcome table built",
		"file", cfg.Data.File,
		"hospitals", len(rows),
		"records", table.Len(),
		"elapsed", time.Since(start))
	return table, nil
}
