// Command insights runs the dashboard reports from the terminal.
//
// Usage:
//
//	cricket-insights list
//	cricket-insights run
//	cricket-insights run 1 top-batting-pairs --format csv
//	cricket-insights check --dataset ./cricket_matches.db
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/cricket-insights/internal/catalog"
	"github.com/albapepper/cricket-insights/internal/config"
	"github.com/albapepper/cricket-insights/internal/dataset"
	"github.com/albapepper/cricket-insights/internal/report"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// options are the persistent flags shared by every subcommand.
type options struct {
	datasetPath string
}

func rootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "cricket-insights",
		Short:        "Cricket insights reports CLI",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.datasetPath, "dataset", "",
		"SQLite dataset file (overrides DATASET_DRIVER and DATASET_PATH)")

	root.AddCommand(listCmd())
	root.AddCommand(runCmd(opts))
	root.AddCommand(checkCmd(opts))
	return root
}

// --------------------------------------------------------------------------
// list command
// --------------------------------------------------------------------------

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the catalog entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeCatalog(cmd.OutOrStdout(), catalog.All())
		},
	}
}

// --------------------------------------------------------------------------
// run command
// --------------------------------------------------------------------------

func runCmd(opts *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "run [id|slug...]",
		Short: "Run reports (all of them when no key is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			write, err := writerFor(format)
			if err != nil {
				return err
			}
			entries, err := selectEntries(args)
			if err != nil {
				return err
			}
			return runWith(opts, func(ctx context.Context, cfg *config.Config, ds *dataset.Dataset) error {
				start := time.Now()
				sections := report.Render(ctx, ds, entries, logger)
				if err := write(cmd.OutOrStdout(), sections); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				failed := report.Failed(sections)
				logger.Debug("Reports finished",
					"total", len(sections), "failed", failed,
					"duration", time.Since(start).Round(time.Millisecond))
				if failed > 0 {
					return fmt.Errorf("%d of %d reports failed", failed, len(sections))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text, json, csv)")
	return cmd
}

// selectEntries resolves keys to entries in the order given. No keys selects
// the whole catalog.
func selectEntries(keys []string) ([]catalog.Entry, error) {
	if len(keys) == 0 {
		return catalog.All(), nil
	}
	entries := make([]catalog.Entry, 0, len(keys))
	for _, k := range keys {
		e, err := catalog.Lookup(k)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// --------------------------------------------------------------------------
// check command
// --------------------------------------------------------------------------

func checkCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the dataset opens and every format table has the delivery columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWith(opts, func(ctx context.Context, cfg *config.Config, ds *dataset.Dataset) error {
				if err := ds.Ping(ctx); err != nil {
					return err
				}
				statuses, err := ds.CheckSchema(ctx)
				if werr := writeStatuses(cmd.OutOrStdout(), statuses); werr != nil {
					return fmt.Errorf("write output: %w", werr)
				}
				return err
			})
		},
	}
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

func runWith(opts *options, fn func(ctx context.Context, cfg *config.Config, ds *dataset.Dataset) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.datasetPath != "" {
		cfg.DatasetDriver = config.DriverSQLite
		cfg.DatasetPath = opts.datasetPath
	}

	ds, err := dataset.New(cfg)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	return fn(ctx, cfg, ds)
}
