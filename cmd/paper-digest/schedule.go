package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/paper-digest/internal/history"
	"github.com/pdiddy/paper-digest/internal/summarize"
	"github.com/pdiddy/paper-digest/pkg/types"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the digest on a cron schedule",
	Long: `Schedule starts a long-running daemon that executes the report pipeline
on the configured cron expression (default "0 7 * * *"). Run lifecycle
events are logged as structured JSON; SIGINT or SIGTERM stops the
scheduler after any in-flight run finishes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		defer logger.Sync()

		gen, err := summarize.NewGeminiBackend(cmd.Context(), cfg.Summary.AIConfig)
		if err != nil {
			return err
		}

		var store *history.Store
		if cfg.History.Enabled {
			if store, err = history.NewStore(cfg.History); err != nil {
				return err
			}
			defer store.Close()
		}

		c := cron.New()
		if _, err := c.AddFunc(cfg.Schedule.Cron, func() {
			runScheduled(cfg, store, gen, logger)
		}); err != nil {
			return fmt.Errorf("parsing cron expression %q: %w", cfg.Schedule.Cron, err)
		}

		c.Start()
		logger.Info("scheduler started", zap.String("cron", cfg.Schedule.Cron))

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		received := <-sig
		logger.Info("shutting down", zap.String("signal", received.String()))

		// Stop returns a context that is done once in-flight jobs finish.
		<-c.Stop().Done()
		return nil
	},
}

// runScheduled executes one digest run inside the daemon, logging the
// outcome instead of printing per-stage progress.
func runScheduled(cfg types.Config, store *history.Store, gen summarize.Generator, logger *zap.Logger) {
	start := time.Now()
	rep, mdPath, err := runDigest(context.Background(), cfg, store, gen, nil, io.Discard)
	if err != nil {
		if mdPath != "" {
			logger.Warn("run delivered with errors",
				zap.String("run_id", rep.RunID),
				zap.String("report", mdPath),
				zap.Error(err))
			return
		}
		logger.Error("run failed",
			zap.Error(err),
			zap.Duration("elapsed", time.Since(start)))
		return
	}

	logger.Info("run finished",
		zap.String("run_id", rep.RunID),
		zap.Int("considered", rep.Considered),
		zap.Int("included", rep.Included),
		zap.Int("failed", rep.FailedCount()),
		zap.String("report", mdPath),
		zap.Duration("elapsed", time.Since(start)))
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}
