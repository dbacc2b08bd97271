package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-digest/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent digest runs",
	Long: `History lists recent runs recorded in the digest database: when they
ran, how many papers they considered and reported, and how they ended.
With --prune-before, reported papers and runs older than the given date
are deleted instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := history.NewStore(cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := cmd.Context()

		if before, _ := cmd.Flags().GetString("prune-before"); before != "" {
			cutoff, err := time.Parse("2006-01-02", before)
			if err != nil {
				return fmt.Errorf("parsing --prune-before date: %w", err)
			}
			pruned, err := store.Prune(ctx, cutoff)
			if err != nil {
				return err
			}
			fmt.Printf("pruned %d reported papers older than %s\n", pruned, before)
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := store.RecentRuns(ctx, limit)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(runs)
		}

		if len(runs) == 0 {
			fmt.Println("no recorded runs")
			return nil
		}
		fmt.Printf("%-36s  %-16s  %10s  %8s  %s\n", "RUN", "STARTED", "CONSIDERED", "INCLUDED", "STATUS")
		for _, r := range runs {
			fmt.Printf("%-36s  %-16s  %10d  %8d  %s\n",
				r.ID, r.StartedAt.Format("2006-01-02 15:04"), r.Considered, r.Included, r.Status)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 10, "number of runs to show")
	historyCmd.Flags().Bool("json", false, "output runs as JSON")
	historyCmd.Flags().String("prune-before", "", "delete history older than this date (YYYY-MM-DD)")

	rootCmd.AddCommand(historyCmd)
}
