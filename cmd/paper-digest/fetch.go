package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-digest/internal/dedup"
	"github.com/pdiddy/paper-digest/internal/history"
	"github.com/pdiddy/paper-digest/internal/listing"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "List new papers for the window without summarizing",
	Long: `Fetch queries the configured listing sources, removes duplicates and
papers reported by earlier runs, and prints the remaining candidates.
No AI calls are made, so this is the cheap way to inspect what report
would consider.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if v, _ := cmd.Flags().GetInt("days"); v > 0 {
			cfg.Listing.RecentDays = v
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		savePath, _ := cmd.Flags().GetString("save")
		skipHistory, _ := cmd.Flags().GetBool("skip-history")

		ctx := cmd.Context()
		window := listing.WindowEndingAt(time.Now().UTC(), cfg.Listing.RecentDays)

		out, err := listing.FetchAll(ctx, buildSources(cfg), window, cfg.Listing, os.Stderr)
		if err != nil {
			return err
		}

		seen := map[string]bool{}
		if cfg.History.Enabled && !skipHistory {
			store, err := history.NewStore(cfg.History)
			if err != nil {
				return err
			}
			defer store.Close()
			since := time.Now().UTC().AddDate(0, 0, -cfg.History.LookbackDays)
			if seen, err = store.ReportedIDs(ctx, since); err != nil {
				return err
			}
		}

		records, stats := dedup.Dedupe(out.Records, seen)
		fmt.Fprintf(os.Stderr, "%d listed, %d new (%d repeated, %d reported earlier)\n",
			len(out.Records), len(records), stats.InRun, stats.PriorRuns)

		if savePath != "" {
			saved := listing.FetchOutput{Records: records, SourceErrors: out.SourceErrors}
			if err := listing.WriteListingFile(savePath, window, cfg.Listing, saved); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "listing written to %s\n", savePath)
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		}
		for _, r := range records {
			fmt.Printf("%-14s  %s  %s\n", r.Identifier, r.Published.Format("2006-01-02"), r.Title)
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().Int("days", 0, "listing window in days (overrides config)")
	fetchCmd.Flags().Bool("json", false, "output records as JSON")
	fetchCmd.Flags().String("save", "", "write the listing to a YAML file")
	fetchCmd.Flags().Bool("skip-history", false, "do not suppress papers reported by earlier runs")

	rootCmd.AddCommand(fetchCmd)
}
