package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-digest/internal/history"
	"github.com/pdiddy/paper-digest/internal/listing"
	"github.com/pdiddy/paper-digest/internal/mail"
	"github.com/pdiddy/paper-digest/internal/pipeline"
	"github.com/pdiddy/paper-digest/internal/summarize"
	"github.com/pdiddy/paper-digest/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the full digest and write the report",
	Long: `Report runs the whole pipeline: it lists new papers, removes ones
already reported, ranks the rest against the configured interests,
summarizes the selection with Gemini, writes the Markdown and HTML
report files, and optionally emails them. Completed runs are recorded
in the history database so the next run skips reported papers.

With --from-listing, a listing saved by fetch --save replaces the live
sources, so a report can be rebuilt without re-querying arXiv.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if v, _ := cmd.Flags().GetInt("days"); v > 0 {
			cfg.Listing.RecentDays = v
		}
		if cmd.Flags().Changed("top") {
			cfg.Rank.TopN, _ = cmd.Flags().GetInt("top")
		}
		if cmd.Flags().Changed("min-score") {
			cfg.Rank.MinScore, _ = cmd.Flags().GetFloat64("min-score")
		}
		if send, _ := cmd.Flags().GetBool("send"); send {
			cfg.Mail.Enabled = true
		}
		skipHistory, _ := cmd.Flags().GetBool("skip-history")
		asJSON, _ := cmd.Flags().GetBool("json")

		var saved *listing.ListingFile
		if path, _ := cmd.Flags().GetString("from-listing"); path != "" {
			if saved, err = listing.ReadListingFile(path); err != nil {
				return err
			}
		}

		ctx := cmd.Context()

		var store *history.Store
		if cfg.History.Enabled && !skipHistory {
			if store, err = history.NewStore(cfg.History); err != nil {
				return err
			}
			defer store.Close()
		}

		gen, err := summarize.NewGeminiBackend(ctx, cfg.Summary.AIConfig)
		if err != nil {
			return err
		}

		rep, mdPath, err := runDigest(ctx, cfg, store, gen, saved, os.Stderr)
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		}
		fmt.Println(mdPath)
		return nil
	},
}

// runDigest executes one configured digest run and delivers the result.
// When store is non-nil the run is recorded and delivered papers are marked
// reported; papers whose summary failed retryably stay unmarked so the next
// run picks them up again.
func runDigest(ctx context.Context, cfg types.Config, store *history.Store, gen summarize.Generator, saved *listing.ListingFile, w io.Writer) (types.Report, string, error) {
	seen := map[string]bool{}
	if store != nil {
		since := time.Now().UTC().AddDate(0, 0, -cfg.History.LookbackDays)
		var err error
		if seen, err = store.ReportedIDs(ctx, since); err != nil {
			return types.Report{}, "", err
		}
	}

	deps := pipeline.Deps{
		Sources:   buildSources(cfg),
		Citations: buildCitations(cfg),
		Gen:       gen,
		Seen:      seen,
		Saved:     saved,
	}

	started := time.Now().UTC()
	rep, err := pipeline.Run(ctx, cfg, deps, w)
	if err != nil {
		return types.Report{}, "", err
	}

	var sender mail.Sender
	if cfg.Mail.Enabled {
		m, err := mail.NewMailer(cfg.Mail)
		if err != nil {
			return rep, "", err
		}
		sender = m
	}

	mdPath, _, deliverErr := pipeline.Deliver(ctx, rep, cfg, sender, w)
	if deliverErr != nil && mdPath == "" {
		return rep, "", deliverErr
	}

	if store != nil {
		run := history.Run{
			ID:         rep.RunID,
			StartedAt:  started,
			FinishedAt: time.Now().UTC(),
			Considered: rep.Considered,
			Included:   rep.Included,
			Status:     "succeeded",
		}
		if deliverErr != nil {
			run.Status = "mail-failed"
		}
		if err := store.RecordRun(ctx, run); err != nil {
			fmt.Fprintf(w, "warning: recording run: %v\n", err)
		}

		var delivered []types.ReportEntry
		for _, e := range rep.Entries {
			if e.Result.Status != types.SummaryFailedRetryable {
				delivered = append(delivered, e)
			}
		}
		if err := store.MarkReported(ctx, rep.RunID, delivered); err != nil {
			fmt.Fprintf(w, "warning: recording reported papers: %v\n", err)
		}
	}

	return rep, mdPath, deliverErr
}

func init() {
	reportCmd.Flags().Int("days", 0, "listing window in days (overrides config)")
	reportCmd.Flags().String("from-listing", "", "build the report from a saved listing file instead of fetching")
	reportCmd.Flags().Int("top", 0, "maximum papers in the report (overrides config)")
	reportCmd.Flags().Float64("min-score", 0, "minimum total score (overrides config)")
	reportCmd.Flags().Bool("send", false, "email the report after writing it")
	reportCmd.Flags().Bool("skip-history", false, "ignore and do not update the run history")
	reportCmd.Flags().Bool("json", false, "print the full report as JSON instead of the file path")

	rootCmd.AddCommand(reportCmd)
}
