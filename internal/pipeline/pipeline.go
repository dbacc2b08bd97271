// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline chains the digest stages into a single run and handles
// delivery of the assembled report.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/paper-digest/internal/citations"
	"github.com/pdiddy/paper-digest/internal/dedup"
	"github.com/pdiddy/paper-digest/internal/listing"
	"github.com/pdiddy/paper-digest/internal/mail"
	"github.com/pdiddy/paper-digest/internal/report"
	"github.com/pdiddy/paper-digest/internal/score"
	"github.com/pdiddy/paper-digest/internal/summarize"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// Deps holds the injectable collaborators of one run. Tests swap in fakes;
// cmd wiring builds the real sources and backend from config.
type Deps struct {
	Sources   []listing.Source
	Citations citations.Source
	Gen       summarize.Generator

	// Seen suppresses papers already reported by earlier runs. Nil means
	// no cross-run memory.
	Seen map[string]bool

	// Saved, when set, replaces live listing with the records of a saved
	// listing file. Sources are not queried.
	Saved *listing.ListingFile
}

// Run executes one digest run: listing, dedup, citation enrichment,
// scoring, ranking, summarization, overview, report assembly. Stages after
// listing degrade instead of failing, so a run aborts only when no listing
// source produced anything. cfg.RunTimeout, when set, bounds the whole run;
// papers not summarized in time come back failed-retryable in the report.
func Run(ctx context.Context, cfg types.Config, deps Deps, w io.Writer) (types.Report, error) {
	if w == nil {
		w = io.Discard
	}
	started := time.Now().UTC()
	runID := uuid.NewString()

	if cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.RunTimeout)
		defer cancel()
	}

	var out listing.FetchOutput
	if deps.Saved != nil {
		window := deps.Saved.Window.ToWindow()
		fmt.Fprintf(w, "run %s: reusing saved listing %s to %s\n",
			runID, window.From.Format("2006-01-02 15:04"), window.To.Format("2006-01-02 15:04"))
		out.Records = deps.Saved.Records
	} else {
		window := listing.WindowEndingAt(started, cfg.Listing.RecentDays)
		fmt.Fprintf(w, "run %s: listing %s to %s\n",
			runID, window.From.Format("2006-01-02 15:04"), window.To.Format("2006-01-02 15:04"))
		fetched, err := listing.FetchAll(ctx, deps.Sources, window, cfg.Listing, w)
		if err != nil {
			return types.Report{}, fmt.Errorf("listing papers: %w", err)
		}
		out = fetched
	}

	records, stats := dedup.Dedupe(out.Records, deps.Seen)
	fmt.Fprintf(w, "listed %d papers, %d new (%d repeated in run, %d reported earlier)\n",
		len(out.Records), len(records), stats.InRun, stats.PriorRuns)

	if cfg.Citations.Enabled && deps.Citations != nil {
		records = citations.LookupAll(ctx, deps.Citations, records, cfg.Citations, w)
	}

	kw := cfg.Keywords
	if cfg.KeywordsFile != "" {
		loaded, err := score.LoadKeywords(cfg.KeywordsFile)
		if err != nil {
			return types.Report{}, fmt.Errorf("loading keywords: %w", err)
		}
		kw = loaded
	}

	scored := score.ScoreAll(records, kw)
	for i := range scored {
		count, known := scored[i].Paper.Citations()
		scored[i].CitationScore = citations.Score(count, known, cfg.Citations)
	}
	selected := score.Rank(scored, cfg.Rank)
	fmt.Fprintf(w, "selected %d of %d papers\n", len(selected), len(records))

	results := summarize.SummarizeAll(ctx, deps.Gen, selected, cfg.Summary, w)
	overview := summarize.Overview(ctx, deps.Gen, selected, cfg.Summary, w)

	rep := report.Assemble(selected, results, len(records), runID, started)
	rep.Overview = overview
	return rep, nil
}

// Deliver writes the report files and, when mailing is enabled, sends the
// digest with the written artifacts as the message body. The paths are
// returned even when the send fails so callers can still record the run.
func Deliver(ctx context.Context, rep types.Report, cfg types.Config, sender mail.Sender, w io.Writer) (string, string, error) {
	if w == nil {
		w = io.Discard
	}

	mdPath, htmlPath, err := report.WriteFiles(rep, cfg.Report)
	if err != nil {
		return "", "", err
	}
	fmt.Fprintf(w, "report written to %s\n", mdPath)
	if htmlPath != "" {
		fmt.Fprintf(w, "html written to %s\n", htmlPath)
	}

	if !cfg.Mail.Enabled || sender == nil {
		return mdPath, htmlPath, nil
	}

	// The message carries exactly what was written to disk.
	text, err := os.ReadFile(mdPath)
	if err != nil {
		return mdPath, htmlPath, fmt.Errorf("reading report for mail: %w", err)
	}
	var htmlBody string
	if htmlPath != "" {
		b, err := os.ReadFile(htmlPath)
		if err != nil {
			return mdPath, htmlPath, fmt.Errorf("reading HTML report for mail: %w", err)
		}
		htmlBody = string(b)
	}

	msg := mail.DigestMessage(rep, cfg.Mail, string(text), htmlBody)
	if err := sender.Send(ctx, msg); err != nil {
		return mdPath, htmlPath, fmt.Errorf("emailing report: %w", err)
	}
	fmt.Fprintf(w, "emailed report to %s\n", strings.Join(cfg.Mail.To, ", "))
	return mdPath, htmlPath, nil
}
