// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize generates per-paper summaries and critical reviews for
// the digest through an AI backend.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/paper-digest/internal/retry"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// syncWriter serializes progress lines from concurrent workers onto one
// writer. Each Fprintf lands as a single Write, so lines stay whole.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// Generator abstracts the text-generation API so tests can supply a mock.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// SummarizeAll generates a summary and a critical review for every paper,
// with at most cfg.Concurrency papers in flight. Each paper is isolated:
// its failures are recorded in its own result and never abort the others.
// The returned slice always has one entry per input paper, in input order.
//
// Papers reached after the context is done are marked retryable instead of
// being dropped, so a run that hits its deadline still reports everything
// it finished.
func SummarizeAll(ctx context.Context, gen Generator, papers []types.ScoredPaper, cfg types.SummaryConfig, w io.Writer) []types.SummaryResult {
	results := make([]types.SummaryResult, len(papers))
	if len(papers) == 0 {
		return results
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 3
	}
	policy := retry.FromConfig(cfg.Retry)
	out := &syncWriter{w: w}

	g := new(errgroup.Group)
	g.SetLimit(concurrency)

	for i := range papers {
		g.Go(func() error {
			// Results land in the worker's own slot; input order is the
			// ranked order and must survive concurrent completion.
			results[i] = summarizePaper(ctx, gen, papers[i].Paper, policy, cfg, out)
			return nil
		})
	}
	g.Wait()

	return results
}

// Overview generates the digest-level opening paragraph from the selected
// papers. Failures degrade to an empty overview with a warning; the digest
// itself is never blocked on it.
func Overview(ctx context.Context, gen Generator, papers []types.ScoredPaper, cfg types.SummaryConfig, w io.Writer) string {
	if len(papers) == 0 || gen == nil {
		return ""
	}

	prompt, err := renderOverviewPrompt(papers, cfg.Language)
	if err != nil {
		fmt.Fprintf(w, "warning: overview prompt failed: %v\n", err)
		return ""
	}

	text, _, err := generateWithRetry(ctx, gen, prompt, retry.FromConfig(cfg.Retry))
	if err != nil {
		fmt.Fprintf(w, "warning: overview generation failed: %v\n", err)
		return ""
	}
	return text
}

// summarizePaper runs the two generation requests for one paper and folds
// their outcome into a single result.
func summarizePaper(ctx context.Context, gen Generator, rec types.PaperRecord, policy retry.Policy, cfg types.SummaryConfig, w io.Writer) types.SummaryResult {
	res := types.SummaryResult{Identifier: rec.Identifier}

	if gen == nil {
		res.Status = types.SummaryFailedPermanent
		res.Err = "no generator configured"
		return res
	}
	if ctx.Err() != nil {
		res.Status = types.SummaryFailedRetryable
		res.Err = ctx.Err().Error()
		return res
	}

	fmt.Fprintf(w, "summarizing %s\n", rec.Identifier)

	summaryPrompt, err := renderSummaryPrompt(rec, cfg.Language)
	if err != nil {
		res.Status = types.SummaryFailedPermanent
		res.Err = err.Error()
		return res
	}
	reviewPrompt, err := renderReviewPrompt(rec, cfg.Language)
	if err != nil {
		res.Status = types.SummaryFailedPermanent
		res.Err = err.Error()
		return res
	}

	summary, attempts, err := generateWithRetry(ctx, gen, summaryPrompt, policy)
	res.Attempts += attempts
	if err != nil {
		res.Status = failureStatus(ctx, err)
		res.Err = err.Error()
		fmt.Fprintf(w, "failed  %s: %v\n", rec.Identifier, err)
		return res
	}
	res.Summary = summary

	review, attempts, err := generateWithRetry(ctx, gen, reviewPrompt, policy)
	res.Attempts += attempts
	if err != nil {
		res.Status = failureStatus(ctx, err)
		res.Err = err.Error()
		fmt.Fprintf(w, "failed  %s: %v\n", rec.Identifier, err)
		return res
	}
	res.Review = review

	res.Status = types.SummarySucceeded
	fmt.Fprintf(w, "summarized %s (%d attempts)\n", rec.Identifier, res.Attempts)
	return res
}

// generateWithRetry runs one generation request under the retry policy and
// reports the attempts used.
func generateWithRetry(ctx context.Context, gen Generator, prompt string, p retry.Policy) (string, int, error) {
	var text string
	attempts, err := retry.Do(ctx, p, func(ctx context.Context) error {
		out, err := gen.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		text = out
		return nil
	})
	if err != nil {
		return "", attempts, err
	}
	return text, attempts, nil
}

// failureStatus distinguishes a paper cut off by the run deadline from one
// that genuinely exhausted its options.
func failureStatus(ctx context.Context, err error) types.SummaryStatus {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return types.SummaryFailedRetryable
	}
	return types.SummaryFailedPermanent
}
