// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package listing fetches newly announced papers from arXiv and RSS feeds
// and returns them as unified records.
package listing

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// Source lists papers from a single provider. Each source (arXiv API, RSS
// feeds) implements this interface per the Strategy pattern.
type Source interface {
	Name() string
	List(ctx context.Context, window Window, cfg types.ListingConfig) ([]types.PaperRecord, error)
}

// Window is the announcement interval a listing run covers. Both bounds are
// inclusive.
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// WindowEndingAt returns a window of the given number of days that ends at
// now. Days below 1 are treated as 1.
func WindowEndingAt(now time.Time, days int) Window {
	if days < 1 {
		days = 1
	}
	return Window{
		From: now.Add(-time.Duration(days) * 24 * time.Hour),
		To:   now,
	}
}

// FetchOutput holds the combined listing and per-source failure messages.
type FetchOutput struct {
	Records      []types.PaperRecord
	SourceErrors []string
}

// FetchAll queries all sources concurrently and concatenates their records
// in source order. A failing source is reported as a warning on w and its
// records are dropped; FetchAll fails only when no source produced anything
// and at least one of them errored.
func FetchAll(ctx context.Context, sources []Source, window Window, cfg types.ListingConfig, w io.Writer) (FetchOutput, error) {
	if len(sources) == 0 {
		return FetchOutput{}, fmt.Errorf("no listing sources configured")
	}
	if window.To.Before(window.From) {
		return FetchOutput{}, fmt.Errorf("listing window ends before it starts")
	}

	perSource := make([][]types.PaperRecord, len(sources))
	errs := make([]error, len(sources))

	var wg sync.WaitGroup
	for i, s := range sources {
		wg.Add(1)
		go func(i int, s Source) {
			defer wg.Done()
			records, err := s.List(ctx, window, cfg)
			perSource[i] = records
			errs[i] = err
		}(i, s)
	}
	wg.Wait()

	var out FetchOutput
	for i, s := range sources {
		if errs[i] != nil {
			msg := fmt.Sprintf("%s: %v", s.Name(), errs[i])
			out.SourceErrors = append(out.SourceErrors, msg)
			fmt.Fprintf(w, "warning: source %s failed: %v\n", s.Name(), errs[i])
			continue
		}
		out.Records = append(out.Records, perSource[i]...)
	}

	if len(out.Records) == 0 && len(out.SourceErrors) > 0 {
		return out, fmt.Errorf("all listing sources failed: %s", strings.Join(out.SourceErrors, "; "))
	}
	return out, nil
}

// cleanText collapses runs of whitespace into single spaces. Atom feeds wrap
// long titles and abstracts across indented lines.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
