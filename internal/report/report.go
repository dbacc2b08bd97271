// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report assembles the digest from ranked papers and their
// summarization results and renders it to Markdown and HTML.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// Assemble pairs every ranked paper with its summarization result. Pure: no
// I/O, no mutation of the inputs. Results are matched by identifier, so the
// result slice may arrive in any order; a paper without a result gets a
// flagged placeholder instead of being dropped. The entry list always has
// one entry per paper, in the papers' (ranked) order.
func Assemble(papers []types.ScoredPaper, results []types.SummaryResult, considered int, runID string, now time.Time) types.Report {
	byID := make(map[string]types.SummaryResult, len(results))
	for _, res := range results {
		byID[res.Identifier] = res
	}

	entries := make([]types.ReportEntry, len(papers))
	for i, p := range papers {
		res, ok := byID[p.Paper.Identifier]
		if !ok {
			res = types.SummaryResult{
				Identifier: p.Paper.Identifier,
				Status:     types.SummaryFailedPermanent,
				Err:        "no summarization result",
			}
		}
		entries[i] = types.ReportEntry{Paper: p, Result: res}
	}

	return types.Report{
		RunID:       runID,
		GeneratedAt: now,
		Considered:  considered,
		Included:    len(papers),
		Entries:     entries,
	}
}

// MarkdownFilename returns the dated report file name, e.g.
// "digest-2026-08-21.md".
func MarkdownFilename(date time.Time) string {
	return fmt.Sprintf("digest-%s.md", date.Format("2006-01-02"))
}

// HTMLFilename returns the dated HTML report file name.
func HTMLFilename(date time.Time) string {
	return fmt.Sprintf("digest-%s.html", date.Format("2006-01-02"))
}

func reportTitle(cfg types.ReportConfig) string {
	if cfg.Title != "" {
		return cfg.Title
	}
	return "Daily CV Papers Digest"
}

// WriteFiles renders the report and writes it under cfg.OutputDir. The HTML
// rendering is written only when cfg.WriteHTML is set; its path is empty
// otherwise.
func WriteFiles(rep types.Report, cfg types.ReportConfig) (string, string, error) {
	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = "output/reports"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating report directory: %w", err)
	}

	md := RenderMarkdown(rep, cfg)
	mdPath := filepath.Join(outDir, MarkdownFilename(rep.GeneratedAt))
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return "", "", fmt.Errorf("writing markdown report: %w", err)
	}

	if !cfg.WriteHTML {
		return mdPath, "", nil
	}

	doc, err := RenderHTML(md, cfg)
	if err != nil {
		return mdPath, "", fmt.Errorf("rendering HTML report: %w", err)
	}
	htmlPath := filepath.Join(outDir, HTMLFilename(rep.GeneratedAt))
	if err := os.WriteFile(htmlPath, []byte(doc), 0o644); err != nil {
		return mdPath, "", fmt.Errorf("writing HTML report: %w", err)
	}
	return mdPath, htmlPath, nil
}
