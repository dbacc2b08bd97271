// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"strings"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// RenderMarkdown renders the digest as a Markdown document: dated title,
// overview, run stats, table of contents, then one section per paper.
func RenderMarkdown(rep types.Report, cfg types.ReportConfig) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s - %s\n\n", reportTitle(cfg), rep.GeneratedAt.Format("2006-01-02"))

	if rep.Overview != "" {
		b.WriteString("## Overview\n\n")
		b.WriteString(rep.Overview)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "Considered %d papers, selected %d", rep.Considered, rep.Included)
	if failed := rep.FailedCount(); failed > 0 {
		fmt.Fprintf(&b, " (%d without a summary)", failed)
	}
	b.WriteString(".\n\n")

	if len(rep.Entries) == 0 {
		b.WriteString("No papers matched the configured interests today.\n")
		return b.String()
	}

	b.WriteString("## Table of Contents\n\n")
	for i, e := range rep.Entries {
		fmt.Fprintf(&b, "%d. [%s](#%s)\n", i+1, e.Paper.Paper.Title, anchorSlug(e.Paper.Paper.Identifier))
	}
	b.WriteString("\n---\n\n")

	for _, e := range rep.Entries {
		renderEntry(&b, e)
	}
	return b.String()
}

// renderEntry writes one paper section. The leading raw anchor is the TOC
// link target; heading auto-IDs are not portable across renderers.
func renderEntry(b *strings.Builder, e types.ReportEntry) {
	rec := e.Paper.Paper

	fmt.Fprintf(b, "<a id=%q></a>\n", anchorSlug(rec.Identifier))
	if rec.SourceURL != "" {
		fmt.Fprintf(b, "## [%s](%s)\n\n", rec.Title, rec.SourceURL)
	} else {
		fmt.Fprintf(b, "## %s\n\n", rec.Title)
	}

	if len(rec.Authors) > 0 {
		fmt.Fprintf(b, "**Authors:** %s\n\n", strings.Join(rec.Authors, ", "))
	}
	if len(rec.Categories) > 0 {
		fmt.Fprintf(b, "**Categories:** %s\n\n", strings.Join(rec.Categories, ", "))
	}
	if !rec.Published.IsZero() {
		fmt.Fprintf(b, "**Published:** %s\n\n", rec.Published.Format("2006-01-02"))
	}
	if count, known := rec.Citations(); known {
		fmt.Fprintf(b, "**Citations:** %d\n\n", count)
	}

	fmt.Fprintf(b, "**Score:** %.2f", e.Paper.TotalScore)
	if len(e.Paper.MatchedKeywords) > 0 {
		fmt.Fprintf(b, " (keywords: %s)", strings.Join(e.Paper.MatchedKeywords, ", "))
	}
	b.WriteString("\n\n")

	if e.Result.Succeeded() {
		fmt.Fprintf(b, "**Summary:**\n\n%s\n\n", e.Result.Summary)
		fmt.Fprintf(b, "**Review:**\n\n%s\n\n", e.Result.Review)
	} else {
		b.WriteString("*Summary unavailable for this paper")
		if e.Result.Err != "" {
			fmt.Fprintf(b, " (%s)", e.Result.Err)
		}
		b.WriteString(".*\n\n")
	}

	b.WriteString("---\n\n")
}

// anchorSlug builds a TOC anchor: lowercased, with runs of non-alphanumeric
// characters collapsed into single hyphens.
func anchorSlug(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
		default:
			pending = true
		}
	}
	return b.String()
}
