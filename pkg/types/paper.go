// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-digest pipeline.
package types

import "time"

// PaperRecord is the normalized representation of one listed paper. Records
// are created once per run from the listing sources and treated as immutable
// afterwards; stages that add information (citation enrichment) return new
// slices instead of mutating their input.
type PaperRecord struct {
	// Identifier is the stable accession string from the source, e.g. the
	// arXiv ID without a version suffix ("2301.07041"). Two records with the
	// same identifier are the same paper regardless of metadata differences.
	Identifier string `json:"identifier" yaml:"identifier"`

	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract or summary.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Published is the publication or announcement timestamp.
	Published time.Time `json:"published" yaml:"published"`

	// Categories are the subject classifications (e.g. "cs.CV").
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// CitationCount is the citation signal for the paper. Nil means the
	// count is unknown, which is distinct from a known count of zero.
	CitationCount *int `json:"citation_count,omitempty" yaml:"citation_count,omitempty"`

	// SourceURL is the paper's landing page (abstract page, not the PDF).
	SourceURL string `json:"source_url" yaml:"source_url"`

	// Source identifies which listing backend produced the record
	// (e.g. "arxiv", "rss").
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// Citations returns the citation count and whether it is known.
func (p PaperRecord) Citations() (int, bool) {
	if p.CitationCount == nil {
		return 0, false
	}
	return *p.CitationCount, true
}

// WithCitations returns a copy of the record with the citation count set.
func (p PaperRecord) WithCitations(count int) PaperRecord {
	c := count
	p.CitationCount = &c
	return p
}
