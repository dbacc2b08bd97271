// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ReportEntry pairs a ranked paper with its summarization outcome.
type ReportEntry struct {
	Paper  ScoredPaper   `json:"paper" yaml:"paper"`
	Result SummaryResult `json:"result" yaml:"result"`
}

// Report is the assembled digest for one run. Entries preserve rank order;
// papers whose summarization failed are included and flagged rather than
// dropped, so the report accounts for every selected paper.
type Report struct {
	// RunID identifies the pipeline run that produced the report.
	RunID string `json:"run_id" yaml:"run_id"`

	// GeneratedAt is the report assembly timestamp.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// Considered is the number of unique papers that entered scoring.
	Considered int `json:"considered" yaml:"considered"`

	// Included is the number of papers that survived threshold and cap.
	Included int `json:"included" yaml:"included"`

	// Overview is the digest-level executive summary. May be empty when
	// overview generation failed; an empty overview never fails a run.
	Overview string `json:"overview,omitempty" yaml:"overview,omitempty"`

	// Entries are the (paper, result) pairs in rank order.
	Entries []ReportEntry `json:"entries" yaml:"entries"`
}

// FailedCount returns the number of entries without a successful summary.
func (r Report) FailedCount() int {
	n := 0
	for _, e := range r.Entries {
		if !e.Result.Succeeded() {
			n++
		}
	}
	return n
}
