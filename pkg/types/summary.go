// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SummaryStatus is the terminal state of one paper's summarization.
type SummaryStatus string

const (
	// SummarySucceeded means both the summary and the critical review were
	// generated.
	SummarySucceeded SummaryStatus = "succeeded"

	// SummaryFailedRetryable means the run deadline or a cancellation cut
	// the paper off before its retry budget was exhausted. A later run
	// could still succeed.
	SummaryFailedRetryable SummaryStatus = "failed_retryable"

	// SummaryFailedPermanent means a non-retryable error occurred or the
	// retry budget was exhausted.
	SummaryFailedPermanent SummaryStatus = "failed_permanent"
)

// SummaryResult is the outcome of summarizing one paper. The orchestrator
// emits exactly one per selected paper, even on failure, so report assembly
// never needs to special-case missing entries. Once the status is set the
// result is frozen.
type SummaryResult struct {
	// Identifier matches the paper's PaperRecord.Identifier.
	Identifier string `json:"identifier" yaml:"identifier"`

	// Summary is the generated summary text. Empty on failure.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Review is the generated critical-review text. Empty on failure.
	Review string `json:"review,omitempty" yaml:"review,omitempty"`

	// Status records how summarization ended.
	Status SummaryStatus `json:"status" yaml:"status"`

	// Attempts is the total number of generation attempts across the
	// summary and review requests.
	Attempts int `json:"attempts" yaml:"attempts"`

	// Err holds the terminal error message on failure, empty on success.
	Err string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Succeeded reports whether both texts were generated.
func (r SummaryResult) Succeeded() bool {
	return r.Status == SummarySucceeded
}
