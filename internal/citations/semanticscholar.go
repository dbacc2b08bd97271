// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/paper-digest/internal/httputil"
	"github.com/pdiddy/paper-digest/internal/retry"
)

// semanticAPIBase is the Semantic Scholar paper endpoint. Declared as a var
// so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper"

// SemanticScholarSource resolves citation counts through the Semantic
// Scholar Graph API, addressing papers by arXiv ID.
type SemanticScholarSource struct {
	Client    *http.Client
	UserAgent string
	APIKey    string
	Retry     retry.Policy
}

// Name returns the source identifier.
func (s *SemanticScholarSource) Name() string { return "semantic_scholar" }

// Count fetches the citation count for the given arXiv ID. A 404 means the
// paper is not indexed yet and reports an unknown count without error.
func (s *SemanticScholarSource) Count(ctx context.Context, paperID string) (int, bool, error) {
	reqURL := fmt.Sprintf("%s/arXiv:%s?fields=citationCount", semanticAPIBase, paperID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.UserAgent)
	if s.APIKey != "" {
		req.Header.Set("x-api-key", s.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, s.Retry)
	if err != nil {
		return 0, false, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return 0, false, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var body semanticPaper
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, false, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}
	if body.CitationCount == nil {
		return 0, false, nil
	}
	return *body.CitationCount, true, nil
}

// Semantic Scholar API JSON structure.
type semanticPaper struct {
	PaperID       string `json:"paperId"`
	CitationCount *int   `json:"citationCount"`
}
