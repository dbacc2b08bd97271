// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package listing

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/paper-digest/internal/httputil"
	"github.com/pdiddy/paper-digest/internal/retry"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// arxivAPIBase is the arXiv query endpoint. Declared as a var so tests can
// substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivSource lists recent submissions from the arXiv API.
type ArxivSource struct {
	Client *http.Client
	Retry  retry.Policy
}

// Name returns the source identifier.
func (s *ArxivSource) Name() string { return "arxiv" }

// List queries the arXiv API for the newest submissions in the configured
// categories and returns those announced inside the window.
func (s *ArxivSource) List(ctx context.Context, window Window, cfg types.ListingConfig) ([]types.PaperRecord, error) {
	q := buildCategoryQuery(cfg.Categories)
	if q == "" {
		return nil, fmt.Errorf("no arXiv categories configured")
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 100
	}

	// arXiv expects literal '+' separators in search_query, so the URL is
	// assembled by hand rather than with url.Values.
	url := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=submittedDate&sortOrder=descending",
		arxivAPIBase, q, maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, s.Retry)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var records []types.PaperRecord
	for _, entry := range feed.Entries {
		arxivID := extractArxivID(entry.ID)
		if arxivID == "" {
			continue
		}

		rec := types.PaperRecord{
			Identifier: arxivID,
			Title:      cleanText(entry.Title),
			Abstract:   cleanText(entry.Summary),
			SourceURL:  "https://arxiv.org/abs/" + arxivID,
			Source:     "arxiv",
		}

		for _, a := range entry.Authors {
			rec.Authors = append(rec.Authors, strings.TrimSpace(a.Name))
		}
		for _, c := range entry.Categories {
			rec.Categories = append(rec.Categories, c.Term)
		}

		if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
			rec.Published = t
		}

		// Entries without a parseable date are kept rather than guessed at.
		if !rec.Published.IsZero() && !window.Contains(rec.Published) {
			continue
		}

		records = append(records, rec)
	}
	return records, nil
}

// buildCategoryQuery constructs the search_query parameter from category
// names (e.g. "cat:cs.CV+OR+cat:cs.LG").
func buildCategoryQuery(categories []string) string {
	var parts []string
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		parts = append(parts, "cat:"+c)
	}
	return strings.Join(parts, "+OR+")
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID         string          `xml:"id"`
	Title      string          `xml:"title"`
	Summary    string          `xml:"summary"`
	Published  string          `xml:"published"`
	Authors    []arxivAuthor   `xml:"author"`
	Categories []arxivCategory `xml:"category"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}

// extractArxivID pulls the arXiv ID from an abstract-page URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	return stripVersion(idURL[idx+len(prefix):])
}

// stripVersion removes a trailing version suffix (e.g. "v1", "v2") from an
// arXiv ID so the same paper keys identically across revisions.
func stripVersion(id string) string {
	vIdx := strings.LastIndex(id, "v")
	if vIdx <= 0 {
		return id
	}
	if _, err := strconv.Atoi(id[vIdx+1:]); err != nil {
		return id
	}
	return id[:vIdx]
}
