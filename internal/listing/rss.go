// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package listing

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// htmlStripper removes every tag from feed descriptions before they are
// stored as abstracts. Safe for concurrent use once built.
var htmlStripper = bluemonday.StrictPolicy()

// RSSSource lists papers from RSS/Atom feeds (e.g. rss.arxiv.org category
// feeds) using the gofeed parser.
type RSSSource struct {
	Client *http.Client
}

// Name returns the source identifier.
func (s *RSSSource) Name() string { return "rss" }

// List parses all configured feeds and returns records announced inside the
// window. Replacement announcements are skipped; only first-time ("new") and
// cross-listed ("cross") entries are kept. A feed that fails to parse is
// tolerated as long as at least one other feed succeeds.
func (s *RSSSource) List(ctx context.Context, window Window, cfg types.ListingConfig) ([]types.PaperRecord, error) {
	if len(cfg.FeedURLs) == 0 {
		return nil, fmt.Errorf("no feed URLs configured")
	}

	parser := gofeed.NewParser()
	parser.UserAgent = cfg.UserAgent
	parser.Client = s.Client

	var records []types.PaperRecord
	var feedErrs []error
	parsed := 0

	for _, feedURL := range cfg.FeedURLs {
		feed, err := parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			feedErrs = append(feedErrs, fmt.Errorf("%s: %w", feedURL, err))
			continue
		}
		parsed++

		for _, item := range feed.Items {
			rec, ok := recordFromItem(item)
			if !ok {
				continue
			}
			if !rec.Published.IsZero() && !window.Contains(rec.Published) {
				continue
			}
			records = append(records, rec)
		}
	}

	if parsed == 0 {
		return nil, errors.Join(feedErrs...)
	}
	if cfg.MaxResults > 0 && len(records) > cfg.MaxResults {
		records = records[:cfg.MaxResults]
	}
	return records, nil
}

// recordFromItem converts a feed item to a paper record. It returns false
// for items without a usable identifier and for replacement announcements.
func recordFromItem(item *gofeed.Item) (types.PaperRecord, bool) {
	desc := html.UnescapeString(htmlStripper.Sanitize(item.Description))

	if at := announceType(desc); at != "" && at != "new" && at != "cross" {
		return types.PaperRecord{}, false
	}

	id := extractArxivID(item.Link)
	if id == "" {
		id = idFromGUID(item.GUID)
	}
	if id == "" {
		id = strings.TrimSpace(item.Link)
	}
	if id == "" {
		return types.PaperRecord{}, false
	}

	rec := types.PaperRecord{
		Identifier: id,
		Title:      cleanText(item.Title),
		Abstract:   cleanText(abstractFromDescription(desc)),
		Authors:    feedAuthors(item.Authors),
		Categories: item.Categories,
		SourceURL:  item.Link,
		Source:     "rss",
	}
	if item.PublishedParsed != nil {
		rec.Published = *item.PublishedParsed
	}
	return rec, true
}

// announceType extracts the arXiv announcement kind ("new", "cross",
// "replace", ...) from a feed description, or "" when absent.
func announceType(desc string) string {
	const marker = "Announce Type: "
	i := strings.Index(desc, marker)
	if i < 0 {
		return ""
	}
	rest := desc[i+len(marker):]
	if j := strings.IndexFunc(rest, unicode.IsSpace); j >= 0 {
		return rest[:j]
	}
	return rest
}

// abstractFromDescription returns the text after the "Abstract:" marker, or
// the whole description when the marker is absent.
func abstractFromDescription(desc string) string {
	const marker = "Abstract:"
	if i := strings.Index(desc, marker); i >= 0 {
		return strings.TrimSpace(desc[i+len(marker):])
	}
	return strings.TrimSpace(desc)
}

// idFromGUID extracts an arXiv ID from an OAI-style GUID
// (e.g. "oai:arXiv.org:2301.07041v1" → "2301.07041").
func idFromGUID(guid string) string {
	i := strings.LastIndex(guid, ":")
	if i < 0 || i == len(guid)-1 {
		return ""
	}
	id := stripVersion(guid[i+1:])
	if len(id) < 9 || id[4] != '.' {
		return ""
	}
	return id
}

// feedAuthors flattens feed persons into plain names. arXiv feeds pack all
// authors into a single comma-separated dc:creator value.
func feedAuthors(persons []*gofeed.Person) []string {
	var out []string
	for _, p := range persons {
		if p == nil {
			continue
		}
		for _, name := range strings.Split(p.Name, ",") {
			if name = strings.TrimSpace(name); name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}
