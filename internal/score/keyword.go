// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score matches papers against configured research interests and
// ranks them for the report.
package score

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// MatchKeywords returns the keyword score for a record together with the
// keywords that matched, in configured order. A keyword matches when it
// appears case-insensitively as a substring of the title or abstract; each
// matching keyword contributes its weight exactly once. The function is
// pure: equal inputs always produce equal outputs.
func MatchKeywords(rec types.PaperRecord, cfg types.KeywordConfig) (float64, []string) {
	haystack := strings.ToLower(rec.Title + "\n" + rec.Abstract)

	var score float64
	var matched []string
	for _, kw := range cfg.Keywords {
		term := strings.ToLower(strings.TrimSpace(kw.Keyword))
		if term == "" {
			continue
		}
		if strings.Contains(haystack, term) {
			score += kw.Weight
			matched = append(matched, kw.Keyword)
		}
	}
	return score, matched
}

// countExcluded returns how many of the excluded topics appear in the title
// or abstract. Each configured topic counts at most once.
func countExcluded(rec types.PaperRecord, excluded []string) int {
	haystack := strings.ToLower(rec.Title + "\n" + rec.Abstract)

	hits := 0
	for _, topic := range excluded {
		term := strings.ToLower(strings.TrimSpace(topic))
		if term == "" {
			continue
		}
		if strings.Contains(haystack, term) {
			hits++
		}
	}
	return hits
}

// hasPreferredAuthor reports whether any configured preferred author appears
// in the record's author list. Names compare case-insensitively and must
// match in full; substring matching would confuse short family names.
func hasPreferredAuthor(rec types.PaperRecord, preferred []string) bool {
	for _, want := range preferred {
		want = strings.TrimSpace(want)
		if want == "" {
			continue
		}
		for _, author := range rec.Authors {
			if strings.EqualFold(strings.TrimSpace(author), want) {
				return true
			}
		}
	}
	return false
}

// LoadKeywords reads a keyword configuration from a YAML file. An empty
// keyword list is valid and simply scores every paper at zero; keywords
// with empty terms or non-positive weights are rejected.
func LoadKeywords(path string) (types.KeywordConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.KeywordConfig{}, fmt.Errorf("reading keywords file: %w", err)
	}

	var cfg types.KeywordConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return types.KeywordConfig{}, fmt.Errorf("parsing keywords file: %w", err)
	}

	for i, kw := range cfg.Keywords {
		if strings.TrimSpace(kw.Keyword) == "" {
			return types.KeywordConfig{}, fmt.Errorf("keyword %d is empty", i+1)
		}
		if kw.Weight <= 0 {
			return types.KeywordConfig{}, fmt.Errorf("keyword %q has non-positive weight %g", kw.Keyword, kw.Weight)
		}
	}
	return cfg, nil
}
