// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"sort"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// ScoreAll derives the keyword-based fields for every record. Citation
// scores start at zero and are filled in by the citations stage before
// ranking.
func ScoreAll(records []types.PaperRecord, cfg types.KeywordConfig) []types.ScoredPaper {
	scored := make([]types.ScoredPaper, 0, len(records))
	for _, rec := range records {
		ks, matched := MatchKeywords(rec, cfg)
		scored = append(scored, types.ScoredPaper{
			Paper:           rec,
			KeywordScore:    ks,
			MatchedKeywords: matched,
			ExcludedHits:    countExcluded(rec, cfg.Excluded),
			PreferredAuthor: hasPreferredAuthor(rec, cfg.PreferredAuthors),
		})
	}
	return scored
}

// Rank computes total scores, orders papers best-first, and applies the
// minimum-score and top-N cuts, in that order. The input slice is left
// untouched.
//
// Ties on total score break by keyword score, then by publication recency,
// then by identifier ascending, which makes the ordering deterministic for
// any input.
func Rank(papers []types.ScoredPaper, cfg types.RankConfig) []types.ScoredPaper {
	ranked := make([]types.ScoredPaper, len(papers))
	copy(ranked, papers)

	for i := range ranked {
		ranked[i].TotalScore = totalScore(ranked[i], cfg)
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		if a.KeywordScore != b.KeywordScore {
			return a.KeywordScore > b.KeywordScore
		}
		if !a.Paper.Published.Equal(b.Paper.Published) {
			return a.Paper.Published.After(b.Paper.Published)
		}
		return a.Paper.Identifier < b.Paper.Identifier
	})

	if cfg.MinScore > 0 {
		kept := ranked[:0]
		for _, p := range ranked {
			if p.TotalScore >= cfg.MinScore {
				kept = append(kept, p)
			}
		}
		ranked = kept
	}

	if cfg.TopN > 0 && len(ranked) > cfg.TopN {
		ranked = ranked[:cfg.TopN]
	}
	return ranked
}

// totalScore combines the per-paper signals under the configured weights.
// Never negative: a paper buried by exclusions bottoms out at zero.
func totalScore(p types.ScoredPaper, cfg types.RankConfig) float64 {
	total := cfg.KeywordWeight*p.KeywordScore + cfg.CitationWeight*p.CitationScore
	if p.PreferredAuthor {
		total += cfg.AuthorBonus
	}
	total -= cfg.ExcludePenalty * float64(p.ExcludedHits)
	if total < 0 {
		return 0
	}
	return total
}
