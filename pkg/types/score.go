// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// WeightedKeyword pairs a keyword with its relevance weight.
type WeightedKeyword struct {
	// Keyword is matched case-insensitively as a substring of the paper
	// title or abstract.
	Keyword string `json:"keyword" yaml:"keyword"`

	// Weight is the score contribution of a match. Must be positive; a
	// keyword that does not match contributes zero.
	Weight float64 `json:"weight" yaml:"weight"`
}

// KeywordConfig describes the configured research interests. The keyword
// list is ordered; order determines the order of MatchedKeywords on a
// ScoredPaper but has no effect on the score itself.
type KeywordConfig struct {
	// Keywords are the weighted interest terms.
	Keywords []WeightedKeyword `json:"keywords" yaml:"keywords"`

	// Excluded lists topics that push a paper down the ranking. Each hit
	// subtracts RankConfig.ExcludePenalty from the total score.
	Excluded []string `json:"excluded,omitempty" yaml:"excluded,omitempty"`

	// PreferredAuthors lists authors whose papers receive
	// RankConfig.AuthorBonus on the total score.
	PreferredAuthors []string `json:"preferred_authors,omitempty" yaml:"preferred_authors,omitempty"`
}

// ScoredPaper wraps a PaperRecord with the scores derived during a run.
// It is discarded at run end; only the report survives.
type ScoredPaper struct {
	Paper PaperRecord `json:"paper" yaml:"paper"`

	// KeywordScore is the sum of weights of every matched keyword. Always
	// non-negative.
	KeywordScore float64 `json:"keyword_score" yaml:"keyword_score"`

	// MatchedKeywords lists the keywords that matched, in configured order.
	MatchedKeywords []string `json:"matched_keywords,omitempty" yaml:"matched_keywords,omitempty"`

	// ExcludedHits counts excluded topics found in the title or abstract.
	ExcludedHits int `json:"excluded_hits,omitempty" yaml:"excluded_hits,omitempty"`

	// PreferredAuthor reports whether any configured preferred author
	// appears in the author list.
	PreferredAuthor bool `json:"preferred_author,omitempty" yaml:"preferred_author,omitempty"`

	// CitationScore is the normalized citation signal. Zero when the count
	// is unknown. Always non-negative.
	CitationScore float64 `json:"citation_score" yaml:"citation_score"`

	// TotalScore is the declared combination computed by the ranker:
	//
	//	KeywordWeight*KeywordScore + CitationWeight*CitationScore
	//	+ AuthorBonus (if PreferredAuthor) - ExcludePenalty*ExcludedHits
	//
	// floored at zero. All coefficients come from RankConfig.
	TotalScore float64 `json:"total_score" yaml:"total_score"`
}
