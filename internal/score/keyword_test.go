package score

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/paper-digest/pkg/types"
)

func kw(term string, weight float64) types.WeightedKeyword {
	return types.WeightedKeyword{Keyword: term, Weight: weight}
}

func TestMatchKeywords(t *testing.T) {
	cfg := types.KeywordConfig{
		Keywords: []types.WeightedKeyword{
			kw("transformer", 2.0),
			kw("diffusion", 1.5),
			kw("segmentation", 1.0),
		},
	}

	tests := []struct {
		name        string
		rec         types.PaperRecord
		wantScore   float64
		wantMatched []string
	}{
		{
			"title match",
			types.PaperRecord{Title: "A Transformer for Dense Prediction"},
			2.0,
			[]string{"transformer"},
		},
		{
			"abstract match",
			types.PaperRecord{Title: "Dense Prediction", Abstract: "We use diffusion models."},
			1.5,
			[]string{"diffusion"},
		},
		{
			"case insensitive",
			types.PaperRecord{Title: "TRANSFORMER networks"},
			2.0,
			[]string{"transformer"},
		},
		{
			"substring of longer word",
			types.PaperRecord{Title: "Vision Transformers at Scale"},
			2.0,
			[]string{"transformer"},
		},
		{
			"multiple keywords sum",
			types.PaperRecord{Title: "Diffusion Transformers", Abstract: "for segmentation"},
			4.5,
			[]string{"transformer", "diffusion", "segmentation"},
		},
		{
			"keyword in both fields counts once",
			types.PaperRecord{Title: "Transformer", Abstract: "another transformer"},
			2.0,
			[]string{"transformer"},
		},
		{
			"no match",
			types.PaperRecord{Title: "Graph Neural Networks", Abstract: "message passing"},
			0,
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, matched := MatchKeywords(tt.rec, cfg)
			if score != tt.wantScore {
				t.Errorf("score = %g, want %g", score, tt.wantScore)
			}
			if len(matched) != len(tt.wantMatched) {
				t.Fatalf("matched = %v, want %v", matched, tt.wantMatched)
			}
			for i := range tt.wantMatched {
				if matched[i] != tt.wantMatched[i] {
					t.Errorf("matched[%d] = %q, want %q", i, matched[i], tt.wantMatched[i])
				}
			}
		})
	}
}

func TestMatchKeywordsEmptyConfig(t *testing.T) {
	score, matched := MatchKeywords(types.PaperRecord{Title: "Transformers"}, types.KeywordConfig{})
	if score != 0 {
		t.Errorf("score = %g, want 0", score)
	}
	if matched != nil {
		t.Errorf("matched = %v, want nil", matched)
	}
}

func TestMatchKeywordsIsDeterministic(t *testing.T) {
	cfg := types.KeywordConfig{Keywords: []types.WeightedKeyword{kw("attention", 1.0), kw("pooling", 0.5)}}
	rec := types.PaperRecord{Title: "Attention pooling", Abstract: "attention with pooling"}

	s1, m1 := MatchKeywords(rec, cfg)
	s2, m2 := MatchKeywords(rec, cfg)
	if s1 != s2 || len(m1) != len(m2) {
		t.Errorf("repeated calls disagree: (%g,%v) vs (%g,%v)", s1, m1, s2, m2)
	}
}

func TestCountExcluded(t *testing.T) {
	excluded := []string{"survey", "benchmark"}

	tests := []struct {
		name string
		rec  types.PaperRecord
		want int
	}{
		{"none", types.PaperRecord{Title: "A new method"}, 0},
		{"one in title", types.PaperRecord{Title: "A Survey of Methods"}, 1},
		{"one in abstract", types.PaperRecord{Abstract: "we release a benchmark"}, 1},
		{"both", types.PaperRecord{Title: "Survey", Abstract: "and a benchmark"}, 2},
		{"topic counted once", types.PaperRecord{Title: "Survey of surveys", Abstract: "survey"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countExcluded(tt.rec, excluded); got != tt.want {
				t.Errorf("countExcluded = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHasPreferredAuthor(t *testing.T) {
	preferred := []string{"Kaiming He", "Ross Girshick"}

	tests := []struct {
		name    string
		authors []string
		want    bool
	}{
		{"exact match", []string{"Kaiming He", "Someone Else"}, true},
		{"case insensitive", []string{"ross girshick"}, true},
		{"no substring match", []string{"Kaiming Hernandez"}, false},
		{"no match", []string{"Someone Else"}, false},
		{"empty authors", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := types.PaperRecord{Authors: tt.authors}
			if got := hasPreferredAuthor(rec, preferred); got != tt.want {
				t.Errorf("hasPreferredAuthor = %v, want %v", got, tt.want)
			}
		})
	}
}

// --- LoadKeywords ---

func writeKeywordsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing keywords file: %v", err)
	}
	return path
}

func TestLoadKeywords(t *testing.T) {
	path := writeKeywordsFile(t, `keywords:
  - keyword: transformer
    weight: 2.0
  - keyword: diffusion
    weight: 1.5
excluded:
  - survey
preferred_authors:
  - Kaiming He
`)

	cfg, err := LoadKeywords(path)
	if err != nil {
		t.Fatalf("LoadKeywords: %v", err)
	}
	if len(cfg.Keywords) != 2 {
		t.Fatalf("len(Keywords) = %d, want 2", len(cfg.Keywords))
	}
	if cfg.Keywords[0].Keyword != "transformer" || cfg.Keywords[0].Weight != 2.0 {
		t.Errorf("Keywords[0] = %+v", cfg.Keywords[0])
	}
	if len(cfg.Excluded) != 1 || cfg.Excluded[0] != "survey" {
		t.Errorf("Excluded = %v", cfg.Excluded)
	}
	if len(cfg.PreferredAuthors) != 1 {
		t.Errorf("PreferredAuthors = %v", cfg.PreferredAuthors)
	}
}

func TestLoadKeywordsEmptyListIsValid(t *testing.T) {
	path := writeKeywordsFile(t, "keywords: []\n")

	cfg, err := LoadKeywords(path)
	if err != nil {
		t.Fatalf("LoadKeywords: %v", err)
	}
	if len(cfg.Keywords) != 0 {
		t.Errorf("len(Keywords) = %d, want 0", len(cfg.Keywords))
	}
}

func TestLoadKeywordsRejectsEmptyTerm(t *testing.T) {
	path := writeKeywordsFile(t, `keywords:
  - keyword: ""
    weight: 1.0
`)

	_, err := LoadKeywords(path)
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Errorf("expected empty keyword error, got: %v", err)
	}
}

func TestLoadKeywordsRejectsNonPositiveWeight(t *testing.T) {
	path := writeKeywordsFile(t, `keywords:
  - keyword: transformer
    weight: 0
`)

	_, err := LoadKeywords(path)
	if err == nil || !strings.Contains(err.Error(), "weight") {
		t.Errorf("expected weight error, got: %v", err)
	}
}

func TestLoadKeywordsMissingFile(t *testing.T) {
	_, err := LoadKeywords(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}
