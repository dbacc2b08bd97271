// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/paper-digest/pkg/types"
)

var reportDate = time.Date(2026, 8, 21, 7, 30, 0, 0, time.UTC)

func rankedPaper(id, title string, total float64) types.ScoredPaper {
	return types.ScoredPaper{
		Paper: types.PaperRecord{
			Identifier: id,
			Title:      title,
			Abstract:   "We study the problem.",
			Authors:    []string{"Mei Lin", "Arjun Patel"},
			Categories: []string{"cs.CV"},
			Published:  reportDate.Add(-18 * time.Hour),
			SourceURL:  "https://arxiv.org/abs/" + id,
		},
		KeywordScore:    total,
		MatchedKeywords: []string{"transformer"},
		TotalScore:      total,
	}
}

func okResult(id string) types.SummaryResult {
	return types.SummaryResult{
		Identifier: id,
		Summary:    "A summary of " + id + ".",
		Review:     "A review of " + id + ".",
		Status:     types.SummarySucceeded,
		Attempts:   2,
	}
}

func failedResult(id, msg string) types.SummaryResult {
	return types.SummaryResult{
		Identifier: id,
		Status:     types.SummaryFailedPermanent,
		Attempts:   3,
		Err:        msg,
	}
}

// --- Assemble ---

func TestAssemble(t *testing.T) {
	papers := []types.ScoredPaper{
		rankedPaper("2408.11001", "Scaling Vision Transformers", 3.5),
		rankedPaper("2408.11002", "Monocular Depth From Video", 2.0),
	}
	// Results arrive shuffled relative to the papers.
	results := []types.SummaryResult{
		okResult("2408.11002"),
		okResult("2408.11001"),
	}

	rep := Assemble(papers, results, 40, "run-1", reportDate)

	if rep.RunID != "run-1" {
		t.Errorf("RunID = %q, want %q", rep.RunID, "run-1")
	}
	if !rep.GeneratedAt.Equal(reportDate) {
		t.Errorf("GeneratedAt = %v, want %v", rep.GeneratedAt, reportDate)
	}
	if rep.Considered != 40 {
		t.Errorf("Considered = %d, want 40", rep.Considered)
	}
	if rep.Included != 2 {
		t.Errorf("Included = %d, want 2", rep.Included)
	}
	if len(rep.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(rep.Entries))
	}
	for i, e := range rep.Entries {
		if e.Paper.Paper.Identifier != papers[i].Paper.Identifier {
			t.Errorf("entries[%d] paper = %q, want %q (rank order lost)",
				i, e.Paper.Paper.Identifier, papers[i].Paper.Identifier)
		}
		if e.Result.Identifier != e.Paper.Paper.Identifier {
			t.Errorf("entries[%d] result %q does not match paper %q",
				i, e.Result.Identifier, e.Paper.Paper.Identifier)
		}
	}
	if rep.FailedCount() != 0 {
		t.Errorf("FailedCount = %d, want 0", rep.FailedCount())
	}
}

func TestAssembleMissingResultIsFlagged(t *testing.T) {
	papers := []types.ScoredPaper{
		rankedPaper("2408.11001", "Paper One", 3.0),
		rankedPaper("2408.11002", "Paper Two", 2.0),
	}
	results := []types.SummaryResult{okResult("2408.11001")}

	rep := Assemble(papers, results, 10, "run-1", reportDate)

	if len(rep.Entries) != 2 {
		t.Fatalf("got %d entries, want 2 (missing results must not drop papers)", len(rep.Entries))
	}
	placeholder := rep.Entries[1].Result
	if placeholder.Status != types.SummaryFailedPermanent {
		t.Errorf("placeholder Status = %q, want %q", placeholder.Status, types.SummaryFailedPermanent)
	}
	if placeholder.Err != "no summarization result" {
		t.Errorf("placeholder Err = %q", placeholder.Err)
	}
	if rep.FailedCount() != 1 {
		t.Errorf("FailedCount = %d, want 1", rep.FailedCount())
	}
}

func TestAssembleCountsFailures(t *testing.T) {
	papers := []types.ScoredPaper{
		rankedPaper("2408.11001", "Paper One", 3.0),
		rankedPaper("2408.11002", "Paper Two", 2.0),
		rankedPaper("2408.11003", "Paper Three", 1.0),
	}
	results := []types.SummaryResult{
		okResult("2408.11001"),
		failedResult("2408.11002", "model overloaded"),
		{Identifier: "2408.11003", Status: types.SummaryFailedRetryable, Err: "context deadline exceeded"},
	}

	rep := Assemble(papers, results, 3, "run-1", reportDate)
	if rep.FailedCount() != 2 {
		t.Errorf("FailedCount = %d, want 2", rep.FailedCount())
	}
}

func TestAssembleEmptySelection(t *testing.T) {
	rep := Assemble(nil, nil, 17, "run-1", reportDate)
	if rep.Included != 0 {
		t.Errorf("Included = %d, want 0", rep.Included)
	}
	if rep.Considered != 17 {
		t.Errorf("Considered = %d, want 17", rep.Considered)
	}
	if len(rep.Entries) != 0 {
		t.Errorf("got %d entries, want 0", len(rep.Entries))
	}
}

// --- file naming and writing ---

func TestFilenames(t *testing.T) {
	if got := MarkdownFilename(reportDate); got != "digest-2026-08-21.md" {
		t.Errorf("MarkdownFilename = %q, want %q", got, "digest-2026-08-21.md")
	}
	if got := HTMLFilename(reportDate); got != "digest-2026-08-21.html" {
		t.Errorf("HTMLFilename = %q, want %q", got, "digest-2026-08-21.html")
	}
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := types.ReportConfig{OutputDir: dir, WriteHTML: true}

	papers := []types.ScoredPaper{rankedPaper("2408.11001", "Scaling Vision Transformers", 3.5)}
	rep := Assemble(papers, []types.SummaryResult{okResult("2408.11001")}, 5, "run-1", reportDate)

	mdPath, htmlPath, err := WriteFiles(rep, cfg)
	if err != nil {
		t.Fatalf("WriteFiles: %v", err)
	}
	if filepath.Base(mdPath) != "digest-2026-08-21.md" {
		t.Errorf("mdPath = %q", mdPath)
	}
	if filepath.Base(htmlPath) != "digest-2026-08-21.html" {
		t.Errorf("htmlPath = %q", htmlPath)
	}

	md, err := os.ReadFile(mdPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(md), "Scaling Vision Transformers") {
		t.Error("markdown file missing the paper title")
	}

	doc, err := os.ReadFile(htmlPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(doc), "<!DOCTYPE html>") {
		t.Error("HTML file should be a self-contained document")
	}
}

func TestWriteFilesMarkdownOnly(t *testing.T) {
	dir := t.TempDir()
	cfg := types.ReportConfig{OutputDir: dir, WriteHTML: false}

	rep := Assemble(nil, nil, 0, "run-1", reportDate)
	mdPath, htmlPath, err := WriteFiles(rep, cfg)
	if err != nil {
		t.Fatalf("WriteFiles: %v", err)
	}
	if mdPath == "" {
		t.Error("mdPath is empty")
	}
	if htmlPath != "" {
		t.Errorf("htmlPath = %q, want empty when WriteHTML is off", htmlPath)
	}
	if _, err := os.Stat(filepath.Join(dir, "digest-2026-08-21.html")); !os.IsNotExist(err) {
		t.Error("HTML file written despite WriteHTML=false")
	}
}

func TestWriteFilesCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	cfg := types.ReportConfig{OutputDir: dir}

	rep := Assemble(nil, nil, 0, "run-1", reportDate)
	if _, _, err := WriteFiles(rep, cfg); err != nil {
		t.Fatalf("WriteFiles: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "digest-2026-08-21.md")); err != nil {
		t.Errorf("report not written under the created directory: %v", err)
	}
}
