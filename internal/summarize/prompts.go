// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// summaryPromptTmpl asks for the digest summary of one paper. The model
// only ever sees the listing metadata, never the full text.
var summaryPromptTmpl = template.Must(template.New("summary").Parse(`You are an assistant preparing a daily research digest for a computer-vision researcher.

Summarize the paper below from its abstract. Write in {{.Language}}. Use 3-5 sentences of plain prose covering the problem addressed, the core method, and the headline result. No bullet points, no preamble, no text besides the summary itself.

Title: {{.Title}}
Authors: {{.Authors}}
Categories: {{.Categories}}
Abstract:
{{.Abstract}}
`))

// reviewPromptTmpl asks for a short critical assessment of one paper.
var reviewPromptTmpl = template.Must(template.New("review").Parse(`You are a critical reviewer for a daily research digest. Assess the paper below from its abstract.

Write in {{.Language}}. Use 2-4 sentences naming the most significant strength, the most questionable assumption or limitation, and who should read the paper. Be direct. Do not restate the abstract and do not add any text besides the assessment itself.

Title: {{.Title}}
Authors: {{.Authors}}
Categories: {{.Categories}}
Abstract:
{{.Abstract}}
`))

// overviewPromptTmpl asks for the digest-level opening paragraph.
var overviewPromptTmpl = template.Must(template.New("overview").Parse(`You are an assistant preparing a daily research digest. Write the opening paragraph for today's digest.

Write in {{.Language}}. Use 2-3 sentences describing the main themes across the selected papers. Do not enumerate the papers one by one and do not add any text besides the paragraph itself.

Selected papers:
{{range .Titles}}- {{.}}
{{end}}`))

// paperPromptData carries one paper's fields into the templates.
type paperPromptData struct {
	Title      string
	Authors    string
	Categories string
	Abstract   string
	Language   string
}

// overviewPromptData carries the selected titles into the overview template.
type overviewPromptData struct {
	Titles   []string
	Language string
}

const defaultLanguage = "English"

func newPaperPromptData(rec types.PaperRecord, language string) paperPromptData {
	if language == "" {
		language = defaultLanguage
	}
	return paperPromptData{
		Title:      rec.Title,
		Authors:    strings.Join(rec.Authors, ", "),
		Categories: strings.Join(rec.Categories, ", "),
		Abstract:   rec.Abstract,
		Language:   language,
	}
}

// renderSummaryPrompt executes the summary template for one paper.
func renderSummaryPrompt(rec types.PaperRecord, language string) (string, error) {
	var buf bytes.Buffer
	if err := summaryPromptTmpl.Execute(&buf, newPaperPromptData(rec, language)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderReviewPrompt executes the critical-review template for one paper.
func renderReviewPrompt(rec types.PaperRecord, language string) (string, error) {
	var buf bytes.Buffer
	if err := reviewPromptTmpl.Execute(&buf, newPaperPromptData(rec, language)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderOverviewPrompt executes the overview template for the selected papers.
func renderOverviewPrompt(papers []types.ScoredPaper, language string) (string, error) {
	if language == "" {
		language = defaultLanguage
	}
	data := overviewPromptData{Language: language}
	for _, p := range papers {
		data.Titles = append(data.Titles, p.Paper.Title)
	}

	var buf bytes.Buffer
	if err := overviewPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
