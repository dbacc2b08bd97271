// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package listing

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// ListingFile is the on-disk representation of a fetched listing. A run can
// save the day's papers to a file and rebuild the report later without
// re-querying the sources.
type ListingFile struct {
	Window  WindowParams        `yaml:"window"`
	Config  ListingFileConfig   `yaml:"config"`
	Records []types.PaperRecord `yaml:"records"`
	Summary ListingSummary      `yaml:"summary"`
}

// WindowParams stores the listing window in a serializable form.
type WindowParams struct {
	From time.Time `yaml:"from"`
	To   time.Time `yaml:"to"`
}

// ListingFileConfig stores the listing configuration that produced the records.
type ListingFileConfig struct {
	Categories []string `yaml:"categories,omitempty"`
	MaxResults int      `yaml:"max_results"`
}

// ListingSummary stores record statistics and a timestamp.
type ListingSummary struct {
	Total        int       `yaml:"total"`
	SourceErrors []string  `yaml:"source_errors,omitempty"`
	Timestamp    time.Time `yaml:"timestamp"`
}

// WriteListingFile saves the window, configuration, and fetched records to a
// YAML file.
func WriteListingFile(path string, window Window, cfg types.ListingConfig, out FetchOutput) error {
	lf := ListingFile{
		Window: WindowParams{From: window.From, To: window.To},
		Config: ListingFileConfig{
			Categories: cfg.Categories,
			MaxResults: cfg.MaxResults,
		},
		Records: out.Records,
		Summary: ListingSummary{
			Total:        len(out.Records),
			SourceErrors: out.SourceErrors,
			Timestamp:    time.Now(),
		},
	}

	data, err := yaml.Marshal(&lf)
	if err != nil {
		return fmt.Errorf("marshaling listing file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadListingFile loads a previously saved listing from disk.
func ReadListingFile(path string) (*ListingFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading listing file: %w", err)
	}
	var lf ListingFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parsing listing file: %w", err)
	}
	return &lf, nil
}

// ToWindow converts stored WindowParams back into a Window.
func (p WindowParams) ToWindow() Window {
	return Window{From: p.From, To: p.To}
}
