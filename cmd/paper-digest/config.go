package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-digest/internal/citations"
	"github.com/pdiddy/paper-digest/internal/listing"
	"github.com/pdiddy/paper-digest/internal/secrets"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// loadConfig assembles the effective configuration: defaults, then the
// viper-discovered YAML file, then environment overrides, then secrets.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()

	if path := viper.ConfigFileUsed(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	// Credential overrides, e.g. PAPER_DIGEST_GEMINI_API_KEY.
	if v := viper.GetString("gemini_api_key"); v != "" {
		cfg.Summary.APIKey = v
	}
	if v := viper.GetString("semantic_scholar_api_key"); v != "" {
		cfg.Citations.APIKey = v
	}
	if v := viper.GetString("smtp_password"); v != "" {
		cfg.Mail.Password = v
	}

	secrets.Apply(&cfg, loadedSecrets)
	return cfg, nil
}

// buildSources returns the listing sources enabled by the configuration.
func buildSources(cfg types.Config) []listing.Source {
	var sources []listing.Source
	if cfg.Listing.EnableArxiv {
		sources = append(sources, &listing.ArxivSource{
			Client: &http.Client{Timeout: cfg.Listing.Timeout},
		})
	}
	if len(cfg.Listing.FeedURLs) > 0 {
		sources = append(sources, &listing.RSSSource{
			Client: &http.Client{Timeout: cfg.Listing.Timeout},
		})
	}
	return sources
}

// buildCitations returns the citation source, or nil when lookups are
// disabled.
func buildCitations(cfg types.Config) citations.Source {
	if !cfg.Citations.Enabled {
		return nil
	}
	return &citations.SemanticScholarSource{
		Client:    &http.Client{Timeout: cfg.Citations.Timeout},
		UserAgent: cfg.Citations.UserAgent,
		APIKey:    cfg.Citations.APIKey,
	}
}
