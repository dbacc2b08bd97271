// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads credentials from a directory of plain-text files,
// one secret per file: the filename names the key and the trimmed file
// contents are the value.
//
// Recognized keys: gemini-api-key, semantic-scholar-api-key, smtp-password.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// Key names recognized by Apply.
const (
	GeminiAPIKey          = "gemini-api-key"
	SemanticScholarAPIKey = "semantic-scholar-api-key"
	SMTPPassword          = "smtp-password"
)

// Load reads every file in dir as one secret. A missing directory yields an
// empty map, not an error. Dotfiles, subdirectories, and files that are empty
// after trimming are ignored; a file that cannot be read is reported on
// stderr and skipped.
func Load(dir string) (map[string]string, error) {
	secrets := make(map[string]string)

	entries, err := os.ReadDir(dir)
	switch {
	case os.IsNotExist(err):
		return secrets, nil
	case err != nil:
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping secret %s: %v\n", name, err)
			continue
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			secrets[name] = v
		}
	}

	return secrets, nil
}

// Apply copies known secrets onto their config fields. A value already set
// in the config wins, so config files and environment variables override
// the secrets directory.
func Apply(cfg *types.Config, secrets map[string]string) {
	if cfg.Summary.APIKey == "" {
		cfg.Summary.APIKey = secrets[GeminiAPIKey]
	}
	if cfg.Citations.APIKey == "" {
		cfg.Citations.APIKey = secrets[SemanticScholarAPIKey]
	}
	if cfg.Mail.Password == "" {
		cfg.Mail.Password = secrets[SMTPPassword]
	}
}
