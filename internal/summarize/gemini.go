// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/pdiddy/paper-digest/internal/retry"
	"github.com/pdiddy/paper-digest/pkg/types"
)

// GeminiBackend generates digest text through the Gemini API.
type GeminiBackend struct {
	client *genai.Client
	cfg    types.AIConfig
}

// NewGeminiBackend builds a Gemini-backed generator from the AI configuration.
func NewGeminiBackend(ctx context.Context, cfg types.AIConfig) (*GeminiBackend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiBackend{client: client, cfg: cfg}, nil
}

// Generate sends one prompt and returns the model's text. Transient API
// failures come back as plain errors; anything the retry loop must not
// repeat (bad request, auth, safety rejection) is marked permanent.
func (b *GeminiBackend) Generate(ctx context.Context, prompt string) (string, error) {
	model := b.cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	config := &genai.GenerateContentConfig{}
	if b.cfg.Temperature > 0 {
		config.Temperature = genai.Ptr(b.cfg.Temperature)
	}
	if b.cfg.MaxOutputTokens > 0 {
		config.MaxOutputTokens = b.cfg.MaxOutputTokens
	}

	resp, err := b.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}, config)
	if err != nil {
		return "", classifyAPIError(err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("model returned an empty response")
	}
	return text, nil
}

// classifyAPIError separates retryable API failures (rate limits, server
// errors) from permanent ones.
func classifyAPIError(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		// Transport-level failure, worth retrying.
		return err
	}
	switch apiErr.Code {
	case 429, 500, 502, 503, 504:
		return err
	default:
		return retry.Permanent(err)
	}
}
