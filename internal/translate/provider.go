// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"fmt"
	"net/http"

	"github.com/pdiddy/arxiv-translate/pkg/types"
)

// NewProvider returns the Provider selected by cfg.Provider.
func NewProvider(cfg types.TranslationConfig, client *http.Client, userAgent string) (Provider, error) {
	switch cfg.Provider {
	case types.ProviderGoogle, "":
		return &GoogleProvider{Client: client, UserAgent: userAgent}, nil
	case types.ProviderClaude:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("claude provider requires an API key (.secrets/anthropic-api-key or ARXIV_TRANSLATE_TRANSLATION_API_KEY)")
		}
		return &ClaudeProvider{APIKey: cfg.APIKey, Model: cfg.Model, Client: client}, nil
	default:
		return nil, fmt.Errorf("unsupported translation provider %q: use google or claude", cfg.Provider)
	}
}
