// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/arxiv-translate/internal/httputil"
)

// googleTranslateURL is the public web translation endpoint. Package-level
// var for test substitution.
var googleTranslateURL = "https://translate.googleapis.com/translate_a/single"

// GoogleProvider translates through the keyless Google web endpoint.
type GoogleProvider struct {
	Client    *http.Client
	UserAgent string
}

// Translate sends text as a form body so long abstracts stay out of the URL.
func (g *GoogleProvider) Translate(ctx context.Context, text, source, target string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", source)
	params.Set("tl", target)
	params.Set("dt", "t")

	form := url.Values{}
	form.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		googleTranslateURL+"?"+params.Encode(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")
	httputil.SetUserAgent(req, g.UserAgent)

	body, err := httputil.Do(g.Client, req)
	if err != nil {
		return "", fmt.Errorf("calling Google Translate: %w", err)
	}
	return parseGoogleResponse(body)
}

// parseGoogleResponse concatenates the translated segments of a
// translate_a/single response, which looks like
// [[["訳文","source",null,null,10],...],null,"en",...].
func parseGoogleResponse(body []byte) (string, error) {
	var raw []any
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("decoding Google Translate response: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("empty Google Translate response")
	}

	segments, ok := raw[0].([]any)
	if !ok {
		return "", fmt.Errorf("unexpected Google Translate response shape")
	}

	var b strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			b.WriteString(s)
		}
	}
	return b.String(), nil
}
