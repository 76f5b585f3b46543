// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"text/template"

	"github.com/pdiddy/arxiv-translate/internal/httputil"
)

// translationPromptTmpl is the prompt sent to the Claude API for each text.
var translationPromptTmpl = template.Must(template.New("translation").Parse(`Translate the following text from {{.Source}} to {{.Target}}. It is the title or abstract of a research paper. Keep mathematical notation, model names, and acronyms as written.

Respond with the translation only, without quotes, notes, or any text before or after it.

Text:
{{.Text}}
`))

// claudeAPIURL is the Claude API endpoint. Package-level var for test substitution.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

// defaultClaudeModel is used when no model is configured.
const defaultClaudeModel = "claude-sonnet-4-5-20250929"

// ClaudeProvider translates through the Claude Messages API.
type ClaudeProvider struct {
	APIKey string
	Model  string
	Client *http.Client
}

// claudeRequest is the request body for the Claude Messages API.
type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// claudeResponse is the response body from the Claude Messages API.
type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Translate calls the Claude API with the translation prompt.
func (c *ClaudeProvider) Translate(ctx context.Context, text, source, target string) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("claude provider: no API key configured")
	}

	prompt, err := renderPrompt(text, source, target)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	model := c.Model
	if model == "" {
		model = defaultClaudeModel
	}

	bodyBytes, err := json.Marshal(claudeRequest{
		Model:     model,
		MaxTokens: 4096,
		Messages: []claudeMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, claudeAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	body, err := httputil.Do(c.Client, req)
	if err != nil {
		return "", fmt.Errorf("calling Claude API: %w", err)
	}

	var cResp claudeResponse
	if err := json.Unmarshal(body, &cResp); err != nil {
		return "", fmt.Errorf("decoding Claude response: %w", err)
	}

	for _, block := range cResp.Content {
		if block.Type == "text" {
			return strings.TrimSpace(block.Text), nil
		}
	}
	return "", fmt.Errorf("no text content in Claude API response")
}

func renderPrompt(text, source, target string) (string, error) {
	var buf bytes.Buffer
	data := struct{ Text, Source, Target string }{Text: text, Source: source, Target: target}
	if err := translationPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
