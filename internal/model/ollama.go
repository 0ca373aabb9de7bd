// Package model: Ollama client for the local generate-style backend.
package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/haneul-ai/haneul/internal/errors"
	"github.com/haneul-ai/haneul/internal/metrics"
)

// maxPromptLen caps the flattened prompt sent to the generate endpoint.
const maxPromptLen = 4000

// truncationMarker is appended when the flattened prompt is cut off.
const truncationMarker = "\n\n[Content truncated due to length]"

// OllamaConfig configures the Ollama client.
type OllamaConfig struct {
	URL   string // Default: http://localhost:11434
	Model string // e.g. "llama3:8b"
}

// OllamaClient implements Provider against the Ollama /api/generate
// endpoint. The endpoint has no chat message structure, so the ordered
// conversation is flattened into a single labeled prompt.
type OllamaClient struct {
	cfg    *OllamaConfig
	client *http.Client
	log    *zap.Logger
}

// NewOllamaClient creates a new Ollama client.
func NewOllamaClient(cfg *OllamaConfig, log *zap.Logger) *OllamaClient {
	if log == nil {
		log = zap.NewNop()
	}
	return &OllamaClient{
		cfg: cfg,
		client: &http.Client{
			Timeout: RequestTimeout,
		},
		log: log,
	}
}

// Name returns the provider identifier.
func (c *OllamaClient) Name() string {
	return "ollama"
}

// Complete flattens the messages into a prompt and runs one non-streaming
// generate call.
func (c *OllamaClient) Complete(ctx context.Context, messages []Message, maxTokens int) (string, error) {
	start := time.Now()
	text, err := c.complete(ctx, messages, maxTokens)
	metrics.LLMRequestDuration.WithLabelValues(c.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(c.Name(), metrics.StatusError).Inc()
		return "", err
	}
	metrics.LLMRequestsTotal.WithLabelValues(c.Name(), metrics.StatusOK).Inc()
	return text, nil
}

func (c *OllamaClient) complete(ctx context.Context, messages []Message, maxTokens int) (string, error) {
	prompt := FlattenPrompt(messages)

	body := map[string]any{
		"model":  c.cfg.Model,
		"prompt": prompt,
		"stream": false,
		"options": map[string]any{
			"temperature": 0.1,
			"num_predict": maxTokens,
		},
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeModelInvalidResponse, "failed to marshal request", apperrors.CategoryPermanent)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL+"/api/generate", bytes.NewReader(jsonBody))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeModelUnavailable, "failed to create request", apperrors.CategoryUpstream)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("ollama request failed", zap.Error(err))
		return "", apperrors.Wrap(err, apperrors.CodeModelUnavailable, "Ollama request failed", apperrors.CategoryUpstream)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeModelUnavailable, "failed to read Ollama response", apperrors.CategoryUpstream)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("ollama returned error status", zap.Int("status", resp.StatusCode))
		return "", apperrors.Upstream(apperrors.CodeModelUnavailable,
			fmt.Sprintf("Ollama API error (status %d): %s", resp.StatusCode, string(respBody)))
	}

	var generated struct {
		Response *string `json:"response"`
	}
	if err := json.Unmarshal(respBody, &generated); err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeModelInvalidResponse, "failed to parse Ollama response", apperrors.CategoryPermanent)
	}
	if generated.Response == nil {
		return "", apperrors.New(apperrors.CodeModelInvalidResponse, "Ollama response missing response field", apperrors.CategoryPermanent)
	}

	return *generated.Response, nil
}

// FlattenPrompt converts an ordered message sequence into the single
// labeled prompt the generate endpoint expects, ending with an
// "Assistant: " cue. Prompts past the length cap are truncated with a
// marker.
func FlattenPrompt(messages []Message) string {
	var sb strings.Builder
	for _, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			sb.WriteString("System: ")
		case RoleUser:
			sb.WriteString("User: ")
		case RoleAssistant:
			sb.WriteString("Assistant: ")
		default:
			continue
		}
		sb.WriteString(msg.Content)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Assistant: ")

	// Truncate by rune so a multi-byte character is never split.
	prompt := sb.String()
	if runes := []rune(prompt); len(runes) > maxPromptLen {
		prompt = string(runes[:maxPromptLen]) + truncationMarker
	}
	return prompt
}
