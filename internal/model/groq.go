// Package model: Groq client for the hosted chat-completions backend.
// The API is OpenAI-compatible.
package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/haneul-ai/haneul/internal/errors"
	"github.com/haneul-ai/haneul/internal/metrics"
)

// GroqConfig configures the Groq client.
type GroqConfig struct {
	APIKey  string
	BaseURL string // Default: https://api.groq.com/openai/v1
	Model   string // e.g. "llama-3.1-8b-instant"
}

// GroqClient implements Provider against the Groq chat-completions
// endpoint. Messages pass through as role/content pairs and generation is
// deterministic (temperature 0).
type GroqClient struct {
	cfg    *GroqConfig
	client *http.Client
	log    *zap.Logger
}

// NewGroqClient creates a new Groq client. A missing API key is a fatal
// configuration error.
func NewGroqClient(cfg *GroqConfig, log *zap.Logger) (*GroqClient, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, apperrors.Config("GROQ_API_KEY is not set")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GroqClient{
		cfg: cfg,
		client: &http.Client{
			Timeout: RequestTimeout,
		},
		log: log,
	}, nil
}

// Name returns the provider identifier.
func (c *GroqClient) Name() string {
	return "groq"
}

// Complete runs one chat completion.
func (c *GroqClient) Complete(ctx context.Context, messages []Message, maxTokens int) (string, error) {
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

func (c *GroqClient) complete(ctx context.Context, messages []Message, maxTokens int) (string, error) {
	body := map[string]any{
		"model":       c.cfg.Model,
		"messages":    messages,
		"temperature": 0,
		"max_tokens":  maxTokens,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeModelInvalidResponse, "failed to marshal request", apperrors.CategoryPermanent)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeModelUnavailable, "failed to create request", apperrors.CategoryUpstream)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("groq request failed", zap.Error(err))
		return "", apperrors.Wrap(err, apperrors.CodeModelUnavailable, "Groq request failed", apperrors.CategoryUpstream)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeModelUnavailable, "failed to read Groq response", apperrors.CategoryUpstream)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("groq returned error status", zap.Int("status", resp.StatusCode))
		return "", apperrors.Upstream(apperrors.CodeModelUnavailable,
			fmt.Sprintf("Groq API error (status %d): %s", resp.StatusCode, string(respBody)))
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeModelInvalidResponse, "failed to parse Groq response", apperrors.CategoryPermanent)
	}
	if len(completion.Choices) == 0 {
		return "", apperrors.New(apperrors.CodeModelInvalidResponse, "Groq response contained no choices", apperrors.CategoryPermanent)
	}

	return completion.Choices[0].Message.Content, nil
}
