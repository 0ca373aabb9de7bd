// Package model provides the LLM gateway interface and its backends.
//
// Two interchangeable text-completion backends exist: a local
// generate-style endpoint (Ollama) and a hosted chat-completions endpoint
// (Groq). The backend is selected once at construction; callers depend
// only on the Provider capability, never on the concrete provider.
package model

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/haneul-ai/haneul/internal/config"
	apperrors "github.com/haneul-ai/haneul/internal/errors"
)

// Role tags a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged entry of an ordered conversation. Order
// matters: system first, then conversation turns.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SystemMessage builds a system message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage builds a user message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Provider is the single capability the composer depends on.
type Provider interface {
	// Complete runs one non-streaming completion over the ordered
	// message sequence. maxTokens caps the generated output.
	Complete(ctx context.Context, messages []Message, maxTokens int) (string, error)

	// Name returns the provider identifier for health and logging.
	Name() string
}

// RequestTimeout is the fixed per-call LLM timeout.
const RequestTimeout = 120 * time.Second

// NewProvider constructs the configured backend. A missing Groq API key is
// a fatal configuration error, surfaced here rather than on first use.
func NewProvider(cfg *config.LLMConfig, log *zap.Logger) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderOllama:
		return NewOllamaClient(&OllamaConfig{
			URL:   cfg.Ollama.URL,
			Model: cfg.Ollama.Model,
		}, log), nil
	case config.ProviderGroq:
		return NewGroqClient(&GroqConfig{
			APIKey:  cfg.Groq.APIKey,
			BaseURL: cfg.Groq.BaseURL,
			Model:   cfg.Groq.Model,
		}, log)
	default:
		return nil, apperrors.Config(fmt.Sprintf("unknown LLM provider %q", cfg.Provider))
	}
}
