package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haneul-ai/haneul/internal/config"
	apperrors "github.com/haneul-ai/haneul/internal/errors"
)

func TestNewProvider(t *testing.T) {
	t.Run("ollama", func(t *testing.T) {
		cfg := config.Default()
		p, err := NewProvider(&cfg.LLM, nil)
		require.NoError(t, err)
		assert.Equal(t, "ollama", p.Name())
	})

	t.Run("groq", func(t *testing.T) {
		cfg := config.Default()
		cfg.LLM.Provider = config.ProviderGroq
		cfg.LLM.Groq.APIKey = "gsk-test"
		p, err := NewProvider(&cfg.LLM, nil)
		require.NoError(t, err)
		assert.Equal(t, "groq", p.Name())
	})

	t.Run("groq without key", func(t *testing.T) {
		cfg := config.Default()
		cfg.LLM.Provider = config.ProviderGroq
		_, err := NewProvider(&cfg.LLM, nil)
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeConfigInvalid))
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := config.Default()
		cfg.LLM.Provider = "anthropic"
		_, err := NewProvider(&cfg.LLM, nil)
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeConfigInvalid))
	})
}
