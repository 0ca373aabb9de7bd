package model

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/haneul-ai/haneul/internal/errors"
)

func TestNewGroqClientRequiresAPIKey(t *testing.T) {
	_, err := NewGroqClient(&GroqConfig{BaseURL: "https://api.groq.com/openai/v1", Model: "llama-3.1-8b-instant"}, nil)

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConfigInvalid))
	assert.Contains(t, err.Error(), "GROQ_API_KEY")
}

func TestGroqComplete(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"choices":[{"message":{"content":"서울은 맑습니다."}}]}`))
	}))
	defer srv.Close()

	c, err := NewGroqClient(&GroqConfig{APIKey: "gsk-test", BaseURL: srv.URL, Model: "llama-3.1-8b-instant"}, nil)
	require.NoError(t, err)

	text, err := c.Complete(context.Background(), []Message{
		SystemMessage("한국어로 답하세요."),
		UserMessage("날씨는?"),
	}, 512)
	require.NoError(t, err)
	assert.Equal(t, "서울은 맑습니다.", text)

	assert.Equal(t, "Bearer gsk-test", gotAuth)
	assert.Equal(t, "llama-3.1-8b-instant", gotBody["model"])
	assert.Equal(t, float64(0), gotBody["temperature"])
	assert.Equal(t, float64(512), gotBody["max_tokens"])

	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	first, ok := messages[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "system", first["role"])
}

func TestGroqCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c, err := NewGroqClient(&GroqConfig{APIKey: "gsk-test", BaseURL: srv.URL, Model: "llama-3.1-8b-instant"}, nil)
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), []Message{UserMessage("hi")}, 512)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeModelInvalidResponse))
}

func TestGroqCompleteUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`rate limit exceeded`))
	}))
	defer srv.Close()

	c, err := NewGroqClient(&GroqConfig{APIKey: "gsk-test", BaseURL: srv.URL, Model: "llama-3.1-8b-instant"}, nil)
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), []Message{UserMessage("hi")}, 512)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeModelUnavailable))
}
