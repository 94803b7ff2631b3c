package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/caresync-api/internal/config"
	"github.com/jwalitptl/caresync-api/pkg/circuitbreaker"
)

func newTestGenerator(t *testing.T, handler http.HandlerFunc) *ChatGenerator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewChatGenerator(config.AIConfig{
		APIKey:      "test-key",
		BaseURL:     srv.URL,
		Temperature: 0.7,
		MaxTokens:   300,
	})
}

func TestChatGenerator_Generate(t *testing.T) {
	var got chatRequest
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  A calm week.  "}}]}`))
	})

	text, err := g.Generate(context.Background(), "prompt", "system")
	require.NoError(t, err)
	assert.Equal(t, "A calm week.", text)

	assert.Equal(t, "gpt-4o", got.Model)
	assert.Equal(t, 0.7, got.Temperature)
	assert.Equal(t, 300, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, chatMessage{Role: "system", Content: "system"}, got.Messages[0])
	assert.Equal(t, chatMessage{Role: "user", Content: "prompt"}, got.Messages[1])
}

func TestChatGenerator_OmitsEmptySystem(t *testing.T) {
	var got chatRequest
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	})

	_, err := g.Generate(context.Background(), "prompt", "")
	require.NoError(t, err)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
}

func TestChatGenerator_Errors(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	})

	_, err := g.Generate(context.Background(), "prompt", "")
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)

	empty := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})
	_, err = empty.Generate(context.Background(), "prompt", "")
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = NewChatGenerator(config.AIConfig{}).Generate(context.Background(), "prompt", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestChatGenerator_BreakerOpens(t *testing.T) {
	calls := 0
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	for i := 0; i < 3; i++ {
		_, err := g.Generate(context.Background(), "prompt", "")
		require.Error(t, err)
	}
	_, err := g.Generate(context.Background(), "prompt", "")
	assert.ErrorIs(t, err, circuitbreaker.ErrOpen)
	assert.Equal(t, 3, calls)
}

func TestPool(t *testing.T) {
	assert.Equal(t, symptomResponses, Pool("Analyze this Reaction to Aspirin"))
	assert.Equal(t, symptomResponses, Pool("I think it's a side effect"))
	assert.Equal(t, journalResponses, Pool("Here are the user's recent moods"))
	assert.Equal(t, journalResponses, Pool("my Feeling today"))
	assert.Equal(t, insightResponses, Pool("Generate a weekly summary"))
	// symptom words win over journal words
	assert.Equal(t, symptomResponses, Pool("mood after medication"))
}

func TestFallbackGenerator(t *testing.T) {
	g := &FallbackGenerator{pick: func(n int) int { return n - 1 }}

	text, err := g.Generate(context.Background(), "hello", "ignored")
	require.NoError(t, err)
	assert.Equal(t, insightResponses[2], text)

	gen := NewFallbackGenerator()
	for i := 0; i < 20; i++ {
		text, err := gen.Generate(context.Background(), "journal", "")
		require.NoError(t, err)
		assert.Contains(t, journalResponses, text)
	}
}
