package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jwalitptl/caresync-api/internal/config"
	"github.com/jwalitptl/caresync-api/pkg/circuitbreaker"
)

const (
	defaultModel     = "gpt-4o"
	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 1 << 20
)

var (
	ErrNotConfigured = errors.New("ai: no api key configured")
	ErrEmptyResponse = errors.New("ai: empty completion")
)

// HTTPError is a non-2xx answer from the completion endpoint.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("ai: http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("ai: http error: status=%d body=%s", e.StatusCode, e.Body)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ChatGenerator calls an OpenAI-compatible chat completion endpoint.
type ChatGenerator struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
	breaker     *circuitbreaker.CircuitBreaker
}

func NewChatGenerator(cfg config.AIConfig) *ChatGenerator {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	return &ChatGenerator{
		baseURL:     strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient:  &http.Client{Timeout: timeout},
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "ai",
			MaxFailures: 3,
			Interval:    time.Minute,
			Timeout:     time.Minute,
		}),
	}
}

func (g *ChatGenerator) Generate(ctx context.Context, prompt, system string) (string, error) {
	if g.apiKey == "" {
		return "", ErrNotConfigured
	}

	var text string
	err := g.breaker.Execute(func() error {
		var err error
		text, err = g.complete(ctx, prompt, system)
		return err
	})
	return text, err
}

func (g *ChatGenerator) complete(ctx context.Context, prompt, system string) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	b, err := json.Marshal(chatRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("ai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("ai: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("ai: unmarshal response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
