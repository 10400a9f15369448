package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/thrivera/catalog-enricher/internal/core/domain"
	"github.com/thrivera/catalog-enricher/internal/infrastructure/resilience"
)

// Client calls the chat-completions endpoint to rewrite product copy.
// A missing credential is an expected failure path, reported per call so
// the voice generator can fall back, never a startup error.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	guard      *resilience.Guard
}

func New(baseURL, apiKey, model string, guard *resilience.Guard) *Client {
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     strings.TrimSpace(apiKey),
		model:      model,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		guard:      guard,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) GenerateDescription(ctx context.Context, instruction string) (string, error) {
	if c.apiKey == "" {
		return "", domain.ErrMissingCredential
	}

	request := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: instruction}},
		MaxTokens:   300,
		Temperature: 0.7,
	}

	var response chatResponse
	call := func(callCtx context.Context) error {
		return c.postJSON(callCtx, "/v1/chat/completions", request, &response, "generate")
	}

	var err error
	if c.guard != nil {
		err = c.guard.Do(ctx, "openai.generate", call, classifyOpenAIError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return "", err
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("generate response has no choices")
	}
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
