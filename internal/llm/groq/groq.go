// Package groq implements the Completer interface against the Groq
// OpenAI-compatible chat-completions API.
package groq

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"context"

	"github.com/ak18akashrajr/portfolio-llm/internal/api"
	"github.com/ak18akashrajr/portfolio-llm/internal/store"
	"github.com/ak18akashrajr/portfolio-llm/internal/trace"
	"github.com/ak18akashrajr/portfolio-llm/internal/types"
)

const defaultEndpoint = "https://api.groq.com/openai/v1"

type Client struct {
	cfg *store.Config
	api *api.Client
}

// New creates a Groq-backed completer. Endpoint overridable via
// GROQ_API_ENDPOINT for proxies.
func New(cfg *store.Config) *Client {
	endpoint := defaultEndpoint
	if ep := os.Getenv("GROQ_API_ENDPOINT"); ep != "" {
		endpoint = ep
	}
	return &Client{
		cfg: cfg,
		api: api.NewClient(
			api.WithBaseURL(endpoint),
			api.WithHTTPClient(api.NewTransportClient(60*time.Second)),
			api.WithLogging(true),
		),
	}
}

func (c *Client) Complete(ctx context.Context, msgs []types.ChatMessage, temperature float32) (string, error) {
	ctx, span := trace.StartSpan(ctx, "groq-api-call")
	defer span.End()

	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		return "", errors.New("GROQ_API_KEY missing")
	}

	body := map[string]any{
		"model":       c.cfg.LLM.Model,
		"messages":    msgs,
		"temperature": temperature,
		"max_tokens":  c.cfg.LLM.MaxTokens,
	}

	resp, err := c.api.POST(ctx, "/chat/completions", body, map[string]string{
		"Authorization": "Bearer " + apiKey,
	})
	if err != nil {
		return "", err
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := resp.ParseJSON(&r); err != nil {
		return "", err
	}
	if len(r.Choices) == 0 {
		return "", fmt.Errorf("groq: no choices in response")
	}

	return strings.TrimSpace(r.Choices[0].Message.Content), nil
}
