package openai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ak18akashrajr/portfolio-llm/internal/api"
	"github.com/ak18akashrajr/portfolio-llm/internal/store"
	"github.com/ak18akashrajr/portfolio-llm/internal/trace"
	"github.com/ak18akashrajr/portfolio-llm/internal/types"
)

const defaultEndpoint = "https://api.openai.com/v1"

type Client struct {
	cfg *store.Config
	api *api.Client
}

func New(cfg *store.Config) *Client {
	endpoint := defaultEndpoint
	if ep := os.Getenv("OPENAI_API_ENDPOINT"); ep != "" {
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
	ctx, span := trace.StartSpan(ctx, "openai-api-call")
	defer span.End()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return "", errors.New("OPENAI_API_KEY missing")
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
		return "", fmt.Errorf("openai: no choices in response")
	}

	return strings.TrimSpace(r.Choices[0].Message.Content), nil
}
