package noop

import (
	"context"

	"github.com/ak18akashrajr/portfolio-llm/internal/logger"
	"github.com/ak18akashrajr/portfolio-llm/internal/types"
)

// Completer is the fallback used when no text-generation backend is
// configured. It always returns the same notice so the deterministic paths
// keep working and the generative ones degrade visibly.
type Completer struct{}

func New() *Completer {
	return &Completer{}
}

func (c *Completer) Complete(ctx context.Context, msgs []types.ChatMessage, temperature float32) (string, error) {
	logger.Debug(ctx, "Noop completer called", "messages", len(msgs))
	return "Text generation is not configured. Set llm.provider to GROQ or OPENAI and provide an API key.", nil
}
