package interfaces

import (
	"context"

	"github.com/ak18akashrajr/portfolio-llm/internal/types"
)

// Completer is the text-generation collaborator: one ordered list of
// role-tagged messages in, one completion out.
type Completer interface {
	Complete(ctx context.Context, msgs []types.ChatMessage, temperature float32) (string, error)
}
