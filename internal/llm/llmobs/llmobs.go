package llmobs

import (
	"context"

	"github.com/ak18akashrajr/portfolio-llm/internal/interfaces"
	"github.com/ak18akashrajr/portfolio-llm/internal/logger"
	"github.com/ak18akashrajr/portfolio-llm/internal/trace"
	"github.com/ak18akashrajr/portfolio-llm/internal/types"
)

// observableCompleter wraps a Completer with observability (logging & tracing)
type observableCompleter struct {
	completer interfaces.Completer
}

// Compile-time interface check
var _ interfaces.Completer = (*observableCompleter)(nil)

// Wrap wraps a completer with observability middleware
func Wrap(completer interfaces.Completer) interfaces.Completer {
	return &observableCompleter{completer: completer}
}

func (oc *observableCompleter) Complete(ctx context.Context, msgs []types.ChatMessage, temperature float32) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Complete")
	defer span.End()

	// Skip(1) so the log reports the actual caller, not this middleware
	logger.DebugSkip(ctx, 1, "Requesting completion",
		"messages", len(msgs),
		"temperature", temperature,
	)

	out, err := oc.completer.Complete(ctx, msgs, temperature)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Completion failed", err,
			"messages", len(msgs),
		)
		return "", err
	}

	logger.DebugSkip(ctx, 1, "Completion received", "chars", len(out))
	return out, nil
}
