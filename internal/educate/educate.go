// Package educate explains financial concepts. Stateless: it sees no
// portfolio data at all, only the user's question.
package educate

import (
	"context"
	"fmt"

	"github.com/ak18akashrajr/portfolio-llm/internal/interfaces"
	"github.com/ak18akashrajr/portfolio-llm/internal/logger"
	"github.com/ak18akashrajr/portfolio-llm/internal/trace"
	"github.com/ak18akashrajr/portfolio-llm/internal/types"
)

// The no-recommendation rule is a policy constraint carried in the prompt,
// not enforced programmatically.
const systemPrompt = `You are a financial educator. Your goal is to explain stock market concepts in simple, easy-to-understand terms.

Guidelines:
- Keep explanations concise (under 3 paragraphs).
- Use analogies where possible.
- Define key terms like XIRR, CAGR, P/E Ratio, Beta, Alpha, Dividend Yield, etc. when asked.
- Do NOT give financial advice (buy/sell). Only explain the concepts.`

type Agent struct {
	llm         interfaces.Completer
	temperature float32
}

func New(llm interfaces.Completer, temperature float32) *Agent {
	return &Agent{llm: llm, temperature: temperature}
}

// Explain answers a concept question. External failure degrades to an
// apology string carrying the cause.
func (a *Agent) Explain(ctx context.Context, query string) string {
	ctx, span := trace.StartSpan(ctx, "educate.Explain")
	defer span.End()

	out, err := a.llm.Complete(ctx, []types.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: "Explain this concept: " + query},
	}, a.temperature)
	if err != nil {
		logger.ErrorWithErr(ctx, "Education generation failed", err)
		return fmt.Sprintf("Sorry, I couldn't generate an explanation at this time. Error: %v", err)
	}
	return out
}
