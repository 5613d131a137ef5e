// Package llm selects the text-generation backend from configuration.
package llm

import (
	"github.com/ak18akashrajr/portfolio-llm/internal/interfaces"
	"github.com/ak18akashrajr/portfolio-llm/internal/llm/groq"
	"github.com/ak18akashrajr/portfolio-llm/internal/llm/noop"
	"github.com/ak18akashrajr/portfolio-llm/internal/llm/openai"
	"github.com/ak18akashrajr/portfolio-llm/internal/store"
)

// NewCompleter returns the configured completion backend. Unknown providers
// fall back to the noop completer rather than failing startup.
func NewCompleter(cfg *store.Config) interfaces.Completer {
	switch cfg.LLM.Provider {
	case "GROQ":
		return groq.New(cfg)
	case "OPENAI":
		return openai.New(cfg)
	default:
		return noop.New()
	}
}
