// Package insight is the qualitative analysis agent: a thin wrapper over the
// text-generation backend that answers free-form portfolio questions from a
// fixed context block of ledger-derived data.
package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/ak18akashrajr/portfolio-llm/internal/interfaces"
	"github.com/ak18akashrajr/portfolio-llm/internal/logger"
	"github.com/ak18akashrajr/portfolio-llm/internal/news"
	"github.com/ak18akashrajr/portfolio-llm/internal/trace"
	"github.com/ak18akashrajr/portfolio-llm/internal/types"
)

const systemTemplate = `You are a Portfolio Analytics Expert. Your role is to provide deep insights into the user's portfolio performance, composition, and behavior. All currency values are in Indian Rupees (INR, ₹).

Data Context:
- Holdings (Net Quantity & Avg Price):
%s

- Recent Transaction History (last %d trades):
%s

- Live Market Context (if available):
%s

- Recent Headlines (if available):
%s

Guidelines:
- Analyze PATTERNS in the trading behavior.
- Explain WHY the portfolio might be up or down based on the holdings.
- If asked about profitability, use the provided live context.
- Be concise, professional, and data-driven.
- Do NOT perform complex math yourself (like XIRR); a dedicated computation agent handles that. Focus on qualitative analysis.`

// Agent answers analytics queries. The ledger-derived context blocks are
// prepared once at construction; only the live context varies per query.
type Agent struct {
	llm          interfaces.Completer
	temperature  float32
	recentTrades int

	holdingsBlock string
	historyBlock  string

	headlines    *news.Fetcher
	maxHeadlines int
	topSymbols   []string
}

func New(llm interfaces.Completer, temperature float32, recentTrades int, data *types.PortfolioData) *Agent {
	a := &Agent{
		llm:          llm,
		temperature:  temperature,
		recentTrades: recentTrades,
	}
	a.holdingsBlock = renderHoldings(data.Holdings)
	a.historyBlock = renderHistory(data.Log, recentTrades)
	for i, h := range data.Holdings {
		if i >= 3 {
			break
		}
		a.topSymbols = append(a.topSymbols, h.Symbol)
	}
	return a
}

// EnableHeadlines wires the optional headline fetcher into the context block.
func (a *Agent) EnableHeadlines(f *news.Fetcher, max int) {
	a.headlines = f
	a.maxHeadlines = max
}

// Analyze answers the query. liveContext is an optional one-line valuation
// summary supplied by the caller. Failures of the external call degrade to a
// user-visible error string, never a fault.
func (a *Agent) Analyze(ctx context.Context, query, liveContext string) string {
	ctx, span := trace.StartSpan(ctx, "insight.Analyze")
	defer span.End()

	if liveContext == "" {
		liveContext = "unavailable"
	}

	system := fmt.Sprintf(systemTemplate,
		a.holdingsBlock, a.recentTrades, a.historyBlock, liveContext, a.headlineBlock(ctx))

	out, err := a.llm.Complete(ctx, []types.ChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: query},
	}, a.temperature)
	if err != nil {
		logger.ErrorWithErr(ctx, "Insight generation failed", err)
		return fmt.Sprintf("Sorry, I couldn't analyze your portfolio right now. Error: %v", err)
	}
	return out
}

func (a *Agent) headlineBlock(ctx context.Context) string {
	if a.headlines == nil || len(a.topSymbols) == 0 {
		return "unavailable"
	}
	var all []news.Headline
	per := a.maxHeadlines / len(a.topSymbols)
	if per < 1 {
		per = 1
	}
	for _, sym := range a.topSymbols {
		all = append(all, a.headlines.Fetch(ctx, sym, per)...)
	}
	block := news.Render(all)
	if block == "" {
		return "unavailable"
	}
	return block
}

func renderHoldings(holdings []types.Holding) string {
	if len(holdings) == 0 {
		return "(no open positions)"
	}
	var b strings.Builder
	for _, h := range holdings {
		fmt.Fprintf(&b, "%s (%s): qty %.2f, avg price ₹%.2f, invested ₹%.2f\n",
			h.Symbol, h.Name, h.Qty, h.AvgPrice, h.Invested)
	}
	return b.String()
}

func renderHistory(log []types.Transaction, n int) string {
	if len(log) == 0 {
		return "(no transactions)"
	}
	start := len(log) - n
	if start < 0 {
		start = 0
	}
	var b strings.Builder
	for _, t := range log[start:] {
		fmt.Fprintf(&b, "%s  %-4s %s (%s) qty %.2f value ₹%.2f\n",
			t.Time.Format("2006-01-02 15:04"), t.Side, t.Symbol, t.Name, t.Qty, t.Value)
	}
	return b.String()
}
