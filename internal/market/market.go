// Package market values the holdings snapshot against live prices, with a
// conservative cost-basis fallback when a price cannot be obtained.
package market

import (
	"context"
	"strings"

	"github.com/ak18akashrajr/portfolio-llm/internal/interfaces"
	"github.com/ak18akashrajr/portfolio-llm/internal/logger"
	"github.com/ak18akashrajr/portfolio-llm/internal/trace"
	"github.com/ak18akashrajr/portfolio-llm/internal/types"
)

// Service maps holdings to current market value using a PriceSource.
type Service struct {
	src    interfaces.PriceSource
	suffix string
}

// New creates a valuation service. suffix is the domestic-exchange suffix
// appended to bare symbols before lookup (e.g. ".NS").
func New(src interfaces.PriceSource, suffix string) *Service {
	return &Service{src: src, suffix: suffix}
}

// MapSymbol applies the exchange-suffix heuristic: symbols without a market
// delimiter get the domestic suffix, already-suffixed symbols pass through.
func MapSymbol(symbol, suffix string) string {
	if strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + suffix
}

// Valuate computes the current market value of the holdings. Individual
// lookup failures fall back to the invested cost basis, never zero, so the
// result is always a complete per-symbol map. Empty holdings yield a zero
// total and an empty detail map, not an error.
func (s *Service) Valuate(ctx context.Context, holdings []types.Holding) types.Valuation {
	ctx, span := trace.StartSpan(ctx, "market.Valuate")
	defer span.End()

	v := types.Valuation{Details: map[string]types.SymbolValuation{}}
	if len(holdings) == 0 {
		return v
	}

	symbols := make([]string, 0, len(holdings))
	for _, h := range holdings {
		symbols = append(symbols, MapSymbol(h.Symbol, s.suffix))
	}

	prices, err := s.src.Prices(ctx, symbols)
	if err != nil {
		logger.Degraded(ctx, "market", "cost-basis", "error", err)
		prices = nil
	}

	for _, h := range holdings {
		price := prices[MapSymbol(h.Symbol, s.suffix)]
		if p, ok := prices[h.Symbol]; ok {
			price = p
		}

		if price > 0 {
			value := h.Qty * price
			v.Details[h.Symbol] = types.SymbolValuation{
				Symbol:     h.Symbol,
				Price:      price,
				Qty:        h.Qty,
				Value:      value,
				Provenance: types.ProvenanceLive,
			}
			v.Total += value
			continue
		}

		// No live price: value the position at what was paid for it.
		v.Details[h.Symbol] = types.SymbolValuation{
			Symbol:     h.Symbol,
			Qty:        h.Qty,
			Value:      h.Invested,
			Provenance: types.ProvenanceCostBasis,
		}
		v.Total += h.Invested
	}

	return v
}
