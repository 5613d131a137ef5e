package market

import (
	"context"

	"github.com/piquette/finance-go/quote"

	"github.com/ak18akashrajr/portfolio-llm/internal/logger"
)

// YahooSource fetches last-traded prices from Yahoo Finance. The default
// price provider: needs no credentials.
type YahooSource struct{}

func NewYahooSource() *YahooSource {
	return &YahooSource{}
}

// Prices looks up each symbol independently. A failed or empty quote just
// leaves the symbol out of the result map.
func (y *YahooSource) Prices(ctx context.Context, symbols []string) (map[string]float64, error) {
	out := make(map[string]float64, len(symbols))
	for _, sym := range symbols {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		q, err := quote.Get(sym)
		if err != nil || q == nil {
			logger.Debug(ctx, "Quote lookup failed", "symbol", sym, "error", err)
			continue
		}
		if q.RegularMarketPrice > 0 {
			out[sym] = q.RegularMarketPrice
		}
	}
	return out, nil
}
