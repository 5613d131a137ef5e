package market

import (
	"context"
	"strings"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"github.com/ak18akashrajr/portfolio-llm/internal/logger"
)

// KiteSource fetches last-traded prices through the Zerodha Kite Connect
// API. Needs KITE_API_KEY and KITE_ACCESS_TOKEN; useful when Yahoo throttles
// or the account already has a Kite session.
type KiteSource struct {
	kc       *kiteconnect.Client
	exchange string
}

func NewKiteSource(apiKey, accessToken, exchange string) *KiteSource {
	kc := kiteconnect.New(apiKey)
	kc.SetAccessToken(accessToken)
	return &KiteSource{kc: kc, exchange: exchange}
}

// Prices maps each symbol to Kite's "EXCHANGE:TRADINGSYMBOL" form, strips
// any Yahoo-style suffix first, and returns LTPs keyed by the symbols
// passed in. A batch failure returns the error; absent instruments are
// simply missing from the map.
func (k *KiteSource) Prices(ctx context.Context, symbols []string) (map[string]float64, error) {
	instruments := make([]string, 0, len(symbols))
	bySymbol := make(map[string]string, len(symbols))
	for _, sym := range symbols {
		inst := k.exchange + ":" + stripSuffix(sym)
		instruments = append(instruments, inst)
		bySymbol[sym] = inst
	}

	ltp, err := k.kc.GetLTP(instruments...)
	if err != nil {
		logger.Debug(ctx, "Kite LTP lookup failed", "instruments", len(instruments), "error", err)
		return nil, err
	}

	out := make(map[string]float64, len(symbols))
	for sym, inst := range bySymbol {
		if q, ok := ltp[inst]; ok && q.LastPrice > 0 {
			out[sym] = q.LastPrice
		}
	}
	return out, nil
}

func stripSuffix(symbol string) string {
	if i := strings.Index(symbol, "."); i > 0 {
		return symbol[:i]
	}
	return symbol
}
