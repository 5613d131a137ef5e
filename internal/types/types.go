package types

import "time"

// Side is the direction of an order.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Transaction is one executed order from the ledger. Immutable once ingested.
type Transaction struct {
	Time   time.Time
	Symbol string
	Name   string
	Side   Side
	Qty    float64
	Value  float64
	Status string
}

// QtyDelta is the signed quantity impact: +Qty for BUY, -Qty for SELL.
func (t Transaction) QtyDelta() float64 {
	if t.Side == SideBuy {
		return t.Qty
	}
	return -t.Qty
}

// CashDelta is the signed cash impact: -Value for BUY (outflow), +Value for SELL.
func (t Transaction) CashDelta() float64 {
	if t.Side == SideBuy {
		return -t.Value
	}
	return t.Value
}

// DailyPoint is one day of the cumulative-investment series. Invested is net
// cash deployed as of Date (positive when money has left the holder).
type DailyPoint struct {
	Date     time.Time `json:"date"`
	Invested float64   `json:"invested"`
}

// Holding is one open position, netted over all historical orders.
type Holding struct {
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Qty      float64 `json:"qty"`
	NetCash  float64 `json:"net_cash"`
	AvgPrice float64 `json:"avg_price"`
	Invested float64 `json:"invested"`
}

// PortfolioData is the shared data context computed once at startup and lent
// read-only to every agent.
type PortfolioData struct {
	Log      []Transaction
	Series   []DailyPoint
	Holdings []Holding
}

// Provenance tags where a symbol valuation came from.
type Provenance string

const (
	ProvenanceLive      Provenance = "live"
	ProvenanceCostBasis Provenance = "cost-basis-estimate"
)

// SymbolValuation is the per-instrument result of a valuation pass.
// Price is 0 when no live price was available.
type SymbolValuation struct {
	Symbol     string     `json:"symbol"`
	Price      float64    `json:"price"`
	Qty        float64    `json:"qty"`
	Value      float64    `json:"value"`
	Provenance Provenance `json:"provenance"`
}

// Valuation is a full portfolio valuation. Never cached: prices move.
type Valuation struct {
	Total   float64                    `json:"total"`
	Details map[string]SymbolValuation `json:"details"`
}

// ChatMessage is one role-tagged turn sent to the completion backend.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Summary holds the capital-deployed aggregates over the full transaction log.
type Summary struct {
	TotalDeployed float64 `json:"total_deployed"`
	TotalRealized float64 `json:"total_realized"`
	NetDeployed   float64 `json:"net_deployed"`
}

// Growth carries a percentage that may be indeterminate. Known is false when
// the series lacks the exact reference date; renderers must not show Pct then.
type Growth struct {
	Known bool    `json:"known"`
	Pct   float64 `json:"pct"`
}

// QuarterGrowth is the period-end cumulative investment of one calendar
// quarter and its percent change vs the prior quarter.
type QuarterGrowth struct {
	Quarter   string  `json:"quarter"`
	Invested  float64 `json:"invested"`
	GrowthPct float64 `json:"growth_pct"`
}

// PortfolioStats is the structured record served to the presentation layer.
type PortfolioStats struct {
	InvestedValue  float64         `json:"invested_value"`
	MarketValue    float64         `json:"market_value"`
	UnrealizedPnL  float64         `json:"unrealized_pnl"`
	PnLPct         float64         `json:"pnl_pct"`
	TotalOrders    int             `json:"total_orders"`
	QoQGrowth      []QuarterGrowth `json:"qoq_growth"`
	SixMonthGrowth Growth          `json:"six_month_growth"`
}
