// Package router classifies a portfolio question into an intent and
// dispatches it to the agent that can answer it. Every branch degrades to a
// useful response: a failed classification falls back to the analytics agent,
// a failed agent falls back to a plain-language apology, and a panic anywhere
// below is caught at this boundary.
package router

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ak18akashrajr/portfolio-llm/internal/educate"
	"github.com/ak18akashrajr/portfolio-llm/internal/forecast"
	"github.com/ak18akashrajr/portfolio-llm/internal/insight"
	"github.com/ak18akashrajr/portfolio-llm/internal/interfaces"
	"github.com/ak18akashrajr/portfolio-llm/internal/ledger"
	"github.com/ak18akashrajr/portfolio-llm/internal/logger"
	"github.com/ak18akashrajr/portfolio-llm/internal/market"
	"github.com/ak18akashrajr/portfolio-llm/internal/quant"
	"github.com/ak18akashrajr/portfolio-llm/internal/querylog"
	"github.com/ak18akashrajr/portfolio-llm/internal/session"
	"github.com/ak18akashrajr/portfolio-llm/internal/trace"
	"github.com/ak18akashrajr/portfolio-llm/internal/types"
)

// Intent is the closed set of query categories the router dispatches on.
type Intent int

const (
	IntentUnclassified Intent = iota
	IntentFinancial
	IntentLiveMarket
	IntentPrediction
	IntentEducation
	IntentAnalytics
	IntentChat
)

var intentLabels = map[Intent]string{
	IntentUnclassified: "UNCLASSIFIED",
	IntentFinancial:    "MATH",
	IntentLiveMarket:   "LIVE",
	IntentPrediction:   "PREDICT",
	IntentEducation:    "EDU",
	IntentAnalytics:    "ANALYTICS",
	IntentChat:         "CHAT",
}

func (i Intent) String() string {
	if s, ok := intentLabels[i]; ok {
		return s
	}
	return "UNCLASSIFIED"
}

// ParseIntent normalizes a model reply into an Intent. The model sometimes
// wraps the label in prose ("Category: MATH."), so matching is by
// case-insensitive substring. Longer labels are checked before their
// substrings (PREDICT before EDU is irrelevant, but ANALYTICS contains no
// other label; LIVE must not match inside nothing else here).
func ParseIntent(raw string) Intent {
	s := strings.ToUpper(raw)
	for _, c := range []struct {
		label  string
		intent Intent
	}{
		{"ANALYTICS", IntentAnalytics},
		{"PREDICT", IntentPrediction},
		{"MATH", IntentFinancial},
		{"LIVE", IntentLiveMarket},
		{"CHAT", IntentChat},
		{"EDU", IntentEducation},
	} {
		if strings.Contains(s, c.label) {
			return c.intent
		}
	}
	return IntentUnclassified
}

const classifySystemPrompt = `You are an intent classifier for a personal stock portfolio assistant.
Classify the user's query into exactly one of these categories and reply with
ONLY the category label, nothing else:

MATH - deterministic portfolio arithmetic: XIRR, returns, totals of invested or realized capital.
LIVE - current market value of the portfolio or of individual held stocks.
PREDICT - future portfolio value, trend, or projection.
EDU - explaining a financial concept or term (what is XIRR, what is a P/E ratio).
ANALYTICS - opinions, analysis, review, or advice about the user's specific portfolio.
CHAT - greetings, small talk, or questions about what you can do.`

// Router owns intent classification and agent dispatch over one loaded
// portfolio.
type Router struct {
	llm          interfaces.Completer
	classifyTemp float32
	data         *types.PortfolioData
	market       *market.Service
	insight      *insight.Agent
	educate      *educate.Agent
	horizonDays  int
	sess         *session.Session
}

func New(llm interfaces.Completer, classifyTemp float32, data *types.PortfolioData,
	mkt *market.Service, ins *insight.Agent, edu *educate.Agent,
	horizonDays int, sess *session.Session) *Router {
	return &Router{
		llm:          llm,
		classifyTemp: classifyTemp,
		data:         data,
		market:       mkt,
		insight:      ins,
		educate:      edu,
		horizonDays:  horizonDays,
		sess:         sess,
	}
}

// Classify asks the completion backend for an intent label. A backend failure
// or an unparseable reply degrades to IntentAnalytics so the query still gets
// the most broadly useful treatment.
func (r *Router) Classify(ctx context.Context, query string) (Intent, bool) {
	msgs := []types.ChatMessage{
		{Role: "system", Content: classifySystemPrompt},
		{Role: "user", Content: query},
	}
	reply, err := r.llm.Complete(ctx, msgs, r.classifyTemp)
	if err != nil {
		logger.Degraded(ctx, "classifier", "routing to analytics agent", "error", err.Error())
		return IntentAnalytics, true
	}
	intent := ParseIntent(reply)
	if intent == IntentUnclassified {
		logger.Degraded(ctx, "classifier", "routing to analytics agent", "reply", reply)
		return IntentAnalytics, true
	}
	return intent, false
}

// RouteQuery classifies and answers one query. It never returns an error:
// whatever goes wrong, the caller gets a human-readable string.
func (r *Router) RouteQuery(ctx context.Context, query string) (response string) {
	ctx, span := trace.StartSpan(ctx, "router.RouteQuery")
	defer span.End()

	start := time.Now()
	intent := IntentUnclassified
	degraded := false

	defer func() {
		if rec := recover(); rec != nil {
			degraded = true
			logger.Error(ctx, "agent panicked", "intent", intent.String(), "cause", fmt.Sprint(rec))
			response = fmt.Sprintf("Sorry, something went wrong while handling that request (%v). Please try again.", rec)
		}
		if r.sess != nil {
			r.sess.Append(query, response)
		}
		durationMs := time.Since(start).Milliseconds()
		logger.Query(ctx, intent.String(), degraded, durationMs, "query", query)
		if err := querylog.Append(querylog.Entry{
			Query:      query,
			Intent:     intent.String(),
			Degraded:   degraded,
			DurationMs: durationMs,
		}); err != nil {
			logger.Warn(ctx, "query log append failed", "error", err.Error())
		}
	}()

	intent, degraded = r.Classify(ctx, query)

	switch intent {
	case IntentFinancial:
		return r.answerMath(ctx, query)
	case IntentLiveMarket:
		return r.answerLive(ctx)
	case IntentPrediction:
		return r.answerPredict(ctx)
	case IntentEducation:
		return r.educate.Explain(ctx, query)
	case IntentChat:
		return capabilityMessage
	default:
		return r.answerAnalytics(ctx, query)
	}
}

const capabilityMessage = `Hi! I'm your portfolio assistant. I can help you with:
- Portfolio math: XIRR, total invested, and realized amounts
- Live market value of your holdings
- Trend projections for your portfolio
- Explaining financial concepts
- Analysis and review of your portfolio

Ask me anything about your investments.`

func (r *Router) answerMath(ctx context.Context, query string) string {
	if strings.Contains(strings.ToLower(query), "xirr") {
		valuation := r.market.Valuate(ctx, r.data.Holdings)
		rate, err := quant.XIRR(r.data.Log, valuation.Total, time.Now())
		if err != nil {
			logger.Degraded(ctx, "quant", "returning solver error to user", "error", err.Error())
			return fmt.Sprintf("I couldn't compute XIRR for your portfolio: %v.", err)
		}
		return fmt.Sprintf("Your portfolio XIRR is %.2f%% (annualized, money-weighted, using a current value of ₹%.2f).", rate, valuation.Total)
	}

	s := quant.Summary(r.data.Log)
	return fmt.Sprintf(
		"Here are your portfolio totals:\n- Total capital deployed (buys): ₹%.2f\n- Total capital realized (sells): ₹%.2f\n- Net capital deployed: ₹%.2f",
		s.TotalDeployed, s.TotalRealized, s.NetDeployed,
	)
}

func (r *Router) answerLive(ctx context.Context) string {
	v := r.market.Valuate(ctx, r.data.Holdings)
	if len(v.Details) == 0 {
		return "Could not fetch live data at the moment."
	}

	var b strings.Builder
	b.WriteString("Current portfolio valuation:\n")
	for _, h := range r.data.Holdings {
		d, ok := v.Details[h.Symbol]
		if !ok {
			continue
		}
		if d.Provenance == types.ProvenanceLive {
			fmt.Fprintf(&b, "- %s: %.0f × ₹%.2f = ₹%.2f\n", d.Symbol, d.Qty, d.Price, d.Value)
		} else {
			fmt.Fprintf(&b, "- %s: ₹%.2f (cost basis, live price unavailable)\n", d.Symbol, d.Value)
		}
	}
	fmt.Fprintf(&b, "Total: ₹%.2f", v.Total)
	return b.String()
}

func (r *Router) answerPredict(ctx context.Context) string {
	p, err := forecast.Project(r.data.Series, r.horizonDays)
	if err != nil {
		logger.Degraded(ctx, "forecast", "returning explanation to user", "error", err.Error())
		return "I don't have enough portfolio history yet to project a trend. Check back after a few more transactions."
	}
	return p.Narrative()
}

func (r *Router) answerAnalytics(ctx context.Context, query string) string {
	liveContext := ""
	v := r.market.Valuate(ctx, r.data.Holdings)
	if v.Total > 0 {
		liveContext = fmt.Sprintf("Current Live Portfolio Value: ₹%.2f", v.Total)
	}
	return r.insight.Analyze(ctx, query, liveContext)
}

// PortfolioStats assembles the structured dashboard record: book value from
// the investment series, market value from a fresh valuation, and the growth
// views over the series.
func (r *Router) PortfolioStats(ctx context.Context) types.PortfolioStats {
	ctx, span := trace.StartSpan(ctx, "router.PortfolioStats")
	defer span.End()

	stats := types.PortfolioStats{
		TotalOrders:    len(r.data.Log),
		QoQGrowth:      ledger.QuarterlyGrowth(r.data.Series),
		SixMonthGrowth: ledger.SixMonthGrowth(r.data.Series),
	}
	if n := len(r.data.Series); n > 0 {
		stats.InvestedValue = r.data.Series[n-1].Invested
	}

	v := r.market.Valuate(ctx, r.data.Holdings)
	stats.MarketValue = v.Total
	stats.UnrealizedPnL = stats.MarketValue - stats.InvestedValue
	if stats.InvestedValue != 0 {
		stats.PnLPct = stats.UnrealizedPnL / stats.InvestedValue * 100
	}
	return stats
}
