// Package ledger ingests the raw order-history export and derives the shared
// portfolio data context: the cleaned transaction log, the daily
// cumulative-investment series and the open-holdings snapshot.
package ledger

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/ak18akashrajr/portfolio-llm/internal/types"
)

// ErrMalformedRecord marks a ledger row that is present but unparseable.
// Fatal to startup: a silently skipped row would corrupt every downstream
// cash-flow computation.
var ErrMalformedRecord = errors.New("malformed ledger record")

const (
	// TimeLayout is the fixed execution-timestamp format of the export.
	TimeLayout = "02-01-2006 03:04 PM"

	statusExecuted = "Executed"
	headerPrefix   = "Execution date and time"
)

type rawOrder struct {
	Executed string `csv:"Execution date and time"`
	Name     string `csv:"Stock name"`
	Symbol   string `csv:"Symbol"`
	Status   string `csv:"Order status"`
	Side     string `csv:"Type"`
	Qty      string `csv:"Quantity"`
	Value    string `csv:"Value"`
}

// Load reads the CSV export at path and builds the portfolio data context.
func Load(path string) (*types.PortfolioData, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ledger %s: %w", path, err)
	}
	return Parse(b)
}

// Parse builds the portfolio data context from raw CSV bytes. Broker exports
// carry metadata lines above the real header row; everything before it is
// skipped.
func Parse(data []byte) (*types.PortfolioData, error) {
	payload, err := stripPreamble(data)
	if err != nil {
		return nil, err
	}

	var rows []rawOrder
	if err := gocsv.UnmarshalBytes(payload, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	log := make([]types.Transaction, 0, len(rows))
	for i, r := range rows {
		// Rows without an instrument identity or timestamp are dropped.
		if strings.TrimSpace(r.Symbol) == "" || strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Executed) == "" {
			continue
		}

		ts, err := time.Parse(TimeLayout, strings.TrimSpace(r.Executed))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: bad execution time %q", ErrMalformedRecord, i+1, r.Executed)
		}

		if strings.TrimSpace(r.Status) != statusExecuted {
			continue
		}

		qty, err := parseNumber(r.Qty)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: bad quantity %q", ErrMalformedRecord, i+1, r.Qty)
		}
		value, err := parseNumber(r.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: bad value %q", ErrMalformedRecord, i+1, r.Value)
		}

		side := types.SideSell
		if strings.EqualFold(strings.TrimSpace(r.Side), string(types.SideBuy)) {
			side = types.SideBuy
		}

		log = append(log, types.Transaction{
			Time:   ts,
			Symbol: strings.TrimSpace(r.Symbol),
			Name:   strings.TrimSpace(r.Name),
			Side:   side,
			Qty:    qty,
			Value:  value,
			Status: statusExecuted,
		})
	}

	// Ascending order is a correctness precondition for the series and all
	// cash-flow computations, not an optimization.
	sort.SliceStable(log, func(i, j int) bool { return log[i].Time.Before(log[j].Time) })

	return &types.PortfolioData{
		Log:      log,
		Series:   BuildSeries(log),
		Holdings: BuildHoldings(log),
	}, nil
}

// stripPreamble returns the CSV payload starting at the real header row.
func stripPreamble(data []byte) ([]byte, error) {
	lines := bytes.Split(data, []byte("\n"))
	for i, line := range lines {
		if bytes.HasPrefix(bytes.TrimSpace(line), []byte(headerPrefix)) {
			return bytes.Join(lines[i:], []byte("\n")), nil
		}
	}
	return nil, fmt.Errorf("%w: header row %q not found", ErrMalformedRecord, headerPrefix)
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "₹")
	if s == "" {
		return 0, errors.New("empty number")
	}
	return strconv.ParseFloat(s, 64)
}

// BuildSeries computes the daily cumulative-investment series: one point per
// calendar day between the first and last transaction inclusive, gapless,
// with zero-activity days carried forward at the prior value.
func BuildSeries(log []types.Transaction) []types.DailyPoint {
	if len(log) == 0 {
		return nil
	}

	activity := map[time.Time]float64{}
	for _, t := range log {
		d := dateOnly(t.Time)
		activity[d] += t.CashDelta()
	}

	start := dateOnly(log[0].Time)
	end := dateOnly(log[len(log)-1].Time)

	var series []types.DailyPoint
	cum := 0.0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		// Investment is positive when net cash has left the holder.
		cum -= activity[d]
		series = append(series, types.DailyPoint{Date: d, Invested: cum})
	}
	return series
}

// BuildHoldings nets quantity and cash per instrument and keeps only open
// positions. Closed and short positions are dropped, not retained at zero.
func BuildHoldings(log []types.Transaction) []types.Holding {
	type key struct{ symbol, name string }
	type agg struct{ qty, cash float64 }

	groups := map[key]*agg{}
	for _, t := range log {
		k := key{t.Symbol, t.Name}
		g := groups[k]
		if g == nil {
			g = &agg{}
			groups[k] = g
		}
		g.qty += t.QtyDelta()
		g.cash += t.CashDelta()
	}

	var holdings []types.Holding
	for k, g := range groups {
		if g.qty <= 0 {
			continue
		}
		h := types.Holding{
			Symbol:   k.symbol,
			Name:     k.name,
			Qty:      g.qty,
			NetCash:  g.cash,
			Invested: -g.cash,
		}
		// qty > 0 is enforced above, the guard is a defensive invariant.
		if g.qty != 0 {
			h.AvgPrice = -g.cash / g.qty
		}
		holdings = append(holdings, h)
	}

	sort.Slice(holdings, func(i, j int) bool { return holdings[i].Symbol < holdings[j].Symbol })
	return holdings
}

// QuarterlyGrowth reports the period-end cumulative investment per calendar
// quarter and its percent change vs the prior quarter. The first quarter has
// no prior and reports 0.
func QuarterlyGrowth(series []types.DailyPoint) []types.QuarterGrowth {
	if len(series) == 0 {
		return nil
	}

	var out []types.QuarterGrowth
	for _, p := range series {
		q := quarterKey(p.Date)
		if len(out) > 0 && out[len(out)-1].Quarter == q {
			out[len(out)-1].Invested = p.Invested
			continue
		}
		out = append(out, types.QuarterGrowth{Quarter: q, Invested: p.Invested})
	}

	for i := range out {
		if i == 0 {
			continue
		}
		prev := out[i-1].Invested
		if prev == 0 {
			continue
		}
		out[i].GrowthPct = (out[i].Invested - prev) / prev * 100
	}
	return out
}

// SixMonthGrowth is the percent change between the latest series value and
// the value exactly six calendar months earlier. When that date falls before
// the series start the result is indeterminate, never interpolated.
func SixMonthGrowth(series []types.DailyPoint) types.Growth {
	if len(series) == 0 {
		return types.Growth{}
	}

	latest := series[len(series)-1]
	ref := latest.Date.AddDate(0, -6, 0)
	if ref.Before(series[0].Date) {
		return types.Growth{}
	}

	idx := int(ref.Sub(series[0].Date).Hours() / 24)
	if idx < 0 || idx >= len(series) || !series[idx].Date.Equal(ref) {
		return types.Growth{}
	}

	then := series[idx].Invested
	if then == 0 {
		return types.Growth{Known: true, Pct: 0}
	}
	return types.Growth{Known: true, Pct: (latest.Invested - then) / then * 100}
}

func quarterKey(t time.Time) string {
	return fmt.Sprintf("%dQ%d", t.Year(), (int(t.Month())-1)/3+1)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
