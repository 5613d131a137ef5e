// Package quant holds the deterministic financial computations: the
// money-weighted return solver and the capital-deployed summaries.
package quant

import (
	"errors"
	"math"
	"time"

	"github.com/ak18akashrajr/portfolio-llm/internal/types"
)

var (
	// ErrTerminalRequired means the caller asked for a money-weighted return
	// without supplying a terminal portfolio value. This package has no
	// live-price access and never guesses one.
	ErrTerminalRequired = errors.New("XIRR requires current portfolio value, invoke with terminal value")

	// ErrDegenerateFlows means the cash-flow series cannot support a rate:
	// fewer than two opposite-signed flows, or zero elapsed time.
	ErrDegenerateFlows = errors.New("cash-flow series is degenerate")

	// ErrNoConvergence means the solver found no sign change in the search
	// interval.
	ErrNoConvergence = errors.New("rate solver did not converge")
)

// Flow is one dated cash movement, negative for money leaving the holder.
type Flow struct {
	Date   time.Time
	Amount float64
}

// XIRR computes the annualized money-weighted return, as a percentage, of
// the full transaction log plus a synthetic terminal inflow of terminal on
// asOf (current holdings treated as liquidated that day). terminal must be
// positive; the caller obtains it from a valuation pass.
func XIRR(log []types.Transaction, terminal float64, asOf time.Time) (float64, error) {
	if terminal <= 0 {
		return 0, ErrTerminalRequired
	}

	flows := make([]Flow, 0, len(log)+1)
	for _, t := range log {
		flows = append(flows, Flow{Date: t.Time, Amount: t.CashDelta()})
	}
	flows = append(flows, Flow{Date: asOf, Amount: terminal})

	return Rate(flows)
}

// Rate solves for the rate r that zeroes the net present value of the dated
// flows: sum(amount_i / (1+r)^(days_i/365)) == 0. Returned as a percentage.
func Rate(flows []Flow) (float64, error) {
	if err := checkFlows(flows); err != nil {
		return 0, err
	}

	t0 := flows[0].Date
	for _, f := range flows {
		if f.Date.Before(t0) {
			t0 = f.Date
		}
	}

	npv := func(r float64) float64 {
		var sum float64
		for _, f := range flows {
			years := f.Date.Sub(t0).Hours() / 24 / 365
			sum += f.Amount / math.Pow(1+r, years)
		}
		return sum
	}

	// Bracket the root, then bisect. Rates below -100% are meaningless.
	lo, hi := -0.9999, 10.0
	flo, fhi := npv(lo), npv(hi)
	for fhi*flo > 0 && hi < 1e6 {
		hi *= 10
		fhi = npv(hi)
	}
	if flo*fhi > 0 {
		return 0, ErrNoConvergence
	}

	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		fm := npv(mid)
		if math.Abs(fm) < 1e-9 || hi-lo < 1e-10 {
			return mid * 100, nil
		}
		if fm*flo < 0 {
			hi = mid
		} else {
			lo, flo = mid, fm
		}
	}
	return (lo + hi) / 2 * 100, nil
}

func checkFlows(flows []Flow) error {
	var hasPos, hasNeg bool
	for _, f := range flows {
		if f.Amount > 0 {
			hasPos = true
		}
		if f.Amount < 0 {
			hasNeg = true
		}
	}
	if !hasPos || !hasNeg {
		return ErrDegenerateFlows
	}

	minD, maxD := flows[0].Date, flows[0].Date
	for _, f := range flows {
		if f.Date.Before(minD) {
			minD = f.Date
		}
		if f.Date.After(maxD) {
			maxD = f.Date
		}
	}
	if !maxD.After(minD) {
		return ErrDegenerateFlows
	}
	return nil
}

// Summary sums BUY and SELL values over the transaction log. Needs no
// terminal value.
func Summary(log []types.Transaction) types.Summary {
	var s types.Summary
	for _, t := range log {
		switch t.Side {
		case types.SideBuy:
			s.TotalDeployed += t.Value
		case types.SideSell:
			s.TotalRealized += t.Value
		}
	}
	s.NetDeployed = s.TotalDeployed - s.TotalRealized
	return s
}
