// Package forecast extrapolates the cumulative-investment series with a
// least-squares linear fit. Deliberately low sophistication: a trend line,
// not a time-series model, and callers are told so in the narrative.
package forecast

import (
	"errors"
	"fmt"

	"github.com/ak18akashrajr/portfolio-llm/internal/types"
)

// ErrInsufficientData means the series has fewer than two points, so no
// trend can be fitted.
var ErrInsufficientData = errors.New("not enough data to project a trend")

const (
	DirectionUpward   = "upward"
	DirectionDownward = "downward"
)

// Projection is the result of extrapolating the fitted line HorizonDays past
// the last observed day.
type Projection struct {
	Direction   string
	Start       float64 // projected value one day past the series end
	End         float64 // projected value at the horizon
	HorizonDays int
}

// Project fits invested-value against elapsed days since the series start
// and extrapolates horizonDays beyond the last observation.
func Project(series []types.DailyPoint, horizonDays int) (Projection, error) {
	if len(series) < 2 {
		return Projection{}, ErrInsufficientData
	}

	slope, intercept := fit(series)

	lastDay := series[len(series)-1].Date.Sub(series[0].Date).Hours() / 24
	start := slope*(lastDay+1) + intercept
	end := slope*(lastDay+float64(horizonDays)) + intercept

	direction := DirectionDownward
	if end > start {
		direction = DirectionUpward
	}

	return Projection{
		Direction:   direction,
		Start:       start,
		End:         end,
		HorizonDays: horizonDays,
	}, nil
}

// Narrative renders the projection for the chat surface.
func (p Projection) Narrative() string {
	return fmt.Sprintf(
		"Based on the historical trend (linear fit), your portfolio is projected to trend **%s**.\nExpected value in %d days: ₹%.2f",
		p.Direction, p.HorizonDays, p.End,
	)
}

// fit computes ordinary least squares over (days since start, invested).
func fit(series []types.DailyPoint) (slope, intercept float64) {
	n := float64(len(series))
	t0 := series[0].Date

	var sumX, sumY, sumXY, sumXX float64
	for _, p := range series {
		x := p.Date.Sub(t0).Hours() / 24
		y := p.Invested
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}
