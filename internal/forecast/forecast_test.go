package forecast

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/ak18akashrajr/portfolio-llm/internal/types"
)

func linearSeries(days int, slope, intercept float64) []types.DailyPoint {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make([]types.DailyPoint, 0, days)
	for i := 0; i < days; i++ {
		series = append(series, types.DailyPoint{
			Date:     start.AddDate(0, 0, i),
			Invested: slope*float64(i) + intercept,
		})
	}
	return series
}

func TestProjectPerfectlyLinear(t *testing.T) {
	// y = 100x + 1000 over 30 days; the fit must recover it exactly.
	series := linearSeries(30, 100, 1000)

	p, err := Project(series, 30)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if p.Direction != DirectionUpward {
		t.Errorf("Expected upward direction, got %s", p.Direction)
	}
	// Last observed day is x=29; horizon ends at x=59.
	want := 100.0*59 + 1000
	if math.Abs(p.End-want) > 0.001 {
		t.Errorf("Expected projected end %f, got %f", want, p.End)
	}
}

func TestProjectDownward(t *testing.T) {
	series := linearSeries(20, -50, 10000)

	p, err := Project(series, 10)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if p.Direction != DirectionDownward {
		t.Errorf("Expected downward direction, got %s", p.Direction)
	}
}

func TestProjectInsufficientData(t *testing.T) {
	if _, err := Project(nil, 30); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData for empty series, got %v", err)
	}
	if _, err := Project(linearSeries(1, 0, 100), 30); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData for single point, got %v", err)
	}
}

func TestProjectFlatSeries(t *testing.T) {
	series := linearSeries(10, 0, 5000)

	p, err := Project(series, 30)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	// A flat line never exceeds its own start, so it classifies downward.
	if p.Direction != DirectionDownward {
		t.Errorf("Expected downward for flat series, got %s", p.Direction)
	}
	if math.Abs(p.End-5000) > 0.001 {
		t.Errorf("Expected projected end 5000, got %f", p.End)
	}
}

func TestNarrative(t *testing.T) {
	p := Projection{Direction: DirectionUpward, End: 12345.67, HorizonDays: 30}
	n := p.Narrative()
	if !strings.Contains(n, "upward") {
		t.Errorf("Narrative missing direction: %s", n)
	}
	if !strings.Contains(n, "12345.67") {
		t.Errorf("Narrative missing projected value: %s", n)
	}
}
