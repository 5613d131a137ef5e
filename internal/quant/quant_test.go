package quant

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ak18akashrajr/portfolio-llm/internal/types"
)

func day(offset int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestXIRRSingleYearFlow(t *testing.T) {
	log := []types.Transaction{
		{Time: day(0), Symbol: "ABC", Side: types.SideBuy, Qty: 10, Value: 1000},
	}

	pct, err := XIRR(log, 1100, day(365))
	if err != nil {
		t.Fatalf("XIRR failed: %v", err)
	}
	if math.Abs(pct-10) > 0.01 {
		t.Errorf("Expected roughly 10%%, got %f", pct)
	}
}

func TestXIRRTerminalRequired(t *testing.T) {
	log := []types.Transaction{
		{Time: day(0), Symbol: "ABC", Side: types.SideBuy, Qty: 10, Value: 1000},
	}

	_, err := XIRR(log, 0, day(10))
	if !errors.Is(err, ErrTerminalRequired) {
		t.Errorf("Expected ErrTerminalRequired, got %v", err)
	}
}

func TestXIRRZeroElapsedTime(t *testing.T) {
	// BUY of 100 and terminal value of 100 on the same day: a computation
	// failure, never a numeric result or a crash.
	log := []types.Transaction{
		{Time: day(0), Symbol: "ABC", Side: types.SideBuy, Qty: 1, Value: 100},
	}

	_, err := XIRR(log, 100, day(0))
	if !errors.Is(err, ErrDegenerateFlows) {
		t.Errorf("Expected ErrDegenerateFlows, got %v", err)
	}
}

func TestRateRejectsSameSignFlows(t *testing.T) {
	flows := []Flow{
		{Date: day(0), Amount: -100},
		{Date: day(100), Amount: -200},
	}

	_, err := Rate(flows)
	if !errors.Is(err, ErrDegenerateFlows) {
		t.Errorf("Expected ErrDegenerateFlows, got %v", err)
	}
}

func TestRateNegativeReturn(t *testing.T) {
	flows := []Flow{
		{Date: day(0), Amount: -1000},
		{Date: day(365), Amount: 900},
	}

	pct, err := Rate(flows)
	if err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if math.Abs(pct-(-10)) > 0.01 {
		t.Errorf("Expected roughly -10%%, got %f", pct)
	}
}

func TestSummary(t *testing.T) {
	log := []types.Transaction{
		{Time: day(0), Symbol: "ABC", Side: types.SideBuy, Qty: 10, Value: 1000},
		{Time: day(1), Symbol: "DEF", Side: types.SideBuy, Qty: 5, Value: 500},
		{Time: day(2), Symbol: "ABC", Side: types.SideSell, Qty: 4, Value: 600},
	}

	s := Summary(log)
	if s.TotalDeployed != 1500 {
		t.Errorf("Expected deployed 1500, got %f", s.TotalDeployed)
	}
	if s.TotalRealized != 600 {
		t.Errorf("Expected realized 600, got %f", s.TotalRealized)
	}
	if s.NetDeployed != 900 {
		t.Errorf("Expected net 900, got %f", s.NetDeployed)
	}
}

func TestSummaryEmptyLog(t *testing.T) {
	s := Summary(nil)
	if s.TotalDeployed != 0 || s.TotalRealized != 0 || s.NetDeployed != 0 {
		t.Errorf("Expected zero summary for empty log, got %+v", s)
	}
}
