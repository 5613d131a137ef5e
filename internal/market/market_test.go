package market

import (
	"context"
	"errors"
	"testing"

	"github.com/ak18akashrajr/portfolio-llm/internal/types"
)

type stubSource struct {
	prices map[string]float64
	err    error
	asked  []string
}

func (s *stubSource) Prices(ctx context.Context, symbols []string) (map[string]float64, error) {
	s.asked = symbols
	return s.prices, s.err
}

func holdingsFixture() []types.Holding {
	return []types.Holding{
		{Symbol: "RELIANCE", Name: "Reliance Industries", Qty: 10, Invested: 25000},
		{Symbol: "GOLDBEES.BO", Name: "Gold ETF", Qty: 100, Invested: 5000},
	}
}

func TestMapSymbol(t *testing.T) {
	cases := []struct {
		in, suffix, want string
	}{
		{"RELIANCE", ".NS", "RELIANCE.NS"},
		{"GOLDBEES.BO", ".NS", "GOLDBEES.BO"},
		{"INFY", ".BO", "INFY.BO"},
	}
	for _, c := range cases {
		if got := MapSymbol(c.in, c.suffix); got != c.want {
			t.Errorf("MapSymbol(%q, %q) = %q, want %q", c.in, c.suffix, got, c.want)
		}
	}
}

func TestValuateLivePrices(t *testing.T) {
	src := &stubSource{prices: map[string]float64{
		"RELIANCE.NS": 2600,
		"GOLDBEES.BO": 60,
	}}
	svc := New(src, ".NS")

	v := svc.Valuate(context.Background(), holdingsFixture())

	if v.Total != 10*2600+100*60 {
		t.Errorf("Expected total 32000, got %f", v.Total)
	}
	rel := v.Details["RELIANCE"]
	if rel.Provenance != types.ProvenanceLive {
		t.Errorf("Expected live provenance, got %s", rel.Provenance)
	}
	if rel.Price != 2600 {
		t.Errorf("Expected price 2600, got %f", rel.Price)
	}
	// Suffix heuristic applied on outbound lookup
	if src.asked[0] != "RELIANCE.NS" || src.asked[1] != "GOLDBEES.BO" {
		t.Errorf("Unexpected lookup symbols: %v", src.asked)
	}
}

func TestValuateAllLookupsFail(t *testing.T) {
	src := &stubSource{err: errors.New("network down")}
	svc := New(src, ".NS")
	holdings := holdingsFixture()

	v := svc.Valuate(context.Background(), holdings)

	// Pure fallback path: total equals the summed invested cost basis.
	if v.Total != 30000 {
		t.Errorf("Expected cost-basis total 30000, got %f", v.Total)
	}
	for _, h := range holdings {
		d, ok := v.Details[h.Symbol]
		if !ok {
			t.Fatalf("Missing detail for %s", h.Symbol)
		}
		if d.Provenance != types.ProvenanceCostBasis {
			t.Errorf("Expected cost-basis provenance for %s, got %s", h.Symbol, d.Provenance)
		}
		if d.Value != h.Invested {
			t.Errorf("Expected %s valued at cost %f, got %f", h.Symbol, h.Invested, d.Value)
		}
		if d.Price != 0 {
			t.Errorf("Expected absent price sentinel 0 for %s, got %f", h.Symbol, d.Price)
		}
	}
}

func TestValuatePartialResults(t *testing.T) {
	src := &stubSource{prices: map[string]float64{"RELIANCE.NS": 2500}}
	svc := New(src, ".NS")

	v := svc.Valuate(context.Background(), holdingsFixture())

	if v.Details["RELIANCE"].Provenance != types.ProvenanceLive {
		t.Error("Expected RELIANCE valued live")
	}
	if v.Details["GOLDBEES.BO"].Provenance != types.ProvenanceCostBasis {
		t.Error("Expected GOLDBEES.BO to fall back to cost basis")
	}
	if v.Total != 10*2500+5000 {
		t.Errorf("Expected mixed total 30000, got %f", v.Total)
	}
}

func TestValuateNonPositivePriceFallsBack(t *testing.T) {
	src := &stubSource{prices: map[string]float64{"RELIANCE.NS": -1}}
	svc := New(src, ".NS")

	v := svc.Valuate(context.Background(), holdingsFixture()[:1])

	if v.Details["RELIANCE"].Provenance != types.ProvenanceCostBasis {
		t.Error("Expected non-positive live price to trigger cost-basis fallback")
	}
	if v.Total != 25000 {
		t.Errorf("Expected cost-basis total 25000, got %f", v.Total)
	}
}

func TestValuateEmptyHoldings(t *testing.T) {
	svc := New(&stubSource{}, ".NS")

	v := svc.Valuate(context.Background(), nil)
	if v.Total != 0 {
		t.Errorf("Expected zero total, got %f", v.Total)
	}
	if len(v.Details) != 0 {
		t.Errorf("Expected empty details, got %d entries", len(v.Details))
	}
}
