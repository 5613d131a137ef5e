package interfaces

import "context"

// PriceSource is the live-price collaborator. The returned map is keyed by
// the symbols passed in; absent entries mean "unavailable", never zero.
// Per-symbol failures must not abort the batch.
type PriceSource interface {
	Prices(ctx context.Context, symbols []string) (map[string]float64, error)
}
