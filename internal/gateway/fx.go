package gateway

import (
	"context"
	"errors"
	"fmt"
)

// ErrPairUnsupported is returned when a source has no rate for a pair.
var ErrPairUnsupported = errors.New("currency pair not supported")

// Pair is a directional currency conversion, e.g. CLP→USD.
type Pair struct {
	Source string
	Target string
}

func (p Pair) String() string {
	return p.Source + "_" + p.Target
}

// RateSource looks up how many units of Target one unit of Source buys.
type RateSource interface {
	Lookup(ctx context.Context, pair Pair) (float64, error)
}

var staticPairs = []Pair{
	{"CLP", "USD"},
	{"USD", "CLP"},
	{"CLP", "EUR"},
	{"EUR", "CLP"},
	{"USD", "EUR"},
	{"EUR", "USD"},
}

var staticRates = map[Pair]float64{
	{"CLP", "USD"}: 0.0011,
	{"USD", "CLP"}: 900.0,
	{"CLP", "EUR"}: 0.00095,
	{"EUR", "CLP"}: 1050.0,
	{"USD", "EUR"}: 0.85,
	{"EUR", "USD"}: 1.18,
}

// StaticPairs lists the pairs of the built-in table in a stable order.
func StaticPairs() []Pair {
	out := make([]Pair, len(staticPairs))
	copy(out, staticPairs)
	return out
}

// StaticSource serves the built-in rate table.
type StaticSource struct{}

func NewStaticSource() StaticSource {
	return StaticSource{}
}

func (StaticSource) Lookup(_ context.Context, pair Pair) (float64, error) {
	rate, ok := staticRates[pair]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrPairUnsupported, pair)
	}
	return rate, nil
}
