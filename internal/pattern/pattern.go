// Package pattern classifies checkpoint trends inside a price window.
//
// Four checkpoints are inspected: the latest price, the prices 20 and 40
// observations back, and the oldest price in the window. A strictly monotonic
// run across three or four of them confirms a continuation in that direction.
package pattern

import "github.com/janis-sijanovs/mover-tracker/internal/signal"

// minWindow is the shortest window the checkpoint offsets can address.
const minWindow = 41

const (
	ReasonThreePointBull = "3-point bullish continuation"
	ReasonTwoPointBull   = "2-point bullish continuation"
	ReasonThreePointBear = "3-point bearish continuation"
	ReasonTwoPointBear   = "2-point bearish continuation"
)

type checkpoints struct {
	first, far, mid, last float64
}

func take(prices []float64) (checkpoints, bool) {
	n := len(prices)
	if n < minWindow {
		return checkpoints{}, false
	}
	return checkpoints{
		first: prices[0],
		far:   prices[n-40],
		mid:   prices[n-20],
		last:  prices[n-1],
	}, true
}

// Bullish reports a long-side continuation signal for the window, if any. The
// stronger three-point match wins over the two-point fallback.
func Bullish(prices []float64) (signal.Signal, bool) {
	cp, ok := take(prices)
	if !ok {
		return signal.Signal{}, false
	}
	switch {
	case cp.last > cp.mid && cp.mid > cp.far && cp.far > cp.first:
		return signal.Signal{Side: signal.Long, Reason: ReasonThreePointBull}, true
	case cp.last > cp.mid && cp.mid > cp.far:
		return signal.Signal{Side: signal.Long, Reason: ReasonTwoPointBull}, true
	}
	return signal.Signal{}, false
}

// Bearish reports a short-side continuation signal for the window, if any.
func Bearish(prices []float64) (signal.Signal, bool) {
	cp, ok := take(prices)
	if !ok {
		return signal.Signal{}, false
	}
	switch {
	case cp.last < cp.mid && cp.mid < cp.far && cp.far < cp.first:
		return signal.Signal{Side: signal.Short, Reason: ReasonThreePointBear}, true
	case cp.last < cp.mid && cp.mid < cp.far:
		return signal.Signal{Side: signal.Short, Reason: ReasonTwoPointBear}, true
	}
	return signal.Signal{}, false
}
