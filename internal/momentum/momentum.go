// Package momentum derives weighted movement statistics from a price window.
//
// Each adjacent price pair contributes its relative change weighted linearly
// toward the most recent observation: pair i out of n-1 weighs i / (1+2+..+n-1),
// so the weights sum to one across the window.
package momentum

import (
	"math"

	"github.com/janis-sijanovs/mover-tracker/internal/signal"
)

// RateOfChange returns the weighted average unsigned relative price change.
// Windows shorter than two prices score 0.
func RateOfChange(prices []float64) float64 {
	return weightedChange(prices, math.Abs)
}

// Direction returns the weighted average signed relative price change. Negative
// values indicate drift downward.
func Direction(prices []float64) float64 {
	return weightedChange(prices, func(v float64) float64 { return v })
}

// Score computes both statistics in one pass over the window.
func Score(symbol string, prices []float64) signal.MoverScore {
	score := signal.MoverScore{Symbol: symbol}
	n := len(prices)
	if n < 2 {
		return score
	}
	total := float64(n * (n - 1) / 2)
	for i := 1; i < n; i++ {
		prev := prices[i-1]
		if prev <= 0 {
			continue
		}
		weight := float64(i) / total
		change := (prices[i] - prev) / prev
		score.RateOfChange += weight * math.Abs(change)
		score.Direction += weight * change
	}
	return score
}

func weightedChange(prices []float64, shape func(float64) float64) float64 {
	n := len(prices)
	if n < 2 {
		return 0
	}
	// Sum of 1..n-1; the linear weights normalize against it.
	total := float64(n * (n - 1) / 2)
	var sum float64
	for i := 1; i < n; i++ {
		prev := prices[i-1]
		if prev <= 0 {
			// A zero or negative previous price has no defined relative
			// change; it contributes nothing rather than failing the window.
			continue
		}
		weight := float64(i) / total
		sum += weight * shape((prices[i]-prev)/prev)
	}
	return sum
}
