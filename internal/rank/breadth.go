package rank

import (
	"math"
	"sort"

	"github.com/janis-sijanovs/mover-tracker/internal/signal"
)

// ShortPercentage condenses an ascending direction ranking into a 0-10 gauge of
// how much of the market is drifting down. It locates the first symbol with a
// positive direction; everything before it is falling or flat.
func ShortPercentage(ranked []signal.MoverScore) int {
	if len(ranked) == 0 {
		return 0
	}
	idx := sort.Search(len(ranked), func(i int) bool { return ranked[i].Direction > 0 })
	if idx == len(ranked) {
		return 0
	}
	return clampGauge(float64(idx) * 10 / float64(len(ranked)))
}

// DownBreadth reports, on the same 0-10 gauge, the share of windows whose last
// lookback prices moved down at least half the time. Windows shorter than the
// lookback are still counted in the denominator, matching the market-wide view.
func DownBreadth(windows [][]float64, lookback int) int {
	if len(windows) == 0 || lookback < 2 {
		return 0
	}
	var falling int
	for _, window := range windows {
		if len(window) < lookback {
			continue
		}
		recent := window[len(window)-lookback:]
		var down int
		for i := 1; i < len(recent); i++ {
			if recent[i] <= recent[i-1] {
				down++
			}
		}
		if 2*down >= len(recent)-1 {
			falling++
		}
	}
	return clampGauge(float64(falling) * 10 / float64(len(windows)))
}

// clampGauge pins the raw ratio into the displayable 0-10 range, suppressing
// flicker at both extremes.
func clampGauge(pct float64) int {
	if pct <= 0.3 {
		return 0
	}
	if pct > 9 && pct < 9.7 {
		return 9
	}
	return int(math.Round(pct))
}
