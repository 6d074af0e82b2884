package momentum

import (
	"math"
	"testing"
)

func TestMonotonicWindow(t *testing.T) {
	prices := []float64{100, 101, 102.5, 104, 106}

	rate := RateOfChange(prices)
	direction := Direction(prices)
	if direction <= 0 {
		t.Fatalf("expected positive direction for uptrend, got %.6f", direction)
	}
	if rate <= 0 {
		t.Fatalf("expected positive rate of change, got %.6f", rate)
	}
	// All deltas share sign, so both statistics measure the same changes.
	if math.Abs(rate-direction) > 1e-12 {
		t.Fatalf("rate %.9f and direction %.9f should match on a monotonic window", rate, direction)
	}
}

func TestAlternatingWindow(t *testing.T) {
	prices := []float64{100, 101, 100, 101, 100, 101, 100}

	rate := RateOfChange(prices)
	direction := Direction(prices)
	if rate <= 0 {
		t.Fatalf("expected positive rate for a choppy window, got %.6f", rate)
	}
	if math.Abs(direction) >= rate/2 {
		t.Fatalf("direction %.6f should wash out against rate %.6f", direction, rate)
	}
}

func TestShortWindow(t *testing.T) {
	if RateOfChange(nil) != 0 || RateOfChange([]float64{42}) != 0 {
		t.Fatalf("windows shorter than two prices must score zero")
	}
	if Direction([]float64{42}) != 0 {
		t.Fatalf("direction of a single price must be zero")
	}
}

func TestZeroPreviousPriceSkipped(t *testing.T) {
	prices := []float64{0, 100, 101}
	rate := RateOfChange(prices)
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		t.Fatalf("zero previous price must not poison the statistic, got %v", rate)
	}
	if rate <= 0 {
		t.Fatalf("remaining pair should still contribute, got %.6f", rate)
	}
}

func TestScoreMatchesComponents(t *testing.T) {
	prices := []float64{50, 49, 49.5, 51, 50.2}
	score := Score("XUSDT", prices)
	if score.Symbol != "XUSDT" {
		t.Fatalf("unexpected symbol: %s", score.Symbol)
	}
	if math.Abs(score.RateOfChange-RateOfChange(prices)) > 1e-12 {
		t.Fatalf("rate mismatch: %.9f vs %.9f", score.RateOfChange, RateOfChange(prices))
	}
	if math.Abs(score.Direction-Direction(prices)) > 1e-12 {
		t.Fatalf("direction mismatch: %.9f vs %.9f", score.Direction, Direction(prices))
	}
}

func TestWeightsFavorRecentChanges(t *testing.T) {
	early := []float64{100, 102, 102, 102, 102}
	late := []float64{100, 100, 100, 100, 102}
	if RateOfChange(late) <= RateOfChange(early) {
		t.Fatalf("a recent move must outweigh the same move long ago: late %.6f early %.6f",
			RateOfChange(late), RateOfChange(early))
	}
}
