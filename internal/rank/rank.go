// Package rank selects extremal movers from per-symbol momentum scores.
package rank

import (
	"container/heap"
	"sort"

	"github.com/janis-sijanovs/mover-tracker/internal/signal"
)

// magnitudeHeap is a min-heap over (rate of change, symbol), so the root is
// always the weakest of the retained movers. Symbol order breaks ties to keep
// selection deterministic.
type magnitudeHeap []signal.MoverScore

func (h magnitudeHeap) Len() int { return len(h) }

func (h magnitudeHeap) Less(i, j int) bool {
	if h[i].RateOfChange != h[j].RateOfChange {
		return h[i].RateOfChange < h[j].RateOfChange
	}
	return h[i].Symbol < h[j].Symbol
}

func (h magnitudeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *magnitudeHeap) Push(x any) { *h = append(*h, x.(signal.MoverScore)) }

func (h *magnitudeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// TopKByMagnitude returns the k scores with the largest rate of change,
// strongest first. Ties fall to the lexicographically larger symbol. The heap
// is built fresh per call; no state survives between cycles.
func TopKByMagnitude(scores []signal.MoverScore, k int) []signal.MoverScore {
	if k <= 0 {
		return nil
	}
	h := make(magnitudeHeap, 0, k+1)
	heap.Init(&h)
	for _, score := range scores {
		heap.Push(&h, score)
		if h.Len() > k {
			heap.Pop(&h)
		}
	}
	out := []signal.MoverScore(h)
	sort.Slice(out, func(i, j int) bool {
		if out[i].RateOfChange != out[j].RateOfChange {
			return out[i].RateOfChange > out[j].RateOfChange
		}
		return out[i].Symbol > out[j].Symbol
	})
	return out
}

// ByDirection returns every score sorted ascending by signed direction, the
// strongest down-mover first. Ties fall to symbol order.
func ByDirection(scores []signal.MoverScore) []signal.MoverScore {
	out := make([]signal.MoverScore, len(scores))
	copy(out, scores)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Direction != out[j].Direction {
			return out[i].Direction < out[j].Direction
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

// TopUp returns the k strongest up-movers from an ascending direction ranking.
func TopUp(ranked []signal.MoverScore, k int) []signal.MoverScore {
	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[len(ranked)-k:]
}

// TopDown returns the k strongest down-movers from an ascending direction ranking.
func TopDown(ranked []signal.MoverScore, k int) []signal.MoverScore {
	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k]
}
