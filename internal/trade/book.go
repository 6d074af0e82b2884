package trade

import (
	"time"

	"github.com/janis-sijanovs/mover-tracker/internal/signal"
)

// Book owns the set of open positions. Like the price history it lives on the
// engine goroutine and needs no locking.
type Book struct {
	open []*Position
}

// NewBook returns an empty position book.
func NewBook() *Book {
	return &Book{}
}

// Add admits an opened position into the book.
func (b *Book) Add(p *Position) {
	b.open = append(b.open, p)
}

// OpenCount reports how many positions are currently open.
func (b *Book) OpenCount() int { return len(b.open) }

// HasOpen reports whether any open position exists for the symbol and side.
func (b *Book) HasOpen(symbol string, side signal.Side) bool {
	for _, p := range b.open {
		if p.Symbol == symbol && p.Side == side {
			return true
		}
	}
	return false
}

// Open returns a copy of the open set.
func (b *Book) Open() []*Position {
	out := make([]*Position, len(b.open))
	copy(out, b.open)
	return out
}

// Sweep checks every open position against the latest price for its symbol and
// rebuilds the open set, returning the positions that closed this cycle in
// closure order. Symbols without a price (lastPrice returns 0) are skipped.
// The open slice is rebuilt after the scan rather than mutated in place.
func (b *Book) Sweep(lastPrice func(symbol string) float64, now time.Time) []*Position {
	var closed []*Position
	still := b.open[:0]
	for _, p := range b.open {
		price := lastPrice(p.Symbol)
		if price > 0 && p.Check(price, now) {
			closed = append(closed, p)
			continue
		}
		still = append(still, p)
	}
	b.open = still
	return closed
}
