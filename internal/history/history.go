// Package history owns the per-symbol rolling windows of recent mark prices.
package history

// ring is a fixed-capacity FIFO of prices. Once full, each append evicts the
// oldest observation.
type ring struct {
	buf   []float64
	start int
	size  int
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]float64, capacity)}
}

func (r *ring) push(price float64) {
	if r.size < len(r.buf) {
		r.buf[(r.start+r.size)%len(r.buf)] = price
		r.size++
		return
	}
	r.buf[r.start] = price
	r.start = (r.start + 1) % len(r.buf)
}

// window returns the held prices oldest-first as a fresh slice.
func (r *ring) window() []float64 {
	out := make([]float64, r.size)
	for i := 0; i < r.size; i++ {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}

func (r *ring) last() float64 {
	if r.size == 0 {
		return 0
	}
	return r.buf[(r.start+r.size-1)%len(r.buf)]
}

// Book tracks one bounded price window per symbol. It is owned by the engine
// goroutine and is not safe for concurrent use.
type Book struct {
	capacity int
	rings    map[string]*ring
}

// NewBook builds an empty book whose windows hold up to capacity prices.
func NewBook(capacity int) *Book {
	if capacity <= 0 {
		capacity = 60
	}
	return &Book{capacity: capacity, rings: make(map[string]*ring)}
}

// Capacity reports the configured window size.
func (b *Book) Capacity() int { return b.capacity }

// Observe appends a price to the symbol's window, creating it on first sight.
func (b *Book) Observe(symbol string, price float64) {
	r := b.rings[symbol]
	if r == nil {
		r = newRing(b.capacity)
		b.rings[symbol] = r
	}
	r.push(price)
}

// Len reports how many prices the symbol's window currently holds.
func (b *Book) Len(symbol string) int {
	if r := b.rings[symbol]; r != nil {
		return r.size
	}
	return 0
}

// Warm reports whether the symbol's window has reached full capacity.
func (b *Book) Warm(symbol string) bool {
	return b.Len(symbol) == b.capacity
}

// AllWarm reports whether every tracked symbol has a full window. False when
// no symbol has been observed yet.
func (b *Book) AllWarm() bool {
	if len(b.rings) == 0 {
		return false
	}
	for _, r := range b.rings {
		if r.size < b.capacity {
			return false
		}
	}
	return true
}

// Window returns a copy of the symbol's prices oldest-first, nil if unknown.
func (b *Book) Window(symbol string) []float64 {
	if r := b.rings[symbol]; r != nil {
		return r.window()
	}
	return nil
}

// Last returns the most recent price for the symbol, 0 if unknown.
func (b *Book) Last(symbol string) float64 {
	if r := b.rings[symbol]; r != nil {
		return r.last()
	}
	return 0
}

// Symbols lists every tracked symbol in map order.
func (b *Book) Symbols() []string {
	out := make([]string, 0, len(b.rings))
	for sym := range b.rings {
		out = append(out, sym)
	}
	return out
}
