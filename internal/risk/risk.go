// Package risk encodes the guard-rails consulted before any entry is taken.
package risk

// Limits bounds how much exposure the engine may open.
type Limits struct {
	MaxNotionalPerTrade float64
	MaxOpenPositions    int  // 0 disables the cap, negative forbids entries entirely
	AllowPyramiding     bool // permit stacking entries on a symbol/side already open
}

// AllowNotional reports whether a single trade of the given size is acceptable.
func (l Limits) AllowNotional(notional float64) bool {
	return l.MaxNotionalPerTrade <= 0 || notional <= l.MaxNotionalPerTrade
}

// AllowEntry reports whether a new position may open given the current open
// count and whether the same symbol/side is already held.
func (l Limits) AllowEntry(openCount int, duplicate bool) bool {
	if l.MaxOpenPositions < 0 {
		return false
	}
	if duplicate && !l.AllowPyramiding {
		return false
	}
	if l.MaxOpenPositions > 0 && openCount >= l.MaxOpenPositions {
		return false
	}
	return true
}
