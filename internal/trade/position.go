// Package trade owns the lifecycle of synthetic positions: entry, stop-loss
// monitoring, and the append-only ledger of closed trades.
package trade

import (
	"time"

	"github.com/google/uuid"

	"github.com/janis-sijanovs/mover-tracker/internal/signal"
)

// StopKind tags the exit strategy attached to a position.
type StopKind string

const (
	// StopTrailing follows the best price reached and fires on retracement.
	StopTrailing StopKind = "trailing"
	// StopConstant fires at a fixed price level set at entry.
	StopConstant StopKind = "constant"
)

// Stop is a tagged variant over the two exit strategies. Exactly one of the
// parameter fields is meaningful for a given kind.
type Stop struct {
	Kind     StopKind
	TrailPct float64 // trailing retracement percent of the tracked extreme
	Price    float64 // constant stop level

	extreme float64 // best price seen, trailing only
}

// Trailing builds a trailing stop that fires pct percent off the extreme.
func Trailing(pct float64) Stop {
	return Stop{Kind: StopTrailing, TrailPct: pct}
}

// Constant builds a fixed stop at the given price level.
func Constant(price float64) Stop {
	return Stop{Kind: StopConstant, Price: price}
}

// Param reports the strategy parameter recorded with a closed position.
func (s Stop) Param() float64 {
	if s.Kind == StopConstant {
		return s.Price
	}
	return s.TrailPct
}

// evaluate updates trailing state and reports whether the exit fired. The
// boundary is strict: a price landing exactly on the stop level holds.
func (s *Stop) evaluate(side signal.Side, price float64) bool {
	switch s.Kind {
	case StopTrailing:
		if side == signal.Long {
			if price > s.extreme {
				s.extreme = price
				return false
			}
			return price < s.extreme*(1-s.TrailPct/100)
		}
		if price < s.extreme {
			s.extreme = price
			return false
		}
		return price > s.extreme*(1+s.TrailPct/100)
	case StopConstant:
		if side == signal.Long {
			return price <= s.Price
		}
		return price >= s.Price
	}
	return false
}

// Position is one synthetic trade. It is created open and transitions to
// closed exactly once, when its stop condition fires.
type Position struct {
	ID         string
	Symbol     string
	Side       signal.Side
	Reason     string
	EntryPrice float64
	Notional   float64
	EntryTime  time.Time
	Stop       Stop

	ExitPrice float64
	ExitTime  time.Time
	closed    bool
}

// Open creates a position at the given entry price. A trailing stop starts
// tracking from the entry price itself.
func Open(sym string, side signal.Side, reason string, price, notional float64, at time.Time, stop Stop) *Position {
	if stop.Kind == StopTrailing {
		stop.extreme = price
	}
	return &Position{
		ID:         uuid.NewString(),
		Symbol:     sym,
		Side:       side,
		Reason:     reason,
		EntryPrice: price,
		Notional:   notional,
		EntryTime:  at,
		Stop:       stop,
	}
}

// Closed reports whether the position has exited.
func (p *Position) Closed() bool { return p.closed }

// Check advances the stop against the latest price. When the exit fires it
// stamps the exit price and time and returns true; a closed position never
// fires again.
func (p *Position) Check(price float64, now time.Time) bool {
	if p.closed {
		return false
	}
	if !p.Stop.evaluate(p.Side, price) {
		return false
	}
	p.ExitPrice = price
	p.ExitTime = now
	p.closed = true
	return true
}

// ProfitLoss returns the realized profit for a closed position, 0 until then.
func (p *Position) ProfitLoss() float64 {
	if !p.closed {
		return 0
	}
	pnl := p.Notional * percentDiff(p.EntryPrice, p.ExitPrice) / 100
	if p.Side == signal.Short {
		pnl = -pnl
	}
	return pnl
}

// percentDiff returns the relative change from old to new in percent, 0 when
// the old value is 0.
func percentDiff(old, new float64) float64 {
	if old == 0 {
		return 0
	}
	return (new - old) / old * 100
}

// ConstantStopFrom derives a fixed stop level from the window extreme: below
// the window low for a long, above the window high for a short, offset by the
// given percent.
func ConstantStopFrom(window []float64, side signal.Side, offsetPct float64) Stop {
	if len(window) == 0 {
		return Constant(0)
	}
	low, high := window[0], window[0]
	for _, price := range window[1:] {
		if price < low {
			low = price
		}
		if price > high {
			high = price
		}
	}
	if side == signal.Long {
		return Constant(low - low*offsetPct/100)
	}
	return Constant(high + high*offsetPct/100)
}
