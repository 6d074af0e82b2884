package trade

import (
	"sync"
	"time"

	"github.com/janis-sijanovs/mover-tracker/internal/signal"
)

// Closed is the immutable record of a finished position and its realized PnL.
type Closed struct {
	ID         string      `json:"id"`
	Symbol     string      `json:"symbol"`
	Side       signal.Side `json:"side"`
	Reason     string      `json:"reason"`
	EntryTime  time.Time   `json:"entry_time"`
	EntryPrice float64     `json:"entry_price"`
	ExitTime   time.Time   `json:"exit_time"`
	ExitPrice  float64     `json:"exit_price"`
	StopKind   StopKind    `json:"stop_kind"`
	StopParam  float64     `json:"stop_param"`
	PnL        float64     `json:"pnl"`
}

// Record builds the ledger entry for a closed position.
func (p *Position) Record() Closed {
	return Closed{
		ID:         p.ID,
		Symbol:     p.Symbol,
		Side:       p.Side,
		Reason:     p.Reason,
		EntryTime:  p.EntryTime,
		EntryPrice: p.EntryPrice,
		ExitTime:   p.ExitTime,
		ExitPrice:  p.ExitPrice,
		StopKind:   p.Stop.Kind,
		StopParam:  p.Stop.Param(),
		PnL:        p.ProfitLoss(),
	}
}

// Ledger stores closed positions in closure order for export at shutdown.
type Ledger struct {
	mu      sync.Mutex
	records []Closed
}

// NewLedger creates an empty ledger optionally pre-sizing storage.
func NewLedger(capacity int) *Ledger {
	if capacity < 0 {
		capacity = 0
	}
	return &Ledger{records: make([]Closed, 0, capacity)}
}

// Record appends a closed position to the ledger.
func (l *Ledger) Record(c Closed) {
	l.mu.Lock()
	l.records = append(l.records, c)
	l.mu.Unlock()
}

// Snapshot returns a copy of the recorded positions.
func (l *Ledger) Snapshot() []Closed {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Closed, len(l.records))
	copy(out, l.records)
	return out
}

// Len reports how many positions have been recorded.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
