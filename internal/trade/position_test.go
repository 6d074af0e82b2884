package trade

import (
	"math"
	"testing"
	"time"

	"github.com/janis-sijanovs/mover-tracker/internal/signal"
)

func TestTrailingStopLong(t *testing.T) {
	now := time.Now()
	pos := Open("BTCUSDT", signal.Long, "test entry", 100, 100, now, Trailing(1))

	if pos.Check(110, now) {
		t.Fatalf("rising price must not exit")
	}
	// Exactly 1% below the 110 extreme: strict boundary, no exit.
	if pos.Check(108.9, now) {
		t.Fatalf("price on the stop boundary must hold")
	}
	if !pos.Check(108.5, now.Add(time.Second)) {
		t.Fatalf("price through the stop boundary must exit")
	}
	if pos.ExitPrice != 108.5 {
		t.Fatalf("exit price not stamped: %.2f", pos.ExitPrice)
	}
	if pnl := pos.ProfitLoss(); math.Abs(pnl-8.5) > 1e-9 {
		t.Fatalf("expected pnl 8.5, got %.4f", pnl)
	}
}

func TestTrailingStopShort(t *testing.T) {
	now := time.Now()
	pos := Open("ETHUSDT", signal.Short, "test entry", 200, 100, now, Trailing(1))

	if pos.Check(190, now) {
		t.Fatalf("falling price must not exit a short")
	}
	if pos.Check(191.9, now) {
		t.Fatalf("price on the short boundary must hold")
	}
	if !pos.Check(192.5, now) {
		t.Fatalf("retracement past the boundary must exit")
	}
	// Short entered at 200, exited at 192.5: a profitable move down.
	if pnl := pos.ProfitLoss(); math.Abs(pnl-3.75) > 1e-9 {
		t.Fatalf("expected pnl 3.75, got %.4f", pnl)
	}
}

func TestConstantStop(t *testing.T) {
	now := time.Now()
	long := Open("AUSDT", signal.Long, "test entry", 100, 100, now, Constant(95))
	if long.Check(96, now) {
		t.Fatalf("price above the stop must hold")
	}
	if !long.Check(95, now) {
		t.Fatalf("price touching a constant stop must exit")
	}
	if pnl := long.ProfitLoss(); math.Abs(pnl+5) > 1e-9 {
		t.Fatalf("expected pnl -5, got %.4f", pnl)
	}

	short := Open("AUSDT", signal.Short, "test entry", 100, 100, now, Constant(105))
	if short.Check(104, now) {
		t.Fatalf("price below the short stop must hold")
	}
	if !short.Check(105, now) {
		t.Fatalf("price touching the short stop must exit")
	}
}

func TestClosedPositionNeverFiresAgain(t *testing.T) {
	now := time.Now()
	pos := Open("BTCUSDT", signal.Long, "test entry", 100, 100, now, Constant(99))
	if !pos.Check(98, now) {
		t.Fatalf("expected exit")
	}
	exit := pos.ExitPrice
	if pos.Check(50, now.Add(time.Minute)) {
		t.Fatalf("closed position fired again")
	}
	if pos.ExitPrice != exit {
		t.Fatalf("closed position mutated after close")
	}
}

func TestProfitLossZeroEntry(t *testing.T) {
	now := time.Now()
	pos := Open("XUSDT", signal.Long, "test entry", 0, 100, now, Constant(0))
	pos.Check(0, now)
	if pnl := pos.ProfitLoss(); pnl != 0 {
		t.Fatalf("zero entry price must yield zero pnl, got %.4f", pnl)
	}
}

func TestConstantStopFrom(t *testing.T) {
	window := []float64{100, 98, 103, 101}
	long := ConstantStopFrom(window, signal.Long, 1)
	if math.Abs(long.Price-97.02) > 1e-9 {
		t.Fatalf("expected long stop 97.02, got %.4f", long.Price)
	}
	short := ConstantStopFrom(window, signal.Short, 1)
	if math.Abs(short.Price-104.03) > 1e-9 {
		t.Fatalf("expected short stop 104.03, got %.4f", short.Price)
	}
}

func TestOpenAssignsID(t *testing.T) {
	now := time.Now()
	a := Open("A", signal.Long, "r", 1, 1, now, Trailing(1))
	b := Open("A", signal.Long, "r", 1, 1, now, Trailing(1))
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("positions must carry distinct ids")
	}
}
