// Package engine drives the signal and trade-lifecycle pipeline: every inbound
// mark-price batch updates the rolling windows, and once the history is warm
// each batch triggers one evaluation cycle.
package engine

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/janis-sijanovs/mover-tracker/internal/history"
	"github.com/janis-sijanovs/mover-tracker/internal/metrics"
	"github.com/janis-sijanovs/mover-tracker/internal/momentum"
	"github.com/janis-sijanovs/mover-tracker/internal/pattern"
	"github.com/janis-sijanovs/mover-tracker/internal/rank"
	"github.com/janis-sijanovs/mover-tracker/internal/risk"
	"github.com/janis-sijanovs/mover-tracker/internal/signal"
	"github.com/janis-sijanovs/mover-tracker/internal/trade"
)

// Params carries the injected pipeline knobs.
type Params struct {
	WindowSize    int     // rolling window capacity
	TopK          int     // movers considered per side each cycle
	Notional      float64 // fixed position size in units of account
	TrailPct      float64 // trailing stop retracement percent
	StopMode      string  // "trailing" or "constant"
	StopOffsetPct float64 // constant stop offset below/above the window extreme
}

func (p Params) withDefaults() Params {
	if p.WindowSize <= 0 {
		p.WindowSize = 60
	}
	if p.TopK <= 0 {
		p.TopK = 5
	}
	if p.Notional <= 0 {
		p.Notional = 100
	}
	if p.TrailPct <= 0 {
		p.TrailPct = 0.8
	}
	if p.StopMode == "" {
		p.StopMode = string(trade.StopTrailing)
	}
	return p
}

// Hooks receive cycle outputs for rendering/alerting collaborators. All fields
// are optional and run inline on the engine goroutine, so they must not block.
type Hooks struct {
	Movers func(top []signal.MoverScore, ranked []signal.MoverScore)
	Opened func(*trade.Position)
	Closed func(trade.Closed)
}

// Engine owns all mutable pipeline state. It is single-goroutine: feed batches
// are applied strictly in arrival order via OnBatch.
type Engine struct {
	params  Params
	limits  risk.Limits
	log     zerolog.Logger
	hooks   Hooks
	history *history.Book
	book    *trade.Book
	ledger  *trade.Ledger
	ready   bool
}

// New builds an engine with the given knobs and guard-rails.
func New(params Params, limits risk.Limits, log zerolog.Logger, hooks Hooks) *Engine {
	params = params.withDefaults()
	return &Engine{
		params:  params,
		limits:  limits,
		log:     log,
		hooks:   hooks,
		history: history.NewBook(params.WindowSize),
		book:    trade.NewBook(),
		ledger:  trade.NewLedger(0),
	}
}

// Ledger exposes the closed-position records for export.
func (e *Engine) Ledger() *trade.Ledger { return e.ledger }

// OpenCount reports how many positions are currently open.
func (e *Engine) OpenCount() int { return e.book.OpenCount() }

// Windows returns a copy of every tracked price window, for breadth gauges.
func (e *Engine) Windows() [][]float64 {
	symbols := e.history.Symbols()
	out := make([][]float64, 0, len(symbols))
	for _, sym := range symbols {
		out = append(out, e.history.Window(sym))
	}
	return out
}

// OnBatch applies one batch of ticks and, once the history has warmed up,
// runs a single evaluation cycle against the updated windows.
func (e *Engine) OnBatch(ticks []signal.Tick) {
	if len(ticks) == 0 {
		return
	}
	now := time.Now()
	for _, tick := range ticks {
		e.history.Observe(tick.Symbol, tick.Price)
		if !tick.Ts.IsZero() {
			now = tick.Ts
		}
	}

	// Evaluation starts once every tracked window is full and stays on from
	// then on; symbols listed mid-run are skipped per cycle until warm.
	if !e.ready {
		if !e.history.AllWarm() {
			return
		}
		e.ready = true
		e.log.Info().Int("symbols", len(e.history.Symbols())).Msg("history warm, evaluation started")
	}
	e.cycle(now)
}

func (e *Engine) cycle(now time.Time) {
	metrics.CyclesTotal.Inc()

	e.sweep(now)

	scores := e.scores()
	if len(scores) == 0 {
		return
	}
	top := rank.TopKByMagnitude(scores, e.params.TopK)
	ranked := rank.ByDirection(scores)
	if e.hooks.Movers != nil {
		e.hooks.Movers(top, ranked)
	}

	for _, score := range rank.TopUp(ranked, e.params.TopK) {
		window := e.history.Window(score.Symbol)
		if sig, ok := pattern.Bullish(window); ok {
			e.tryOpen(score.Symbol, sig, window, now)
		}
	}
	for _, score := range rank.TopDown(ranked, e.params.TopK) {
		window := e.history.Window(score.Symbol)
		if sig, ok := pattern.Bearish(window); ok {
			e.tryOpen(score.Symbol, sig, window, now)
		}
	}
	metrics.OpenPositions.Set(float64(e.book.OpenCount()))
}

// sweep advances every open position against the latest price and records the
// ones whose stop fired.
func (e *Engine) sweep(now time.Time) {
	closed := e.book.Sweep(e.history.Last, now)
	for _, pos := range closed {
		rec := pos.Record()
		e.ledger.Record(rec)
		metrics.PositionsClosed.WithLabelValues(rec.Symbol, string(rec.Side)).Inc()
		e.log.Info().
			Str("sym", rec.Symbol).
			Str("side", string(rec.Side)).
			Str("reason", rec.Reason).
			Float64("entry", rec.EntryPrice).
			Float64("exit", rec.ExitPrice).
			Float64("pnl", rec.PnL).
			Msg("position closed")
		if e.hooks.Closed != nil {
			e.hooks.Closed(rec)
		}
	}
}

func (e *Engine) scores() []signal.MoverScore {
	symbols := e.history.Symbols()
	out := make([]signal.MoverScore, 0, len(symbols))
	for _, sym := range symbols {
		if !e.history.Warm(sym) {
			continue
		}
		out = append(out, momentum.Score(sym, e.history.Window(sym)))
	}
	return out
}

func (e *Engine) tryOpen(symbol string, sig signal.Signal, window []float64, now time.Time) {
	if !e.limits.AllowNotional(e.params.Notional) {
		return
	}
	if !e.limits.AllowEntry(e.book.OpenCount(), e.book.HasOpen(symbol, sig.Side)) {
		return
	}

	var stop trade.Stop
	if strings.EqualFold(e.params.StopMode, string(trade.StopConstant)) {
		stop = trade.ConstantStopFrom(window, sig.Side, e.params.StopOffsetPct)
	} else {
		stop = trade.Trailing(e.params.TrailPct)
	}

	pos := trade.Open(symbol, sig.Side, sig.Reason, e.history.Last(symbol), e.params.Notional, now, stop)
	e.book.Add(pos)
	metrics.PositionsOpened.WithLabelValues(symbol, string(sig.Side)).Inc()
	e.log.Info().
		Str("sym", symbol).
		Str("side", string(sig.Side)).
		Str("reason", sig.Reason).
		Float64("entry", pos.EntryPrice).
		Float64("notional", pos.Notional).
		Msg("position opened")
	if e.hooks.Opened != nil {
		e.hooks.Opened(pos)
	}
}
