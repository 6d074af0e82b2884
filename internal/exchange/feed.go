// Package exchange hosts connectors for mark-price tick sources.
package exchange

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/janis-sijanovs/mover-tracker/internal/metrics"
	"github.com/janis-sijanovs/mover-tracker/internal/signal"
)

const (
	// ProviderStub emits deterministic synthetic batches (useful for tests/offline work).
	ProviderStub = "stub"
	// ProviderBinance streams the futures mark-price broadcast from Binance websockets.
	ProviderBinance = "binance"
)

const (
	defaultEndpoint     = "wss://fstream.binance.com/stream?streams=!markPrice@arr"
	defaultQuoteFilter  = "USDT"
	defaultStubInterval = 500 * time.Millisecond
)

// Feed represents a pluggable market data stream implementation. One inbound
// message carries the whole symbol universe, so the feed emits ticks in
// batches and the engine evaluates once per batch.
type Feed struct {
	provider     string
	endpoint     string
	quoteFilter  string
	stubSymbols  []string
	stubInterval time.Duration
	log          zerolog.Logger
}

// Option configures Feed construction parameters.
type Option func(*Feed)

// WithEndpoint overrides the websocket endpoint.
func WithEndpoint(url string) Option {
	return func(f *Feed) {
		if url != "" {
			f.endpoint = url
		}
	}
}

// WithQuoteFilter keeps only symbols ending in the given quote asset.
// An empty filter admits every symbol.
func WithQuoteFilter(suffix string) Option {
	return func(f *Feed) {
		f.quoteFilter = strings.ToUpper(strings.TrimSpace(suffix))
	}
}

// WithStubSymbols sets the universe the stub provider synthesizes.
func WithStubSymbols(symbols []string) Option {
	return func(f *Feed) {
		f.stubSymbols = append([]string(nil), symbols...)
	}
}

// WithStubInterval overrides the cadence of synthetic batches.
func WithStubInterval(d time.Duration) Option {
	return func(f *Feed) {
		if d > 0 {
			f.stubInterval = d
		}
	}
}

// NewFeed constructs a feed backed by the requested provider.
func NewFeed(provider string, log zerolog.Logger, opts ...Option) *Feed {
	if provider == "" {
		provider = ProviderStub
	}
	f := &Feed{
		provider:     strings.ToLower(provider),
		endpoint:     defaultEndpoint,
		quoteFilter:  defaultQuoteFilter,
		stubInterval: defaultStubInterval,
		log:          log,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run pushes tick batches onto the provided channel until the context is
// canceled. Transport failures are retried internally; in-memory state owned
// by the consumer is never touched.
func (f *Feed) Run(ctx context.Context, out chan<- []signal.Tick) error {
	switch f.provider {
	case ProviderBinance:
		return f.runBinance(ctx, out)
	default:
		return f.runStub(ctx, out)
	}
}

func (f *Feed) runStub(ctx context.Context, out chan<- []signal.Tick) error {
	ticker := time.NewTicker(f.stubInterval)
	defer ticker.Stop()

	px := 100.0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ts := <-ticker.C:
			px += 0.1
			batch := make([]signal.Tick, 0, len(f.stubSymbols))
			for _, sym := range f.stubSymbols {
				batch = append(batch, signal.Tick{Symbol: sym, Price: px, Ts: ts})
				metrics.TicksTotal.WithLabelValues(sym).Inc()
			}
			select {
			case out <- batch:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func (f *Feed) keep(symbol string) bool {
	return f.quoteFilter == "" || strings.HasSuffix(symbol, f.quoteFilter)
}
