package main

import (
	"context"
	"fmt"
	"os"
	ossignal "os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/janis-sijanovs/mover-tracker/internal/config"
	"github.com/janis-sijanovs/mover-tracker/internal/engine"
	"github.com/janis-sijanovs/mover-tracker/internal/exchange"
	"github.com/janis-sijanovs/mover-tracker/internal/rank"
	"github.com/janis-sijanovs/mover-tracker/internal/risk"
	sig "github.com/janis-sijanovs/mover-tracker/internal/signal"
	"github.com/janis-sijanovs/mover-tracker/internal/util"
)

const defaultConfigPath = "internal/config/config.yaml"

const (
	reset = "\033[0m"
	bold  = "\033[1m"
	green = "\033[92m"
	red   = "\033[91m"
	clearScreen = "\033[2J\033[H"
)

func main() {
	_ = godotenv.Load()

	path := os.Getenv("MOVERBOT_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}

	log := util.NewLogger("warn")
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("load config")
	}

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	lookback := cfg.Engine.BreadthLookback
	if lookback < 2 {
		lookback = 3
	}

	var eng *engine.Engine
	eng = engine.New(
		engine.Params{
			WindowSize: cfg.Engine.WindowSize,
			TopK:       cfg.Engine.TopK,
			Notional:   cfg.Engine.Notional,
			TrailPct:   cfg.Engine.TrailPct,
		},
		// The view only watches; a negative open cap disables entries entirely.
		risk.Limits{MaxOpenPositions: -1},
		log,
		engine.Hooks{
			Movers: func(top, ranked []sig.MoverScore) {
				render(top, ranked, cfg.Engine.TopK, rank.ShortPercentage(ranked), rank.DownBreadth(eng.Windows(), lookback))
			},
		},
	)

	feed := exchange.NewFeed(cfg.Feed.Provider, log,
		exchange.WithEndpoint(cfg.Feed.Endpoint),
		exchange.WithQuoteFilter(cfg.Feed.QuoteFilter),
	)
	batches := make(chan []sig.Tick, 64)
	go func() {
		if err := feed.Run(ctx, batches); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("feed stopped")
			cancel()
		}
	}()

	fmt.Println("warming up...")
	for {
		select {
		case <-ctx.Done():
			return
		case batch := <-batches:
			eng.OnBatch(batch)
		}
	}
}

func render(top, ranked []sig.MoverScore, k, shortGauge, recentGauge int) {
	var b strings.Builder
	b.WriteString(clearScreen)

	b.WriteString(bold + "Recent market direction:" + reset + "\n")
	b.WriteString(gaugeBar(recentGauge) + "\n\n")

	b.WriteString(bold + "Market direction:" + reset + "\n")
	b.WriteString(gaugeBar(shortGauge) + "\n\n")

	b.WriteString(bold + fmt.Sprintf("Top %d Fastest Moving:", k) + reset + "\n")
	for _, score := range top {
		b.WriteString(fmt.Sprintf(" %s  %.4f%%\n", score.Symbol, score.RateOfChange*100))
	}
	b.WriteString("\n")

	up := rank.TopUp(ranked, k)
	b.WriteString(bold + fmt.Sprintf("Top %d Winners:", k) + reset + "\n")
	for i := len(up) - 1; i >= 0; i-- {
		b.WriteString(coloredMover(up[i]))
	}
	b.WriteString("\n")

	b.WriteString(bold + fmt.Sprintf("Top %d Losers:", k) + reset + "\n")
	for _, score := range rank.TopDown(ranked, k) {
		b.WriteString(coloredMover(score))
	}

	fmt.Print(b.String())
}

func coloredMover(score sig.MoverScore) string {
	color := red
	if score.Direction >= 0 {
		color = green
	}
	return fmt.Sprintf(" %s%s%s  %+.4f%%\n", color, score.Symbol, reset, score.Direction*100)
}

// gaugeBar paints a 20-cell bar: the red span grows with the 0-10 gauge.
func gaugeBar(gauge int) string {
	cells := gauge * 2
	if cells < 0 {
		cells = 0
	}
	if cells > 20 {
		cells = 20
	}
	return red + strings.Repeat("█", cells) + green + strings.Repeat("█", 20-cells) + reset
}
