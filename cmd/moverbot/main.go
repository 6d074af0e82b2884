package main

import (
	"context"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/janis-sijanovs/mover-tracker/internal/config"
	"github.com/janis-sijanovs/mover-tracker/internal/engine"
	"github.com/janis-sijanovs/mover-tracker/internal/exchange"
	"github.com/janis-sijanovs/mover-tracker/internal/export"
	"github.com/janis-sijanovs/mover-tracker/internal/metrics"
	"github.com/janis-sijanovs/mover-tracker/internal/risk"
	sig "github.com/janis-sijanovs/mover-tracker/internal/signal"
	"github.com/janis-sijanovs/mover-tracker/internal/trade"
	"github.com/janis-sijanovs/mover-tracker/internal/util"
)

const defaultConfigPath = "internal/config/config.yaml"

func main() {
	_ = godotenv.Load()

	path := os.Getenv("MOVERBOT_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}

	log := util.NewLogger("info")
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("load config")
	}
	log = util.NewLogger(cfg.App.LogLevel)

	_ = metrics.Serve(cfg.App.MetricsAddr)
	log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var recorder *export.JSONLRecorder
	if cfg.Ledger.JSONLPath != "" {
		recorder, err = export.NewJSONLRecorder(cfg.Ledger.JSONLPath)
		if err != nil {
			log.Fatal().Err(err).Msg("open jsonl recorder")
		}
		defer recorder.Close()
	}

	hooks := engine.Hooks{
		Closed: func(rec trade.Closed) {
			if recorder != nil {
				recorder.Record(rec)
			}
		},
	}
	eng := engine.New(
		engine.Params{
			WindowSize:    cfg.Engine.WindowSize,
			TopK:          cfg.Engine.TopK,
			Notional:      cfg.Engine.Notional,
			TrailPct:      cfg.Engine.TrailPct,
			StopMode:      cfg.Engine.StopMode,
			StopOffsetPct: cfg.Engine.StopOffsetPct,
		},
		risk.Limits{
			MaxNotionalPerTrade: cfg.Risk.MaxNotionalPerTrade,
			MaxOpenPositions:    cfg.Risk.MaxOpenPositions,
			AllowPyramiding:     cfg.Risk.AllowPyramiding,
		},
		log,
		hooks,
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

	log.Info().Str("provider", cfg.Feed.Provider).Msg("mover engine started")
	for {
		select {
		case <-ctx.Done():
			shutdown(log, eng, cfg.Ledger.CSVPath)
			return
		case batch := <-batches:
			eng.OnBatch(batch)
		}
	}
}

func shutdown(log zerolog.Logger, eng *engine.Engine, csvPath string) {
	records := eng.Ledger().Snapshot()
	log.Info().Int("closed", len(records)).Int("stillOpen", eng.OpenCount()).Msg("shutting down")
	if csvPath == "" || len(records) == 0 {
		return
	}
	if err := export.WriteCSVFile(csvPath, records); err != nil {
		log.Error().Err(err).Str("path", csvPath).Msg("export ledger csv")
		return
	}
	log.Info().Str("path", csvPath).Msg("ledger exported")
}
