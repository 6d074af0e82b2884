package config

import (
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join("testdata", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.App.Name != "mover-tracker-test" {
		t.Fatalf("unexpected App.Name: %s", cfg.App.Name)
	}
	if cfg.App.MetricsAddr != ":9109" {
		t.Fatalf("unexpected App.MetricsAddr: %s", cfg.App.MetricsAddr)
	}
	if cfg.Feed.Provider != "binance" {
		t.Fatalf("unexpected Feed.Provider: %s", cfg.Feed.Provider)
	}
	if cfg.Feed.QuoteFilter != "USDT" {
		t.Fatalf("unexpected Feed.QuoteFilter: %s", cfg.Feed.QuoteFilter)
	}
	if cfg.Engine.WindowSize != 60 {
		t.Fatalf("unexpected window size: %d", cfg.Engine.WindowSize)
	}
	if cfg.Engine.TopK != 5 {
		t.Fatalf("unexpected top k: %d", cfg.Engine.TopK)
	}
	if cfg.Engine.Notional != 100 {
		t.Fatalf("unexpected notional: %.2f", cfg.Engine.Notional)
	}
	if cfg.Engine.TrailPct != 0.8 {
		t.Fatalf("unexpected trail pct: %.2f", cfg.Engine.TrailPct)
	}
	if cfg.Engine.StopMode != "trailing" {
		t.Fatalf("unexpected stop mode: %s", cfg.Engine.StopMode)
	}
	if cfg.Engine.StopOffsetPct != 0.5 {
		t.Fatalf("unexpected stop offset: %.2f", cfg.Engine.StopOffsetPct)
	}
	if cfg.Risk.MaxNotionalPerTrade != 250 {
		t.Fatalf("unexpected max notional per trade: %.2f", cfg.Risk.MaxNotionalPerTrade)
	}
	if cfg.Risk.MaxOpenPositions != 20 {
		t.Fatalf("unexpected max open positions: %d", cfg.Risk.MaxOpenPositions)
	}
	if cfg.Risk.AllowPyramiding {
		t.Fatalf("expected pyramiding disabled")
	}
	if cfg.Ledger.CSVPath != "data/closed_positions.csv" {
		t.Fatalf("unexpected csv path: %s", cfg.Ledger.CSVPath)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := &Config{}
	cfg.Engine.WindowSize = 45
	cfg.Engine.TrailPct = 1.2

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Engine.WindowSize != 45 || loaded.Engine.TrailPct != 1.2 {
		t.Fatalf("round trip mismatch: %+v", loaded.Engine)
	}
}
