// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// App captures process-wide runtime settings such as name, environment, metrics, and logging levels.
type App struct {
	Name        string `yaml:"name"`
	Env         string `yaml:"env"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

// Feed describes the market-data transport the engine consumes.
type Feed struct {
	Provider    string `yaml:"provider"`
	Endpoint    string `yaml:"endpoint"`
	QuoteFilter string `yaml:"quote_filter"`
}

// Engine groups the tunable knobs of the signal and trade pipeline.
type Engine struct {
	WindowSize      int     `yaml:"window_size"`
	TopK            int     `yaml:"top_k"`
	Notional        float64 `yaml:"notional"`
	TrailPct        float64 `yaml:"trail_pct"`
	StopMode        string  `yaml:"stop_mode"`
	StopOffsetPct   float64 `yaml:"stop_offset_pct"`
	BreadthLookback int     `yaml:"breadth_lookback"`
}

// Risk encodes guard-rails for how much exposure the engine may take on.
type Risk struct {
	MaxNotionalPerTrade float64 `yaml:"max_notional_per_trade"`
	MaxOpenPositions    int     `yaml:"max_open_positions"`
	AllowPyramiding     bool    `yaml:"allow_pyramiding"`
}

// Ledger configures where closed positions are persisted.
type Ledger struct {
	CSVPath   string `yaml:"csv_path"`
	JSONLPath string `yaml:"jsonl_path"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App    App    `yaml:"app"`
	Feed   Feed   `yaml:"feed"`
	Engine Engine `yaml:"engine"`
	Risk   Risk   `yaml:"risk"`
	Ledger Ledger `yaml:"ledger"`
}

// Load reads a YAML file from disk and hydrates a Config struct.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return &config, nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
