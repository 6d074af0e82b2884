// Package signal standardizes payloads shared between data ingestion and the engine.
package signal

import "time"

// Tick models one mark-price observation consumed by the engine.
type Tick struct {
	Symbol string
	Price  float64
	Ts     time.Time
}

// Side distinguishes long and short exposure.
type Side string

const (
	// Long profits when price rises.
	Long Side = "LONG"
	// Short profits when price falls.
	Short Side = "SHORT"
)

// MoverScore carries the momentum statistics computed for one symbol in one cycle.
type MoverScore struct {
	Symbol       string
	RateOfChange float64 // weighted unsigned relative movement, always >= 0
	Direction    float64 // weighted signed relative movement
}

// Signal expresses a confirmed entry produced by the pattern classifier.
type Signal struct {
	Symbol string
	Side   Side
	Reason string
	Ts     time.Time
}
