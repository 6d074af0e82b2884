// Package export persists closed positions for offline analysis.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/janis-sijanovs/mover-tracker/internal/trade"
)

var csvHeader = []string{
	"Entry Reason", "Symbol", "Entry Time", "Entry Price",
	"Exit Time", "Exit Price", "Stop Parameter", "Profit/Loss",
}

// WriteCSV writes the closed-position records as CSV, one row per closure.
func WriteCSV(w io.Writer, records []trade.Closed) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.Reason,
			rec.Symbol,
			rec.EntryTime.UTC().Format(time.RFC3339),
			strconv.FormatFloat(rec.EntryPrice, 'f', -1, 64),
			rec.ExitTime.UTC().Format(time.RFC3339),
			strconv.FormatFloat(rec.ExitPrice, 'f', -1, 64),
			strconv.FormatFloat(rec.StopParam, 'f', -1, 64),
			strconv.FormatFloat(rec.PnL, 'f', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCSVFile writes the records to a file, creating parent directories.
func WriteCSVFile(path string, records []trade.Closed) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer file.Close()
	return WriteCSV(file, records)
}
