package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/janis-sijanovs/mover-tracker/internal/signal"
	"github.com/janis-sijanovs/mover-tracker/internal/trade"
)

func closedFixture() trade.Closed {
	entry := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
	return trade.Closed{
		ID:         "test-id",
		Symbol:     "BTCUSDT",
		Side:       signal.Long,
		Reason:     "2-point bullish continuation",
		EntryTime:  entry,
		EntryPrice: 100,
		ExitTime:   entry.Add(5 * time.Minute),
		ExitPrice:  108.5,
		StopKind:   trade.StopTrailing,
		StopParam:  0.8,
		PnL:        8.5,
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, []trade.Closed{closedFixture()}); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading produced CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus 1 row, got %d", len(rows))
	}
	if rows[0][0] != "Entry Reason" || rows[0][7] != "Profit/Loss" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	row := rows[1]
	if row[0] != "2-point bullish continuation" || row[1] != "BTCUSDT" {
		t.Fatalf("unexpected row: %v", row)
	}
	if row[3] != "100" || row[5] != "108.5" || row[7] != "8.5" {
		t.Fatalf("unexpected numeric columns: %v", row)
	}
}

func TestWriteCSVFile(t *testing.T) {
	path := t.TempDir() + "/out/closed.csv"
	if err := WriteCSVFile(path, []trade.Closed{closedFixture()}); err != nil {
		t.Fatalf("WriteCSVFile returned error: %v", err)
	}
}
